package main

import (
	"errors"
	"testing"
)

func TestCheckSessionSecret(t *testing.T) {
	if _, err := checkSessionSecret("  "); !errors.Is(err, errSecretMissing) {
		t.Fatalf("blank secret should be rejected, got %v", err)
	}
	weak, err := checkSessionSecret("short")
	if err != nil || !weak {
		t.Fatalf("short secret should be weak, weak=%v err=%v", weak, err)
	}
	weak, err = checkSessionSecret("please-change-me-0123456789abcdefghij")
	if err != nil || !weak {
		t.Fatalf("placeholder secret should be weak, weak=%v err=%v", weak, err)
	}
	weak, err = checkSessionSecret("k8Q2vX9mTz4Lr7Wc1Nb5Hy3Jd6Fp0Sa2")
	if err != nil || weak {
		t.Fatalf("random secret should pass, weak=%v err=%v", weak, err)
	}
}
