package config

import (
	"testing"

	"github.com/spf13/viper"
)

func TestLoadFromDefaults(t *testing.T) {
	cfg := LoadFrom(viper.New())

	if cfg.Server.Port != "8080" || cfg.Server.Mode != "debug" {
		t.Fatalf("unexpected server defaults: %+v", cfg.Server)
	}
	if cfg.Database.Driver != "sqlite" || cfg.Database.DSN == "" {
		t.Fatalf("unexpected database defaults: %+v", cfg.Database)
	}
	if cfg.Security.LoginRateLimit.MaxAttempts != 5 || cfg.Security.LoginRateLimit.WindowSeconds != 300 {
		t.Fatalf("unexpected rate limit defaults: %+v", cfg.Security.LoginRateLimit)
	}
	if cfg.Security.RegisterRateLimit.MaxAttempts != 10 || cfg.Security.RegisterRateLimit.WindowSeconds != 3600 {
		t.Fatalf("unexpected register rate limit defaults: %+v", cfg.Security.RegisterRateLimit)
	}
	if cfg.Redis.Enabled || cfg.Redis.Prefix != "cd" {
		t.Fatalf("unexpected redis defaults: %+v", cfg.Redis)
	}
	if cfg.Queue.Enabled || cfg.Queue.Queues["default"] != 1 {
		t.Fatalf("unexpected queue defaults: %+v", cfg.Queue)
	}
	if cfg.Email.Enabled || cfg.Email.Port != 587 {
		t.Fatalf("unexpected email defaults: %+v", cfg.Email)
	}
}

func TestLoadFromLegacyEnvAliases(t *testing.T) {
	t.Setenv("ADMIN_JWT_SECRET", "legacy-session-secret")
	t.Setenv("ADMIN_SECRET_KEY", "legacy-register")
	t.Setenv("DATABASE_URL", "postgres://desk@localhost/desk")
	t.Setenv("SMTP_HOST", "smtp.example.com")

	cfg := LoadFrom(viper.New())
	if cfg.JWT.SecretKey != "legacy-session-secret" {
		t.Fatalf("unexpected jwt secret: %q", cfg.JWT.SecretKey)
	}
	if cfg.Admin.RegisterSecret != "legacy-register" {
		t.Fatalf("unexpected register secret: %q", cfg.Admin.RegisterSecret)
	}
	if cfg.Database.DSN != "postgres://desk@localhost/desk" {
		t.Fatalf("unexpected dsn: %q", cfg.Database.DSN)
	}
	if cfg.Email.Host != "smtp.example.com" {
		t.Fatalf("unexpected email host: %q", cfg.Email.Host)
	}
}

func TestLoadFromPrimaryEnvWinsOverAlias(t *testing.T) {
	t.Setenv("JWT_SECRET", "primary")
	t.Setenv("ADMIN_JWT_SECRET", "alias")

	cfg := LoadFrom(viper.New())
	if cfg.JWT.SecretKey != "primary" {
		t.Fatalf("expected primary env to win, got %q", cfg.JWT.SecretKey)
	}
}

func TestLoadFromEmailFromFallsBackToUsername(t *testing.T) {
	t.Setenv("EMAIL_ENABLED", "true")
	t.Setenv("EMAIL_USERNAME", " desk@example.com ")

	cfg := LoadFrom(viper.New())
	if !cfg.Email.Enabled {
		t.Fatalf("expected email enabled")
	}
	if cfg.Email.From != "desk@example.com" {
		t.Fatalf("unexpected from fallback: %q", cfg.Email.From)
	}
}

func TestServerConfigIsRelease(t *testing.T) {
	cases := map[string]bool{
		"release":   true,
		" Release ": true,
		"debug":     false,
		"":          false,
	}
	for mode, want := range cases {
		if got := (ServerConfig{Mode: mode}).IsRelease(); got != want {
			t.Fatalf("IsRelease(%q) = %v, want %v", mode, got, want)
		}
	}
}

func TestToLoggerOptions(t *testing.T) {
	opts := LogConfig{Dir: "/var/log/desk", Filename: "desk.log", MaxSizeMB: 10, MaxBackups: 2, MaxAgeDays: 3, Compress: true}.ToLoggerOptions()
	if opts.Dir != "/var/log/desk" || opts.Filename != "desk.log" || opts.MaxSizeMB != 10 || opts.MaxBackups != 2 || opts.MaxAgeDays != 3 || !opts.Compress {
		t.Fatalf("unexpected logger options: %+v", opts)
	}
}
