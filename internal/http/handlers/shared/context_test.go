package shared

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/complaint-desk/internal/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func newContextForTest() (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	logger.L = zap.NewNop()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	return c, w
}

func TestGetAdminIDMissingAnswersUnauthorized(t *testing.T) {
	c, w := newContextForTest()
	if _, ok := GetAdminID(c); ok {
		t.Fatalf("expected missing admin id to fail")
	}
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status want 401 got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"status_code":401`) {
		t.Fatalf("expected error envelope, got %s", w.Body.String())
	}
}

func TestGetContextUintTypes(t *testing.T) {
	c, _ := newContextForTest()
	c.Set(ContextAdminID, uint(7))
	if id, ok := GetAdminID(c); !ok || id != 7 {
		t.Fatalf("unexpected admin id: %d ok=%v", id, ok)
	}

	c, w := newContextForTest()
	c.Set(ContextAdminID, -1)
	if _, ok := GetAdminID(c); ok || w.Code != http.StatusBadRequest {
		t.Fatalf("negative id should be rejected with 400, got %d", w.Code)
	}

	c, w = newContextForTest()
	c.Set(ContextAdminID, "7")
	if _, ok := GetAdminID(c); ok || w.Code != http.StatusInternalServerError {
		t.Fatalf("unexpected type should answer 500, got %d", w.Code)
	}
}
