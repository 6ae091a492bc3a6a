package admin

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/complaint-desk/internal/logger"
	"github.com/complaint-desk/internal/provider"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func TestUpdateComplaintStatusWithoutSessionAnswersUnauthorized(t *testing.T) {
	gin.SetMode(gin.TestMode)
	logger.L = zap.NewNop()

	h := New(&provider.Container{})
	r := gin.New()
	r.PATCH("/api/admin/complaints/:id", h.UpdateAdminComplaintStatus)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/api/admin/complaints/1", strings.NewReader(`{"status":"Resolved"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status want 401 got %d body=%s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), `"msg":"unauthorized"`) {
		t.Fatalf("expected unauthorized envelope, got %s", w.Body.String())
	}
}
