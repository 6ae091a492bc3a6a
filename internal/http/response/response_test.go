package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestErrorMirrorsStatusCode(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("request_id", "req-1")

	Forbidden(c, "forbidden")

	if w.Code != http.StatusForbidden {
		t.Fatalf("http status want 403 got %d", w.Code)
	}
	var resp struct {
		StatusCode int               `json:"status_code"`
		Msg        string            `json:"msg"`
		Data       map[string]string `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response failed: %v", err)
	}
	if resp.StatusCode != CodeForbidden || resp.Msg != "forbidden" {
		t.Fatalf("unexpected body: %+v", resp)
	}
	if resp.Data["request_id"] != "req-1" {
		t.Fatalf("request id should be attached, got %+v", resp.Data)
	}
}

func TestCreatedResponse(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	Created(c, gin.H{"id": 1})

	if w.Code != http.StatusCreated {
		t.Fatalf("http status want 201 got %d", w.Code)
	}
}

func TestNewPagination(t *testing.T) {
	p := NewPagination(2, 10, 25)
	if p.TotalPage != 3 || p.Page != 2 || p.PageSize != 10 || p.Total != 25 {
		t.Fatalf("unexpected pagination: %+v", p)
	}
	if empty := NewPagination(1, 10, 0); empty.TotalPage != 0 {
		t.Fatalf("empty total should give zero pages, got %+v", empty)
	}
}

func TestHTTPStatusFallback(t *testing.T) {
	if got := httpStatus(42); got != http.StatusInternalServerError {
		t.Fatalf("unknown code should map to 500, got %d", got)
	}
	if got := httpStatus(CodeConflict); got != http.StatusConflict {
		t.Fatalf("conflict should map to 409, got %d", got)
	}
}
