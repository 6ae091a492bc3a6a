package router

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/complaint-desk/internal/constants"
	handlershared "github.com/complaint-desk/internal/http/handlers/shared"
	"github.com/complaint-desk/internal/service"

	"github.com/gin-gonic/gin"
)

func TestResolveAllowedOrigin(t *testing.T) {
	got := resolveAllowedOrigin("https://example.com", []string{"*"}, false)
	if got != "*" {
		t.Fatalf("wildcard without credentials should return *, got %s", got)
	}

	got = resolveAllowedOrigin("https://example.com", []string{"*"}, true)
	if got != "https://example.com" {
		t.Fatalf("wildcard with credentials should echo origin, got %s", got)
	}

	got = resolveAllowedOrigin("https://a.example.com", []string{"https://a.example.com", "https://b.example.com"}, false)
	if got != "https://a.example.com" {
		t.Fatalf("allow-list should return matched origin, got %s", got)
	}

	got = resolveAllowedOrigin("https://x.example.com", []string{"https://a.example.com"}, false)
	if got != "" {
		t.Fatalf("unmatched origin should be empty, got %s", got)
	}
}

func TestRequestIDMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(RequestIDMiddleware())
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"request_id": getRequestID(c)})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(requestIDHeader, "req-123")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status want 200 got %d", w.Code)
	}
	if w.Header().Get(requestIDHeader) != "req-123" {
		t.Fatalf("response request id want req-123 got %s", w.Header().Get(requestIDHeader))
	}
	var resp map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response failed: %v", err)
	}
	if resp["request_id"] != "req-123" {
		t.Fatalf("context request id want req-123 got %s", resp["request_id"])
	}

	w2 := httptest.NewRecorder()
	req2 := httptest.NewRequest(http.MethodGet, "/ping", nil)
	r.ServeHTTP(w2, req2)
	generated := w2.Header().Get(requestIDHeader)
	if generated == "" {
		t.Fatalf("generated request id should not be empty")
	}
	if resp := strings.TrimSpace(generated); resp == "" {
		t.Fatalf("generated request id should not be blank")
	}
}

type authorizerStub struct {
	decisions map[string]service.Authorization
	calls     []string
}

func (s *authorizerStub) Authorize(token string) service.Authorization {
	s.calls = append(s.calls, token)
	if auth, ok := s.decisions[token]; ok {
		return auth
	}
	return service.Authorization{Decision: service.DecisionUnauthenticated}
}

type enforcerStub struct {
	allow bool
	err   error
	seen  []string
}

func (e *enforcerStub) EnforceRole(role, obj, act string) (bool, error) {
	e.seen = append(e.seen, role+" "+act+" "+obj)
	return e.allow, e.err
}

func newSessionStub() *authorizerStub {
	return &authorizerStub{decisions: map[string]service.Authorization{
		"good":   {Decision: service.DecisionAllow, AdminID: 7, Role: constants.RoleAdmin},
		"viewer": {Decision: service.DecisionForbidden, AdminID: 7, Role: "viewer"},
	}}
}

func decodeStatusCode(t *testing.T, w *httptest.ResponseRecorder) int {
	t.Helper()
	var resp struct {
		StatusCode int `json:"status_code"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response failed: %v body=%s", err, w.Body.String())
	}
	return resp.StatusCode
}

func TestAdminSessionMiddlewareDecisions(t *testing.T) {
	gin.SetMode(gin.TestMode)

	reached := 0
	r := gin.New()
	r.Use(AdminSessionMiddleware(newSessionStub()))
	r.GET("/admin/ping", func(c *gin.Context) {
		reached++
		c.JSON(http.StatusOK, gin.H{
			"admin_id": c.GetUint(handlershared.ContextAdminID),
			"role":     c.GetString(handlershared.ContextRole),
		})
	})

	cases := []struct {
		name   string
		setup  func(*http.Request)
		status int
	}{
		{name: "no_token", setup: func(*http.Request) {}, status: http.StatusUnauthorized},
		{name: "garbage_token", setup: func(req *http.Request) { req.Header.Set("Authorization", "Bearer nope") }, status: http.StatusUnauthorized},
		{name: "forbidden_role", setup: func(req *http.Request) { req.Header.Set("Authorization", "Bearer viewer") }, status: http.StatusForbidden},
		{name: "bearer_ok", setup: func(req *http.Request) { req.Header.Set("Authorization", "Bearer good") }, status: http.StatusOK},
		{name: "cookie_ok", setup: func(req *http.Request) {
			req.AddCookie(&http.Cookie{Name: constants.AdminSessionCookie, Value: "good"})
		}, status: http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/admin/ping", nil)
			tc.setup(req)
			r.ServeHTTP(w, req)
			if w.Code != tc.status {
				t.Fatalf("status want %d got %d body=%s", tc.status, w.Code, w.Body.String())
			}
			if tc.status != http.StatusOK && decodeStatusCode(t, w) != tc.status {
				t.Fatalf("status_code should mirror http status")
			}
		})
	}
	if reached != 2 {
		t.Fatalf("handler should run only for allowed sessions, ran %d times", reached)
	}
}

func TestAdminSessionMiddlewarePrefersCookie(t *testing.T) {
	gin.SetMode(gin.TestMode)

	stub := newSessionStub()
	r := gin.New()
	r.Use(AdminSessionMiddleware(stub))
	r.GET("/admin/ping", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin/ping", nil)
	req.AddCookie(&http.Cookie{Name: constants.AdminSessionCookie, Value: "good"})
	req.Header.Set("Authorization", "Bearer viewer")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Fatalf("cookie token should win, got %d", w.Code)
	}
	if len(stub.calls) != 1 || stub.calls[0] != "good" {
		t.Fatalf("unexpected authorize calls: %v", stub.calls)
	}
}

func TestAdminRBACMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	build := func(enforcer RoleEnforcer) *gin.Engine {
		r := gin.New()
		r.Use(func(c *gin.Context) {
			c.Set(handlershared.ContextRole, constants.RoleAdmin)
			c.Next()
		})
		r.Use(AdminRBACMiddleware(enforcer))
		r.PATCH("/api/admin/complaints/:id", func(c *gin.Context) { c.Status(http.StatusNoContent) })
		return r
	}

	allow := &enforcerStub{allow: true}
	w := httptest.NewRecorder()
	build(allow).ServeHTTP(w, httptest.NewRequest(http.MethodPatch, "/api/admin/complaints/3", nil))
	if w.Code != http.StatusNoContent {
		t.Fatalf("allowed request want 204 got %d", w.Code)
	}
	if len(allow.seen) != 1 || allow.seen[0] != "admin PATCH /api/admin/complaints/:id" {
		t.Fatalf("enforcer should see route template, got %v", allow.seen)
	}

	w = httptest.NewRecorder()
	build(&enforcerStub{allow: false}).ServeHTTP(w, httptest.NewRequest(http.MethodPatch, "/api/admin/complaints/3", nil))
	if w.Code != http.StatusForbidden {
		t.Fatalf("denied request want 403 got %d", w.Code)
	}

	w = httptest.NewRecorder()
	build(&enforcerStub{err: errors.New("adapter down")}).ServeHTTP(w, httptest.NewRequest(http.MethodPatch, "/api/admin/complaints/3", nil))
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("enforcer failure want 500 got %d", w.Code)
	}
}

func TestPageRedirectMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(PageRedirectMiddleware(newSessionStub()))
	for _, path := range []string{"/", "/complaint/register", "/admin/login", "/admin/register", "/admin/main", "/admin/main/*page"} {
		r.GET(path, func(c *gin.Context) { c.Status(http.StatusOK) })
	}

	cases := []struct {
		path     string
		token    string
		status   int
		location string
	}{
		{path: "/complaint/register", token: "good", status: http.StatusFound, location: constants.PageAdminDashboard},
		{path: "/admin/login", token: "good", status: http.StatusFound, location: constants.PageAdminDashboard},
		{path: "/admin/register", token: "good", status: http.StatusFound, location: constants.PageAdminDashboard},
		{path: "/admin/main/dashboard", token: "good", status: http.StatusOK},
		{path: "/", token: "good", status: http.StatusOK},
		{path: "/admin/main/dashboard", status: http.StatusFound, location: constants.PageHome},
		{path: "/admin/main", status: http.StatusFound, location: constants.PageHome},
		{path: "/admin/main/dashboard", token: "viewer", status: http.StatusFound, location: constants.PageHome},
		{path: "/admin/login", status: http.StatusOK},
		{path: "/complaint/register", status: http.StatusOK},
	}
	for _, tc := range cases {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, tc.path, nil)
		if tc.token != "" {
			req.AddCookie(&http.Cookie{Name: constants.AdminSessionCookie, Value: tc.token})
		}
		r.ServeHTTP(w, req)
		if w.Code != tc.status {
			t.Fatalf("%s token=%q: status want %d got %d", tc.path, tc.token, tc.status, w.Code)
		}
		if tc.location != "" && w.Header().Get("Location") != tc.location {
			t.Fatalf("%s token=%q: location want %s got %s", tc.path, tc.token, tc.location, w.Header().Get("Location"))
		}
	}
}

func TestReadSessionToken(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Request.Header.Set("Authorization", "bearer  abc ")
	if got := readSessionToken(c); got != "abc" {
		t.Fatalf("bearer token want abc got %q", got)
	}

	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Request.Header.Set("Authorization", "Basic abc")
	if got := readSessionToken(c); got != "" {
		t.Fatalf("non-bearer scheme should be ignored, got %q", got)
	}
	if !strings.HasPrefix(constants.PageAdminDashboard, constants.PageAdminMainRoot+"/") {
		t.Fatalf("dashboard must live under the admin main root")
	}
}
