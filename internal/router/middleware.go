package router

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/complaint-desk/internal/config"
	"github.com/complaint-desk/internal/constants"
	handlershared "github.com/complaint-desk/internal/http/handlers/shared"
	"github.com/complaint-desk/internal/http/response"
	"github.com/complaint-desk/internal/logger"
	"github.com/complaint-desk/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const requestIDKey = "request_id"
const requestIDHeader = "X-Request-ID"

// SessionAuthorizer 会话令牌判定
type SessionAuthorizer interface {
	Authorize(token string) service.Authorization
}

// RoleEnforcer 角色访问策略
type RoleEnforcer interface {
	EnforceRole(role, obj, act string) (bool, error)
}

// CORSMiddleware 跨域中间件
func CORSMiddleware(cfg config.CORSConfig) gin.HandlerFunc {
	allowedOrigins := cfg.AllowedOrigins
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}
	allowedMethods := cfg.AllowedMethods
	if len(allowedMethods) == 0 {
		allowedMethods = []string{"GET", "POST", "PATCH", "OPTIONS"}
	}
	allowedHeaders := cfg.AllowedHeaders
	if len(allowedHeaders) == 0 {
		allowedHeaders = []string{
			"Content-Type",
			"Content-Length",
			"Accept-Encoding",
			"Authorization",
			"Cache-Control",
			"X-Requested-With",
			"X-CSRF-Token",
		}
	}
	methodsHeader := strings.Join(allowedMethods, ", ")
	headersHeader := strings.Join(allowedHeaders, ", ")

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		allowedOrigin := resolveAllowedOrigin(origin, allowedOrigins, cfg.AllowCredentials)
		if allowedOrigin != "" {
			c.Writer.Header().Set("Access-Control-Allow-Origin", allowedOrigin)
			if allowedOrigin != "*" {
				c.Writer.Header().Add("Vary", "Origin")
			}
		}
		if cfg.AllowCredentials {
			c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		}
		c.Writer.Header().Set("Access-Control-Allow-Headers", headersHeader)
		c.Writer.Header().Set("Access-Control-Allow-Methods", methodsHeader)
		if cfg.MaxAge > 0 {
			c.Writer.Header().Set("Access-Control-Max-Age", strconv.Itoa(cfg.MaxAge))
		}

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}

func resolveAllowedOrigin(origin string, allowedOrigins []string, allowCredentials bool) string {
	if len(allowedOrigins) == 0 {
		return ""
	}
	for _, allowed := range allowedOrigins {
		if allowed == "*" {
			if allowCredentials && origin != "" {
				return origin
			}
			return "*"
		}
	}
	if origin == "" {
		return ""
	}
	for _, allowed := range allowedOrigins {
		if strings.EqualFold(allowed, origin) {
			return origin
		}
	}
	return ""
}

// RequestIDMiddleware 请求 ID 中间件
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := strings.TrimSpace(c.GetHeader(requestIDHeader))
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set(requestIDKey, requestID)
		c.Writer.Header().Set(requestIDHeader, requestID)
		c.Next()
	}
}

// LoggerMiddleware 结构化请求日志中间件
func LoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.L()
	}
	sugar := logger.Sugar()
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		log := sugar.With(
			"request_id", getRequestID(c),
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency_ms", time.Since(start).Milliseconds(),
			"client_ip", c.ClientIP(),
		)
		if len(c.Errors) > 0 {
			log.Errorw("request", "errors", c.Errors.String())
			return
		}
		log.Infow("request")
	}
}

func getRequestID(c *gin.Context) string {
	value, ok := c.Get(requestIDKey)
	if !ok {
		return ""
	}
	if requestID, ok := value.(string); ok {
		return requestID
	}
	return ""
}

// AdminSessionMiddleware 管理员会话鉴权中间件
// 令牌优先取 admin_token Cookie，其次取 Authorization: Bearer
func AdminSessionMiddleware(sessions SessionAuthorizer) gin.HandlerFunc {
	return func(c *gin.Context) {
		if sessions == nil {
			response.Unauthorized(c, "unauthorized")
			c.Abort()
			return
		}
		auth := sessions.Authorize(readSessionToken(c))
		switch auth.Decision {
		case service.DecisionAllow:
			c.Set(handlershared.ContextAdminID, auth.AdminID)
			c.Set(handlershared.ContextRole, auth.Role)
			c.Next()
		case service.DecisionForbidden:
			logger.Warnw("admin_session_forbidden", "admin_id", auth.AdminID, "role", auth.Role, "path", c.Request.URL.Path)
			response.Forbidden(c, "forbidden")
			c.Abort()
		default:
			response.Unauthorized(c, "unauthorized")
			c.Abort()
		}
	}
}

// AdminRBACMiddleware 按会话角色校验路由策略
func AdminRBACMiddleware(enforcer RoleEnforcer) gin.HandlerFunc {
	return func(c *gin.Context) {
		if enforcer == nil {
			response.Forbidden(c, "forbidden")
			c.Abort()
			return
		}
		role := c.GetString(handlershared.ContextRole)
		object := c.FullPath()
		if object == "" {
			object = c.Request.URL.Path
		}
		allowed, err := enforcer.EnforceRole(role, object, c.Request.Method)
		if err != nil {
			logger.Errorw("admin_rbac_enforce_failed", "role", role, "object", object, "error", err)
			response.Error(c, response.CodeInternal, "internal server error")
			c.Abort()
			return
		}
		if !allowed {
			logger.Warnw("admin_rbac_denied", "role", role, "object", object, "action", c.Request.Method)
			response.Forbidden(c, "forbidden")
			c.Abort()
			return
		}
		c.Next()
	}
}

// PageRedirectMiddleware 页面跳转策略
// 已登录访问登录/注册/投诉页跳转后台首页，未登录访问后台页跳转首页
func PageRedirectMiddleware(sessions SessionAuthorizer) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		signedIn := sessions != nil && sessions.Authorize(readSessionToken(c)).Allowed()
		switch {
		case signedIn && isGuestOnlyPage(path):
			c.Redirect(http.StatusFound, constants.PageAdminDashboard)
			c.Abort()
		case !signedIn && isAdminPage(path):
			c.Redirect(http.StatusFound, constants.PageHome)
			c.Abort()
		default:
			c.Next()
		}
	}
}

func isGuestOnlyPage(path string) bool {
	switch strings.TrimSuffix(path, "/") {
	case constants.PageComplaintNew, constants.PageAdminLogin, constants.PageAdminRegister:
		return true
	}
	return false
}

func isAdminPage(path string) bool {
	return path == constants.PageAdminMainRoot || strings.HasPrefix(path, constants.PageAdminMainRoot+"/")
}

func readSessionToken(c *gin.Context) string {
	if cookie, err := c.Cookie(constants.AdminSessionCookie); err == nil && strings.TrimSpace(cookie) != "" {
		return strings.TrimSpace(cookie)
	}
	authHeader := strings.TrimSpace(c.GetHeader("Authorization"))
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return strings.TrimSpace(parts[1])
	}
	return ""
}
