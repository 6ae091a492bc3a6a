package router

import (
	"fmt"
	"sort"
	"strings"

	"github.com/complaint-desk/internal/authz"
	"github.com/complaint-desk/internal/cache"
	"github.com/complaint-desk/internal/config"
	adminhandlers "github.com/complaint-desk/internal/http/handlers/admin"
	publichandlers "github.com/complaint-desk/internal/http/handlers/public"
	handlershared "github.com/complaint-desk/internal/http/handlers/shared"
	"github.com/complaint-desk/internal/http/response"
	"github.com/complaint-desk/internal/logger"
	"github.com/complaint-desk/internal/provider"

	"github.com/gin-gonic/gin"
)

const adminAPIPrefix = "/api/admin/"

// 无需会话的管理端接口，不进入权限目录
var adminPublicRoutes = map[string]struct{}{
	"/api/admin/login":    {},
	"/api/admin/register": {},
	"/api/admin/logout":   {},
}

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	// 初始化 Handler（按前台/后台分组）
	publicHandler := publichandlers.New(c)
	adminHandler := adminhandlers.New(c)
	adminLoginRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:admin_login", cache.Prefix(&cfg.Redis)),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
		Message:       "too many login attempts, retry in %d seconds",
	}
	adminRegisterRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:admin_register", cache.Prefix(&cfg.Redis)),
		WindowSeconds: cfg.Security.RegisterRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.RegisterRateLimit.MaxAttempts,
		Message:       "too many registration attempts, retry in %d seconds",
	}

	// 中间件
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	// 页面入口（渲染由前端负责，这里只执行跳转策略）
	pages := r.Group("")
	pages.Use(PageRedirectMiddleware(c.AuthService))
	{
		pages.GET("/", publicHandler.HomePage)
		pages.GET("/complaint/register", publicHandler.ComplaintFormPage)
		pages.GET("/admin/login", publicHandler.AdminLoginPage)
		pages.GET("/admin/register", publicHandler.AdminRegisterPage)
		pages.GET("/admin/main", publicHandler.AdminMainPage)
		pages.GET("/admin/main/*page", publicHandler.AdminMainPage)
	}

	api := r.Group("/api")
	{
		// 公开接口
		api.POST("/complaints", publicHandler.CreateComplaint)

		// 管理员接口
		admin := api.Group("/admin")
		{
			// 无需鉴权
			admin.POST("/register", RateLimitMiddleware(cache.Client(), adminRegisterRule, KeyByIP), adminHandler.AdminRegister)
			admin.POST("/login", RateLimitMiddleware(cache.Client(), adminLoginRule, KeyByIPAndJSONField("email")), adminHandler.AdminLogin)
			admin.POST("/logout", adminHandler.AdminLogout)

			// 需要鉴权的接口
			authorized := admin.Group("")
			authorized.Use(AdminSessionMiddleware(c.AuthService), AdminRBACMiddleware(c.AuthzService))
			{
				// 投诉管理
				authorized.GET("/complaints", adminHandler.GetAdminComplaints)
				authorized.GET("/complaints/:id", adminHandler.GetAdminComplaint)
				authorized.PATCH("/complaints/:id", adminHandler.UpdateAdminComplaintStatus)

				// 管理员通讯录
				authorized.GET("/emails", adminHandler.GetAdminEmails)

				// 权限目录
				authorized.GET("/permissions", func(ctx *gin.Context) {
					role := ctx.GetString(handlershared.ContextRole)
					policies, err := c.AuthzService.GetRolePolicies(role)
					if err != nil {
						handlershared.RespondErrorWithMsg(ctx, response.CodeInternal, "load permissions failed", err)
						return
					}
					response.Success(ctx, markGrantedPermissions(buildAdminPermissionCatalog(r), policies))
				})
			}
		}
	}

	// 健康检查
	r.GET("/health", publicHandler.Health)

	return r
}

type adminPermissionCatalogItem struct {
	Module     string `json:"module"`
	Method     string `json:"method"`
	Object     string `json:"object"`
	Permission string `json:"permission"`
	Granted    bool   `json:"granted"`
}

func buildAdminPermissionCatalog(engine *gin.Engine) []adminPermissionCatalogItem {
	if engine == nil {
		return []adminPermissionCatalogItem{}
	}

	routes := engine.Routes()
	seen := make(map[string]struct{}, len(routes))
	items := make([]adminPermissionCatalogItem, 0, len(routes))

	for _, item := range routes {
		method := strings.ToUpper(strings.TrimSpace(item.Method))
		if method == "" || method == "OPTIONS" || method == "HEAD" {
			continue
		}
		if !strings.HasPrefix(item.Path, adminAPIPrefix) {
			continue
		}
		if _, public := adminPublicRoutes[item.Path]; public {
			continue
		}
		object := authz.NormalizeObject(item.Path)
		permission := method + ":" + object
		if _, exists := seen[permission]; exists {
			continue
		}
		seen[permission] = struct{}{}
		items = append(items, adminPermissionCatalogItem{
			Module:     deriveAdminPermissionModule(object),
			Method:     method,
			Object:     object,
			Permission: permission,
		})
	}

	sort.Slice(items, func(i, j int) bool {
		if items[i].Module == items[j].Module {
			if items[i].Object == items[j].Object {
				return items[i].Method < items[j].Method
			}
			return items[i].Object < items[j].Object
		}
		return items[i].Module < items[j].Module
	})

	return items
}

func deriveAdminPermissionModule(object string) string {
	normalized := strings.TrimPrefix(strings.TrimSpace(object), "/")
	if normalized == "" {
		return "system"
	}
	segments := strings.Split(normalized, "/")
	if len(segments) <= 1 || segments[0] != "admin" {
		return segments[0]
	}
	return segments[1]
}

// markGrantedPermissions 标记当前角色已授予的目录项
func markGrantedPermissions(items []adminPermissionCatalogItem, policies []authz.Policy) []adminPermissionCatalogItem {
	granted := make(map[string]struct{}, len(policies))
	wildcard := make(map[string]struct{})
	for _, policy := range policies {
		if policy.Action == "*" {
			wildcard[policy.Object] = struct{}{}
			continue
		}
		granted[policy.Action+":"+policy.Object] = struct{}{}
	}
	for i := range items {
		_, exact := granted[items[i].Permission]
		_, wild := wildcard[items[i].Object]
		items[i].Granted = exact || wild
	}
	return items
}
