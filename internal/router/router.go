package router

import (
	"sort"
	"strings"

	"github.com/shopsync/internal/authz"
	"github.com/shopsync/internal/cache"
	"github.com/shopsync/internal/config"
	adminhandlers "github.com/shopsync/internal/http/handlers/admin"
	publichandlers "github.com/shopsync/internal/http/handlers/public"
	handlershared "github.com/shopsync/internal/http/handlers/shared"
	"github.com/shopsync/internal/http/response"
	"github.com/shopsync/internal/logger"
	"github.com/shopsync/internal/metrics"
	"github.com/shopsync/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	handlershared.RegisterJSONTagNames()
	r := gin.New()

	// 初始化 Handler（按前台/后台分组）
	publicHandler := publichandlers.New(c)
	adminHandler := adminhandlers.New(c)
	loginRule := newRateLimitRule(cfg.Redis.Prefix, "login", cfg.Security.LoginRateLimit, "error.login_too_many")
	registerRule := newRateLimitRule(cfg.Redis.Prefix, "register", cfg.Security.RegisterRateLimit, "error.register_too_many")

	// 中间件
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(logger.Z()))
	r.Use(CORSMiddleware(cfg.CORS))

	r.GET("/health", publicHandler.Health)
	if cfg.Metrics.Enabled {
		path := strings.TrimSpace(cfg.Metrics.Path)
		if path == "" {
			path = "/metrics"
		}
		r.GET(path, gin.WrapH(metrics.Handler(c.Registry)))
	}

	userAuth := UserJWTAuthMiddleware(cfg.JWT.SecretKey, c.UserRepo)

	apiV1 := r.Group("/api/v1")
	{
		auth := apiV1.Group("/auth")
		{
			auth.POST("/register", RateLimitMiddleware(cache.Client(), registerRule, KeyByIP), publicHandler.UserRegister)
			auth.POST("/login", RateLimitMiddleware(cache.Client(), loginRule, KeyByIPAndJSONField("email")), publicHandler.UserLogin)
			auth.GET("/profile", userAuth, publicHandler.GetProfile)
		}

		apiV1.GET("/products", publicHandler.GetProducts)
		apiV1.GET("/products/:id", publicHandler.GetProduct)
		apiV1.GET("/categories", publicHandler.GetCategories)
		apiV1.GET("/categories/:slug", publicHandler.GetCategory)

		cart := apiV1.Group("/cart", userAuth)
		{
			cart.GET("", publicHandler.GetCart)
			cart.DELETE("", publicHandler.ClearCart)
			cart.POST("/items", publicHandler.AddCartItem)
			cart.PUT("/items/:item_id", publicHandler.UpdateCartItem)
			cart.DELETE("/items/:item_id", publicHandler.RemoveCartItem)
		}

		// 管理端接口：JWT + casbin
		admin := apiV1.Group("/admin", userAuth, AdminRBACMiddleware(c.AuthzService))
		{
			admin.POST("/products/sync", adminHandler.TriggerProductSync)

			admin.POST("/tasks/sync-products", adminHandler.ManualSync)
			admin.POST("/tasks/sync-products/async", adminHandler.EnqueueSync)
			admin.GET("/tasks/status", adminHandler.GetTaskStatus)

			admin.GET("/system-logs", adminHandler.ListSystemLogs)
			admin.POST("/system-logs/cleanup", adminHandler.CleanupSystemLogs)

			admin.GET("/authz/roles", adminHandler.ListAuthzRoles)
			admin.GET("/authz/roles/:role/policies", adminHandler.GetAuthzRolePolicies)
			admin.POST("/authz/policies", adminHandler.GrantAuthzPolicy)
			admin.GET("/authz/users/:id/roles", adminHandler.GetUserRoles)
			admin.PUT("/authz/users/:id/roles", adminHandler.SetUserRoles)
			admin.GET("/authz/permissions", func(ctx *gin.Context) {
				response.Success(ctx, buildAdminPermissionCatalog(r))
			})
		}
	}

	return r
}

type adminPermissionCatalogItem struct {
	Module     string `json:"module"`
	Method     string `json:"method"`
	Object     string `json:"object"`
	Permission string `json:"permission"`
}

// buildAdminPermissionCatalog 从已注册路由生成可授权的权限清单
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
		if !strings.HasPrefix(item.Path, "/api/v1/admin/") {
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
	segments := strings.Split(strings.TrimPrefix(strings.TrimSpace(object), "/"), "/")
	if len(segments) < 2 || segments[0] != "admin" {
		return "system"
	}
	return segments[1]
}
