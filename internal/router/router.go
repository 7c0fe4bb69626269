package router

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/handmade-next/internal/cache"
	"github.com/handmade-next/internal/config"
	"github.com/handmade-next/internal/constants"
	adminhandlers "github.com/handmade-next/internal/http/handlers/admin"
	publichandlers "github.com/handmade-next/internal/http/handlers/public"
	"github.com/handmade-next/internal/http/response"
	"github.com/handmade-next/internal/i18n"
	"github.com/handmade-next/internal/logger"
	"github.com/handmade-next/internal/provider"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

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
	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = constants.RedisPrefixDefault
	}
	orderRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:order", redisPrefix),
		WindowSeconds: cfg.Security.OrderRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.OrderRateLimit.MaxAttempts,
		BlockSeconds:  cfg.Security.OrderRateLimit.BlockSeconds,
	}

	// 中间件
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	if cfg.Metrics.Enabled {
		r.Use(MetricsMiddleware())
	}
	r.Use(CORSMiddleware(cfg.CORS))

	r.GET("/healthz", func(ctx *gin.Context) {
		response.Success(ctx, gin.H{"status": "ok"})
	})
	if cfg.Metrics.Enabled {
		metricsPath := strings.TrimSpace(cfg.Metrics.Path)
		if metricsPath == "" {
			metricsPath = "/metrics"
		}
		r.GET(metricsPath, gin.WrapH(promhttp.Handler()))
	}
	r.NoRoute(func(ctx *gin.Context) {
		response.Error(ctx, http.StatusNotFound, response.CodeNotFound, i18n.T(i18n.ResolveLocale(ctx), "error.not_found"))
	})

	apiV1 := r.Group("/api/v1")
	{
		// 公开接口
		public := apiV1.Group("/public")
		{
			public.GET("/categories", publicHandler.ListCategories)
			public.GET("/categories/:id/variations", publicHandler.ListCategoryVariations)
			public.GET("/products", publicHandler.ListProducts)
			public.GET("/products/:id", publicHandler.GetProduct)
		}

		// 买家接口
		customer := apiV1.Group("")
		customer.Use(ActorAuthMiddleware(c.TokenService), RBACMiddleware(c.AuthzService))
		{
			customer.POST("/orders", RateLimitMiddleware(cache.Client(), orderRule, KeyByActor), publicHandler.CreateOrder)
			customer.GET("/orders", publicHandler.ListOrders)
			customer.GET("/orders/:id", publicHandler.GetOrder)
			customer.POST("/orders/:id/cancel", publicHandler.CancelOrder)
		}

		// 管理端接口（管理员/卖家）
		admin := apiV1.Group("/admin")
		admin.Use(ActorAuthMiddleware(c.TokenService), RBACMiddleware(c.AuthzService))
		{
			admin.GET("/categories", adminHandler.ListCategories)
			admin.POST("/categories", adminHandler.CreateCategory)
			admin.PUT("/categories/:id", adminHandler.UpdateCategory)
			admin.DELETE("/categories/:id", adminHandler.DeleteCategory)
			admin.POST("/categories/:id/restore", adminHandler.RestoreCategory)
			admin.GET("/categories/:id/variations", adminHandler.ListCategoryVariations)

			admin.POST("/variations", adminHandler.CreateVariation)
			admin.PUT("/variations/:id", adminHandler.UpdateVariation)
			admin.DELETE("/variations/:id", adminHandler.DeleteVariation)
			admin.POST("/variations/:id/restore", adminHandler.RestoreVariation)
			admin.POST("/variations/:id/options", adminHandler.CreateVariationOption)
			admin.PUT("/variation-options/:id", adminHandler.UpdateVariationOption)
			admin.DELETE("/variation-options/:id", adminHandler.DeleteVariationOption)
			admin.POST("/variation-options/:id/restore", adminHandler.RestoreVariationOption)

			admin.GET("/products", adminHandler.ListProducts)
			admin.POST("/products", adminHandler.CreateProduct)
			admin.GET("/products/:id", adminHandler.GetProduct)
			admin.PUT("/products/:id", adminHandler.UpdateProduct)
			admin.DELETE("/products/:id", adminHandler.DeleteProduct)
			admin.POST("/products/:id/restore", adminHandler.RestoreProduct)
			admin.GET("/products/:id/combinations", adminHandler.GetProductCombinations)
			admin.POST("/product-combinations/preview", adminHandler.PreviewCombinations)

			admin.GET("/orders", adminHandler.AdminListOrders)
			admin.GET("/orders/:id", adminHandler.AdminGetOrder)
			admin.PATCH("/orders/:id/status", adminHandler.AdminUpdateOrderStatus)

			admin.GET("/authz/roles", adminHandler.ListAuthzRoles)
			admin.GET("/authz/roles/:role/policies", adminHandler.GetAuthzRolePolicies)
			admin.POST("/authz/policies", adminHandler.GrantAuthzPolicy)
			admin.POST("/authz/policies/revoke", adminHandler.RevokeAuthzPolicy)
		}
	}

	return r
}
