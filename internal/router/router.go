package router

import (
	"fmt"
	"strings"

	"github.com/gearmart-next/internal/cache"
	"github.com/gearmart-next/internal/config"
	adminhandlers "github.com/gearmart-next/internal/http/handlers/admin"
	publichandlers "github.com/gearmart-next/internal/http/handlers/public"
	"github.com/gearmart-next/internal/logger"
	"github.com/gearmart-next/internal/provider"

	"github.com/gin-gonic/gin"
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
		redisPrefix = "gm"
	}
	redisClient := cache.Client()
	loginRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:login", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
		Message:       "too many login attempts",
	}
	checkoutRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:checkout", redisPrefix),
		WindowSeconds: 60,
		MaxRequests:   10,
		Message:       "too many checkout attempts",
	}

	// 中间件
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	// API 路由组
	apiV1 := r.Group("/api/v1")
	{
		// 公开接口
		public := apiV1.Group("/public")
		{
			public.GET("/products", publicHandler.GetProducts)
			public.GET("/products/:id", publicHandler.GetProduct)
			public.GET("/categories", publicHandler.GetCategories)
			public.GET("/warranties/check/:warranty_no", publicHandler.CheckWarranty)
		}

		// 用户认证接口
		auth := apiV1.Group("/auth")
		{
			auth.POST("/register", publicHandler.UserRegister)
			auth.POST("/login", RateLimitMiddleware(redisClient, loginRule, KeyByIPAndJSONField("email")), publicHandler.UserLogin)
		}

		// 用户接口（需鉴权）
		user := apiV1.Group("")
		user.Use(UserJWTAuthMiddleware(cfg.JWT.SecretKey, c.UserRepo))
		{
			user.GET("/me", publicHandler.GetProfile)
			user.PUT("/me/profile", publicHandler.UpdateProfile)
			user.PUT("/me/password", publicHandler.ChangePassword)
			user.GET("/cart", publicHandler.GetCart)
			user.POST("/cart/items", publicHandler.AddCartItem)
			user.PUT("/cart/items", publicHandler.UpdateCartItem)
			user.DELETE("/cart/items/:product_id", publicHandler.DeleteCartItem)
			user.DELETE("/cart", publicHandler.ClearCart)
			user.POST("/orders", RateLimitMiddleware(redisClient, checkoutRule, KeyByIP), publicHandler.Checkout)
			user.GET("/orders", publicHandler.ListOrders)
			user.GET("/orders/:id", publicHandler.GetOrder)
			user.POST("/orders/:id/cancel", publicHandler.CancelOrder)
			user.GET("/warranties", publicHandler.ListMyWarranties)
			user.GET("/warranties/:id", publicHandler.GetMyWarranty)
			user.POST("/warranties/:id/claims", publicHandler.FileWarrantyClaim)
		}

		// 管理员接口
		admin := apiV1.Group("/admin")
		admin.Use(AdminJWTAuthMiddleware(cfg.JWT.SecretKey, c.UserRepo))
		{
			// 仪表盘
			admin.GET("/dashboard", adminHandler.GetDashboard)

			// 商品管理
			admin.GET("/products", adminHandler.ListProducts)
			admin.GET("/products/:id", adminHandler.GetProduct)
			admin.POST("/products", adminHandler.CreateProduct)
			admin.PUT("/products/:id", adminHandler.UpdateProduct)
			admin.DELETE("/products/:id", adminHandler.DeleteProduct)

			// 分类管理
			admin.GET("/categories", adminHandler.ListCategories)
			admin.POST("/categories", adminHandler.CreateCategory)
			admin.PUT("/categories/:id", adminHandler.UpdateCategory)
			admin.DELETE("/categories/:id", adminHandler.DeleteCategory)

			// 优惠管理
			admin.GET("/discounts", adminHandler.ListDiscounts)
			admin.GET("/discounts/:id", adminHandler.GetDiscount)
			admin.POST("/discounts", adminHandler.CreateDiscount)
			admin.PUT("/discounts/:id", adminHandler.UpdateDiscount)
			admin.DELETE("/discounts/:id", adminHandler.DeactivateDiscount)

			// 订单管理
			admin.GET("/orders", adminHandler.ListOrders)
			admin.GET("/orders/:id", adminHandler.GetOrder)
			admin.PATCH("/orders/:id/status", adminHandler.UpdateOrderStatus)
			admin.PATCH("/orders/:id/payment-status", adminHandler.UpdateOrderPaymentStatus)
			admin.PATCH("/orders/:id/tracking", adminHandler.UpdateOrderTracking)
			admin.POST("/orders/:id/cancel", adminHandler.CancelOrder)

			// 保修管理
			admin.GET("/warranties", adminHandler.ListWarranties)
			admin.GET("/warranties/expiring", adminHandler.ListExpiringWarranties)
			admin.GET("/warranties/:id", adminHandler.GetWarranty)
			admin.POST("/warranties/:id/void", adminHandler.VoidWarranty)
			admin.POST("/warranties/sweep", adminHandler.RunWarrantySweep)

			// 库存档案管理
			admin.GET("/inventory", adminHandler.ListInventoryItems)
			admin.GET("/inventory/:id", adminHandler.GetInventoryItem)
			admin.GET("/inventory/:id/warranty-summary", adminHandler.GetInventoryWarrantySummary)
			admin.POST("/inventory", adminHandler.CreateInventoryItem)
			admin.PUT("/inventory/:id", adminHandler.UpdateInventoryItem)
			admin.DELETE("/inventory/:id", adminHandler.DeleteInventoryItem)

			// 用户管理
			admin.GET("/users", adminHandler.ListUsers)
			admin.GET("/users/:id", adminHandler.GetUser)
		}
	}

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	return r
}
