package router

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pianao-store/internal/authz"
	"github.com/pianao-store/internal/cache"
	"github.com/pianao-store/internal/config"
	adminhandlers "github.com/pianao-store/internal/http/handlers/admin"
	publichandlers "github.com/pianao-store/internal/http/handlers/public"
	"github.com/pianao-store/internal/http/response"
	"github.com/pianao-store/internal/logger"
	"github.com/pianao-store/internal/provider"

	"github.com/gin-gonic/gin"
)

const apiPrefix = "/api/v1"

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	r := gin.New()

	// 初始化 Handler（按前台/后台分组）
	publicHandler := publichandlers.New(c)
	adminHandler := adminhandlers.New(c)
	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = "pianao"
	}
	redisClient := cache.Client()
	loginRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:login", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
		BlockSeconds:  cfg.Security.LoginRateLimit.BlockSeconds,
		MessageKey:    "error.login_too_many",
	}
	adminLoginRule := loginRule
	adminLoginRule.Prefix = fmt.Sprintf("%s:rate:admin_login", redisPrefix)
	emailRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:order_email", redisPrefix),
		WindowSeconds: 60,
		MaxRequests:   5,
	}

	// 中间件
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(logger.Z()))
	r.Use(CORSMiddleware(cfg.CORS))

	apiV1 := r.Group(apiPrefix)
	{
		// 公开接口
		apiV1.GET("/config", publicHandler.GetConfig)
		apiV1.GET("/products", publicHandler.GetProducts)
		apiV1.GET("/products/:id", publicHandler.GetProduct)
		apiV1.GET("/notifications", publicHandler.GetNotifications)
		apiV1.POST("/functions/send-order-email", RateLimitMiddleware(redisClient, emailRule, KeyByIP), publicHandler.SendOrderEmail)

		// 游客购物车（X-Guest-Cart-ID）
		guest := apiV1.Group("/guest/cart")
		{
			guest.GET("", publicHandler.GetGuestCart)
			guest.DELETE("", publicHandler.ClearGuestCart)
			guest.POST("/items", publicHandler.AddGuestCartItem)
			guest.PATCH("/items/:product_id", publicHandler.UpdateGuestCartItem)
			guest.DELETE("/items/:product_id", publicHandler.DeleteGuestCartItem)
		}

		// 用户认证接口
		auth := apiV1.Group("/auth")
		{
			auth.POST("/register", RateLimitMiddleware(redisClient, loginRule, KeyByIP), publicHandler.UserRegister)
			auth.POST("/login", RateLimitMiddleware(redisClient, loginRule, KeyByIPAndJSONField("email")), publicHandler.UserLogin)
		}

		// 用户接口（需鉴权）
		user := apiV1.Group("")
		user.Use(UserJWTAuthMiddleware(c.UserAuthService))
		{
			user.GET("/me", publicHandler.GetMe)

			user.GET("/cart", publicHandler.GetCart)
			user.DELETE("/cart", publicHandler.ClearCart)
			user.POST("/cart/items", publicHandler.AddCartItem)
			user.PATCH("/cart/items/:product_id", publicHandler.UpdateCartItem)
			user.DELETE("/cart/items/:product_id", publicHandler.DeleteCartItem)
			user.POST("/cart/reconcile", publicHandler.ReconcileCart)

			user.GET("/checkout", publicHandler.GetCheckout)
			user.POST("/checkout/terms", publicHandler.AcceptCheckoutTerms)
			user.POST("/checkout/address", publicHandler.SubmitCheckoutAddress)
			user.POST("/checkout/back", publicHandler.CheckoutBack)
			user.POST("/checkout/confirm", publicHandler.ConfirmCheckout)

			user.GET("/orders", publicHandler.GetOrders)
			user.GET("/orders/:id", publicHandler.GetOrder)

			user.GET("/profile", publicHandler.GetProfile)
			user.PUT("/profile", publicHandler.UpdateProfileAddress)
			user.PUT("/profile/nickname", publicHandler.UpdateProfileNickname)
			user.GET("/settings", publicHandler.GetSettings)
			user.PATCH("/settings", publicHandler.UpdateSettings)
		}

		// 管理员接口
		admin := apiV1.Group("/admin")
		{
			// 登录接口（无需鉴权）
			admin.POST("/login", RateLimitMiddleware(redisClient, adminLoginRule, KeyByIP), adminHandler.AdminLogin)

			// 需要鉴权的接口
			authorized := admin.Group("")
			authorized.Use(JWTAuthMiddleware(c.AuthService), AdminRBACMiddleware(c.AuthzService))
			{
				authorized.GET("/me", adminHandler.GetAdminMe)

				// 商品管理
				authorized.GET("/products", adminHandler.GetAdminProducts)
				authorized.GET("/products/:id", adminHandler.GetAdminProduct)
				authorized.POST("/products", adminHandler.CreateProduct)
				authorized.PATCH("/products/:id", adminHandler.UpdateProduct)
				authorized.DELETE("/products/:id", adminHandler.DeleteProduct)

				// 通知管理
				authorized.GET("/notifications", adminHandler.GetAdminNotifications)
				authorized.GET("/notifications/:id", adminHandler.GetAdminNotification)
				authorized.POST("/notifications", adminHandler.CreateNotification)
				authorized.PUT("/notifications/:id", adminHandler.UpdateNotification)
				authorized.DELETE("/notifications/:id", adminHandler.DeleteNotification)

				// 订单管理
				authorized.GET("/orders", adminHandler.AdminListOrders)
				authorized.GET("/orders/:id", adminHandler.AdminGetOrder)
				authorized.PATCH("/orders/:id/status", adminHandler.AdminUpdateOrderStatus)
				authorized.POST("/orders/:id/resend-email", adminHandler.AdminResendOrderEmail)

				// 权限管理
				authorized.POST("/authz/policies", adminHandler.GrantAuthzPolicy)
				authorized.GET("/authz/admins/:id/roles", adminHandler.GetAuthzAdminRoles)
				authorized.PUT("/authz/admins/:id/roles", adminHandler.SetAuthzAdminRoles)
				authorized.GET("/authz/permissions/catalog", func(ctx *gin.Context) {
					response.Success(ctx, buildAdminPermissionCatalog(r))
				})
			}
		}
	}

	// 健康检查
	r.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(200, gin.H{"status": "ok", "redis": cache.Enabled()})
	})

	return r
}

type adminPermissionCatalogItem struct {
	Module     string `json:"module"`
	Method     string `json:"method"`
	Object     string `json:"object"`
	Permission string `json:"permission"`
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
		if !strings.HasPrefix(item.Path, apiPrefix+"/admin/") || item.Path == apiPrefix+"/admin/login" {
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

// deriveAdminPermissionModule /admin/orders/:id -> orders
func deriveAdminPermissionModule(object string) string {
	segments := strings.Split(strings.Trim(strings.TrimSpace(object), "/"), "/")
	if len(segments) == 0 || segments[0] == "" {
		return "system"
	}
	if segments[0] != "admin" || len(segments) == 1 {
		return segments[0]
	}
	return segments[1]
}
