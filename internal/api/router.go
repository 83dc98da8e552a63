package api

import (
	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/d60-Lab/homecook/config"
	"github.com/d60-Lab/homecook/internal/api/handler"
	"github.com/d60-Lab/homecook/internal/api/middleware"
	"github.com/d60-Lab/homecook/internal/model"
)

// NewRouter 组装路由。webhook 最先注册且不套业务中间件：
// 它要原始请求体，也不吃统一的 JSON 绑定错误处理。
func NewRouter(cfg *config.Config, h *handler.Handler) *gin.Engine {
	gin.SetMode(cfg.Server.Mode)
	RegisterValidations()
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestID())
	if cfg.Sentry.DSN != "" {
		r.Use(sentrygin.New(sentrygin.Options{Repanic: true}))
	}
	if cfg.Tracing.Endpoint != "" {
		r.Use(otelgin.Middleware("homecook"))
	}

	// Stripe 回调：保持最前注册，原始字节直达 handler
	r.POST("/api/payments/webhook", h.StripeWebhook)

	r.Use(gzip.Gzip(gzip.DefaultCompression))
	r.Static("/uploads", cfg.Server.UploadDir)
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	auth := middleware.Auth(cfg.JWT.Secret)

	api := r.Group("/api")
	api.Use(middleware.RateLimit(cfg.RateLimit.RPS, cfg.RateLimit.Burst))
	{
		users := api.Group("/users")
		{
			users.POST("/register", h.Register)
			users.POST("/login", h.Login)
			users.GET("", auth, h.ListUsers)
			users.GET("/homecooks", auth, h.ListHomecooks)
		}

		dishes := api.Group("/dishes")
		{
			dishes.POST("", auth, middleware.RequireRoles(model.RoleHomecook), h.CreateDish)
			dishes.GET("", auth, h.ListDishes)
			dishes.GET("/:id", h.GetDish)
			dishes.PUT("/:id", auth, middleware.RequireRoles(model.RoleHomecook), h.UpdateDish)
			dishes.DELETE("/:id", auth, middleware.RequireRoles(model.RoleHomecook), h.DeleteDish)
		}

		address := api.Group("/customer/address", auth)
		{
			address.POST("", h.SaveAddress)
			address.PUT("", h.SaveAddress)
			address.GET("", h.GetAddress)
		}

		orders := api.Group("/orders", auth)
		{
			orders.POST("", middleware.RequireRoles(model.RoleCustomer), h.PlaceOrder)
			orders.GET("/customer", middleware.RequireRoles(model.RoleCustomer), h.CustomerOrders)
			orders.GET("/incoming", middleware.RequireRoles(model.RoleHomecook), h.IncomingOrders)
			orders.PUT("/:orderId/status", middleware.RequireRoles(model.RoleHomecook), h.UpdateOrderStatus)
		}

		payments := api.Group("/payments", auth)
		{
			payments.POST("/create-checkout-session", middleware.RequireRoles(model.RoleCustomer), h.CreateCheckoutSession)
			payments.GET("/receipt/:orderId", middleware.RequireRoles(model.RoleCustomer), h.Receipt)
		}

		wishlist := api.Group("/wishlist", auth)
		{
			wishlist.POST("", middleware.RequireRoles(model.RoleCustomer), h.AddToWishlist)
			wishlist.DELETE("", middleware.RequireRoles(model.RoleCustomer), h.RemoveFromWishlist)
			wishlist.GET("/:customerId", h.Wishlist)
		}

		messages := api.Group("/messages", auth)
		{
			messages.POST("", h.SendMessage)
			messages.GET("/customers", h.ChattedCustomers)
			messages.GET("/:otherUserId", h.Conversation)
		}

		api.GET("/events", auth, h.Events)
	}

	return r
}
