package router

import (
	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/bistro-orders/controllers"
	"github.com/yeremiapane/bistro-orders/middlewares"
	"github.com/yeremiapane/bistro-orders/store"
	"gorm.io/gorm"
)

func SetupRouter(db *gorm.DB) *gin.Engine {
	r := gin.Default()

	// Middleware must be attached before any route is registered; Gin
	// snapshots the handler chain per route, so anything added later
	// never runs. 50 requests per second per IP.
	rateLimiter := middlewares.NewRateLimiter(50, 1)
	r.Use(rateLimiter.RateLimit())

	r.Use(middlewares.RequestID())
	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares())
	r.Use(middlewares.LoggerMiddleware())

	s := store.New(db)
	userCtrl := controllers.NewUserController(s)
	menuCtrl := controllers.NewMenuController(s)
	orderCtrl := controllers.NewOrderController(s)
	adminCtrl := controllers.NewAdminController(s)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	api := r.Group("/api")

	// ----------------------------------------------------------------
	//                      PUBLIC ROUTES
	// ----------------------------------------------------------------

	// Rate limiter for login/register
	public := api.Group("/")
	public.Use(middlewares.NewStrictRateLimiter())
	{
		public.POST("/register", userCtrl.Register)
		public.POST("/login", userCtrl.Login)
	}

	// Menu browsing needs no login
	api.GET("/menu", menuCtrl.GetAllMenuItems)
	api.GET("/menu/:menu_id", menuCtrl.GetMenuItemByID)

	// ----------------------------------------------------------------
	//                      AUTHENTICATED ROUTES
	// ----------------------------------------------------------------
	auth := api.Group("/")
	auth.Use(middlewares.AuthMiddleware())
	{
		auth.POST("/logout", userCtrl.Logout)
		auth.GET("/profile", userCtrl.GetProfile)

		auth.POST("/orders", orderCtrl.CreateOrder)
		auth.GET("/orders", orderCtrl.GetOrders)
		auth.GET("/orders/:order_id", orderCtrl.GetOrderByID)
	}

	// ----------------------------------------------------------------
	//                      ADMIN ROUTES
	// ----------------------------------------------------------------
	admin := api.Group("/")
	admin.Use(middlewares.AuthMiddleware(), middlewares.AdminOnly())
	{
		admin.POST("/menu", menuCtrl.CreateMenuItem)
		admin.PUT("/menu/:menu_id", menuCtrl.UpdateMenuItem)
		admin.DELETE("/menu/:menu_id", menuCtrl.DeleteMenuItem)

		admin.PATCH("/orders/:order_id/status", orderCtrl.UpdateOrderStatus)

		admin.GET("/admin/stats", adminCtrl.GetDashboardStats)
	}

	return r
}
