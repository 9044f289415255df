package router

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/smartcanteen/canteen-app/controllers"
	"github.com/smartcanteen/canteen-app/middlewares"
	"github.com/smartcanteen/canteen-app/models"
	"github.com/smartcanteen/canteen-app/services"
)

// SetupRouter wires every endpoint. The payment processor is passed in
// so tests can stub the gateway.
func SetupRouter(db *gorm.DB, payments services.PaymentProcessor) *gin.Engine {
	r := gin.Default()

	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddleware())
	r.Use(middlewares.LoggerMiddleware())

	userCtrl := controllers.NewUserController(db)
	menuCtrl := controllers.NewMenuController(db)
	cartCtrl := controllers.NewCartController(db)
	orderCtrl := controllers.NewOrderController(db, payments)
	analyticsCtrl := controllers.NewAnalyticsController(db)

	// ----------------------------------------------------------------
	//                      PUBLIC ROUTES
	// ----------------------------------------------------------------
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	public := r.Group("/")
	public.Use(middlewares.NewStrictRateLimiter())
	{
		public.POST("/login", userCtrl.Login)
	}

	// Menu browsing needs no login
	r.GET("/menu", menuCtrl.GetAvailableMenu)

	// ----------------------------------------------------------------
	//                      AUTHENTICATED ROUTES
	// ----------------------------------------------------------------
	auth := r.Group("/")
	auth.Use(middlewares.AuthMiddleware())
	{
		auth.POST("/logout", userCtrl.Logout)
		auth.GET("/profile", userCtrl.GetProfile)

		auth.GET("/cart", cartCtrl.GetCart)
		auth.POST("/cart", cartCtrl.AddCartItem)
		auth.DELETE("/cart/:cart_item_id", cartCtrl.RemoveCartItem)

		auth.POST("/orders/checkout", orderCtrl.Checkout)
		auth.GET("/orders", orderCtrl.GetMyOrders)
		auth.GET("/orders/:order_id", orderCtrl.GetOrderByID)
	}

	// ----------------------------------------------------------------
	//                      STAFF ROUTES
	// ----------------------------------------------------------------
	staff := r.Group("/staff")
	staff.Use(middlewares.AuthMiddleware(), middlewares.RequireRole(models.RoleStaff))
	{
		staff.GET("/orders", orderCtrl.GetStaffBoard)
		staff.PATCH("/orders/:order_id/status", orderCtrl.UpdateOrderStatus)
		staff.GET("/ws", controllers.OrderEventsHandler)
		staff.POST("/menu/reset-daily", menuCtrl.ResetDailyItems)
	}

	// ----------------------------------------------------------------
	//                      ADMIN ROUTES
	// ----------------------------------------------------------------
	admin := r.Group("/admin")
	admin.Use(middlewares.AuthMiddleware(), middlewares.RequireRole(models.RoleAdmin))
	{
		admin.POST("/users", userCtrl.CreateUser)
		admin.GET("/users", userCtrl.GetAllUsers)
		admin.PATCH("/users/:username/reset-password", userCtrl.ResetPassword)
		admin.DELETE("/users/:username", userCtrl.DeleteUser)

		admin.GET("/menu", menuCtrl.GetAllFoodItems)
		admin.POST("/menu", menuCtrl.CreateFoodItem)
		admin.PATCH("/menu/:item_id", menuCtrl.UpdateFoodItem)
		admin.DELETE("/menu/:item_id", menuCtrl.DeleteFoodItem)

		admin.GET("/analytics", analyticsCtrl.GetAnalytics)
		admin.GET("/orders/export", analyticsCtrl.ExportOrdersCSV)
	}

	return r
}
