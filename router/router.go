package router

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/putrawdn/restaurant-mgt/controllers"
	"github.com/putrawdn/restaurant-mgt/middlewares"
)

func SetupRouter(db *gorm.DB, limiter *middlewares.RateLimiter) *gin.Engine {
	r := gin.Default()

	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares())
	r.Use(middlewares.LoggerMiddleware())
	// global middleware must be attached before any route is registered
	r.Use(limiter.RateLimit())

	authCtrl := controllers.NewAuthController(db)
	customerCtrl := controllers.NewCustomerController(db)
	reservationCtrl := controllers.NewReservationController(db)
	orderCtrl := controllers.NewOrderController(db)
	paymentCtrl := controllers.NewPaymentController(db)
	menuCtrl := controllers.NewMenuController(db)
	staffCtrl := controllers.NewStaffController(db)
	adminCtrl := controllers.NewAdminController(db)

	// ----------------------------------------------------------------
	//                      PUBLIC ROUTES
	// ----------------------------------------------------------------
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	public := r.Group("/")
	public.Use(middlewares.NewStrictRateLimiter())
	{
		public.POST("/register", authCtrl.Register)
		public.POST("/login", authCtrl.Login)
	}

	// ----------------------------------------------------------------
	//                      CUSTOMER ROUTES
	// ----------------------------------------------------------------
	customer := r.Group("/customer")
	customer.Use(middlewares.AuthMiddleware(), middlewares.RequireRoles("customer"))
	{
		customer.GET("/dashboard", customerCtrl.Dashboard)
		customer.GET("/menu", customerCtrl.Menu)
		customer.GET("/tables", reservationCtrl.GetTables)
		customer.GET("/reservations", reservationCtrl.GetCustomerReservations)
		customer.POST("/make_reservation", reservationCtrl.MakeReservation)
		customer.POST("/orders", orderCtrl.PlaceOrder)
		customer.GET("/orders/:order_id", orderCtrl.GetOrderByID)
	}

	// ----------------------------------------------------------------
	//                      STAFF ROUTES (staff or admin)
	// ----------------------------------------------------------------
	staff := r.Group("/staff")
	staff.Use(middlewares.AuthMiddleware(), middlewares.RequireRoles("staff", "admin"))
	{
		staff.GET("/dashboard", staffCtrl.Dashboard)
		staff.GET("/reservations", reservationCtrl.GetStaffReservations)
		staff.POST("/update-reservation/:reservation_id", reservationCtrl.UpdateReservationStatus)
		staff.GET("/orders", orderCtrl.GetStaffOrders)
		staff.GET("/orders/:order_id", orderCtrl.GetOrderByID)

		payments := staff.Group("/process-payment")
		payments.Use(middlewares.PaymentRateLimiter(), middlewares.LogPaymentRequest())
		{
			payments.POST("/:order_id", paymentCtrl.ProcessPayment)
		}
	}

	// ----------------------------------------------------------------
	//                      ADMIN ROUTES
	// ----------------------------------------------------------------
	admin := r.Group("/admin")
	admin.Use(middlewares.AuthMiddleware(), middlewares.RequireRoles("admin"))
	{
		admin.GET("/dashboard", adminCtrl.GetDashboardStats)
		admin.GET("/menu", menuCtrl.GetAllMenuItems)
		admin.POST("/menu", menuCtrl.CreateMenuItem)
		admin.PATCH("/menu/:item_id", menuCtrl.UpdateMenuItem)
		admin.GET("/staff", adminCtrl.GetStaffRoster)
		admin.GET("/reports", adminCtrl.GetReports)
		admin.GET("/reports/export-pdf", adminCtrl.ExportPDF)
	}

	// WebSocket endpoint for back-office notifications
	ws := r.Group("/ws")
	ws.Use(middlewares.WebSocketAuthMiddleware())
	{
		ws.GET("", controllers.NotificationsHandler)
	}

	return r
}
