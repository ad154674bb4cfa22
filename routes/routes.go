package routes

import (
	"carrental/config"
	"carrental/controllers"
	"carrental/middlewares"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"
)

func SetupRouter(cfg *config.Config, db *gorm.DB, paypalCtrl *controllers.PayPalController, analyticsCtrl *controllers.AnalyticsController) *gin.Engine {
	r := gin.Default()

	// Public API Routes

	api := r.Group("/api")
	{
		api.POST("/signup", controllers.SignupHandler(db, cfg.JWTSecret))
		api.POST("/login", controllers.LoginHandler(db, cfg.JWTSecret))

		api.GET("/vehicles", controllers.GetVehicles(db))
		api.GET("/vehicles/:id", controllers.GetVehicleDetails(db))
		api.GET("/locations", controllers.GetLocations(db))

		// PayPal redirect targets; hit by the processor, not by our frontend
		api.GET("/paypal/success", paypalCtrl.PaymentSuccess)
		api.GET("/paypal/cancel", paypalCtrl.PaymentCancel)
	}

	// Protected User Routes (Require Login)

	user := r.Group("/api").Use(middlewares.AuthMiddleware(cfg.JWTSecret))
	{
		user.POST("/bookings", controllers.CreateBooking(db))
		user.GET("/bookings/:id", controllers.GetBookingDetailsUser(db))
		user.GET("/mybookings", controllers.GetUserBookings(db))

		user.POST("/paypal/create", paypalCtrl.CreatePayment)
		user.POST("/paypal/execute", paypalCtrl.ExecutePayment)
		user.GET("/paypal/details/:paymentId", paypalCtrl.GetPaymentDetails)
	}

	// Admin Routes (Require Admin Access)

	admin := r.Group("/api/admin")
	admin.Use(middlewares.AdminMiddleware(cfg.JWTSecret))
	{
		admin.GET("/bookings", controllers.GetAllBookings(db))
		admin.POST("/vehicles", controllers.AdminAddVehicle(db))
		admin.PUT("/vehicles/:id/status", controllers.AdminUpdateVehicleStatus(db))
		admin.DELETE("/vehicles/:id", controllers.AdminDeleteVehicle(db))

		admin.GET("/analytics/fleet", analyticsCtrl.GetFleetAnalytics)
		admin.GET("/analytics/locations", analyticsCtrl.GetLocationAnalytics)
		admin.GET("/analytics/revenue", analyticsCtrl.GetRevenueAnalytics)
	}

	if cfg.EnableMetrics {
		r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}

	// Fallback for Unknown Routes

	r.NoRoute(func(c *gin.Context) {
		c.JSON(404, gin.H{"error": "page not found"})
	})

	return r
}
