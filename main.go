package main

import (
	"fmt"
	"log"

	"carrental/analytics"
	"carrental/config"
	"carrental/controllers"
	"carrental/gateway/paypal"
	"carrental/models"
	"carrental/repository"
	"carrental/routes"
	"carrental/utils"

	"gorm.io/gorm"
)

func main() {
	cfg := config.LoadConfig()

	db, err := config.ConnectDatabase(cfg)
	if err != nil {
		log.Fatalf("database connection failed: %v", err)
	}

	if err := migrate(db); err != nil {
		log.Fatalf("migration failed: %v", err)
	}

	utils.SeedDummyFleet(db)

	gateway, err := paypal.NewClient(cfg.PayPal)
	if err != nil {
		log.Fatalf("paypal client init failed: %v", err)
	}

	paymentRepo := repository.NewPaymentRepository(db)
	bookingRepo := repository.NewBookingRepository(db)

	paypalCtrl := controllers.NewPayPalController(gateway, paymentRepo, bookingRepo, cfg.BaseURL, cfg.FrontendURL)

	// Development serves the fixed dashboard dataset; production aggregates
	// live bookings.
	var provider analytics.Provider = analytics.NewGormProvider(db)
	if cfg.Environment == "development" {
		provider = analytics.SampleProvider{}
	}
	analyticsCtrl := &controllers.AnalyticsController{Provider: provider}

	r := routes.SetupRouter(cfg, db, paypalCtrl, analyticsCtrl)

	addr := fmt.Sprintf(":%s", cfg.Port)
	log.Printf("server running on %s", addr)
	if err := r.Run(addr); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}

func migrate(db *gorm.DB) error {
	return db.AutoMigrate(&models.User{}, &models.Location{}, &models.Vehicle{},
		&models.Booking{}, &models.BookingStatusEvent{}, &models.Payment{})
}
