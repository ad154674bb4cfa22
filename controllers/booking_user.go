package controllers

import (
	"net/http"
	"time"

	"carrental/middlewares"
	"carrental/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

func CreateBooking(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			VehicleID         uint      `json:"vehicle_id"`
			PickupLocationID  uint      `json:"pickup_location_id"`
			DropoffLocationID uint      `json:"dropoff_location_id"`
			StartDate         time.Time `json:"start_date"`
			EndDate           time.Time `json:"end_date"`
		}

		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid booking data"})
			return
		}

		userIDRaw, exists := c.Get(middlewares.ContextUserID)
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		userID := userIDRaw.(uint)

		if !req.EndDate.After(req.StartDate) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "End date must be after start date"})
			return
		}

		var vehicle models.Vehicle
		if err := db.First(&vehicle, req.VehicleID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Vehicle not found"})
			return
		}

		if vehicle.Status != "available" {
			c.JSON(http.StatusConflict, gin.H{"error": "Vehicle is not available"})
			return
		}

		days := int(req.EndDate.Sub(req.StartDate).Hours() / 24)
		if days < 1 {
			days = 1
		}
		totalAmount := float64(days) * vehicle.PricePerDay

		tx := db.Begin()
		defer func() {
			if r := recover(); r != nil {
				tx.Rollback()
			}
		}()

		booking := models.Booking{
			UserID:            userID,
			VehicleID:         vehicle.ID,
			PickupLocationID:  req.PickupLocationID,
			DropoffLocationID: req.DropoffLocationID,
			Reference:         uuid.NewString(),
			StartDate:         req.StartDate,
			EndDate:           req.EndDate,
			Days:              days,
			TotalAmount:       totalAmount,
			Status:            "pending",
			PaymentStatus:     "unpaid",
		}

		if err := tx.Create(&booking).Error; err != nil {
			tx.Rollback()
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create booking"})
			return
		}

		event := models.BookingStatusEvent{
			BookingID: booking.ID,
			Status:    "pending",
			Note:      "booking created",
		}
		if err := tx.Create(&event).Error; err != nil {
			tx.Rollback()
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record booking status"})
			return
		}

		vehicle.Status = "rented"
		if err := tx.Save(&vehicle).Error; err != nil {
			tx.Rollback()
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update vehicle status"})
			return
		}

		tx.Commit()

		c.JSON(http.StatusCreated, gin.H{
			"message":  "Booking created successfully",
			"booking":  booking,
			"subtotal": totalAmount,
		})
	}
}

func GetBookingDetailsUser(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")

		var booking models.Booking
		if err := db.Preload("Vehicle").Preload("StatusHistory").Preload("Payment").First(&booking, id).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Booking not found"})
			return
		}

		c.JSON(http.StatusOK, booking)
	}
}

func GetUserBookings(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDRaw, exists := c.Get(middlewares.ContextUserID)
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		userID := userIDRaw.(uint)

		var bookings []models.Booking
		if err := db.Preload("Vehicle").Where("user_id = ?", userID).Order("created_at desc").Find(&bookings).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch user bookings"})
			return
		}

		c.JSON(http.StatusOK, bookings)
	}
}

func GetAllBookings(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var bookings []models.Booking
		if err := db.Preload("User").Preload("Vehicle").Order("created_at desc").Find(&bookings).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch bookings"})
			return
		}

		c.JSON(http.StatusOK, bookings)
	}
}
