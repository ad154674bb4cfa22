package controllers

import (
	"net/http"

	"carrental/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func GetVehicles(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := db.Preload("Location")

		if category := c.Query("category"); category != "" {
			query = query.Where("category = ?", category)
		}
		if locationID := c.Query("location_id"); locationID != "" {
			query = query.Where("location_id = ?", locationID)
		}
		if c.Query("available") == "true" {
			query = query.Where("status = ?", "available")
		}

		var vehicles []models.Vehicle
		if err := query.Order("price_per_day asc").Find(&vehicles).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch vehicles"})
			return
		}

		c.JSON(http.StatusOK, vehicles)
	}
}

func GetVehicleDetails(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")

		var vehicle models.Vehicle
		if err := db.Preload("Location").First(&vehicle, id).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Vehicle not found"})
			return
		}

		c.JSON(http.StatusOK, vehicle)
	}
}

func GetLocations(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var locations []models.Location
		if err := db.Order("name asc").Find(&locations).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch locations"})
			return
		}

		c.JSON(http.StatusOK, locations)
	}
}

// Admin fleet management

func AdminAddVehicle(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var vehicle models.Vehicle
		if err := c.ShouldBindJSON(&vehicle); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid vehicle data"})
			return
		}

		if vehicle.Make == "" || vehicle.Model == "" || vehicle.PricePerDay <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Make, model and a positive daily price are required"})
			return
		}

		if vehicle.Status == "" {
			vehicle.Status = "available"
		}

		if err := db.Create(&vehicle).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add vehicle"})
			return
		}

		c.JSON(http.StatusCreated, gin.H{"message": "Vehicle added", "vehicle": vehicle})
	}
}

func AdminUpdateVehicleStatus(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")

		var req struct {
			Status string `json:"status"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status data"})
			return
		}

		if req.Status != "available" && req.Status != "rented" && req.Status != "maintenance" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Status must be available, rented or maintenance"})
			return
		}

		var vehicle models.Vehicle
		if err := db.First(&vehicle, id).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Vehicle not found"})
			return
		}

		vehicle.Status = req.Status
		if err := db.Save(&vehicle).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update vehicle"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Vehicle updated", "vehicle": vehicle})
	}
}

func AdminDeleteVehicle(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")

		if err := db.Delete(&models.Vehicle{}, id).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete vehicle"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Vehicle deleted"})
	}
}
