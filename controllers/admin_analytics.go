package controllers

import (
	"net/http"

	"carrental/analytics"

	"github.com/gin-gonic/gin"
)

type AnalyticsController struct {
	Provider analytics.Provider
}

func (ac *AnalyticsController) GetFleetAnalytics(c *gin.Context) {
	records, err := ac.Provider.FleetRecords(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to load fleet data"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"records": records,
			"summary": analytics.SummarizeFleet(records),
		},
	})
}

func (ac *AnalyticsController) GetLocationAnalytics(c *gin.Context) {
	records, err := ac.Provider.LocationRecords(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to load location data"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"records": records,
			"summary": analytics.SummarizeLocations(records),
		},
	})
}

func (ac *AnalyticsController) GetRevenueAnalytics(c *gin.Context) {
	period := c.DefaultQuery("period", "month")
	if period != "day" && period != "week" && period != "month" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "period must be day, week or month"})
		return
	}

	buckets, err := ac.Provider.RevenueSeries(c.Request.Context(), period)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to load revenue data"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"buckets": buckets,
			"summary": analytics.SummarizeRevenue(period, buckets),
		},
	})
}
