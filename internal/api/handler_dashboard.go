package api

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetOccupancy handles GET /dashboard/occupancy.
func (h *Handler) GetOccupancy(c *gin.Context) {
	rows, err := h.store.DormOccupancy(c.Request.Context())
	if err != nil {
		log.Printf("Error aggregating occupancy: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to aggregate occupancy"})
		return
	}
	c.JSON(http.StatusOK, rows)
}

// GetRevenue handles GET /dashboard/revenue.
func (h *Handler) GetRevenue(c *gin.Context) {
	rows, err := h.store.DormRevenue(c.Request.Context())
	if err != nil {
		log.Printf("Error aggregating revenue: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to aggregate revenue"})
		return
	}
	c.JSON(http.StatusOK, rows)
}
