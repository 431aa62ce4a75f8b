package api

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"dormitory-backend/internal/store"
)

type createDormRequest struct {
	DormName      string `json:"dorm_name" binding:"required"`
	TotalFloors   int    `json:"total_floors" binding:"required"`
	RoomsPerFloor []int  `json:"rooms_per_floor" binding:"required"`
}

// CreateDormitory handles POST /dorm/createDormitory. The dorm row and
// all its floor rows are written atomically; on failure nothing is
// visible afterwards.
func (h *Handler) CreateDormitory(c *gin.Context) {
	var req createDormRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	dormID, err := h.store.CreateDorm(c.Request.Context(), store.DormInput{
		Name:          req.DormName,
		TotalFloors:   req.TotalFloors,
		RoomsPerFloor: req.RoomsPerFloor,
	})
	if err != nil {
		if errors.Is(err, store.ErrFloorCountMismatch) || errors.Is(err, store.ErrNegativeRoomCount) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		log.Printf("Error creating dormitory: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create dormitory"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Dormitory created successfully",
		"dorm_id": dormID,
	})
}

// dormListEntry is one row of the dorm listing.
type dormListEntry struct {
	DormID   int64  `json:"dorm_id"`
	DormName string `json:"dorm_name"`
}

// GetDorms handles GET /dorm/getDorm.
func (h *Handler) GetDorms(c *gin.Context) {
	dorms, err := h.store.ListDorms(c.Request.Context())
	if err != nil {
		log.Printf("Error listing dorms: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve dorms"})
		return
	}

	entries := make([]dormListEntry, 0, len(dorms))
	for _, d := range dorms {
		entries = append(entries, dormListEntry{DormID: d.ID, DormName: d.Name})
	}
	c.JSON(http.StatusOK, entries)
}

// GetDormByID handles GET /dorm/getDorm/:dormId.
func (h *Handler) GetDormByID(c *gin.Context) {
	dormID, err := strconv.ParseInt(c.Param("dormId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid dorm ID"})
		return
	}

	detail, err := h.store.GetDorm(c.Request.Context(), dormID)
	if err != nil {
		if errors.Is(err, store.ErrDormNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Dormitory not found"})
			return
		}
		log.Printf("Error fetching dorm %d: %v", dormID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve dormitory"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"dorm_id":         detail.Dorm.ID,
		"dorm_name":       detail.Dorm.Name,
		"total_floors":    detail.Dorm.TotalFloors,
		"rooms_per_floor": detail.RoomsPerFloor,
	})
}

type updateDormRequest struct {
	DormName    string `json:"dorm_name" binding:"required"`
	FloorNumber int    `json:"floor_number" binding:"required"`
	RoomCount   []int  `json:"room_count" binding:"required"`
}

// UpdateDorm handles PUT /dorm/updateDorm/:dormId. The name update,
// the delete of the old layout and the re-insert of the new one run in
// a single transaction; a length mismatch is rejected before any
// write.
func (h *Handler) UpdateDorm(c *gin.Context) {
	dormID, err := strconv.ParseInt(c.Param("dormId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid dorm ID"})
		return
	}

	var req updateDormRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	err = h.store.UpdateDorm(c.Request.Context(), dormID, store.DormInput{
		Name:          req.DormName,
		TotalFloors:   req.FloorNumber,
		RoomsPerFloor: req.RoomCount,
	})
	if err != nil {
		switch {
		case errors.Is(err, store.ErrFloorCountMismatch), errors.Is(err, store.ErrNegativeRoomCount):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, store.ErrDormNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Dormitory not found"})
		default:
			log.Printf("Error updating dorm %d: %v", dormID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update dormitory"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Dormitory updated successfully"})
}
