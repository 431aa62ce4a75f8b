package api

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"dormitory-backend/internal/label"
	"dormitory-backend/internal/store"
)

// floorAllocationEntry is one stored (dorm, floor, count) row.
type floorAllocationEntry struct {
	DormID      int64 `json:"dorm_id"`
	FloorNumber int   `json:"floor_number"`
	RoomCount   int   `json:"room_count"`
}

// GetAllRooms handles GET /dorm/getAllRoom: the flat global listing of
// floor allocations, ordered by dorm then floor.
func (h *Handler) GetAllRooms(c *gin.Context) {
	rows, err := h.store.ListFloorAllocations(c.Request.Context())
	if err != nil {
		log.Printf("Error listing floor allocations: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve rooms"})
		return
	}

	entries := make([]floorAllocationEntry, 0, len(rows))
	for _, r := range rows {
		entries = append(entries, floorAllocationEntry{
			DormID:      r.DormID,
			FloorNumber: r.FloorNumber,
			RoomCount:   r.RoomCount,
		})
	}
	c.JSON(http.StatusOK, entries)
}

// floorRoomsEntry lists the synthesized room labels of one floor.
type floorRoomsEntry struct {
	FloorNumber int      `json:"floor_number"`
	Rooms       []string `json:"rooms"`
}

// GetRoomsByDormID handles GET /dorm/getAllRoom/:dormId. Room labels
// are derived from the stored counts; a zero-count floor shows up with
// an empty rooms array.
func (h *Handler) GetRoomsByDormID(c *gin.Context) {
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
		log.Printf("Error fetching rooms for dorm %d: %v", dormID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve rooms"})
		return
	}

	entries := make([]floorRoomsEntry, 0, len(detail.RoomsPerFloor))
	for i, count := range detail.RoomsPerFloor {
		floor := i + 1
		entries = append(entries, floorRoomsEntry{
			FloorNumber: floor,
			Rooms:       label.Floor(floor, count),
		})
	}
	c.JSON(http.StatusOK, entries)
}
