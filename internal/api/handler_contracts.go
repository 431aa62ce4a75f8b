package api

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"dormitory-backend/internal/model"
	"dormitory-backend/internal/store"
)

type createContractRequest struct {
	DormID      int64      `json:"dorm_id" binding:"required"`
	RoomLabel   string     `json:"room_label" binding:"required"`
	TenantName  string     `json:"tenant_name" binding:"required"`
	TenantPhone string     `json:"tenant_phone"`
	MonthlyRent float64    `json:"monthly_rent" binding:"required"`
	Deposit     float64    `json:"deposit"`
	StartDate   time.Time  `json:"start_date" binding:"required"`
	EndDate     *time.Time `json:"end_date"`
}

// CreateContract handles POST /contract/createContract.
func (h *Handler) CreateContract(c *gin.Context) {
	var req createContractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	contractID, err := h.store.CreateContract(c.Request.Context(), store.ContractInput{
		DormID:      req.DormID,
		RoomLabel:   req.RoomLabel,
		TenantName:  req.TenantName,
		TenantPhone: req.TenantPhone,
		MonthlyRent: req.MonthlyRent,
		Deposit:     req.Deposit,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
	})
	if err != nil {
		switch {
		case errors.Is(err, store.ErrDormNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Dormitory not found"})
		case errors.Is(err, store.ErrRoomUnknown):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, store.ErrRoomOccupied):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			log.Printf("Error creating contract: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create contract"})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":     "Contract created successfully",
		"contract_id": contractID,
	})
}

// contractResponse is the API representation of a contract.
type contractResponse struct {
	ContractID  int64      `json:"contract_id"`
	DormID      int64      `json:"dorm_id"`
	RoomLabel   string     `json:"room_label"`
	TenantName  string     `json:"tenant_name"`
	TenantPhone string     `json:"tenant_phone"`
	MonthlyRent float64    `json:"monthly_rent"`
	Deposit     float64    `json:"deposit"`
	StartDate   time.Time  `json:"start_date"`
	EndDate     *time.Time `json:"end_date"`
	Status      string     `json:"status"`
	MoveOutAt   *time.Time `json:"move_out_at"`
}

func toContractResponse(contract model.Contract) contractResponse {
	return contractResponse{
		ContractID:  contract.ID,
		DormID:      contract.DormID,
		RoomLabel:   contract.RoomLabel,
		TenantName:  contract.TenantName,
		TenantPhone: contract.TenantPhone,
		MonthlyRent: contract.MonthlyRent,
		Deposit:     contract.Deposit,
		StartDate:   contract.StartDate,
		EndDate:     contract.EndDate,
		Status:      contract.Status,
		MoveOutAt:   contract.MoveOutAt,
	}
}

// GetContracts handles GET /contract/getContract, optionally filtered
// with ?dorm_id=N.
func (h *Handler) GetContracts(c *gin.Context) {
	var dormID *int64
	if raw := c.Query("dorm_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid dorm ID"})
			return
		}
		dormID = &id
	}

	contracts, err := h.store.ListContracts(c.Request.Context(), dormID)
	if err != nil {
		log.Printf("Error listing contracts: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve contracts"})
		return
	}

	entries := make([]contractResponse, 0, len(contracts))
	for _, contract := range contracts {
		entries = append(entries, toContractResponse(contract))
	}
	c.JSON(http.StatusOK, entries)
}

// GetContractByID handles GET /contract/getContract/:contractId.
func (h *Handler) GetContractByID(c *gin.Context) {
	contractID, err := strconv.ParseInt(c.Param("contractId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid contract ID"})
		return
	}

	contract, err := h.store.GetContract(c.Request.Context(), contractID)
	if err != nil {
		if errors.Is(err, store.ErrContractNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Contract not found"})
			return
		}
		log.Printf("Error fetching contract %d: %v", contractID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve contract"})
		return
	}

	c.JSON(http.StatusOK, toContractResponse(contract))
}

type moveOutRequest struct {
	MoveOutAt *time.Time `json:"move_out_at"`
}

// MoveOut handles PUT /contract/moveOut/:contractId. Ending a contract
// frees its room, so dorm subscribers get a push notification.
func (h *Handler) MoveOut(c *gin.Context) {
	contractID, err := strconv.ParseInt(c.Param("contractId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid contract ID"})
		return
	}

	var req moveOutRequest
	if c.Request.Body != nil && c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
			return
		}
	}

	moveOutAt := time.Now().UTC()
	if req.MoveOutAt != nil {
		moveOutAt = *req.MoveOutAt
	}

	contract, err := h.store.MoveOut(c.Request.Context(), contractID, moveOutAt)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrContractNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Contract not found"})
		case errors.Is(err, store.ErrContractEnded):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			log.Printf("Error ending contract %d: %v", contractID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to end contract"})
		}
		return
	}

	if h.pool != nil {
		h.pool.Dispatch(contract.ID)
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Move-out recorded successfully",
		"contract": toContractResponse(contract),
	})
}
