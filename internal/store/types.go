package store

import (
	"errors"
	"time"

	"dormitory-backend/internal/model"
)

// Sentinel errors the API layer maps onto HTTP status codes. Anything
// else coming out of the store is a backend failure and stays
// server-side.
var (
	ErrDormNotFound       = errors.New("dorm not found")
	ErrContractNotFound   = errors.New("contract not found")
	ErrFloorCountMismatch = errors.New("rooms_per_floor length does not match total_floors")
	ErrNegativeRoomCount  = errors.New("room count must not be negative")
	ErrRoomUnknown        = errors.New("room does not exist in the dorm layout")
	ErrRoomOccupied       = errors.New("room already has an active contract")
	ErrContractEnded      = errors.New("contract is already ended")
)

// DormInput carries a dorm's name and full floor layout. Index 0 of
// RoomsPerFloor is floor 1.
type DormInput struct {
	Name          string
	TotalFloors   int
	RoomsPerFloor []int
}

// DormDetail is a dorm together with its ordered per-floor room counts.
type DormDetail struct {
	Dorm          model.Dorm
	RoomsPerFloor []int
}

// ContractInput carries everything needed to sign a tenant into a room.
type ContractInput struct {
	DormID      int64
	RoomLabel   string
	TenantName  string
	TenantPhone string
	MonthlyRent float64
	Deposit     float64
	StartDate   time.Time
	EndDate     *time.Time
}

// OccupancyRow is one dorm's occupancy summary.
type OccupancyRow struct {
	DormID        int64   `json:"dorm_id"`
	DormName      string  `json:"dorm_name"`
	TotalRooms    int64   `json:"total_rooms"`
	OccupiedRooms int64   `json:"occupied_rooms"`
	OccupancyRate float64 `json:"occupancy_rate"`
}

// RevenueRow is one dorm's revenue summary over its active contracts.
type RevenueRow struct {
	DormID          int64   `json:"dorm_id"`
	DormName        string  `json:"dorm_name"`
	ActiveContracts int64   `json:"active_contracts"`
	MonthlyRevenue  float64 `json:"monthly_revenue"`
}
