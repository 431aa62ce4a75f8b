package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"dormitory-backend/internal/label"
	"dormitory-backend/internal/model"
)

// Store defines the interface for all database operations.
type Store interface {
	DB() *gorm.DB

	CreateDorm(ctx context.Context, in DormInput) (int64, error)
	ListDorms(ctx context.Context) ([]model.Dorm, error)
	ListFloorAllocations(ctx context.Context) ([]model.FloorAllocation, error)
	GetDorm(ctx context.Context, dormID int64) (DormDetail, error)
	UpdateDorm(ctx context.Context, dormID int64, in DormInput) error

	CreateContract(ctx context.Context, in ContractInput) (int64, error)
	ListContracts(ctx context.Context, dormID *int64) ([]model.Contract, error)
	GetContract(ctx context.Context, contractID int64) (model.Contract, error)
	MoveOut(ctx context.Context, contractID int64, moveOutAt time.Time) (model.Contract, error)
	ExpireContracts(ctx context.Context, now time.Time) ([]int64, error)

	DormOccupancy(ctx context.Context) ([]OccupancyRow, error)
	DormRevenue(ctx context.Context) ([]RevenueRow, error)
}

// gormStore implements the Store interface using GORM.
type gormStore struct {
	db *gorm.DB
}

// NewGormStore creates a new GORM-backed store.
func NewGormStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

// DB exposes the underlying connection for components that need it
// directly (notification worker, tests).
func (s *gormStore) DB() *gorm.DB {
	return s.db
}

// validateLayout enforces the uniform layout rules shared by create
// and update: the room-count array must cover exactly the declared
// floors, and counts must not be negative. Zero counts are allowed and
// are persisted like any other floor.
func validateLayout(in DormInput) error {
	if len(in.RoomsPerFloor) != in.TotalFloors {
		return ErrFloorCountMismatch
	}
	for _, count := range in.RoomsPerFloor {
		if count < 0 {
			return ErrNegativeRoomCount
		}
	}
	return nil
}

// allocations builds one FloorAllocation per declared floor, floor
// numbers 1..len(in.RoomsPerFloor).
func allocations(dormID int64, in DormInput) []model.FloorAllocation {
	rows := make([]model.FloorAllocation, 0, len(in.RoomsPerFloor))
	for i, count := range in.RoomsPerFloor {
		rows = append(rows, model.FloorAllocation{
			DormID:      dormID,
			FloorNumber: i + 1,
			RoomCount:   count,
		})
	}
	return rows
}

// CreateDorm provisions a dorm together with its initial floor layout
// as one atomic unit. On any failure the transaction rolls back and no
// partial state remains.
func (s *gormStore) CreateDorm(ctx context.Context, in DormInput) (int64, error) {
	if err := validateLayout(in); err != nil {
		return 0, err
	}

	var dormID int64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dorm := model.Dorm{Name: in.Name, TotalFloors: in.TotalFloors}
		if err := tx.Create(&dorm).Error; err != nil {
			return fmt.Errorf("failed to insert dorm: %w", err)
		}

		rows := allocations(dorm.ID, in)
		if len(rows) > 0 {
			if err := tx.Create(&rows).Error; err != nil {
				return fmt.Errorf("failed to insert floor allocations for dorm %d: %w", dorm.ID, err)
			}
		}

		dormID = dorm.ID
		return nil
	})
	if err != nil {
		return 0, err
	}
	return dormID, nil
}

// ListDorms returns every dorm, unfiltered.
func (s *gormStore) ListDorms(ctx context.Context) ([]model.Dorm, error) {
	var dorms []model.Dorm
	if err := s.db.WithContext(ctx).Order("id").Find(&dorms).Error; err != nil {
		return nil, err
	}
	return dorms, nil
}

// ListFloorAllocations returns every floor row across all dorms,
// ordered by dorm then floor.
func (s *gormStore) ListFloorAllocations(ctx context.Context) ([]model.FloorAllocation, error) {
	var rows []model.FloorAllocation
	if err := s.db.WithContext(ctx).
		Order("dorm_id, floor_number").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// GetDorm returns a dorm and its per-floor room counts in floor order.
func (s *gormStore) GetDorm(ctx context.Context, dormID int64) (DormDetail, error) {
	var dorm model.Dorm
	if err := s.db.WithContext(ctx).First(&dorm, dormID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return DormDetail{}, ErrDormNotFound
		}
		return DormDetail{}, err
	}

	rooms, err := s.roomsPerFloor(s.db.WithContext(ctx), dorm)
	if err != nil {
		return DormDetail{}, err
	}
	return DormDetail{Dorm: dorm, RoomsPerFloor: rooms}, nil
}

func (s *gormStore) roomsPerFloor(db *gorm.DB, dorm model.Dorm) ([]int, error) {
	var rows []model.FloorAllocation
	if err := db.
		Where("dorm_id = ?", dorm.ID).
		Order("floor_number").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	counts := make([]int, dorm.TotalFloors)
	for _, r := range rows {
		if r.FloorNumber >= 1 && r.FloorNumber <= dorm.TotalFloors {
			counts[r.FloorNumber-1] = r.RoomCount
		}
	}
	return counts, nil
}

// UpdateDorm replaces a dorm's name and its entire floor layout. The
// field update, the delete of the old allocations and the re-insert of
// the new ones all run in one transaction, so readers never observe a
// dorm stripped of its floors.
func (s *gormStore) UpdateDorm(ctx context.Context, dormID int64, in DormInput) error {
	if err := validateLayout(in); err != nil {
		return err
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var dorm model.Dorm
		if err := tx.First(&dorm, dormID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrDormNotFound
			}
			return err
		}

		if err := tx.Model(&dorm).Updates(map[string]interface{}{
			"name":         in.Name,
			"total_floors": in.TotalFloors,
		}).Error; err != nil {
			return fmt.Errorf("failed to update dorm %d: %w", dormID, err)
		}

		if err := tx.Where("dorm_id = ?", dormID).
			Delete(&model.FloorAllocation{}).Error; err != nil {
			return fmt.Errorf("failed to clear floor allocations for dorm %d: %w", dormID, err)
		}

		rows := allocations(dormID, in)
		if len(rows) > 0 {
			if err := tx.Create(&rows).Error; err != nil {
				return fmt.Errorf("failed to insert floor allocations for dorm %d: %w", dormID, err)
			}
		}
		return nil
	})
}

// CreateContract signs a tenant into a room. The room label must be
// derivable from the dorm's stored layout and must not already carry
// an active contract; both checks and the insert share one
// transaction.
func (s *gormStore) CreateContract(ctx context.Context, in ContractInput) (int64, error) {
	var contractID int64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var dorm model.Dorm
		if err := tx.First(&dorm, in.DormID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrDormNotFound
			}
			return err
		}

		var rows []model.FloorAllocation
		if err := tx.Where("dorm_id = ?", dorm.ID).
			Order("floor_number").
			Find(&rows).Error; err != nil {
			return err
		}
		if !roomExists(rows, in.RoomLabel) {
			return ErrRoomUnknown
		}

		var active int64
		if err := tx.Model(&model.Contract{}).
			Where("dorm_id = ? AND room_label = ? AND status = ?",
				dorm.ID, in.RoomLabel, model.ContractStatusActive).
			Count(&active).Error; err != nil {
			return err
		}
		if active > 0 {
			return ErrRoomOccupied
		}

		contract := model.Contract{
			DormID:      dorm.ID,
			RoomLabel:   in.RoomLabel,
			TenantName:  in.TenantName,
			TenantPhone: in.TenantPhone,
			MonthlyRent: in.MonthlyRent,
			Deposit:     in.Deposit,
			StartDate:   in.StartDate,
			EndDate:     in.EndDate,
			Status:      model.ContractStatusActive,
		}
		if err := tx.Create(&contract).Error; err != nil {
			return fmt.Errorf("failed to insert contract: %w", err)
		}
		contractID = contract.ID
		return nil
	})
	if err != nil {
		return 0, err
	}
	return contractID, nil
}

// roomExists reports whether the label belongs to the derived room set
// of the given layout.
func roomExists(rows []model.FloorAllocation, roomLabel string) bool {
	for _, r := range rows {
		for _, l := range label.Floor(r.FloorNumber, r.RoomCount) {
			if l == roomLabel {
				return true
			}
		}
	}
	return false
}

// ListContracts returns contracts, optionally filtered to one dorm.
func (s *gormStore) ListContracts(ctx context.Context, dormID *int64) ([]model.Contract, error) {
	q := s.db.WithContext(ctx).Order("id")
	if dormID != nil {
		q = q.Where("dorm_id = ?", *dormID)
	}
	var contracts []model.Contract
	if err := q.Find(&contracts).Error; err != nil {
		return nil, err
	}
	return contracts, nil
}

// GetContract returns one contract by id.
func (s *gormStore) GetContract(ctx context.Context, contractID int64) (model.Contract, error) {
	var contract model.Contract
	if err := s.db.WithContext(ctx).First(&contract, contractID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return model.Contract{}, ErrContractNotFound
		}
		return model.Contract{}, err
	}
	return contract, nil
}

// MoveOut ends an active contract, recording when the tenant left.
func (s *gormStore) MoveOut(ctx context.Context, contractID int64, moveOutAt time.Time) (model.Contract, error) {
	var contract model.Contract
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&contract, contractID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrContractNotFound
			}
			return err
		}
		if contract.Status == model.ContractStatusEnded {
			return ErrContractEnded
		}

		contract.Status = model.ContractStatusEnded
		contract.MoveOutAt = &moveOutAt
		if err := tx.Save(&contract).Error; err != nil {
			return fmt.Errorf("failed to end contract %d: %w", contractID, err)
		}
		return nil
	})
	if err != nil {
		return model.Contract{}, err
	}
	return contract, nil
}

// ExpireContracts ends every active contract whose end date has
// passed, using the end date as the move-out time. It returns the ids
// of the contracts it ended so the caller can notify subscribers.
func (s *gormStore) ExpireContracts(ctx context.Context, now time.Time) ([]int64, error) {
	var endedIDs []int64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var overdue []model.Contract
		if err := tx.
			Where("status = ? AND end_date IS NOT NULL AND end_date <= ?",
				model.ContractStatusActive, now).
			Find(&overdue).Error; err != nil {
			return err
		}
		if len(overdue) == 0 {
			return nil
		}

		ids := make([]int64, len(overdue))
		for i, c := range overdue {
			ids[i] = c.ID
		}

		if err := tx.Model(&model.Contract{}).
			Where("id IN ?", ids).
			Updates(map[string]interface{}{
				"status":      model.ContractStatusEnded,
				"move_out_at": gorm.Expr("end_date"),
			}).Error; err != nil {
			return fmt.Errorf("failed to expire contracts: %w", err)
		}

		endedIDs = ids
		return nil
	})
	if err != nil {
		return nil, err
	}
	return endedIDs, nil
}

// DormOccupancy aggregates, per dorm, the stored room total against
// the number of rooms held by active contracts.
func (s *gormStore) DormOccupancy(ctx context.Context) ([]OccupancyRow, error) {
	dorms, err := s.ListDorms(ctx)
	if err != nil {
		return nil, err
	}

	type roomAgg struct {
		DormID     int64
		TotalRooms int64
	}
	var roomAggs []roomAgg
	if err := s.db.WithContext(ctx).
		Model(&model.FloorAllocation{}).
		Select("dorm_id as dorm_id, COALESCE(SUM(room_count), 0) as total_rooms").
		Group("dorm_id").
		Scan(&roomAggs).Error; err != nil {
		return nil, err
	}
	roomMap := make(map[int64]int64, len(roomAggs))
	for _, a := range roomAggs {
		roomMap[a.DormID] = a.TotalRooms
	}

	type contractAgg struct {
		DormID   int64
		Occupied int64
	}
	var contractAggs []contractAgg
	if err := s.db.WithContext(ctx).
		Model(&model.Contract{}).
		Select("dorm_id as dorm_id, COUNT(*) as occupied").
		Where("status = ?", model.ContractStatusActive).
		Group("dorm_id").
		Scan(&contractAggs).Error; err != nil {
		return nil, err
	}
	occupiedMap := make(map[int64]int64, len(contractAggs))
	for _, a := range contractAggs {
		occupiedMap[a.DormID] = a.Occupied
	}

	rows := make([]OccupancyRow, 0, len(dorms))
	for _, d := range dorms {
		row := OccupancyRow{
			DormID:        d.ID,
			DormName:      d.Name,
			TotalRooms:    roomMap[d.ID],
			OccupiedRooms: occupiedMap[d.ID],
		}
		if row.TotalRooms > 0 {
			row.OccupancyRate = float64(row.OccupiedRooms) / float64(row.TotalRooms)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// DormRevenue aggregates, per dorm, the active contract count and the
// monthly rent they bring in.
func (s *gormStore) DormRevenue(ctx context.Context) ([]RevenueRow, error) {
	dorms, err := s.ListDorms(ctx)
	if err != nil {
		return nil, err
	}

	type revenueAgg struct {
		DormID          int64
		ActiveContracts int64
		MonthlyRevenue  float64
	}
	var aggs []revenueAgg
	if err := s.db.WithContext(ctx).
		Model(&model.Contract{}).
		Select("dorm_id as dorm_id, COUNT(*) as active_contracts, COALESCE(SUM(monthly_rent), 0) as monthly_revenue").
		Where("status = ?", model.ContractStatusActive).
		Group("dorm_id").
		Scan(&aggs).Error; err != nil {
		return nil, err
	}
	aggMap := make(map[int64]revenueAgg, len(aggs))
	for _, a := range aggs {
		aggMap[a.DormID] = a
	}

	rows := make([]RevenueRow, 0, len(dorms))
	for _, d := range dorms {
		a := aggMap[d.ID]
		rows = append(rows, RevenueRow{
			DormID:          d.ID,
			DormName:        d.Name,
			ActiveContracts: a.ActiveContracts,
			MonthlyRevenue:  a.MonthlyRevenue,
		})
	}
	return rows, nil
}
