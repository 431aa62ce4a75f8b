package model

import "time"

// Contract statuses.
const (
	ContractStatusActive = "active"
	ContractStatusEnded  = "ended"
)

// Contract binds a tenant to one room of a dorm. RoomLabel is the
// derived label ("101", "305", ...) of the rented room; it is kept on
// the contract as entered at signing time and must match the dorm's
// layout at that moment.
type Contract struct {
	ID          int64      `gorm:"primaryKey"`
	DormID      int64      `gorm:"index;not null"`
	RoomLabel   string     `gorm:"size:16;not null;index"`
	TenantName  string     `gorm:"size:128;not null"`
	TenantPhone string     `gorm:"size:32"`
	MonthlyRent float64    `gorm:"not null"`
	Deposit     float64    `gorm:"not null"`
	StartDate   time.Time  `gorm:"not null"`
	EndDate     *time.Time `gorm:"index"`
	Status      string     `gorm:"size:16;not null;index"`
	MoveOutAt   *time.Time
	CreatedAt   time.Time `gorm:"not null"`
	UpdatedAt   time.Time `gorm:"not null"`

	// Associations
	Dorm Dorm `gorm:"constraint:OnDelete:CASCADE"`
}
