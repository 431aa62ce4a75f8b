package model

import "time"

// Dorm represents a dormitory building.
type Dorm struct {
	ID          int64     `gorm:"primaryKey"`
	Name        string    `gorm:"size:128;not null"`
	TotalFloors int       `gorm:"not null"`
	CreatedAt   time.Time `gorm:"not null"`
	UpdatedAt   time.Time `gorm:"not null"`

	// Associations
	Floors []FloorAllocation `gorm:"foreignKey:DormID"`
}

// TableName keeps the historical table name.
func (Dorm) TableName() string { return "dormitories" }

// FloorAllocation stores the room count for one floor of a dorm.
// Rows are addressed only by (dorm_id, floor_number); individual rooms
// have no persisted representation, their labels are derived at read
// time from the stored counts.
type FloorAllocation struct {
	DormID      int64 `gorm:"primaryKey;autoIncrement:false"`
	FloorNumber int   `gorm:"primaryKey;autoIncrement:false"` // 1-based
	RoomCount   int   `gorm:"not null"`

	// Associations
	Dorm Dorm `gorm:"constraint:OnDelete:CASCADE"`
}

// TableName keeps the historical table name.
func (FloorAllocation) TableName() string { return "dorm_rooms" }
