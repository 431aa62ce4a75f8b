package model

import "time"

// PushSubscription holds the information for a browser push subscription.
// A subscriber picks the dorms they want room-availability notifications for.
type PushSubscription struct {
	Endpoint  string    `gorm:"primaryKey"`
	P256DH    string    `gorm:"column:p256dh;not null"`
	Auth      string    `gorm:"not null"`
	CreatedAt time.Time `gorm:"not null"`

	// Associations
	Dorms []*Dorm `gorm:"many2many:subscription_dorm_mapping;"`
}
