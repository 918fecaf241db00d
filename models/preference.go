package models

import (
	"time"

	"gorm.io/gorm"
)

// RoommatePreference records who a rider asked to room with. Matching is
// name-based (the legacy data stored names, not ids), so the analyzer
// compares PreferredName against the other rider's full name.
type RoommatePreference struct {
	ID uint `gorm:"primaryKey" json:"id"`

	RiderKey      string `gorm:"column:rider_key;size:128;index" json:"riderKey"`
	PreferredName string `gorm:"column:preferred_name;size:255" json:"preferredName"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
