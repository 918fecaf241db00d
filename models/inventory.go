package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// RoomInventoryEntry is one lodging unit for one tour night: either a standard
// room with a fixed bed list, or an unlimited-capacity pool (camping / riders
// arranging their own lodging). Exactly one of the three shapes holds.
type RoomInventoryEntry struct {
	ID uint `gorm:"primaryKey" json:"-"`

	// RoomID is the stable identifier used in assignment keys; unique within
	// a night. Must not contain "__".
	RoomID string `gorm:"column:room_id;size:64;uniqueIndex:idx_room_day" json:"id"`
	Day    int    `gorm:"column:day;index;uniqueIndex:idx_room_day" json:"day"`

	SuiteName  string `gorm:"column:suite_name;size:255" json:"suiteName"`
	RoomNumber string `gorm:"column:room_number;size:50" json:"roomNumber"`

	Beds datatypes.JSONSlice[string] `gorm:"column:beds" json:"beds"`

	IsCamping          bool `gorm:"column:is_camping" json:"isCamping"`
	IsOwnAccommodation bool `gorm:"column:is_own_accommodation" json:"isOwnAccommodation"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (r RoomInventoryEntry) IsStandardRoom() bool {
	return !r.IsCamping && !r.IsOwnAccommodation
}

// IsPool reports whether the entry has unlimited capacity.
func (r RoomInventoryEntry) IsPool() bool {
	return r.IsCamping || r.IsOwnAccommodation
}
