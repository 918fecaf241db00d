package models

import (
	"time"

	"gorm.io/gorm"
)

// Accommodation choices a rider can make for a night.
const (
	AccommodationHotel   = "hotel"
	AccommodationCamping = "camping"
	AccommodationOwn     = "own"
)

// NightSelection is a rider's choice for one tour night. RiderKey holds
// either the roster id or the identity uid — legacy rows used the uid, so
// lookups must try both before defaulting to hotel.
type NightSelection struct {
	ID uint `gorm:"primaryKey" json:"id"`

	RiderKey string `gorm:"column:rider_key;size:128;index:idx_selection_rider_day" json:"riderKey"`
	Day      int    `gorm:"column:day;index:idx_selection_rider_day" json:"day"`

	Accommodation     string `gorm:"column:accommodation;size:32" json:"accommodation"`
	PrefersSingleRoom bool   `gorm:"column:prefers_single_room" json:"prefersSingleRoom"`
	Meal              string `gorm:"column:meal;size:64" json:"meal,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
