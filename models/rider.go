package models

import (
	"strconv"
	"time"

	"gorm.io/gorm"
)

// Rider is one registered participant on the roster.
type Rider struct {
	ID uint `gorm:"primaryKey" json:"id"`

	// UID is the identity-provider id; night selections and roommate
	// preferences may be keyed by either ID or UID (legacy data).
	UID string `gorm:"column:uid;size:128;index" json:"uid"`

	FullName string `gorm:"size:255" json:"fullName"`
	Email    string `gorm:"size:150" json:"email"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// Key is the primary lookup key and the occupantId written into assignments.
func (r Rider) Key() string {
	return strconv.FormatUint(uint64(r.ID), 10)
}

// RiderRef is the slice of a rider the assignment engine needs: the occupant
// id and the display name denormalized into BedAssignment records.
type RiderRef struct {
	ID       string `json:"id"`
	FullName string `json:"fullName"`
}

func (r Rider) Ref() RiderRef {
	return RiderRef{ID: r.Key(), FullName: r.FullName}
}

// RiderView combines a roster entry with its night selection, roommate
// preference and assignment status for one night. Derived on every load,
// never persisted.
type RiderView struct {
	RiderID           string `json:"riderId"`
	FullName          string `json:"fullName"`
	Email             string `json:"email,omitempty"`
	Accommodation     string `json:"accommodation"`
	PrefersSingleRoom bool   `json:"prefersSingleRoom"`
	PreferredRoommate string `json:"preferredRoommate,omitempty"`
	Assigned          bool   `json:"assigned"`
}
