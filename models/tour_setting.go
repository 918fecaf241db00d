package models

import "time"

type TourSetting struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"size:255" json:"name"`
	Year         int       `json:"year"`
	ContactEmail string    `gorm:"size:150" json:"contactEmail"`
	ContactPhone string    `gorm:"size:50" json:"contactPhone"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
