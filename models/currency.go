package models

import "time"

// Currency is master data referenced by records and by a user's default.
// Code is stored uppercase (e.g. "USD").
type Currency struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"-"`
	Code      string    `gorm:"size:16;not null;uniqueIndex" json:"code"`
	Name      string    `gorm:"size:255;not null" json:"name"`
}
