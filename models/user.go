package models

import (
	"time"
)

// User model
type User struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"-"`
	Name              string    `gorm:"size:255;not null" json:"name"`
	Email             string    `gorm:"size:255;not null;uniqueIndex" json:"email"`
	PasswordHash      []byte    `gorm:"not null" json:"-"`
	DefaultCurrencyID *uint     `gorm:"index" json:"defaultCurrencyId"`
	DefaultCurrency   *Currency `gorm:"foreignKey:DefaultCurrencyID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"defaultCurrency,omitempty"`
	Records           []Record  `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
}
