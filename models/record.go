package models

import "time"

// Record is a single expense entry linking a user, category and currency.
// The currency FK is RESTRICT: a currency cannot be deleted while records
// reference it, unlike the user/category parents which cascade.
type Record struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	CreatedAt  time.Time `json:"createdAt"`
	UserID     uint      `gorm:"index;not null" json:"userId"`
	CategoryID uint      `gorm:"index;not null" json:"categoryId"`
	CurrencyID uint      `gorm:"index;not null" json:"currencyId"`
	Amount     float64   `gorm:"not null" json:"amount"`
	User       *User     `gorm:"foreignKey:UserID;references:ID" json:"user,omitempty"`
	Category   *Category `gorm:"foreignKey:CategoryID;references:ID" json:"category,omitempty"`
	Currency   *Currency `gorm:"foreignKey:CurrencyID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"currency,omitempty"`
}
