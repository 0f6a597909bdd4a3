package models

import "gorm.io/gorm"

// Wallet maps a currency code to the vendor address buyers send funds to.
// It's left to the operator to ensure only one wallet exists per currency.
type Wallet struct {
	ID         string `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Currency   string `json:"currency" gorm:"uniqueIndex;type:varchar(10)" validate:"required,min=3,max=10"`
	Address    string `json:"address" validate:"required"`
	gorm.Model        // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}
