package models

import "gorm.io/gorm"

// Product represents a product in the store. The first image is the one
// copied into cart line items and attached to order notifications.
type Product struct {
	ID           string   `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name         string   `json:"name" validate:"required,min=3,max=100"`
	Description  string   `json:"description" validate:"omitempty,max=500"`
	Price        float64  `json:"price" validate:"required,gt=0"`
	Images       []string `json:"images" gorm:"serializer:json"`
	Options      []string `json:"options" gorm:"serializer:json"`
	Categories   []string `json:"categories" gorm:"serializer:json"`
	FriendlyLink string   `json:"friendly_link" gorm:"index;type:varchar(150)"`
	gorm.Model            // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}
