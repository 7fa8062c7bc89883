package models

import "gorm.io/gorm"

// Product represents a catalog item.
type Product struct {
	ID          string   `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name        string   `json:"name" validate:"required,min=3,max=100"`
	Slug        string   `json:"slug" gorm:"uniqueIndex;type:varchar(120)"`
	Description string   `json:"description" validate:"omitempty,max=500"`
	Category    string   `json:"category" validate:"required,oneof=hoodie tee"`
	Price       float64  `json:"price" validate:"required,gt=0"`
	Images      []string `json:"images" gorm:"serializer:json"`
	Sizes       []string `json:"sizes" gorm:"serializer:json"`
	Stock       int      `json:"stock" validate:"gte=0"`
	IsSoldOut   bool     `json:"is_sold_out"`
	gorm.Model  `json:"-"` // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}
