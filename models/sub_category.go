package models

import "gorm.io/gorm"

type SubCategory struct {
	gorm.Model
	CategoryID uint     `gorm:"not null" json:"category_id"`
	Category   Category `json:"category"`
	Name       string   `gorm:"unique;not null" json:"name"`
	ImageURL   string   `json:"image_url"`
}
