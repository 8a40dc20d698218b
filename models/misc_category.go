package models

import "gorm.io/gorm"

type MiscCategory struct {
	gorm.Model
	Name         string `gorm:"unique;not null" json:"name"`
	Description  string `json:"description"`
	ProductCount int    `gorm:"default:0" json:"product_count"`
}
