package models

import "gorm.io/gorm"

type Category struct {
	gorm.Model
	Name        string `gorm:"unique;not null" json:"name"`
	ImageURL    string `json:"image_url"`
	Description string `json:"description"`
}
