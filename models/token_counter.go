package models

import "gorm.io/gorm"

// Token流水號計數器，只會有一列
type TokenCounter struct {
	gorm.Model
	LastNumber uint64 `gorm:"not null;default:0"`
}
