package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Product struct {
	gorm.Model
	Name              string          `gorm:"not null" json:"name"`
	Description       string          `json:"description"`
	Price             decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	ImageURL          string          `json:"image_url"`
	GalleryURLs       []string        `gorm:"serializer:json" json:"gallery_urls"`
	IsAvailable       int             `gorm:"default:1" json:"is_available"`
	CategoryID        uint            `gorm:"not null" json:"category_id"`
	SubCategoryID     uint            `gorm:"not null" json:"sub_category_id"`
	MiscID            *uint           `json:"misc_id"`
	Brand             string          `json:"brand"`
	Rating            decimal.Decimal `gorm:"type:decimal(3,2)" json:"rating"`
	ReviewsCount      int             `gorm:"default:0" json:"reviews_count"`
	InventoryQuantity int             `gorm:"not null;default:0" json:"inventory_quantity"`
	LowStockThreshold int             `gorm:"default:5" json:"low_stock_threshold"`
	Sku               string          `gorm:"unique" json:"sku"`
	IsInStock         int             `gorm:"default:1" json:"is_in_stock"`
	ManageStock       int             `gorm:"default:1" json:"manage_stock"`
	WarehouseLocation string          `json:"warehouse_location"`
}
