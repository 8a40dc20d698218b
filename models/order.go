package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// 訂單明細快照，以JSON存在orders.order_items欄位
type OrderItem struct {
	ProductID   uint            `json:"product_id"`
	ProductName string          `json:"product_name"`
	ProductImg  string          `json:"product_img"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
	TotalPrice  decimal.Decimal `json:"total_price"`
}

// 訂單建立後不再變動
type Order struct {
	gorm.Model
	UserID        uint            `gorm:"not null" json:"user_id"`
	Name          string          `gorm:"not null" json:"name"`
	Email         string          `gorm:"not null" json:"email"`
	Mobile        string          `gorm:"not null" json:"mobile"`
	Address       string          `gorm:"not null" json:"address"`
	PaymentMethod string          `gorm:"not null" json:"payment_method"`
	TotalPrice    decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"total_price"`
	OrderItems    []OrderItem     `gorm:"serializer:json" json:"order_items"`
	Status        string          `gorm:"default:pending" json:"status"`
}
