package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// 購物車項目，(user_id, product_id)最多一列
// 商品名稱和價格為加入當下的快照
type CartItem struct {
	gorm.Model
	UserID       uint            `gorm:"index:idx_user_product,unique;not null" json:"user_id"`
	ProductID    uint            `gorm:"index:idx_user_product,unique;not null" json:"product_id"`
	Product      Product         `json:"-"`
	Quantity     int             `gorm:"not null" json:"quantity"`
	ProductName  string          `gorm:"not null" json:"product_name"`
	ProductPrice decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"product_price"`
	TotalPrice   decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"total_price"`
}
