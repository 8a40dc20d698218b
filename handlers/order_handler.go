package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/khirastore/ecommerce-api/middleware"
	"github.com/khirastore/ecommerce-api/models"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type orderLineRequest struct {
	ProductID uint            `json:"product_id" binding:"required"`
	Quantity  int             `json:"quantity" binding:"required,min=1"`
	Price     decimal.Decimal `json:"price" binding:"required"`
}

func formatUserAddress(user *models.User) string {
	return fmt.Sprintf("%s, %s, %s-%s, %s",
		user.HouseNo, user.Street, user.City, user.Zipcode, user.Country)
}

// 送出訂單
// 庫存檢查、扣庫存、建立訂單快照、清空購物車在同一個事務內
// 任一明細庫存不足則整筆失敗，不做部分提交
func CreateOrderHandler(c *gin.Context, db *gorm.DB) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusOK, gin.H{
			"status": 500,
			"error":  "Something went wrong. Please try again.",
		})
		return
	}

	var req struct {
		Name          string             `json:"name" binding:"required"`
		Email         string             `json:"email" binding:"required,email"`
		Mobile        string             `json:"mobile" binding:"required,min=10,max=15"`
		Address       string             `json:"address" binding:"required"`
		PaymentMethod string             `json:"payment_method" binding:"required"`
		CartItems     []orderLineRequest `json:"cart_items" binding:"required,min=1,dive"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusOK, gin.H{
			"status": 400,
			"error":  err.Error(),
		})
		return
	}

	for _, line := range req.CartItems {
		if line.Price.IsNegative() {
			c.JSON(http.StatusOK, gin.H{
				"status": 400,
				"error":  "The price must be at least 0.",
			})
			return
		}
	}

	tx := db.Begin()
	if tx.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status": 500,
			"error":  "Something went wrong. Please try again.",
		})
		return
	}
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	totalPrice := decimal.Zero
	orderItems := make([]models.OrderItem, 0, len(req.CartItems))

	for _, line := range req.CartItems {
		var product models.Product
		if err := tx.First(&product, line.ProductID).Error; err != nil {
			tx.Rollback()
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusOK, gin.H{
					"status": 400,
					"error":  "Product not found.",
				})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{
				"status": 500,
				"error":  "Something went wrong. Please try again.",
			})
			return
		}

		if product.InventoryQuantity < line.Quantity {
			tx.Rollback()
			c.JSON(http.StatusOK, gin.H{
				"status": 400,
				"error": fmt.Sprintf("Only %d items for product: %s",
					product.InventoryQuantity, product.Name),
			})
			return
		}

		//條件式扣庫存，庫存不足時不會更新到任何列
		result := tx.
			Model(&models.Product{}).
			Where("id = ? AND inventory_quantity >= ?", line.ProductID, line.Quantity).
			UpdateColumn("inventory_quantity", gorm.Expr("inventory_quantity - ?", line.Quantity))
		if result.Error != nil {
			tx.Rollback()
			c.JSON(http.StatusInternalServerError, gin.H{
				"status": 500,
				"error":  "Something went wrong. Please try again.",
			})
			return
		}
		if result.RowsAffected == 0 {
			//同時有其他訂單搶先扣走庫存
			tx.Rollback()
			c.JSON(http.StatusOK, gin.H{
				"status": 400,
				"error": fmt.Sprintf("Only %d items for product: %s",
					product.InventoryQuantity, product.Name),
			})
			return
		}

		//單價採用請求帶入的價格(保留原始API行為，見DESIGN.md)
		lineTotal := line.Price.Mul(decimal.NewFromInt(int64(line.Quantity)))
		totalPrice = totalPrice.Add(lineTotal)

		orderItems = append(orderItems, models.OrderItem{
			ProductID:   line.ProductID,
			ProductName: product.Name,
			ProductImg:  product.ImageURL,
			Quantity:    line.Quantity,
			Price:       line.Price,
			TotalPrice:  lineTotal,
		})
	}

	newOrder := models.Order{
		UserID:        user.ID,
		Name:          req.Name,
		Email:         req.Email,
		Mobile:        req.Mobile,
		Address:       req.Address,
		PaymentMethod: req.PaymentMethod,
		TotalPrice:    totalPrice,
		OrderItems:    orderItems,
		Status:        "pending",
	}
	if err := tx.Create(&newOrder).Error; err != nil {
		tx.Rollback()
		zap.S().Errorw("建立訂單失敗", "userID", user.ID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"status": 500,
			"error":  "Something went wrong. Please try again.",
		})
		return
	}

	//下單後整車清空，不限於這次訂購的商品
	err := tx.
		Where("user_id = ?", user.ID).
		Delete(&models.CartItem{}).
		Error
	if err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{
			"status": 500,
			"error":  "Something went wrong. Please try again.",
		})
		return
	}

	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{
			"status": 500,
			"error":  "Something went wrong. Please try again.",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  200,
		"message": "Order placed successfully",
		"data": gin.H{
			"order_id":       newOrder.ID,
			"user_id":        user.ID,
			"user_name":      user.FirstName + " " + user.LastName,
			"user_mobile":    user.Mobile,
			"user_email":     user.Email,
			"address":        formatUserAddress(user),
			"total_price":    newOrder.TotalPrice,
			"payment_method": newOrder.PaymentMethod,
			"status":         newOrder.Status,
			"created_at":     newOrder.CreatedAt,
			"updated_at":     newOrder.UpdatedAt,
			"itemDetails":    orderItems,
		},
	})
}

func GetOrdersHandler(c *gin.Context, db *gorm.DB) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusOK, gin.H{
			"status": 500,
			"error":  "Something went wrong. Please try again.",
		})
		return
	}

	var orders []models.Order
	if err := db.Where("user_id = ?", user.ID).Find(&orders).Error; err != nil {
		c.JSON(http.StatusOK, gin.H{
			"status": 500,
			"error":  "Something went wrong. Please try again.",
		})
		return
	}

	if len(orders) == 0 {
		c.JSON(http.StatusOK, gin.H{
			"status":  200,
			"message": "No orders found",
			"data":    []gin.H{},
		})
		return
	}

	formattedOrders := make([]gin.H, 0, len(orders))
	for _, order := range orders {
		formattedOrders = append(formattedOrders, gin.H{
			"order_id":       order.ID,
			"user_id":        user.ID,
			"user_name":      user.FirstName + " " + user.LastName,
			"user_mobile":    user.Mobile,
			"user_email":     user.Email,
			"address":        formatUserAddress(user),
			"total_price":    order.TotalPrice,
			"payment_method": order.PaymentMethod,
			"status":         order.Status,
			"created_at":     order.CreatedAt,
			"updated_at":     order.UpdatedAt,
			"itemDetails":    order.OrderItems,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  200,
		"message": "Orders fetched successfully",
		"data":    formattedOrders,
	})
}
