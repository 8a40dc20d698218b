package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/khirastore/ecommerce-api/middleware"
	"github.com/khirastore/ecommerce-api/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func GetCartHandler(c *gin.Context, db *gorm.DB) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusOK, gin.H{
			"status": 500,
			"error":  "Something went wrong. Please try again.",
		})
		return
	}

	var cartItems []models.CartItem
	err := db.
		Where("user_id = ?", user.ID).
		Preload("Product").
		Find(&cartItems).
		Error
	if err != nil {
		c.JSON(http.StatusOK, gin.H{
			"status": 500,
			"error":  "Something went wrong. Please try again.",
		})
		return
	}

	if len(cartItems) == 0 {
		c.JSON(http.StatusOK, gin.H{
			"status":  200,
			"message": "Cart is empty",
			"data":    []gin.H{},
		})
		return
	}

	//名稱與價格用加入當下的快照，圖片帶目前的商品圖
	formattedCart := make([]gin.H, 0, len(cartItems))
	for _, cartItem := range cartItems {
		formattedCart = append(formattedCart, gin.H{
			"item_id":       cartItem.ID,
			"product_id":    cartItem.ProductID,
			"quantity":      cartItem.Quantity,
			"product_name":  cartItem.ProductName,
			"product_price": cartItem.ProductPrice,
			"total_price":   cartItem.TotalPrice,
			"product_img":   cartItem.Product.ImageURL,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  200,
		"message": "Cart items fetched successfully",
		"data":    formattedCart,
	})
}

func AddToCartHandler(c *gin.Context, db *gorm.DB) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusOK, gin.H{
			"status": 500,
			"error":  "Something went wrong. Please try again.",
		})
		return
	}

	var req struct {
		ProductID uint `json:"product_id" binding:"required"`
		Quantity  int  `json:"quantity" binding:"omitempty,min=1"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusOK, gin.H{
			"status": 400,
			"error":  err.Error(),
		})
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	var product models.Product
	err := db.First(&product, req.ProductID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"status": 404,
				"error":  "Product not found.",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status": 500,
			"error":  "Something went wrong. Please try again.",
		})
		return
	}

	var cartItem models.CartItem
	err = db.
		Where("user_id = ? AND product_id = ?", user.ID, req.ProductID).
		First(&cartItem).
		Error
	switch {
	case err == nil:
		//已在購物車，累加數量並以目前售價重算小計
		cartItem.Quantity += req.Quantity
		cartItem.TotalPrice = product.Price.Mul(decimal.NewFromInt(int64(cartItem.Quantity)))
		if err := db.Save(&cartItem).Error; err != nil {
			c.JSON(http.StatusOK, gin.H{
				"status": 500,
				"error":  "Something went wrong. Please try again.",
			})
			return
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		cartItem = models.CartItem{
			UserID:       user.ID,
			ProductID:    req.ProductID,
			Quantity:     req.Quantity,
			ProductName:  product.Name,
			ProductPrice: product.Price,
			TotalPrice:   product.Price.Mul(decimal.NewFromInt(int64(req.Quantity))),
		}
		if err := db.Create(&cartItem).Error; err != nil {
			c.JSON(http.StatusOK, gin.H{
				"status": 500,
				"error":  "Something went wrong. Please try again.",
			})
			return
		}
	default:
		c.JSON(http.StatusOK, gin.H{
			"status": 500,
			"error":  "Something went wrong. Please try again.",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  200,
		"message": "Item added to cart successfully",
		"data": gin.H{
			"item_id":       cartItem.ID,
			"product_id":    cartItem.ProductID,
			"quantity":      cartItem.Quantity,
			"product_name":  cartItem.ProductName,
			"product_price": cartItem.ProductPrice,
			"total_price":   cartItem.TotalPrice,
			"product_img":   product.ImageURL,
		},
	})
}

func UpdateCartItemHandler(c *gin.Context, db *gorm.DB) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusOK, gin.H{
			"status": 500,
			"error":  "Something went wrong. Please try again.",
		})
		return
	}

	var req struct {
		ItemID   uint `json:"item_id" binding:"required"`
		Quantity int  `json:"quantity" binding:"required,min=1"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusOK, gin.H{
			"status": 400,
			"error":  err.Error(),
		})
		return
	}

	var cartItem models.CartItem
	err := db.
		Where("user_id = ? AND id = ?", user.ID, req.ItemID).
		First(&cartItem).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"status": 404,
				"error":  "Item not found in cart",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status": 500,
			"error":  "Something went wrong. Please try again.",
		})
		return
	}

	//只改數量，total_price沿用舊值(保留原始API行為)
	err = db.
		Model(&cartItem).
		Update("quantity", req.Quantity).
		Error
	if err != nil {
		c.JSON(http.StatusOK, gin.H{
			"status": 500,
			"error":  "Something went wrong. Please try again.",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  200,
		"message": "Item updated successfully",
	})
}

func RemoveFromCartHandler(c *gin.Context, db *gorm.DB) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusOK, gin.H{
			"status": 500,
			"error":  "Something went wrong. Please try again.",
		})
		return
	}

	var req struct {
		ItemID uint `json:"item_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusOK, gin.H{
			"status": 400,
			"error":  err.Error(),
		})
		return
	}

	var cartItem models.CartItem
	err := db.
		Where("user_id = ? AND id = ?", user.ID, req.ItemID).
		First(&cartItem).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"status": 404,
				"error":  "Item not found in cart",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status": 500,
			"error":  "Something went wrong. Please try again.",
		})
		return
	}

	if err := db.Delete(&cartItem).Error; err != nil {
		c.JSON(http.StatusOK, gin.H{
			"status": 500,
			"error":  "Something went wrong. Please try again.",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  200,
		"message": "Item removed from cart successfully",
	})
}
