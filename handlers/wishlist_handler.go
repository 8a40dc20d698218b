package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/khirastore/ecommerce-api/middleware"
	"github.com/khirastore/ecommerce-api/models"
	"gorm.io/gorm"
)

func GetWishlistHandler(c *gin.Context, db *gorm.DB) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusOK, gin.H{
			"status": 500,
			"error":  "Something went wrong. Please try again.",
		})
		return
	}

	products := []models.Product{}
	if len(user.Wishlist) > 0 {
		err := db.Where("id IN ?", user.Wishlist).Find(&products).Error
		if err != nil {
			c.JSON(http.StatusOK, gin.H{
				"status": 500,
				"error":  "Something went wrong. Please try again.",
			})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   200,
		"message":  "Wishlist fetched successfully.",
		"wishlist": products,
	})
}

func AddToWishlistHandler(c *gin.Context, db *gorm.DB) {
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
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusOK, gin.H{
			"status": 400,
			"error":  err.Error(),
		})
		return
	}

	var product models.Product
	err := db.First(&product, req.ProductID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"status": 404,
				"error":  "Product not found",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status": 500,
			"error":  "Something went wrong. Please try again.",
		})
		return
	}

	//已在願望清單則不重複加入
	for _, id := range user.Wishlist {
		if id == req.ProductID {
			c.JSON(http.StatusOK, gin.H{
				"status":  200,
				"message": "Product added to wishlist successfully.",
			})
			return
		}
	}

	user.Wishlist = append(user.Wishlist, req.ProductID)
	err = db.
		Model(&models.User{}).
		Where("id = ?", user.ID).
		Update("wishlist", user.Wishlist).
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
		"message": "Product added to wishlist successfully.",
	})
}

func RemoveFromWishlistHandler(c *gin.Context, db *gorm.DB) {
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
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusOK, gin.H{
			"status": 400,
			"error":  err.Error(),
		})
		return
	}

	//移除不在清單內的商品也視為成功
	filtered := make([]uint, 0, len(user.Wishlist))
	for _, id := range user.Wishlist {
		if id != req.ProductID {
			filtered = append(filtered, id)
		}
	}

	user.Wishlist = filtered
	err := db.
		Model(&models.User{}).
		Where("id = ?", user.ID).
		Update("wishlist", user.Wishlist).
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
		"message": "Product removed from wishlist successfully.",
	})
}
