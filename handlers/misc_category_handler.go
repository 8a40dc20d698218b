package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/khirastore/ecommerce-api/models"
	"gorm.io/gorm"
)

func GetMiscCategoriesHandler(c *gin.Context, db *gorm.DB) {
	var miscCategories []models.MiscCategory
	if err := db.Find(&miscCategories).Error; err != nil {
		c.JSON(http.StatusOK, gin.H{
			"status": 500,
			"error":  "Something went wrong. Please try again.",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  200,
		"message": "Misc categories fetched successfully",
		"data":    miscCategories,
	})
}

func AddMiscCategoryHandler(c *gin.Context, db *gorm.DB) {
	var req struct {
		Name        string `json:"name" binding:"required"`
		Description string `json:"description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusOK, gin.H{
			"status": 400,
			"error":  err.Error(),
		})
		return
	}

	var count int64
	db.Model(&models.MiscCategory{}).Where("name = ?", req.Name).Count(&count)
	if count > 0 {
		c.JSON(http.StatusOK, gin.H{
			"status": 400,
			"error":  "The name has already been taken.",
		})
		return
	}

	miscCategory := models.MiscCategory{
		Name:        req.Name,
		Description: req.Description,
	}
	if err := db.Create(&miscCategory).Error; err != nil {
		c.JSON(http.StatusOK, gin.H{
			"status": 500,
			"error":  "Something went wrong. Please try again.",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  200,
		"message": "Misc-Category added successfully.",
		"data":    miscCategory,
	})
}

func UpdateMiscCategoryHandler(c *gin.Context, db *gorm.DB) {
	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusOK, gin.H{
			"status": 400,
			"error":  err.Error(),
		})
		return
	}

	var miscCategory models.MiscCategory
	err := db.First(&miscCategory, "id = ?", c.Param("id")).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusOK, gin.H{
				"status": 404,
				"error":  "Misc-Category not found.",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status": 500,
			"error":  "Something went wrong. Please try again.",
		})
		return
	}

	if req.Name != "" {
		miscCategory.Name = req.Name
	}
	if req.Description != "" {
		miscCategory.Description = req.Description
	}

	if err := db.Save(&miscCategory).Error; err != nil {
		c.JSON(http.StatusOK, gin.H{
			"status": 500,
			"error":  "Something went wrong. Please try again.",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  200,
		"message": "Misc-Category updated successfully.",
		"data":    miscCategory,
	})
}

func DeleteMiscCategoryHandler(c *gin.Context, db *gorm.DB) {
	var req struct {
		MiscID uint `json:"misc_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusOK, gin.H{
			"status": 400,
			"error":  err.Error(),
		})
		return
	}

	var miscCategory models.MiscCategory
	err := db.First(&miscCategory, req.MiscID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusOK, gin.H{
				"status": 404,
				"error":  "Misc-Category not found.",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status": 500,
			"error":  "Something went wrong. Please try again.",
		})
		return
	}

	if err := db.Delete(&miscCategory).Error; err != nil {
		c.JSON(http.StatusOK, gin.H{
			"status": 500,
			"error":  "Something went wrong. Please try again.",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  200,
		"message": "Misc-Category deleted successfully.",
	})
}
