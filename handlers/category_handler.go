package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/khirastore/ecommerce-api/models"
	"gorm.io/gorm"
)

func GetCategoriesHandler(c *gin.Context, db *gorm.DB) {
	var categories []models.Category
	if err := db.Find(&categories).Error; err != nil {
		c.JSON(http.StatusOK, gin.H{
			"status": 500,
			"error":  "Something went wrong. Please try again.",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":     200,
		"message":    "Categories fetched successfully",
		"categories": categories,
	})
}

func AddCategoryHandler(c *gin.Context, db *gorm.DB, publicDir, baseURL string) {
	var req struct {
		Name        string `form:"name" binding:"required"`
		Description string `form:"description"`
	}
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusOK, gin.H{
			"status": 400,
			"error":  err.Error(),
		})
		return
	}

	var count int64
	db.Model(&models.Category{}).Where("name = ?", req.Name).Count(&count)
	if count > 0 {
		c.JSON(http.StatusOK, gin.H{
			"status": 400,
			"error":  "The name has already been taken.",
		})
		return
	}

	var imageURL string
	if imageFile, err := c.FormFile("image_url"); err == nil {
		imageName, err := saveUploadedImage(c, imageFile, publicDir, "categories")
		if err != nil {
			c.JSON(http.StatusOK, gin.H{
				"status": 400,
				"error":  err.Error(),
			})
			return
		}
		imageURL = publicURL(baseURL, "categories", imageName)
	}

	category := models.Category{
		Name:        req.Name,
		ImageURL:    imageURL,
		Description: req.Description,
	}
	if err := db.Create(&category).Error; err != nil {
		c.JSON(http.StatusOK, gin.H{
			"status": 500,
			"error":  "Something went wrong. Please try again.",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  200,
		"message": "Category added successfully.",
		"data":    category,
	})
}

func UpdateCategoryHandler(c *gin.Context, db *gorm.DB, publicDir, baseURL string) {
	var req struct {
		Name        string `form:"name"`
		Description string `form:"description"`
	}
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusOK, gin.H{
			"status": 400,
			"error":  err.Error(),
		})
		return
	}

	var category models.Category
	err := db.First(&category, "id = ?", c.Param("id")).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusOK, gin.H{
				"status": 404,
				"error":  "Category not found.",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status": 500,
			"error":  "Something went wrong. Please try again.",
		})
		return
	}

	if imageFile, err := c.FormFile("image_url"); err == nil {
		imageName, err := saveUploadedImage(c, imageFile, publicDir, "categories")
		if err != nil {
			c.JSON(http.StatusOK, gin.H{
				"status": 400,
				"error":  err.Error(),
			})
			return
		}
		removePublicFile(publicDir, "categories", category.ImageURL)
		category.ImageURL = publicURL(baseURL, "categories", imageName)
	}

	if req.Name != "" {
		category.Name = req.Name
	}
	if req.Description != "" {
		category.Description = req.Description
	}

	if err := db.Save(&category).Error; err != nil {
		c.JSON(http.StatusOK, gin.H{
			"status": 500,
			"error":  "Something went wrong. Please try again.",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  200,
		"message": "Category updated successfully.",
		"data":    category,
	})
}

// 刪除分類，底下還有子分類的分類不能刪
func DeleteCategoryHandler(c *gin.Context, db *gorm.DB, publicDir string) {
	var req struct {
		CategoryID uint `json:"category_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusOK, gin.H{
			"status": 400,
			"error":  err.Error(),
		})
		return
	}

	var category models.Category
	err := db.First(&category, req.CategoryID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusOK, gin.H{
				"status": 404,
				"error":  "Category not found.",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status": 500,
			"error":  "Something went wrong. Please try again.",
		})
		return
	}

	var subCategoryCount int64
	db.Model(&models.SubCategory{}).Where("category_id = ?", req.CategoryID).Count(&subCategoryCount)
	if subCategoryCount > 0 {
		c.JSON(http.StatusOK, gin.H{
			"status": 400,
			"error":  "This category cannot be deleted because it is associated with subcategories.",
		})
		return
	}

	if err := db.Delete(&category).Error; err != nil {
		c.JSON(http.StatusOK, gin.H{
			"status": 500,
			"error":  "Something went wrong. Please try again.",
		})
		return
	}

	removePublicFile(publicDir, "categories", category.ImageURL)

	c.JSON(http.StatusOK, gin.H{
		"status":  200,
		"message": "Category deleted successfully.",
	})
}
