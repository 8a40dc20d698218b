package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/khirastore/ecommerce-api/models"
	"gorm.io/gorm"
)

func GetSubCategoriesHandler(c *gin.Context, db *gorm.DB) {
	var subCategories []models.SubCategory
	if err := db.Preload("Category").Find(&subCategories).Error; err != nil {
		c.JSON(http.StatusOK, gin.H{
			"status": 500,
			"error":  "Something went wrong. Please try again.",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  200,
		"message": "SubCategories fetched successfully",
		"data":    subCategories,
	})
}

func AddSubCategoryHandler(c *gin.Context, db *gorm.DB, publicDir, baseURL string) {
	var req struct {
		CategoryID uint   `form:"category_id" binding:"required"`
		Name       string `form:"name" binding:"required"`
	}
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusOK, gin.H{
			"status": 400,
			"error":  err.Error(),
		})
		return
	}

	var count int64
	db.Model(&models.Category{}).Where("id = ?", req.CategoryID).Count(&count)
	if count == 0 {
		c.JSON(http.StatusOK, gin.H{
			"status": 400,
			"error":  "The selected category id is invalid.",
		})
		return
	}

	db.Model(&models.SubCategory{}).Where("name = ?", req.Name).Count(&count)
	if count > 0 {
		c.JSON(http.StatusOK, gin.H{
			"status": 400,
			"error":  "The name has already been taken.",
		})
		return
	}

	var imageURL string
	if imageFile, err := c.FormFile("image_url"); err == nil {
		imageName, err := saveUploadedImage(c, imageFile, publicDir, "sub_categories")
		if err != nil {
			c.JSON(http.StatusOK, gin.H{
				"status": 400,
				"error":  err.Error(),
			})
			return
		}
		imageURL = publicURL(baseURL, "sub_categories", imageName)
	}

	subCategory := models.SubCategory{
		CategoryID: req.CategoryID,
		Name:       req.Name,
		ImageURL:   imageURL,
	}
	if err := db.Create(&subCategory).Error; err != nil {
		c.JSON(http.StatusOK, gin.H{
			"status": 500,
			"error":  "Something went wrong. Please try again.",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  200,
		"message": "SubCategory added successfully.",
		"data":    subCategory,
	})
}

func UpdateSubCategoryHandler(c *gin.Context, db *gorm.DB, publicDir, baseURL string) {
	var req struct {
		CategoryID *uint  `form:"category_id"`
		Name       string `form:"name"`
	}
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusOK, gin.H{
			"status": 400,
			"error":  err.Error(),
		})
		return
	}

	var subCategory models.SubCategory
	err := db.First(&subCategory, "id = ?", c.Param("id")).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusOK, gin.H{
				"status": 404,
				"error":  "SubCategory not found.",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status": 500,
			"error":  "Something went wrong. Please try again.",
		})
		return
	}

	if req.CategoryID != nil {
		var count int64
		db.Model(&models.Category{}).Where("id = ?", *req.CategoryID).Count(&count)
		if count == 0 {
			c.JSON(http.StatusOK, gin.H{
				"status": 400,
				"error":  "The selected category id is invalid.",
			})
			return
		}
		subCategory.CategoryID = *req.CategoryID
	}

	if imageFile, err := c.FormFile("image_url"); err == nil {
		imageName, err := saveUploadedImage(c, imageFile, publicDir, "sub_categories")
		if err != nil {
			c.JSON(http.StatusOK, gin.H{
				"status": 400,
				"error":  err.Error(),
			})
			return
		}
		removePublicFile(publicDir, "sub_categories", subCategory.ImageURL)
		subCategory.ImageURL = publicURL(baseURL, "sub_categories", imageName)
	}

	if req.Name != "" {
		subCategory.Name = req.Name
	}

	if err := db.Save(&subCategory).Error; err != nil {
		c.JSON(http.StatusOK, gin.H{
			"status": 500,
			"error":  "Something went wrong. Please try again.",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  200,
		"message": "SubCategory updated successfully.",
		"data":    subCategory,
	})
}

func DeleteSubCategoryHandler(c *gin.Context, db *gorm.DB, publicDir string) {
	var req struct {
		SubCategoryID uint `json:"sub_category_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusOK, gin.H{
			"status": 400,
			"error":  err.Error(),
		})
		return
	}

	var subCategory models.SubCategory
	err := db.First(&subCategory, req.SubCategoryID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusOK, gin.H{
				"status": 404,
				"error":  "SubCategory not found.",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status": 500,
			"error":  "Something went wrong. Please try again.",
		})
		return
	}

	if err := db.Delete(&subCategory).Error; err != nil {
		c.JSON(http.StatusOK, gin.H{
			"status": 500,
			"error":  "Something went wrong. Please try again.",
		})
		return
	}

	removePublicFile(publicDir, "sub_categories", subCategory.ImageURL)

	c.JSON(http.StatusOK, gin.H{
		"status":  200,
		"message": "SubCategory deleted successfully.",
	})
}
