package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/khirastore/ecommerce-api/middleware"
	"github.com/khirastore/ecommerce-api/models"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// 商品回應格式，主圖永遠排在gallery最前面
func formatProductResponse(product *models.Product) gin.H {
	galleryURLs := append([]string{product.ImageURL}, product.GalleryURLs...)

	return gin.H{
		"id":                  product.ID,
		"name":                product.Name,
		"description":         product.Description,
		"price":               product.Price,
		"image_url":           product.ImageURL,
		"gallery_urls":        galleryURLs,
		"is_available":        product.IsAvailable,
		"category_id":         product.CategoryID,
		"sub_category_id":     product.SubCategoryID,
		"misc_id":             product.MiscID,
		"brand":               product.Brand,
		"rating":              product.Rating,
		"reviews_count":       product.ReviewsCount,
		"inventory_quantity":  product.InventoryQuantity,
		"low_stock_threshold": product.LowStockThreshold,
		"sku":                 product.Sku,
		"is_in_stock":         product.IsInStock,
		"manage_stock":        product.ManageStock,
		"warehouse_location":  product.WarehouseLocation,
		"created_at":          product.CreatedAt,
		"updated_at":          product.UpdatedAt,
	}
}

func wishlistContains(wishlist []uint, productID uint) bool {
	for _, id := range wishlist {
		if id == productID {
			return true
		}
	}
	return false
}

func GetPublicProductsHandler(c *gin.Context, db *gorm.DB) {
	var products []models.Product
	if err := db.Find(&products).Error; err != nil {
		c.JSON(http.StatusOK, gin.H{
			"status": 500,
			"error":  "Something went wrong. Please try again.",
		})
		return
	}

	data := make([]gin.H, 0, len(products))
	for i := range products {
		data = append(data, formatProductResponse(&products[i]))
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  200,
		"message": "Products fetched successfully",
		"data":    data,
	})
}

func GetPublicProductByIDHandler(c *gin.Context, db *gorm.DB) {
	var product models.Product
	err := db.First(&product, "id = ?", c.Param("id")).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusOK, gin.H{
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

	c.JSON(http.StatusOK, gin.H{
		"status":  200,
		"message": "Products fetched successfully",
		"data":    formatProductResponse(&product),
	})
}

// 會員商品列表，逐筆附上wishlist_liked
func GetProductsHandler(c *gin.Context, db *gorm.DB) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusOK, gin.H{
			"status": 500,
			"error":  "Something went wrong. Please try again.",
		})
		return
	}

	query := db
	if categoryID := c.Query("category_id"); categoryID != "" {
		query = query.Where("category_id = ?", categoryID)
	}
	if subCategoryID := c.Query("sub_category_id"); subCategoryID != "" {
		query = query.Where("sub_category_id = ?", subCategoryID)
	}
	if miscID := c.Query("misc_id"); miscID != "" {
		query = query.Where("misc_id = ?", miscID)
	}

	var products []models.Product
	if err := query.Find(&products).Error; err != nil {
		c.JSON(http.StatusOK, gin.H{
			"status": 500,
			"error":  "Something went wrong. Please try again.",
		})
		return
	}

	data := make([]gin.H, 0, len(products))
	for i := range products {
		formatted := formatProductResponse(&products[i])
		formatted["wishlist_liked"] = wishlistContains(user.Wishlist, products[i].ID)
		data = append(data, formatted)
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  200,
		"message": "Products fetched successfully",
		"data":    data,
	})
}

func GetProductByIDHandler(c *gin.Context, db *gorm.DB) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusOK, gin.H{
			"status": 500,
			"error":  "Something went wrong. Please try again.",
		})
		return
	}

	var product models.Product
	err := db.First(&product, "id = ?", c.Param("id")).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusOK, gin.H{
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

	formatted := formatProductResponse(&product)
	formatted["wishlist_liked"] = wishlistContains(user.Wishlist, product.ID)

	c.JSON(http.StatusOK, gin.H{
		"status":  200,
		"message": "Product fetched successfully",
		"data":    formatted,
	})
}

func AddProductHandler(c *gin.Context, db *gorm.DB, publicDir, baseURL string) {
	var req struct {
		Name              string          `form:"name" binding:"required"`
		Description       string          `form:"description" binding:"required"`
		Price             decimal.Decimal `form:"price" binding:"required"`
		IsAvailable       *int            `form:"is_available"`
		CategoryID        uint            `form:"category_id" binding:"required"`
		SubCategoryID     uint            `form:"sub_category_id" binding:"required"`
		MiscID            *uint           `form:"misc_id"`
		InventoryQuantity int             `form:"inventory_quantity" binding:"required,min=0"`
		LowStockThreshold int             `form:"low_stock_threshold" binding:"required,min=0"`
		Sku               string          `form:"sku" binding:"required"`
		IsInStock         *int            `form:"is_in_stock"`
		ManageStock       *int            `form:"manage_stock"`
	}
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusOK, gin.H{
			"status": 400,
			"error":  err.Error(),
		})
		return
	}

	//分類FK必須存在
	var count int64
	db.Model(&models.Category{}).Where("id = ?", req.CategoryID).Count(&count)
	if count == 0 {
		c.JSON(http.StatusOK, gin.H{
			"status": 400,
			"error":  "The selected category id is invalid.",
		})
		return
	}
	db.Model(&models.SubCategory{}).Where("id = ?", req.SubCategoryID).Count(&count)
	if count == 0 {
		c.JSON(http.StatusOK, gin.H{
			"status": 400,
			"error":  "The selected sub category id is invalid.",
		})
		return
	}
	if req.MiscID != nil {
		db.Model(&models.MiscCategory{}).Where("id = ?", *req.MiscID).Count(&count)
		if count == 0 {
			c.JSON(http.StatusOK, gin.H{
				"status": 400,
				"error":  "The selected misc id is invalid.",
			})
			return
		}
	}

	db.Model(&models.Product{}).Where("sku = ?", req.Sku).Count(&count)
	if count > 0 {
		c.JSON(http.StatusOK, gin.H{
			"status": 400,
			"error":  "The sku has already been taken.",
		})
		return
	}

	imageFile, err := c.FormFile("image_url")
	if err != nil {
		c.JSON(http.StatusOK, gin.H{
			"status": 400,
			"error":  "The image url field is required.",
		})
		return
	}
	imageName, err := saveUploadedImage(c, imageFile, publicDir, "products/image_url")
	if err != nil {
		c.JSON(http.StatusOK, gin.H{
			"status": 400,
			"error":  err.Error(),
		})
		return
	}
	imageURL := publicURL(baseURL, "products/image_url", imageName)

	var galleryURLs []string
	if form, err := c.MultipartForm(); err == nil {
		for _, galleryFile := range form.File["gallery_urls"] {
			galleryName, err := saveUploadedImage(c, galleryFile, publicDir, "products/gallery")
			if err != nil {
				c.JSON(http.StatusOK, gin.H{
					"status": 400,
					"error":  err.Error(),
				})
				return
			}
			galleryURLs = append(galleryURLs, publicURL(baseURL, "products/gallery", galleryName))
		}
	}

	intOrDefault := func(v *int, fallback int) int {
		if v != nil {
			return *v
		}
		return fallback
	}

	product := models.Product{
		Name:              req.Name,
		Description:       req.Description,
		Price:             req.Price,
		ImageURL:          imageURL,
		GalleryURLs:       galleryURLs,
		IsAvailable:       intOrDefault(req.IsAvailable, 1),
		CategoryID:        req.CategoryID,
		SubCategoryID:     req.SubCategoryID,
		MiscID:            req.MiscID,
		InventoryQuantity: req.InventoryQuantity,
		LowStockThreshold: req.LowStockThreshold,
		Sku:               req.Sku,
		IsInStock:         intOrDefault(req.IsInStock, 1),
		ManageStock:       intOrDefault(req.ManageStock, 1),
	}
	if err := db.Create(&product).Error; err != nil {
		zap.S().Errorw("新增商品失敗", "error", err)
		c.JSON(http.StatusOK, gin.H{
			"status": 500,
			"error":  "Something went wrong. Please try again.",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  200,
		"message": "Product added successfully.",
		"product": formatProductResponse(&product),
	})
}

func UpdateProductHandler(c *gin.Context, db *gorm.DB, publicDir, baseURL string) {
	var req struct {
		Name              string          `form:"name" binding:"required"`
		Description       string          `form:"description" binding:"required"`
		Price             decimal.Decimal `form:"price" binding:"required"`
		PrevGalleryURLs   []string        `form:"prev_gallery_urls"`
		CategoryID        uint            `form:"category_id" binding:"required"`
		SubCategoryID     uint            `form:"sub_category_id" binding:"required"`
		MiscID            *uint           `form:"misc_id"`
		InventoryQuantity int             `form:"inventory_quantity" binding:"required,min=0"`
		LowStockThreshold int             `form:"low_stock_threshold" binding:"required,min=0"`
		Sku               string          `form:"sku"`
		IsInStock         *int            `form:"is_in_stock"`
		ManageStock       *int            `form:"manage_stock"`
	}
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusOK, gin.H{
			"status": 400,
			"error":  err.Error(),
		})
		return
	}

	var product models.Product
	err := db.First(&product, "id = ?", c.Param("id")).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusOK, gin.H{
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

	if req.Sku != "" && req.Sku != product.Sku {
		var count int64
		db.Model(&models.Product{}).Where("sku = ? AND id <> ?", req.Sku, product.ID).Count(&count)
		if count > 0 {
			c.JSON(http.StatusOK, gin.H{
				"status": 400,
				"error":  "The sku has already been taken.",
			})
			return
		}
		product.Sku = req.Sku
	}

	//有新主圖才更換，順便刪掉舊檔
	if imageFile, err := c.FormFile("image_url"); err == nil {
		imageName, err := saveUploadedImage(c, imageFile, publicDir, "products/image_url")
		if err != nil {
			c.JSON(http.StatusOK, gin.H{
				"status": 400,
				"error":  err.Error(),
			})
			return
		}
		removePublicFile(publicDir, "products/image_url", product.ImageURL)
		product.ImageURL = publicURL(baseURL, "products/image_url", imageName)
	}

	//gallery以prev_gallery_urls為準，不在其中的舊圖刪除
	keep := make(map[string]bool, len(req.PrevGalleryURLs))
	for _, url := range req.PrevGalleryURLs {
		keep[url] = true
	}
	for _, url := range product.GalleryURLs {
		if !keep[url] {
			removePublicFile(publicDir, "products/gallery", url)
		}
	}
	galleryURLs := append([]string{}, req.PrevGalleryURLs...)

	if form, err := c.MultipartForm(); err == nil {
		for _, galleryFile := range form.File["gallery_urls"] {
			galleryName, err := saveUploadedImage(c, galleryFile, publicDir, "products/gallery")
			if err != nil {
				c.JSON(http.StatusOK, gin.H{
					"status": 400,
					"error":  err.Error(),
				})
				return
			}
			galleryURLs = append(galleryURLs, publicURL(baseURL, "products/gallery", galleryName))
		}
	}
	product.GalleryURLs = galleryURLs

	product.Name = req.Name
	product.Description = req.Description
	product.Price = req.Price
	product.CategoryID = req.CategoryID
	product.SubCategoryID = req.SubCategoryID
	product.MiscID = req.MiscID
	product.InventoryQuantity = req.InventoryQuantity
	product.LowStockThreshold = req.LowStockThreshold
	if req.IsInStock != nil {
		product.IsInStock = *req.IsInStock
	}
	if req.ManageStock != nil {
		product.ManageStock = *req.ManageStock
	}

	if err := db.Save(&product).Error; err != nil {
		c.JSON(http.StatusOK, gin.H{
			"status": 500,
			"error":  "Something went wrong. Please try again.",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  200,
		"message": "Product updated successfully.",
		"product": formatProductResponse(&product),
	})
}

// 刪除商品，同時從所有使用者的願望清單移除該商品
func DeleteProductHandler(c *gin.Context, db *gorm.DB, publicDir string) {
	var req struct {
		ID uint `json:"id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusOK, gin.H{
			"status": 400,
			"error":  err.Error(),
		})
		return
	}

	var product models.Product
	err := db.First(&product, req.ID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusOK, gin.H{
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

	err = db.Transaction(func(tx *gorm.DB) error {
		var users []models.User
		if err := tx.Find(&users).Error; err != nil {
			return err
		}
		for i := range users {
			if !wishlistContains(users[i].Wishlist, product.ID) {
				continue
			}
			filtered := make([]uint, 0, len(users[i].Wishlist))
			for _, id := range users[i].Wishlist {
				if id != product.ID {
					filtered = append(filtered, id)
				}
			}
			err := tx.
				Model(&models.User{}).
				Where("id = ?", users[i].ID).
				Update("wishlist", filtered).
				Error
			if err != nil {
				return err
			}
		}

		return tx.Delete(&product).Error
	})
	if err != nil {
		zap.S().Errorw("刪除商品失敗", "productID", product.ID, "error", err)
		c.JSON(http.StatusOK, gin.H{
			"status": 500,
			"error":  "Something went wrong. Please try again.",
		})
		return
	}

	removePublicFile(publicDir, "products/image_url", product.ImageURL)
	for _, galleryURL := range product.GalleryURLs {
		removePublicFile(publicDir, "products/gallery", galleryURL)
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  200,
		"message": "Product deleted successfully.",
	})
}

// 以關鍵字模糊搜尋商品和分類，可再用分類條件過濾商品
func SearchProductsHandler(c *gin.Context, db *gorm.DB) {
	search := c.Query("search")

	categoryQuery := db.Model(&models.Category{})
	if search != "" {
		categoryQuery = categoryQuery.Where("name LIKE ?", "%"+search+"%")
	}
	var categories []models.Category
	if err := categoryQuery.Find(&categories).Error; err != nil {
		c.JSON(http.StatusOK, gin.H{
			"status": 500,
			"error":  "Something went wrong. Please try again.",
		})
		return
	}

	productQuery := db.Model(&models.Product{})
	if search != "" {
		productQuery = productQuery.Where(
			"name LIKE ? OR description LIKE ?", "%"+search+"%", "%"+search+"%")
	}
	if categoryID := c.Query("categoryId"); categoryID != "" {
		productQuery = productQuery.Where("category_id = ?", categoryID)
	}
	if subCategoryID := c.Query("subCategoryId"); subCategoryID != "" {
		productQuery = productQuery.Where("sub_category_id = ?", subCategoryID)
	}
	if miscID := c.Query("miscId"); miscID != "" {
		productQuery = productQuery.Where("misc_id = ?", miscID)
	}
	var products []models.Product
	if err := productQuery.Find(&products).Error; err != nil {
		c.JSON(http.StatusOK, gin.H{
			"status": 500,
			"error":  "Something went wrong. Please try again.",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  200,
		"message": "Filtered categories and products fetched successfully",
		"data": gin.H{
			"categories": categories,
			"products":   products,
		},
	})
}
