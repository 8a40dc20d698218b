package routers

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/khirastore/ecommerce-api/config"
	"github.com/khirastore/ecommerce-api/handlers"
	"github.com/khirastore/ecommerce-api/middleware"
	"github.com/khirastore/ecommerce-api/otp"
	"gorm.io/gorm"
)

func SetupRouters(db *gorm.DB, otpStore otp.Store, mailer otp.Mailer, cfg config.Config) *gin.Engine {
	//建立Gin路由器
	router := gin.Default()
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))
	_ = router.SetTrustedProxies(nil)

	publicDir := cfg.Server.PublicDir
	baseURL := cfg.Server.BaseURL

	//商品及個人圖片靜態資源路徑
	router.Static("/products", publicDir+"/products")
	router.Static("/categories", publicDir+"/categories")
	router.Static("/sub_categories", publicDir+"/sub_categories")
	router.Static("/profile_images", publicDir+"/profile_images")

	api := router.Group("/api")

	////公開路由
	api.GET("/users", func(c *gin.Context) {
		handlers.GetAllUsersHandler(c, db)
	})
	api.POST("/create-user", func(c *gin.Context) {
		handlers.CreateUserHandler(c, db, otpStore, mailer)
	})
	api.POST("/verify-otp", func(c *gin.Context) {
		handlers.VerifyOtpHandler(c, db, otpStore, baseURL)
	})
	api.POST("/login", func(c *gin.Context) {
		handlers.LoginHandler(c, db, baseURL)
	})
	api.GET("/categories", func(c *gin.Context) {
		handlers.GetCategoriesHandler(c, db)
	})
	api.GET("/subcategories", func(c *gin.Context) {
		handlers.GetSubCategoriesHandler(c, db)
	})
	api.GET("/misc", func(c *gin.Context) {
		handlers.GetMiscCategoriesHandler(c, db)
	})
	api.GET("/search", func(c *gin.Context) {
		handlers.SearchProductsHandler(c, db)
	})
	api.GET("/public/products", func(c *gin.Context) {
		handlers.GetPublicProductsHandler(c, db)
	})
	api.GET("/public/product/:id", func(c *gin.Context) {
		handlers.GetPublicProductByIDHandler(c, db)
	})

	////需要登入，中間件驗證Bearer Token
	authRequired := api.Group("")
	authRequired.Use(middleware.AuthMiddleware(db))
	{
		authRequired.POST("/logout", func(c *gin.Context) {
			handlers.LogoutHandler(c, db)
		})
		authRequired.GET("/profile", func(c *gin.Context) {
			handlers.GetProfileHandler(c, baseURL)
		})
		authRequired.POST("/profile", func(c *gin.Context) {
			handlers.UpdateProfileHandler(c, db, publicDir, baseURL)
		})
		authRequired.GET("/products", func(c *gin.Context) {
			handlers.GetProductsHandler(c, db)
		})
		authRequired.GET("/product/:id", func(c *gin.Context) {
			handlers.GetProductByIDHandler(c, db)
		})
		//願望清單
		authRequired.GET("/wishlist", func(c *gin.Context) {
			handlers.GetWishlistHandler(c, db)
		})
		authRequired.POST("/wishlist/add", func(c *gin.Context) {
			handlers.AddToWishlistHandler(c, db)
		})
		authRequired.POST("/wishlist/remove", func(c *gin.Context) {
			handlers.RemoveFromWishlistHandler(c, db)
		})
		//購物車
		authRequired.GET("/cart", func(c *gin.Context) {
			handlers.GetCartHandler(c, db)
		})
		authRequired.POST("/cart/add", func(c *gin.Context) {
			handlers.AddToCartHandler(c, db)
		})
		authRequired.POST("/cart/update-cart-item", func(c *gin.Context) {
			handlers.UpdateCartItemHandler(c, db)
		})
		authRequired.POST("/cart/cart-item", func(c *gin.Context) {
			handlers.RemoveFromCartHandler(c, db)
		})
		//訂單
		authRequired.GET("/user/orders", func(c *gin.Context) {
			handlers.GetOrdersHandler(c, db)
		})
		authRequired.POST("/orders", func(c *gin.Context) {
			handlers.CreateOrderHandler(c, db)
		})
	}

	////需要admin身分
	adminRequired := api.Group("")
	adminRequired.Use(middleware.AuthMiddleware(db), middleware.CheckAdminPermissionMiddleware())
	{
		adminRequired.POST("/categories", func(c *gin.Context) {
			handlers.AddCategoryHandler(c, db, publicDir, baseURL)
		})
		adminRequired.POST("/update/category/:id", func(c *gin.Context) {
			handlers.UpdateCategoryHandler(c, db, publicDir, baseURL)
		})
		adminRequired.POST("/category/delete", func(c *gin.Context) {
			handlers.DeleteCategoryHandler(c, db, publicDir)
		})
		adminRequired.POST("/subcategories", func(c *gin.Context) {
			handlers.AddSubCategoryHandler(c, db, publicDir, baseURL)
		})
		adminRequired.POST("/update/subCategory/:id", func(c *gin.Context) {
			handlers.UpdateSubCategoryHandler(c, db, publicDir, baseURL)
		})
		adminRequired.POST("/subcategories/delete", func(c *gin.Context) {
			handlers.DeleteSubCategoryHandler(c, db, publicDir)
		})
		adminRequired.POST("/misc", func(c *gin.Context) {
			handlers.AddMiscCategoryHandler(c, db)
		})
		adminRequired.POST("/update/misc/:id", func(c *gin.Context) {
			handlers.UpdateMiscCategoryHandler(c, db)
		})
		adminRequired.POST("/misc/delete", func(c *gin.Context) {
			handlers.DeleteMiscCategoryHandler(c, db)
		})
		adminRequired.POST("/add-product", func(c *gin.Context) {
			handlers.AddProductHandler(c, db, publicDir, baseURL)
		})
		adminRequired.POST("/update-product/:id", func(c *gin.Context) {
			handlers.UpdateProductHandler(c, db, publicDir, baseURL)
		})
		adminRequired.POST("/product/delete", func(c *gin.Context) {
			handlers.DeleteProductHandler(c, db, publicDir)
		})
	}

	return router
}
