package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/khirastore/ecommerce-api/models"
	"github.com/khirastore/ecommerce-api/token"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const userKey = "User"

// 檢查Bearer Token並載入使用者，失敗則中止請求
// 缺少Bearer header回傳HTTP 400
// Token無效回傳HTTP 200，body status 401(和舊版API行為一致)
func AuthMiddleware(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.JSON(http.StatusBadRequest, gin.H{
				"status": 400,
				"error":  "Bearer token is required.",
			})
			c.Abort()
			return
		}

		raw := strings.TrimPrefix(authHeader, "Bearer ")
		user, err := token.Resolve(db, raw)
		if err != nil {
			if !errors.Is(err, token.ErrInvalidSession) {
				zap.S().Errorw("查詢Token失敗", "error", err)
				c.JSON(http.StatusOK, gin.H{
					"status": 500,
					"error":  "Something went wrong. Please try again.",
				})
				c.Abort()
				return
			}
			c.JSON(http.StatusOK, gin.H{
				"status": 401,
				"error":  "Your account is logged in on another device.",
			})
			c.Abort()
			return
		}

		c.Set(userKey, user)
		c.Next()
	}
}

// 從Context取得AuthMiddleware放入的使用者
func CurrentUser(c *gin.Context) (*models.User, bool) {
	value, exists := c.Get(userKey)
	if !exists {
		return nil, false
	}
	user, ok := value.(*models.User)
	return user, ok
}
