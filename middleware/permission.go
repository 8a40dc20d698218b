package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const adminRole = "admin"

// 檢查是否有admin權限，沒有則中止請求
func CheckAdminPermissionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			c.JSON(http.StatusOK, gin.H{
				"status": 500,
				"error":  "Something went wrong. Please try again.",
			})
			c.Abort()
			return
		}
		if user.Role != adminRole {
			c.JSON(http.StatusOK, gin.H{
				"status": 403,
				"error":  "Access denied.",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
