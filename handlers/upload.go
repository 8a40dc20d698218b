package handlers

import (
	"errors"
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

var errInvalidImage = errors.New("The image must be a file of type: jpeg, png, jpg, gif.")

func isValidImageExtension(file *multipart.FileHeader) bool {
	allowExtensions := []string{".jpg", ".jpeg", ".png", ".gif"}
	fileExt := strings.ToLower(filepath.Ext(file.Filename))
	for _, allowExt := range allowExtensions {
		if fileExt == allowExt {
			return true
		}
	}
	return false
}

// 以時間戳加UUID命名避免檔名衝突
func makeUniqueFileName(file *multipart.FileHeader) string {
	fileExt := filepath.Ext(file.Filename)
	return fmt.Sprintf("%d_%s%s", time.Now().Unix(), uuid.NewString(), fileExt)
}

// 儲存上傳圖片至public目錄下的子目錄，回傳存檔檔名
func saveUploadedImage(c *gin.Context, file *multipart.FileHeader, publicDir, subDir string) (string, error) {
	if !isValidImageExtension(file) {
		return "", errInvalidImage
	}

	targetDir := filepath.Join(publicDir, subDir)
	if err := os.MkdirAll(targetDir, 0755); err != nil {
		return "", err
	}

	fileName := makeUniqueFileName(file)
	if err := c.SaveUploadedFile(file, filepath.Join(targetDir, fileName)); err != nil {
		return "", err
	}

	return fileName, nil
}

// 組出對外圖片URL
func publicURL(baseURL, subDir, fileName string) string {
	if fileName == "" {
		return ""
	}
	return baseURL + "/" + subDir + "/" + fileName
}

// 刪除public目錄下的舊檔，檔名可為URL
func removePublicFile(publicDir, subDir, nameOrURL string) {
	if nameOrURL == "" {
		return
	}
	fileName := filepath.Base(nameOrURL)
	_ = os.Remove(filepath.Join(publicDir, subDir, fileName))
}
