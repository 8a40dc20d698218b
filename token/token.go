package token

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/khirastore/ecommerce-api/models"
	"gorm.io/gorm"
)

var ErrInvalidSession = errors.New("invalid session token")

// 從計數器取得下一個流水號
// 以單一UPDATE遞增，Token唯一性由隨機位元組保證
func nextNumber(db *gorm.DB) (uint64, error) {
	result := db.
		Model(&models.TokenCounter{}).
		Where("1 = 1").
		UpdateColumn("last_number", gorm.Expr("last_number + ?", 1))
	if result.Error != nil {
		return 0, result.Error
	}
	if result.RowsAffected == 0 {
		counter := models.TokenCounter{LastNumber: 1}
		if err := db.Create(&counter).Error; err != nil {
			return 0, err
		}
		return counter.LastNumber, nil
	}

	var counter models.TokenCounter
	if err := db.First(&counter).Error; err != nil {
		return 0, err
	}
	return counter.LastNumber, nil
}

// 生成Token並覆蓋使用者原有Token，舊Session即失效
func Issue(db *gorm.DB, user *models.User) (string, error) {
	number, err := nextNumber(db)
	if err != nil {
		return "", err
	}

	randomBytes := make([]byte, 32)
	if _, err := rand.Read(randomBytes); err != nil {
		return "", err
	}

	newToken := fmt.Sprintf("%d|%s", number, hex.EncodeToString(randomBytes))

	err = db.
		Model(&models.User{}).
		Where("id = ?", user.ID).
		Update("token", newToken).
		Error
	if err != nil {
		return "", err
	}

	user.Token = &newToken
	return newToken, nil
}

// 以Token查詢使用者
// Token不存在和被新登入取代的情況一律回傳ErrInvalidSession
func Resolve(db *gorm.DB, raw string) (*models.User, error) {
	if raw == "" {
		return nil, ErrInvalidSession
	}

	var user models.User
	err := db.Where("token = ?", raw).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidSession
		}
		return nil, err
	}

	return &user, nil
}

// 登出，將Token設為NULL
func Invalidate(db *gorm.DB, user *models.User) error {
	err := db.
		Model(&models.User{}).
		Where("id = ?", user.ID).
		Update("token", nil).
		Error
	if err != nil {
		return err
	}

	user.Token = nil
	return nil
}
