package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	FirstName       string     `gorm:"not null" json:"first_name"`
	LastName        string     `json:"last_name"`
	Email           string     `gorm:"unique;not null" json:"email"`
	Mobile          string     `gorm:"unique;not null" json:"mobile"`
	EmailVerifiedAt *time.Time `json:"email_verified_at"`
	Password        string     `gorm:"not null" json:"-"`
	Role            string     `gorm:"default:user" json:"role"`
	//單一有效Session Token，重新登入即覆蓋舊Token
	Token        *string `gorm:"unique" json:"-"`
	FcmToken     string  `json:"fcm_token"`
	Wishlist     []uint  `gorm:"serializer:json" json:"wishlist"`
	ProfileImage string  `json:"profile_image"`
	DateOfBirth  string  `json:"date_of_birth"`
	Address      string  `json:"address"`
	City         string  `json:"city"`
	Street       string  `json:"street"`
	HouseNo      string  `json:"house_no"`
	Zipcode      string  `json:"zipcode"`
	Country      string  `json:"country"`
}
