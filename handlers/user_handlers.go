package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/khirastore/ecommerce-api/middleware"
	"github.com/khirastore/ecommerce-api/models"
	"github.com/khirastore/ecommerce-api/otp"
	"github.com/khirastore/ecommerce-api/token"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// 組裝使用者回應資料，不含Token
func userPayload(user *models.User, baseURL string) gin.H {
	var profileImage interface{}
	if user.ProfileImage != "" {
		profileImage = baseURL + "/profile_images/" + user.ProfileImage
	}

	wishlist := user.Wishlist
	if wishlist == nil {
		wishlist = []uint{}
	}

	return gin.H{
		"id":                user.ID,
		"first_name":        user.FirstName,
		"last_name":         user.LastName,
		"email":             user.Email,
		"email_verified_at": user.EmailVerifiedAt,
		"mobile":            user.Mobile,
		"fcm_token":         user.FcmToken,
		"role":              user.Role,
		"wishlist":          wishlist,
		"profile_image":     profileImage,
		"date_of_birth":     user.DateOfBirth,
		"address":           user.Address,
		"city":              user.City,
		"street":            user.Street,
		"house_no":          user.HouseNo,
		"zipcode":           user.Zipcode,
		"country":           user.Country,
		"created_at":        user.CreatedAt,
		"updated_at":        user.UpdatedAt,
	}
}

func GetAllUsersHandler(c *gin.Context, db *gorm.DB) {
	var users []models.User
	if err := db.Find(&users).Error; err != nil {
		c.JSON(http.StatusOK, gin.H{
			"status": 500,
			"error":  "Something went wrong. Please try again.",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  200,
		"message": "User list fetched successfully",
		"data":    users,
	})
}

// 生成驗證碼並寄信，註冊和重送共用
func sendOtp(c *gin.Context, store otp.Store, mailer otp.Mailer, email string) {
	code, err := otp.GenerateCode()
	if err != nil {
		c.JSON(http.StatusOK, gin.H{
			"status": 500,
			"error":  "Something went wrong. Please try again.",
		})
		return
	}

	if err := store.Save(c.Request.Context(), email, code); err != nil {
		zap.S().Errorw("儲存OTP失敗", "email", email, "error", err)
		c.JSON(http.StatusOK, gin.H{
			"status": 500,
			"error":  "Something went wrong. Please try again.",
		})
		return
	}

	if err := mailer.SendOTP(email, code); err != nil {
		zap.S().Errorw("寄送OTP失敗", "email", email, "error", err)
		c.JSON(http.StatusOK, gin.H{
			"status": 500,
			"error":  "Something went wrong. Please try again.",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  200,
		"message": "OTP sent to email. Please verify to complete registration.",
	})
}

func CreateUserHandler(c *gin.Context, db *gorm.DB, store otp.Store, mailer otp.Mailer) {
	var req struct {
		FirstName            string `json:"first_name" binding:"required,max=255"`
		LastName             string `json:"last_name" binding:"required,max=255"`
		Email                string `json:"email" binding:"required,email,max=255"`
		Mobile               string `json:"mobile" binding:"required,min=10,max=15"`
		Role                 string `json:"role" binding:"omitempty,oneof=user admin"`
		FcmToken             string `json:"fcm_token"`
		Password             string `json:"password" binding:"required,min=6"`
		PasswordConfirmation string `json:"password_confirmation" binding:"required,eqfield=Password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusOK, gin.H{
			"status": 400,
			"error":  err.Error(),
		})
		return
	}

	//Email已被驗證過的帳號使用則拒絕，未驗證則重送OTP
	var existing models.User
	err := db.Where("email = ?", req.Email).First(&existing).Error
	if err == nil {
		if existing.EmailVerifiedAt != nil {
			c.JSON(http.StatusOK, gin.H{
				"status": 400,
				"error":  "The email has already been taken.",
			})
			return
		}
		sendOtp(c, store, mailer, existing.Email)
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusOK, gin.H{
			"status": 500,
			"error":  "Something went wrong. Please try again.",
		})
		return
	}

	//手機號碼同樣檢查
	err = db.Where("mobile = ?", req.Mobile).First(&existing).Error
	if err == nil {
		if existing.EmailVerifiedAt != nil {
			c.JSON(http.StatusOK, gin.H{
				"status": 400,
				"error":  "The mobile number has already been taken.",
			})
			return
		}
		sendOtp(c, store, mailer, existing.Email)
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusOK, gin.H{
			"status": 500,
			"error":  "Something went wrong. Please try again.",
		})
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{
			"status": 500,
			"error":  "Something went wrong. Please try again.",
		})
		return
	}

	role := req.Role
	if role == "" {
		role = "user"
	}

	newUser := models.User{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Mobile:    req.Mobile,
		Role:      role,
		FcmToken:  req.FcmToken,
		Password:  string(hashedPassword),
	}
	if err := db.Create(&newUser).Error; err != nil {
		c.JSON(http.StatusOK, gin.H{
			"status": 500,
			"error":  "Something went wrong. Please try again.",
		})
		return
	}

	sendOtp(c, store, mailer, newUser.Email)
}

func VerifyOtpHandler(c *gin.Context, db *gorm.DB, store otp.Store, baseURL string) {
	var req struct {
		Email string `json:"email" binding:"required,email"`
		Otp   string `json:"otp" binding:"required,len=4,numeric"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusOK, gin.H{
			"status": 400,
			"error":  err.Error(),
		})
		return
	}

	var user models.User
	err := db.Where("email = ?", req.Email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusOK, gin.H{
				"status": 400,
				"error":  "User not found. Please register first.",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status": 500,
			"error":  "Something went wrong. Please try again.",
		})
		return
	}

	//過期的驗證碼會被TTL清掉，和不存在走同一條路
	code, err := store.Get(c.Request.Context(), req.Email)
	if err != nil {
		if errors.Is(err, otp.ErrNotFound) {
			c.JSON(http.StatusOK, gin.H{
				"status": 400,
				"error":  "OTP not found. Please request a new OTP.",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status": 500,
			"error":  "Something went wrong. Please try again.",
		})
		return
	}

	if code != req.Otp {
		c.JSON(http.StatusOK, gin.H{
			"status": 400,
			"error":  "Invalid OTP.",
		})
		return
	}

	if user.EmailVerifiedAt != nil {
		c.JSON(http.StatusOK, gin.H{
			"status": 400,
			"error":  "Email already verified.",
		})
		return
	}

	now := time.Now()
	err = db.
		Model(&models.User{}).
		Where("id = ?", user.ID).
		Update("email_verified_at", now).
		Error
	if err != nil {
		c.JSON(http.StatusOK, gin.H{
			"status": 500,
			"error":  "Something went wrong. Please try again.",
		})
		return
	}
	user.EmailVerifiedAt = &now

	if err := store.Delete(c.Request.Context(), req.Email); err != nil {
		zap.S().Warnw("刪除OTP失敗", "email", req.Email, "error", err)
	}

	newToken, err := token.Issue(db, &user)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{
			"status": 500,
			"error":  "Something went wrong. Please try again.",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  200,
		"message": "OTP verified successfully!",
		"data": gin.H{
			"token": newToken,
			"user":  userPayload(&user, baseURL),
		},
	})
}

func LoginHandler(c *gin.Context, db *gorm.DB, baseURL string) {
	var req struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required,min=6"`
		FcmToken string `json:"fcm_token"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusOK, gin.H{
			"status": 400,
			"error":  err.Error(),
		})
		return
	}

	var user models.User
	err := db.Where("email = ?", req.Email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusOK, gin.H{
				"status": 400,
				"error":  "Invalid credentials.",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status": 500,
			"error":  "Something went wrong. Please try again.",
		})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		c.JSON(http.StatusOK, gin.H{
			"status": 400,
			"error":  "Invalid credentials.",
		})
		return
	}

	if user.EmailVerifiedAt == nil {
		c.JSON(http.StatusOK, gin.H{
			"status": 400,
			"error":  "Please verify your email before logging in.",
		})
		return
	}

	if req.FcmToken != "" {
		if err := db.Model(&user).Update("fcm_token", req.FcmToken).Error; err != nil {
			zap.S().Warnw("更新FCM Token失敗", "userID", user.ID, "error", err)
		}
		user.FcmToken = req.FcmToken
	}

	//發新Token，其他裝置的舊Session即失效
	newToken, err := token.Issue(db, &user)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{
			"status": 500,
			"error":  "Something went wrong. Please try again.",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  200,
		"message": "Login successful.",
		"data": gin.H{
			"token": newToken,
			"user":  userPayload(&user, baseURL),
		},
	})
}

func LogoutHandler(c *gin.Context, db *gorm.DB) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusOK, gin.H{
			"status": 500,
			"error":  "Something went wrong. Please try again.",
		})
		return
	}

	if err := token.Invalidate(db, user); err != nil {
		c.JSON(http.StatusOK, gin.H{
			"status": 500,
			"error":  "Something went wrong. Please try again.",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  200,
		"message": "Logout successful.",
	})
}

func GetProfileHandler(c *gin.Context, baseURL string) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusOK, gin.H{
			"status": 500,
			"error":  "Something went wrong. Please try again.",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  200,
		"message": "Profile fetched successfully.",
		"data":    userPayload(user, baseURL),
	})
}

func UpdateProfileHandler(c *gin.Context, db *gorm.DB, publicDir, baseURL string) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusOK, gin.H{
			"status": 500,
			"error":  "Something went wrong. Please try again.",
		})
		return
	}

	var req struct {
		FirstName   string `form:"first_name" binding:"omitempty,max=255"`
		LastName    string `form:"last_name" binding:"omitempty,max=255"`
		Mobile      string `form:"mobile" binding:"omitempty,max=15"`
		Email       string `form:"email" binding:"omitempty,email"`
		City        string `form:"city" binding:"omitempty,max=255"`
		Street      string `form:"street" binding:"omitempty,max=255"`
		HouseNo     string `form:"house_no" binding:"omitempty,max=255"`
		Zipcode     string `form:"zipcode" binding:"omitempty,max=10"`
		Country     string `form:"country" binding:"omitempty,max=255"`
		DateOfBirth string `form:"date_of_birth"`
		Address     string `form:"address"`
	}
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"status": 422,
			"error":  err.Error(),
		})
		return
	}

	//新的Email/手機不得和其他使用者重複
	if req.Email != "" && req.Email != user.Email {
		var count int64
		db.Model(&models.User{}).Where("email = ? AND id <> ?", req.Email, user.ID).Count(&count)
		if count > 0 {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"status": 422,
				"error":  "The email has already been taken.",
			})
			return
		}
		user.Email = req.Email
	}
	if req.Mobile != "" && req.Mobile != user.Mobile {
		var count int64
		db.Model(&models.User{}).Where("mobile = ? AND id <> ?", req.Mobile, user.ID).Count(&count)
		if count > 0 {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"status": 422,
				"error":  "The mobile number has already been taken.",
			})
			return
		}
		user.Mobile = req.Mobile
	}

	if file, err := c.FormFile("profile_image"); err == nil {
		fileName, err := saveUploadedImage(c, file, publicDir, "profile_images")
		if err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"status": 422,
				"error":  err.Error(),
			})
			return
		}
		removePublicFile(publicDir, "profile_images", user.ProfileImage)
		user.ProfileImage = fileName
	}

	if req.FirstName != "" {
		user.FirstName = req.FirstName
	}
	if req.LastName != "" {
		user.LastName = req.LastName
	}
	if req.City != "" {
		user.City = req.City
	}
	if req.Street != "" {
		user.Street = req.Street
	}
	if req.HouseNo != "" {
		user.HouseNo = req.HouseNo
	}
	if req.Zipcode != "" {
		user.Zipcode = req.Zipcode
	}
	if req.Country != "" {
		user.Country = req.Country
	}
	if req.DateOfBirth != "" {
		user.DateOfBirth = req.DateOfBirth
	}
	if req.Address != "" {
		user.Address = req.Address
	}

	if err := db.Save(user).Error; err != nil {
		c.JSON(http.StatusOK, gin.H{
			"status": 500,
			"error":  "Something went wrong. Please try again.",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  200,
		"message": "Profile updated successfully.",
		"data":    userPayload(user, baseURL),
	})
}
