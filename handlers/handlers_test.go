package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/khirastore/ecommerce-api/config"
	"github.com/khirastore/ecommerce-api/models"
	"github.com/khirastore/ecommerce-api/otp"
	"github.com/khirastore/ecommerce-api/routers"
	"github.com/khirastore/ecommerce-api/token"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func itoa(id uint) string {
	return fmt.Sprintf("%d", id)
}

// 記憶體版OTP儲存，測試用
type memoryOTPStore struct {
	mu    sync.Mutex
	codes map[string]string
}

func newMemoryOTPStore() *memoryOTPStore {
	return &memoryOTPStore{codes: make(map[string]string)}
}

func (s *memoryOTPStore) Save(_ context.Context, email, code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.codes[email] = code
	return nil
}

func (s *memoryOTPStore) Get(_ context.Context, email string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	code, ok := s.codes[email]
	if !ok {
		return "", otp.ErrNotFound
	}
	return code, nil
}

func (s *memoryOTPStore) Delete(_ context.Context, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.codes, email)
	return nil
}

// 不寄信，只記下最後一組驗證碼
type fakeMailer struct {
	mu       sync.Mutex
	lastTo   string
	lastCode string
}

func (m *fakeMailer) SendOTP(to, code string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastTo = to
	m.lastCode = code
	return nil
}

func (m *fakeMailer) last() (string, string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastTo, m.lastCode
}

type testEnv struct {
	router   *gin.Engine
	db       *gorm.DB
	otpStore *memoryOTPStore
	mailer   *fakeMailer
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, config.MigrateModels(db))

	cfg := config.Config{
		Server: config.ServerConfig{
			Port:      "3000",
			BaseURL:   "http://localhost:3000",
			PublicDir: t.TempDir(),
		},
	}

	otpStore := newMemoryOTPStore()
	mailer := &fakeMailer{}
	router := routers.SetupRouters(db, otpStore, mailer, cfg)

	return &testEnv{
		router:   router,
		db:       db,
		otpStore: otpStore,
		mailer:   mailer,
	}
}

// 建立已驗證的使用者並發Token
func createVerifiedUser(t *testing.T, db *gorm.DB, email, mobile, role string) (*models.User, string) {
	t.Helper()

	hashed, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	require.NoError(t, err)

	now := time.Now()
	user := models.User{
		FirstName:       "Test",
		LastName:        "User",
		Email:           email,
		Mobile:          mobile,
		Password:        string(hashed),
		Role:            role,
		EmailVerifiedAt: &now,
		City:            "Dhaka",
		Street:          "Main Road",
		HouseNo:         "12",
		Zipcode:         "1207",
		Country:         "Bangladesh",
	}
	require.NoError(t, db.Create(&user).Error)

	raw, err := token.Issue(db, &user)
	require.NoError(t, err)

	return &user, raw
}

func createProduct(t *testing.T, db *gorm.DB, name string, price string, inventory int) *models.Product {
	t.Helper()

	category := models.Category{Name: name + " category"}
	require.NoError(t, db.Create(&category).Error)
	subCategory := models.SubCategory{CategoryID: category.ID, Name: name + " sub"}
	require.NoError(t, db.Create(&subCategory).Error)

	product := models.Product{
		Name:              name,
		Description:       "test product",
		Price:             decimal.RequireFromString(price),
		ImageURL:          "http://localhost:3000/products/image_url/" + name + ".jpg",
		CategoryID:        category.ID,
		SubCategoryID:     subCategory.ID,
		InventoryQuantity: inventory,
		LowStockThreshold: 5,
		Sku:               "SKU-" + name,
	}
	require.NoError(t, db.Create(&product).Error)
	return &product
}

func doJSON(t *testing.T, router *gin.Engine, method, path, bearer string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func decodeBody(t *testing.T, recorder *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	return body
}

func bodyStatus(t *testing.T, recorder *httptest.ResponseRecorder) int {
	t.Helper()

	body := decodeBody(t, recorder)
	status, ok := body["status"].(float64)
	require.True(t, ok, "response has no status field: %s", recorder.Body.String())
	return int(status)
}

func TestMissingBearerRejected(t *testing.T) {
	env := setupTestEnv(t)

	recorder := doJSON(t, env.router, http.MethodGet, "/api/cart", "", nil)
	require.Equal(t, http.StatusBadRequest, recorder.Code)

	body := decodeBody(t, recorder)
	require.Equal(t, "Bearer token is required.", body["error"])
}

func TestInvalidTokenRejected(t *testing.T) {
	env := setupTestEnv(t)

	recorder := doJSON(t, env.router, http.MethodGet, "/api/cart", "1|deadbeef", nil)
	require.Equal(t, http.StatusOK, recorder.Code)
	require.Equal(t, 401, bodyStatus(t, recorder))

	body := decodeBody(t, recorder)
	require.Equal(t, "Your account is logged in on another device.", body["error"])
}

func TestAdminRouteForbiddenForUser(t *testing.T) {
	env := setupTestEnv(t)
	_, raw := createVerifiedUser(t, env.db, "user@example.com", "0170000000", "user")

	recorder := doJSON(t, env.router, http.MethodPost, "/api/misc", raw, gin.H{"name": "Gadgets"})
	require.Equal(t, http.StatusOK, recorder.Code)
	require.Equal(t, 403, bodyStatus(t, recorder))
}
