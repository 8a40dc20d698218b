package handlers_test

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/khirastore/ecommerce-api/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestCreateOrderDecrementsInventoryAndClearsCart(t *testing.T) {
	env := setupTestEnv(t)
	user, raw := createVerifiedUser(t, env.db, "buyer@example.com", "0170000001", "user")
	product := createProduct(t, env.db, "kettle", "10.00", 5)

	//先加兩件進購物車
	recorder := doJSON(t, env.router, http.MethodPost, "/api/cart/add", raw, gin.H{
		"product_id": product.ID,
		"quantity":   2,
	})
	require.Equal(t, 200, bodyStatus(t, recorder))

	recorder = doJSON(t, env.router, http.MethodPost, "/api/orders", raw, gin.H{
		"name":           "Buyer",
		"email":          "buyer@example.com",
		"mobile":         "0170000001",
		"address":        "12 Main Road",
		"payment_method": "cod",
		"cart_items": []gin.H{
			{"product_id": product.ID, "quantity": 2, "price": "10.00"},
		},
	})
	require.Equal(t, http.StatusOK, recorder.Code)
	require.Equal(t, 200, bodyStatus(t, recorder))

	body := decodeBody(t, recorder)
	data := body["data"].(map[string]interface{})
	require.Equal(t, "pending", data["status"])

	totalPrice, err := decimal.NewFromString(data["total_price"].(string))
	require.NoError(t, err)
	require.True(t, totalPrice.Equal(decimal.NewFromInt(20)))

	//庫存2件已扣掉
	var updated models.Product
	require.NoError(t, env.db.First(&updated, product.ID).Error)
	require.Equal(t, 3, updated.InventoryQuantity)

	//訂單快照一筆，明細和送單內容一致
	var orders []models.Order
	require.NoError(t, env.db.Where("user_id = ?", user.ID).Find(&orders).Error)
	require.Len(t, orders, 1)
	require.Len(t, orders[0].OrderItems, 1)
	require.Equal(t, product.ID, orders[0].OrderItems[0].ProductID)
	require.Equal(t, "kettle", orders[0].OrderItems[0].ProductName)
	require.Equal(t, 2, orders[0].OrderItems[0].Quantity)
	require.True(t, orders[0].TotalPrice.Equal(orders[0].OrderItems[0].TotalPrice))

	//購物車已清空
	var cartCount int64
	env.db.Model(&models.CartItem{}).Where("user_id = ?", user.ID).Count(&cartCount)
	require.Zero(t, cartCount)
}

func TestCreateOrderInsufficientInventoryRollsBack(t *testing.T) {
	env := setupTestEnv(t)
	user, raw := createVerifiedUser(t, env.db, "buyer2@example.com", "0170000002", "user")
	inStock := createProduct(t, env.db, "mug", "4.50", 10)
	scarce := createProduct(t, env.db, "vase", "25.00", 1)

	recorder := doJSON(t, env.router, http.MethodPost, "/api/cart/add", raw, gin.H{
		"product_id": inStock.ID,
		"quantity":   1,
	})
	require.Equal(t, 200, bodyStatus(t, recorder))

	//第二筆明細超過庫存，整筆訂單必須失敗
	recorder = doJSON(t, env.router, http.MethodPost, "/api/orders", raw, gin.H{
		"name":           "Buyer",
		"email":          "buyer2@example.com",
		"mobile":         "0170000002",
		"address":        "12 Main Road",
		"payment_method": "cod",
		"cart_items": []gin.H{
			{"product_id": inStock.ID, "quantity": 3, "price": "4.50"},
			{"product_id": scarce.ID, "quantity": 2, "price": "25.00"},
		},
	})
	require.Equal(t, http.StatusOK, recorder.Code)
	require.Equal(t, 400, bodyStatus(t, recorder))

	body := decodeBody(t, recorder)
	require.Equal(t, "Only 1 items for product: vase", body["error"])

	//第一筆明細扣掉的庫存也要回滾
	var first, second models.Product
	require.NoError(t, env.db.First(&first, inStock.ID).Error)
	require.NoError(t, env.db.First(&second, scarce.ID).Error)
	require.Equal(t, 10, first.InventoryQuantity)
	require.Equal(t, 1, second.InventoryQuantity)

	var orderCount int64
	env.db.Model(&models.Order{}).Where("user_id = ?", user.ID).Count(&orderCount)
	require.Zero(t, orderCount)

	//購物車原封不動
	var cartCount int64
	env.db.Model(&models.CartItem{}).Where("user_id = ?", user.ID).Count(&cartCount)
	require.EqualValues(t, 1, cartCount)
}

func TestCreateOrderClearsWholeCart(t *testing.T) {
	env := setupTestEnv(t)
	user, raw := createVerifiedUser(t, env.db, "buyer3@example.com", "0170000003", "user")
	ordered := createProduct(t, env.db, "plate", "3.00", 10)
	leftover := createProduct(t, env.db, "bowl", "5.00", 10)

	for _, productID := range []uint{ordered.ID, leftover.ID} {
		recorder := doJSON(t, env.router, http.MethodPost, "/api/cart/add", raw, gin.H{
			"product_id": productID,
			"quantity":   1,
		})
		require.Equal(t, 200, bodyStatus(t, recorder))
	}

	//只下單其中一個商品，整車仍要清空
	recorder := doJSON(t, env.router, http.MethodPost, "/api/orders", raw, gin.H{
		"name":           "Buyer",
		"email":          "buyer3@example.com",
		"mobile":         "0170000003",
		"address":        "12 Main Road",
		"payment_method": "cod",
		"cart_items": []gin.H{
			{"product_id": ordered.ID, "quantity": 1, "price": "3.00"},
		},
	})
	require.Equal(t, 200, bodyStatus(t, recorder))

	var cartCount int64
	env.db.Model(&models.CartItem{}).Where("user_id = ?", user.ID).Count(&cartCount)
	require.Zero(t, cartCount)
}

func TestGetOrdersEmpty(t *testing.T) {
	env := setupTestEnv(t)
	_, raw := createVerifiedUser(t, env.db, "buyer4@example.com", "0170000004", "user")

	recorder := doJSON(t, env.router, http.MethodGet, "/api/user/orders", raw, nil)
	require.Equal(t, 200, bodyStatus(t, recorder))

	body := decodeBody(t, recorder)
	require.Equal(t, "No orders found", body["message"])
	require.Empty(t, body["data"])
}
