package handlers_test

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/khirastore/ecommerce-api/models"
	"github.com/stretchr/testify/require"
)

func TestAddToWishlistIdempotent(t *testing.T) {
	env := setupTestEnv(t)
	user, raw := createVerifiedUser(t, env.db, "wish@example.com", "0172000001", "user")
	product := createProduct(t, env.db, "watch", "99.00", 10)

	for i := 0; i < 2; i++ {
		recorder := doJSON(t, env.router, http.MethodPost, "/api/wishlist/add", raw, gin.H{
			"product_id": product.ID,
		})
		require.Equal(t, 200, bodyStatus(t, recorder))
	}

	var updated models.User
	require.NoError(t, env.db.First(&updated, user.ID).Error)
	require.Equal(t, []uint{product.ID}, updated.Wishlist)
}

func TestAddToWishlistUnknownProduct(t *testing.T) {
	env := setupTestEnv(t)
	_, raw := createVerifiedUser(t, env.db, "wish2@example.com", "0172000002", "user")

	recorder := doJSON(t, env.router, http.MethodPost, "/api/wishlist/add", raw, gin.H{
		"product_id": 4242,
	})
	require.Equal(t, http.StatusNotFound, recorder.Code)
	require.Equal(t, 404, bodyStatus(t, recorder))
}

func TestRemoveFromWishlistNonMemberIsNoOp(t *testing.T) {
	env := setupTestEnv(t)
	user, raw := createVerifiedUser(t, env.db, "wish3@example.com", "0172000003", "user")
	product := createProduct(t, env.db, "ring", "50.00", 10)

	recorder := doJSON(t, env.router, http.MethodPost, "/api/wishlist/add", raw, gin.H{
		"product_id": product.ID,
	})
	require.Equal(t, 200, bodyStatus(t, recorder))

	//移除不在清單內的id也回傳成功，清單不變
	recorder = doJSON(t, env.router, http.MethodPost, "/api/wishlist/remove", raw, gin.H{
		"product_id": 31337,
	})
	require.Equal(t, 200, bodyStatus(t, recorder))

	var updated models.User
	require.NoError(t, env.db.First(&updated, user.ID).Error)
	require.Equal(t, []uint{product.ID}, updated.Wishlist)

	recorder = doJSON(t, env.router, http.MethodPost, "/api/wishlist/remove", raw, gin.H{
		"product_id": product.ID,
	})
	require.Equal(t, 200, bodyStatus(t, recorder))

	require.NoError(t, env.db.First(&updated, user.ID).Error)
	require.Empty(t, updated.Wishlist)
}

func TestGetWishlistReturnsProducts(t *testing.T) {
	env := setupTestEnv(t)
	_, raw := createVerifiedUser(t, env.db, "wish4@example.com", "0172000004", "user")
	first := createProduct(t, env.db, "pen", "2.00", 10)
	second := createProduct(t, env.db, "book", "12.00", 10)

	for _, productID := range []uint{first.ID, second.ID} {
		recorder := doJSON(t, env.router, http.MethodPost, "/api/wishlist/add", raw, gin.H{
			"product_id": productID,
		})
		require.Equal(t, 200, bodyStatus(t, recorder))
	}

	recorder := doJSON(t, env.router, http.MethodGet, "/api/wishlist", raw, nil)
	require.Equal(t, 200, bodyStatus(t, recorder))

	body := decodeBody(t, recorder)
	wishlist := body["wishlist"].([]interface{})
	require.Len(t, wishlist, 2)
}

func TestDeleteProductPurgesWishlists(t *testing.T) {
	env := setupTestEnv(t)
	_, adminRaw := createVerifiedUser(t, env.db, "admin@example.com", "0172000005", "admin")
	user, raw := createVerifiedUser(t, env.db, "wish5@example.com", "0172000006", "user")
	product := createProduct(t, env.db, "mirror", "30.00", 10)
	kept := createProduct(t, env.db, "frame", "7.00", 10)

	for _, productID := range []uint{product.ID, kept.ID} {
		recorder := doJSON(t, env.router, http.MethodPost, "/api/wishlist/add", raw, gin.H{
			"product_id": productID,
		})
		require.Equal(t, 200, bodyStatus(t, recorder))
	}

	//admin刪除商品後，所有使用者的願望清單都不該再有該id
	recorder := doJSON(t, env.router, http.MethodPost, "/api/product/delete", adminRaw, gin.H{
		"id": product.ID,
	})
	require.Equal(t, 200, bodyStatus(t, recorder))

	var updated models.User
	require.NoError(t, env.db.First(&updated, user.ID).Error)
	require.Equal(t, []uint{kept.ID}, updated.Wishlist)
}
