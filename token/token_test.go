package token_test

import (
	"fmt"
	"regexp"
	"testing"

	"github.com/khirastore/ecommerce-api/config"
	"github.com/khirastore/ecommerce-api/models"
	"github.com/khirastore/ecommerce-api/token"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var tokenPattern = regexp.MustCompile(`^\d+\|[0-9a-f]{64}$`)

func setupTokenDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, config.MigrateModels(db))
	return db
}

func createTokenUser(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()
	user := models.User{
		FirstName: "Wei",
		LastName:  "Chen",
		Email:     email,
		Mobile:    "09" + email[:8],
		Password:  "irrelevant",
		Role:      "user",
	}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

func TestIssueFormatAndCounter(t *testing.T) {
	db := setupTokenDB(t)
	user := createTokenUser(t, db, "fmt@example.com")

	first, err := token.Issue(db, user)
	require.NoError(t, err)
	require.Regexp(t, tokenPattern, first)

	second, err := token.Issue(db, user)
	require.NoError(t, err)
	require.Regexp(t, tokenPattern, second)
	require.NotEqual(t, first, second)

	var counter models.TokenCounter
	require.NoError(t, db.First(&counter).Error)
	require.EqualValues(t, 2, counter.LastNumber)
}

func TestIssueSupersedesPreviousToken(t *testing.T) {
	db := setupTokenDB(t)
	user := createTokenUser(t, db, "old@example.com")

	old, err := token.Issue(db, user)
	require.NoError(t, err)

	fresh, err := token.Issue(db, user)
	require.NoError(t, err)

	_, err = token.Resolve(db, old)
	require.ErrorIs(t, err, token.ErrInvalidSession)

	resolved, err := token.Resolve(db, fresh)
	require.NoError(t, err)
	require.Equal(t, user.ID, resolved.ID)
}

func TestResolveUnknownToken(t *testing.T) {
	db := setupTokenDB(t)

	_, err := token.Resolve(db, "1|deadbeef")
	require.ErrorIs(t, err, token.ErrInvalidSession)

	_, err = token.Resolve(db, "")
	require.ErrorIs(t, err, token.ErrInvalidSession)
}

func TestInvalidate(t *testing.T) {
	db := setupTokenDB(t)
	user := createTokenUser(t, db, "inv@example.com")

	raw, err := token.Issue(db, user)
	require.NoError(t, err)

	require.NoError(t, token.Invalidate(db, user))
	require.Nil(t, user.Token)

	_, err = token.Resolve(db, raw)
	require.ErrorIs(t, err, token.ErrInvalidSession)
}

func TestTokensUniqueAcrossUsers(t *testing.T) {
	db := setupTokenDB(t)
	first := createTokenUser(t, db, "aaa@example.com")
	second := createTokenUser(t, db, "bbb@example.com")

	firstToken, err := token.Issue(db, first)
	require.NoError(t, err)
	secondToken, err := token.Issue(db, second)
	require.NoError(t, err)
	require.NotEqual(t, firstToken, secondToken)

	resolved, err := token.Resolve(db, firstToken)
	require.NoError(t, err)
	require.Equal(t, first.ID, resolved.ID)

	resolved, err = token.Resolve(db, secondToken)
	require.NoError(t, err)
	require.Equal(t, second.ID, resolved.ID)
}
