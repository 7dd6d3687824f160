package auth

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/franciscosanchezn/gin-menu-api/internal/models"
	"github.com/go-oauth2/oauth2/v4"
	oautherrors "github.com/go-oauth2/oauth2/v4/errors"
	oauthmodels "github.com/go-oauth2/oauth2/v4/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testJWTSecret = "test-jwt-secret-key-32-characters"

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(&models.User{}, &models.OAuthClient{}, &models.OAuthToken{})
	require.NoError(t, err)

	return db
}

// createOwnerClient stores an owner with role and a client bound to it
func createOwnerClient(t *testing.T, db *gorm.DB, role, clientID, secret string) *models.User {
	owner := &models.User{
		Email: clientID + "@example.com",
		Name:  "Owner " + clientID,
		Role:  role,
	}
	require.NoError(t, db.Create(owner).Error)

	hashedSecret, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	require.NoError(t, err)

	client := &models.OAuthClient{
		ID:         clientID,
		Secret:     string(hashedSecret),
		Domain:     "http://localhost",
		Scopes:     "menu:read menu:write",
		UserID:     owner.ID,
		GrantTypes: "client_credentials",
	}
	require.NoError(t, db.Create(client).Error)
	return owner
}

func TestOAuthServerInitialization(t *testing.T) {
	db := setupTestDB(t)

	oauthService := NewOAuthService(db, testJWTSecret)
	assert.NotNil(t, oauthService)
	assert.NotNil(t, oauthService.GetServer())
}

func TestJWTTokenGeneration(t *testing.T) {
	db := setupTestDB(t)
	oauthService := NewOAuthService(db, testJWTSecret)
	owner := createOwnerClient(t, db, "admin", "test_client", "test_secret")

	tokenInfo, err := oauthService.GetServer().Manager.GenerateAccessToken(context.Background(), oauth2.ClientCredentials, &oauth2.TokenGenerateRequest{
		ClientID:     "test_client",
		ClientSecret: "test_secret",
		Scope:        "menu:read",
	})
	require.NoError(t, err)
	require.NotNil(t, tokenInfo)

	var claims AccessClaims
	_, err = jwt.ParseWithClaims(tokenInfo.GetAccess(), &claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(testJWTSecret), nil
	})
	require.NoError(t, err)

	assert.Equal(t, jwt.ClaimStrings{"test_client"}, claims.Audience)
	assert.Equal(t, strconv.FormatUint(uint64(owner.ID), 10), claims.UID)
	assert.Equal(t, "admin", claims.Role)
	assert.Equal(t, "menu:read", claims.Scope)
	require.NotNil(t, claims.ExpiresAt)
	assert.WithinDuration(t, claims.IssuedAt.Add(AccessTokenTTL), claims.ExpiresAt.Time, time.Second)
}

func TestJWTTokenGenerationWithoutOwner(t *testing.T) {
	db := setupTestDB(t)
	oauthService := NewOAuthService(db, testJWTSecret)

	hashedSecret, err := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.DefaultCost)
	require.NoError(t, err)
	require.NoError(t, db.Create(&models.OAuthClient{ID: "orphan", Secret: string(hashedSecret)}).Error)

	_, err = oauthService.GetServer().Manager.GenerateAccessToken(context.Background(), oauth2.ClientCredentials, &oauth2.TokenGenerateRequest{
		ClientID:     "orphan",
		ClientSecret: "secret",
	})
	assert.Error(t, err)
}

func TestClientStoreIntegration(t *testing.T) {
	db := setupTestDB(t)

	client := &models.OAuthClient{
		ID:     "integration_test_client",
		Secret: "integration_test_secret",
		Domain: "http://localhost:8080",
		Scopes: "menu:read",
		UserID: 7,
	}
	require.NoError(t, db.Create(client).Error)

	clientStore := NewGormClientStore(db)

	retrievedClient, err := clientStore.GetByID(context.Background(), "integration_test_client")
	require.NoError(t, err)
	assert.Equal(t, "7", retrievedClient.GetUserID())
	assert.False(t, retrievedClient.IsPublic())

	_, err = clientStore.GetByID(context.Background(), "missing")
	assert.Error(t, err)
}

func TestTokenStore(t *testing.T) {
	db := setupTestDB(t)
	store := NewGormTokenStore(db)
	ctx := context.Background()

	now := time.Now()
	for access, expiresIn := range map[string]time.Duration{"live": time.Hour, "stale": -time.Hour} {
		info := oauthmodels.NewToken()
		info.SetClientID("client")
		info.SetAccess(access)
		info.SetAccessCreateAt(now)
		info.SetAccessExpiresIn(expiresIn)
		require.NoError(t, store.Create(ctx, info))
	}

	live, err := store.GetByAccess(ctx, "live")
	require.NoError(t, err)
	assert.Equal(t, "client", live.GetClientID())
	assert.Equal(t, "", live.GetUserID())

	_, err = store.GetByAccess(ctx, "stale")
	assert.ErrorIs(t, err, oautherrors.ErrExpiredAccessToken)

	removed, err := store.DeleteExpired(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)

	_, err = store.GetByAccess(ctx, "stale")
	assert.Error(t, err)

	_, err = store.GetByCode(ctx, "code")
	assert.ErrorIs(t, err, ErrCodeGrantUnsupported)
}
