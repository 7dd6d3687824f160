package auth

import (
	"context"
	"errors"
	"time"

	internalmodels "github.com/franciscosanchezn/gin-menu-api/internal/models"
	"github.com/go-oauth2/oauth2/v4"
	oautherrors "github.com/go-oauth2/oauth2/v4/errors"
	"github.com/go-oauth2/oauth2/v4/models"
	"gorm.io/gorm"
)

// ErrCodeGrantUnsupported is returned by the code operations of the token store.
// Owner API clients only use the client credentials grant.
var ErrCodeGrantUnsupported = errors.New("authorization code grant is not supported")

// GormClientStore resolves OAuth2 clients from the oauth_clients table
type GormClientStore struct {
	db *gorm.DB
}

func NewGormClientStore(db *gorm.DB) *GormClientStore {
	return &GormClientStore{db: db}
}

func (s *GormClientStore) GetByID(ctx context.Context, id string) (oauth2.ClientInfo, error) {
	var client internalmodels.OAuthClient
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&client).Error; err != nil {
		return nil, err
	}

	// OAuthClient also implements ClientPasswordVerifier so hashed secrets are compared with bcrypt
	return &client, nil
}

// GormTokenStore persists issued access tokens in the oauth_tokens table
type GormTokenStore struct {
	db *gorm.DB
}

func NewGormTokenStore(db *gorm.DB) *GormTokenStore {
	return &GormTokenStore{db: db}
}

func (s *GormTokenStore) Create(ctx context.Context, info oauth2.TokenInfo) error {
	token := &internalmodels.OAuthToken{
		ClientID:    info.GetClientID(),
		AccessToken: info.GetAccess(),
		Scopes:      info.GetScope(),
		ExpiresAt:   info.GetAccessCreateAt().Add(info.GetAccessExpiresIn()),
	}
	if userID := info.GetUserID(); userID != "" {
		token.UserID = &userID
	}
	if refresh := info.GetRefresh(); refresh != "" {
		token.RefreshToken = &refresh
	}

	return s.db.WithContext(ctx).Create(token).Error
}

func (s *GormTokenStore) RemoveByAccess(ctx context.Context, access string) error {
	return s.db.WithContext(ctx).Where("access_token = ?", access).Delete(&internalmodels.OAuthToken{}).Error
}

func (s *GormTokenStore) RemoveByRefresh(ctx context.Context, refresh string) error {
	return s.db.WithContext(ctx).Where("refresh_token = ?", refresh).Delete(&internalmodels.OAuthToken{}).Error
}

func (s *GormTokenStore) GetByAccess(ctx context.Context, access string) (oauth2.TokenInfo, error) {
	var token internalmodels.OAuthToken
	if err := s.db.WithContext(ctx).Where("access_token = ?", access).First(&token).Error; err != nil {
		return nil, err
	}
	if token.Expired(time.Now()) {
		return nil, oautherrors.ErrExpiredAccessToken
	}
	return toTokenInfo(token), nil
}

func (s *GormTokenStore) GetByRefresh(ctx context.Context, refresh string) (oauth2.TokenInfo, error) {
	var token internalmodels.OAuthToken
	if err := s.db.WithContext(ctx).Where("refresh_token = ?", refresh).First(&token).Error; err != nil {
		return nil, err
	}
	return toTokenInfo(token), nil
}

func (s *GormTokenStore) GetByCode(ctx context.Context, code string) (oauth2.TokenInfo, error) {
	return nil, ErrCodeGrantUnsupported
}

func (s *GormTokenStore) RemoveByCode(ctx context.Context, code string) error {
	return ErrCodeGrantUnsupported
}

// DeleteExpired removes tokens that expired before now and returns how many were removed
func (s *GormTokenStore) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	result := s.db.WithContext(ctx).Where("expires_at < ?", now).Delete(&internalmodels.OAuthToken{})
	return result.RowsAffected, result.Error
}

func toTokenInfo(token internalmodels.OAuthToken) *models.Token {
	info := &models.Token{
		ClientID:        token.ClientID,
		Access:          token.AccessToken,
		AccessCreateAt:  token.CreatedAt,
		AccessExpiresIn: token.ExpiresAt.Sub(token.CreatedAt),
		Scope:           token.Scopes,
	}
	if token.UserID != nil {
		info.UserID = *token.UserID
	}
	if token.RefreshToken != nil {
		info.Refresh = *token.RefreshToken
	}
	return info
}
