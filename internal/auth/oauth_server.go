package auth

import (
	"context"
	"time"

	"github.com/franciscosanchezn/gin-menu-api/internal/services"
	"github.com/go-oauth2/oauth2/v4"
	"github.com/go-oauth2/oauth2/v4/errors"
	"github.com/go-oauth2/oauth2/v4/manage"
	"github.com/go-oauth2/oauth2/v4/server"
	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var log = logrus.New()

func init() {
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetLevel(logrus.InfoLevel)
}

// SetLogLevel adjusts the verbosity of the token endpoint logger
func SetLogLevel(level logrus.Level) {
	log.SetLevel(level)
}

// AccessTokenTTL is the lifetime of access tokens issued to owner API clients
const AccessTokenTTL = 2 * time.Hour

// OAuthService issues JWT access tokens to the API clients of menu owners
type OAuthService struct {
	server  *server.Server
	clients *GormClientStore
	tokens  *GormTokenStore
}

func NewOAuthService(db *gorm.DB, jwtSecret string) *OAuthService {
	manager := manage.NewDefaultManager()
	manager.SetClientTokenCfg(&manage.Config{AccessTokenExp: AccessTokenTTL})

	// JWT access tokens carry the owner id and role read by middleware.OAuth2Auth
	manager.MapAccessGenerate(NewOwnerJWTAccessGenerate([]byte(jwtSecret), jwt.SigningMethodHS256, services.NewUserService(db)))

	// Configure token store
	tokenStore := NewGormTokenStore(db)
	manager.MustTokenStorage(tokenStore, nil)

	// Configure client store
	clientStore := NewGormClientStore(db)
	manager.MapClientStorage(clientStore)

	srv := server.NewDefaultServer(manager)
	srv.SetAllowGetAccessRequest(false)
	srv.SetAllowedGrantType(oauth2.ClientCredentials)
	srv.SetClientInfoHandler(server.ClientFormHandler)
	srv.SetInternalErrorHandler(func(err error) *errors.Response {
		log.WithError(err).Error("OAuth2 internal error")
		return nil
	})

	return &OAuthService{
		server:  srv,
		clients: clientStore,
		tokens:  tokenStore,
	}
}

func (o *OAuthService) GetServer() *server.Server {
	return o.server
}

// PurgeExpiredTokens removes access tokens that can no longer be used
func (o *OAuthService) PurgeExpiredTokens(ctx context.Context) error {
	removed, err := o.tokens.DeleteExpired(ctx, time.Now())
	if err != nil {
		return err
	}
	log.WithField("removed", removed).Info("Expired access tokens purged")
	return nil
}
