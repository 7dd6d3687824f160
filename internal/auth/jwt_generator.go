package auth

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/franciscosanchezn/gin-menu-api/internal/services"
	"github.com/go-oauth2/oauth2/v4"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"
)

// ErrNoOwner is returned when a token is requested by a client that is not bound to a menu owner
var ErrNoOwner = errors.New("client is not bound to a menu owner")

// AccessClaims is the payload of an issued access token, the owner and role are read by middleware.OAuth2Auth
type AccessClaims struct {
	UID   string `json:"uid"`
	Role  string `json:"role"`
	Scope string `json:"scope,omitempty"`
	jwt.RegisteredClaims
}

// OwnerJWTAccessGenerate implements oauth2.AccessGenerate with tokens bound to the client's owner
type OwnerJWTAccessGenerate struct {
	key    []byte
	method jwt.SigningMethod
	users  services.UserService
}

func NewOwnerJWTAccessGenerate(key []byte, method jwt.SigningMethod, users services.UserService) *OwnerJWTAccessGenerate {
	return &OwnerJWTAccessGenerate{key: key, method: method, users: users}
}

// Token is called by the oauth2 manager for every issued token
func (g *OwnerJWTAccessGenerate) Token(ctx context.Context, data *oauth2.GenerateBasic, isGenRefresh bool) (string, string, error) {
	// client_credentials requests carry no user; the client acts for its owner
	uid := data.UserID
	if uid == "" {
		uid = data.Client.GetUserID()
	}
	if uid == "" {
		return "", "", ErrNoOwner
	}

	// Read on every issue so a demoted owner never keeps admin tokens
	role, err := g.ownerRole(ctx, uid)
	if err != nil {
		return "", "", err
	}

	createdAt := data.TokenInfo.GetAccessCreateAt()
	claims := AccessClaims{
		UID:   uid,
		Role:  role,
		Scope: data.TokenInfo.GetScope(),
		RegisteredClaims: jwt.RegisteredClaims{
			Audience:  jwt.ClaimStrings{data.Client.GetID()},
			IssuedAt:  jwt.NewNumericDate(createdAt),
			ExpiresAt: jwt.NewNumericDate(createdAt.Add(data.TokenInfo.GetAccessExpiresIn())),
		},
	}
	access, err := jwt.NewWithClaims(g.method, claims).SignedString(g.key)
	if err != nil {
		return "", "", fmt.Errorf("sign access token: %w", err)
	}

	var refresh string
	if isGenRefresh {
		refreshCreatedAt := data.TokenInfo.GetRefreshCreateAt()
		refreshClaims := jwt.RegisteredClaims{
			ID:        access,
			ExpiresAt: jwt.NewNumericDate(refreshCreatedAt.Add(data.TokenInfo.GetRefreshExpiresIn())),
		}
		refresh, err = jwt.NewWithClaims(g.method, refreshClaims).SignedString(g.key)
		if err != nil {
			return "", "", fmt.Errorf("sign refresh token: %w", err)
		}
	}

	return access, refresh, nil
}

func (g *OwnerJWTAccessGenerate) ownerRole(ctx context.Context, uid string) (string, error) {
	id, err := strconv.ParseUint(uid, 10, 32)
	if err != nil {
		return "", fmt.Errorf("invalid owner id %q: %w", uid, err)
	}

	owner, err := g.users.GetUserByID(ctx, uint(id))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", fmt.Errorf("owner %d: %w", id, ErrNoOwner)
	}
	if err != nil {
		return "", fmt.Errorf("load owner %d: %w", id, err)
	}

	if owner.Role == "" {
		return "user", nil
	}
	return owner.Role, nil
}
