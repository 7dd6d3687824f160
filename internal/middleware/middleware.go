package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/franciscosanchezn/gin-menu-api/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// Context keys set by OAuth2Auth
const (
	ContextUserID   = "userID"
	ContextUserRole = "userRole"
	ContextClientID = "clientID"
	ContextScopes   = "scopes"
)

var allowedRoles = map[string]bool{
	"admin": true,
	"user":  true,
}

// accessClaims is the payload of the access tokens issued by /oauth/token
type accessClaims struct {
	UID   string `json:"uid"`
	Role  string `json:"role"`
	Scope string `json:"scope,omitempty"`
	jwt.RegisteredClaims
}

// OAuth2Auth validates Bearer access tokens (RFC 6750) and puts the menu owner,
// role, client and scopes of the token on the request context.
func OAuth2Auth(jwtSecret []byte) gin.HandlerFunc {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{"HS256", "HS384", "HS512"}),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
	)
	keyFunc := func(*jwt.Token) (interface{}, error) { return jwtSecret, nil }

	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			respondWithOAuth2Error(c, http.StatusUnauthorized, "authorization_required",
				"Missing Authorization header. A valid Bearer token is required.")
			return
		}

		tokenString, found := strings.CutPrefix(authHeader, "Bearer ")
		if !found {
			respondWithOAuth2Error(c, http.StatusUnauthorized, "invalid_request",
				"Authorization header must use Bearer scheme. Format: 'Bearer <token>'")
			return
		}
		if tokenString == "" {
			respondWithOAuth2Error(c, http.StatusUnauthorized, "invalid_token", "Bearer token is empty")
			return
		}

		var claims accessClaims
		if _, err := parser.ParseWithClaims(tokenString, &claims, keyFunc); err != nil {
			respondWithOAuth2Error(c, http.StatusUnauthorized, "invalid_token", describeTokenError(err))
			return
		}

		if err := setOwner(c, &claims); err != nil {
			respondWithOAuth2Error(c, http.StatusUnauthorized, "invalid_token", err.Error())
			return
		}

		c.Next()
	}
}

func respondWithOAuth2Error(c *gin.Context, status int, errorCode, description string) {
	if status == http.StatusUnauthorized {
		c.Header("WWW-Authenticate", fmt.Sprintf("Bearer error=%q", errorCode))
	}
	c.AbortWithStatusJSON(status, models.NewOAuth2Error(errorCode, description))
}

func describeTokenError(err error) string {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return "token has expired"
	case errors.Is(err, jwt.ErrTokenRequiredClaimMissing):
		return "token is missing its expiry"
	case errors.Is(err, jwt.ErrTokenUsedBeforeIssued), errors.Is(err, jwt.ErrTokenNotValidYet):
		return "token is not valid yet"
	case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrTokenUnverifiable):
		return "token signature is invalid"
	default:
		return "token could not be parsed"
	}
}

// setOwner copies the validated claims into the gin context
func setOwner(c *gin.Context, claims *accessClaims) error {
	if claims.UID == "" {
		return errors.New("token missing required 'uid' claim")
	}
	userID, err := strconv.ParseUint(claims.UID, 10, 32)
	if err != nil || userID == 0 {
		return fmt.Errorf("invalid uid claim %q", claims.UID)
	}

	if !allowedRoles[claims.Role] {
		return fmt.Errorf("invalid role %q, allowed roles: admin, user", claims.Role)
	}

	c.Set(ContextUserID, uint(userID))
	c.Set(ContextUserRole, claims.Role)
	if len(claims.Audience) > 0 && claims.Audience[0] != "" {
		c.Set(ContextClientID, claims.Audience[0])
	}
	if claims.Scope != "" {
		c.Set(ContextScopes, claims.Scope)
	}
	return nil
}

// CurrentUserID returns the authenticated menu owner set by OAuth2Auth
func CurrentUserID(c *gin.Context) (uint, bool) {
	value, exists := c.Get(ContextUserID)
	if !exists {
		return 0, false
	}
	userID, ok := value.(uint)
	if !ok || userID == 0 {
		return 0, false
	}
	return userID, true
}
