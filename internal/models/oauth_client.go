package models

import (
	"strconv"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// OAuthClient is an API client registered by a restaurant owner
type OAuthClient struct {
	ID         string `gorm:"primaryKey"`
	Secret     string `gorm:"not null"` // bcrypt hash
	Name       string
	Domain     string
	UserID     uint   // owner the issued tokens act for
	Scopes     string // space-separated list of allowed scopes
	GrantTypes string // space-separated list, currently only "client_credentials"
	CreatedAt  time.Time
	UpdatedAt  time.Time
	DeletedAt  gorm.DeletedAt `gorm:"index"`
}

func (OAuthClient) TableName() string {
	return "oauth_clients"
}

// GetID implements oauth2.ClientInfo
func (c *OAuthClient) GetID() string {
	return c.ID
}

// GetSecret implements oauth2.ClientInfo
func (c *OAuthClient) GetSecret() string {
	return c.Secret
}

// GetDomain implements oauth2.ClientInfo
func (c *OAuthClient) GetDomain() string {
	return c.Domain
}

// IsPublic implements oauth2.ClientInfo
func (c *OAuthClient) IsPublic() bool {
	return false
}

// GetUserID implements oauth2.ClientInfo
func (c *OAuthClient) GetUserID() string {
	if c.UserID == 0 {
		return ""
	}
	return strconv.FormatUint(uint64(c.UserID), 10)
}

// VerifyPassword implements oauth2.ClientPasswordVerifier against the stored bcrypt hash
func (c *OAuthClient) VerifyPassword(secret string) bool {
	return bcrypt.CompareHashAndPassword([]byte(c.Secret), []byte(secret)) == nil
}
