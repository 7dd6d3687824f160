package models

import (
	"time"
)

// OAuthToken records an issued access token so it can be looked up and purged
type OAuthToken struct {
	ID           uint      `gorm:"primaryKey"`
	ClientID     string    `gorm:"index;not null"`
	// Owner id, nil when the client was unbound
	UserID       *string
	AccessToken  string    `gorm:"uniqueIndex;not null"`
	RefreshToken *string   `gorm:"index"`
	Scopes       string
	ExpiresAt    time.Time `gorm:"index;not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (OAuthToken) TableName() string {
	return "oauth_tokens"
}

// Expired reports whether the token can no longer be used at now
func (t OAuthToken) Expired(now time.Time) bool {
	return !t.ExpiresAt.After(now)
}
