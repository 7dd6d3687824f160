package models

import (
	"time"
)

// Subscription tiers
const (
	TierFree = "free"
	TierPro  = "pro"
)

type User struct {
	ID                 uint      `gorm:"primaryKey" json:"id"`
	Email              string    `gorm:"uniqueIndex;not null" json:"email"`
	Name               string    `json:"name"`
	Role               string    `gorm:"default:'user'" json:"role"`
	Tier               string    `gorm:"default:'free'" json:"tier"`
	SubscriptionStatus string    `gorm:"default:'active'" json:"subscriptionStatus"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}
