package models

import "time"

// TierLimits are the monthly allowances of a subscription tier
type TierLimits struct {
	DishesPerMonth int `json:"dishesPerMonth"`
	ImagesPerDish  int `json:"imagesPerDish"`
}

var tierLimits = map[string]TierLimits{
	TierFree: {DishesPerMonth: 30, ImagesPerDish: 3},
	TierPro:  {DishesPerMonth: 300, ImagesPerDish: 10},
}

// LimitsForTier returns the limits of tier, falling back to the free tier
func LimitsForTier(tier string) TierLimits {
	if limits, ok := tierLimits[tier]; ok {
		return limits
	}
	return tierLimits[TierFree]
}

// UsageSnapshot is the read-only usage and subscription view shown on the dashboard
type UsageSnapshot struct {
	Tier            string     `json:"tier"`
	Status          string     `json:"status"`
	DishesUsed      int        `json:"dishesUsed"`
	ImagesUsed      int        `json:"imagesUsed"`
	DishesRemaining int        `json:"dishesRemaining"`
	Limits          TierLimits `json:"limits"`
}

// UsageRecord is an append-only ledger row written when dishes or images are created.
// Rows outlive the items they count, so deleting a dish never returns allowance.
type UsageRecord struct {
	ID        uint      `gorm:"primaryKey"`
	OwnerID   uint      `gorm:"index:idx_usage_owner_created;not null"`
	ItemID    string    `gorm:"size:36"`
	Dishes    int       `gorm:"not null;default:0"`
	Images    int       `gorm:"not null;default:0"`
	CreatedAt time.Time `gorm:"index:idx_usage_owner_created"`
}

func (UsageRecord) TableName() string {
	return "usage_records"
}

// UsageTotals sums usage records over a period
type UsageTotals struct {
	Dishes int
	Images int
}
