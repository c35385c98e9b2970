package model

import (
	"time"
)

// Sponsor is a partner channel users can subscribe to for a one-time
// coin reward. Seeded from config at startup.
type Sponsor struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	Title     string    `gorm:"size:200;not null" json:"title"`
	ChatID    int64     `gorm:"uniqueIndex;not null" json:"chat_id"`
	URL       string    `gorm:"size:300" json:"url"`
	Reward    int       `gorm:"default:0" json:"reward"`
	Active    bool      `gorm:"default:true" json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

func (Sponsor) TableName() string {
	return "sponsors"
}

// SponsorClaim records that a user already took the reward for a sponsor.
type SponsorClaim struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	UserID    int64     `gorm:"not null;uniqueIndex:idx_sponsor_claim" json:"user_id"`
	SponsorID int64     `gorm:"not null;uniqueIndex:idx_sponsor_claim" json:"sponsor_id"`
	CreatedAt time.Time `json:"created_at"`
}

func (SponsorClaim) TableName() string {
	return "sponsor_claims"
}
