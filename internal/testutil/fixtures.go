package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/dkoroteev/brawlmate/internal/model"
)

// Telegram IDs come from outside, not from autoincrement, so fixtures
// hand them out from a counter.
var nextUserID int64 = 100000

// TestUser creates a user row with sensible defaults.
func TestUser(t *testing.T, db *gorm.DB, opts ...func(*model.User)) *model.User {
	t.Helper()

	id := atomic.AddInt64(&nextUserID, 1)
	user := &model.User{
		ID:        id,
		Username:  fmt.Sprintf("player_%d", id),
		FirstName: fmt.Sprintf("Player %d", id),
		Language:  "ru",
		Crystals:  100,
		Coins:     50,
	}

	for _, opt := range opts {
		opt(user)
	}

	if err := db.Create(user).Error; err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}

	return user
}

// WithCrystals sets the crystal balance.
func WithCrystals(crystals int) func(*model.User) {
	return func(u *model.User) {
		u.Crystals = crystals
	}
}

// WithCoins sets the coin balance.
func WithCoins(coins int) func(*model.User) {
	return func(u *model.User) {
		u.Coins = coins
	}
}

// WithPremium marks the user premium until the given time (nil = forever).
func WithPremium(until *time.Time) func(*model.User) {
	return func(u *model.User) {
		u.Premium = true
		u.PremiumUntil = until
	}
}

// WithBlocked blocks the user.
func WithBlocked() func(*model.User) {
	return func(u *model.User) {
		u.Blocked = true
	}
}

// WithLanguage sets the interface language.
func WithLanguage(lang string) func(*model.User) {
	return func(u *model.User) {
		u.Language = lang
	}
}

// TestAnnouncement creates an announcement row for the given owner.
func TestAnnouncement(t *testing.T, db *gorm.DB, userID int64, opts ...func(*model.Announcement)) *model.Announcement {
	t.Helper()

	announcement := &model.Announcement{
		UserID:      userID,
		Type:        model.TypeTeam,
		MediaID:     fmt.Sprintf("file_%d", time.Now().UnixNano()%100000),
		MediaKind:   model.MediaPhoto,
		Description: "Looking for serious teammates for trophy pushing every evening",
	}

	for _, opt := range opts {
		opt(announcement)
	}

	if err := db.Create(announcement).Error; err != nil {
		t.Fatalf("Failed to create test announcement: %v", err)
	}

	return announcement
}

// WithType sets the announcement type.
func WithType(announcementType string) func(*model.Announcement) {
	return func(a *model.Announcement) {
		a.Type = announcementType
	}
}

// WithKeyword sets the search keyword.
func WithKeyword(keyword string) func(*model.Announcement) {
	return func(a *model.Announcement) {
		a.Keyword = &keyword
	}
}

// WithMedia sets the media handle and kind.
func WithMedia(mediaID, kind string) func(*model.Announcement) {
	return func(a *model.Announcement) {
		a.MediaID = mediaID
		a.MediaKind = kind
	}
}

// WithCreatedAt backdates the announcement.
func WithCreatedAt(at time.Time) func(*model.Announcement) {
	return func(a *model.Announcement) {
		a.CreatedAt = at
	}
}

// TestPromo creates an active promo code.
func TestPromo(t *testing.T, db *gorm.DB, code string, days, maxUses int, opts ...func(*model.PromoCode)) *model.PromoCode {
	t.Helper()

	promo := &model.PromoCode{
		Code:    code,
		Days:    days,
		MaxUses: maxUses,
		Active:  true,
	}

	for _, opt := range opts {
		opt(promo)
	}

	if err := db.Create(promo).Error; err != nil {
		t.Fatalf("Failed to create test promo: %v", err)
	}

	return promo
}

// WithExpiry sets the promo expiry time.
func WithExpiry(at time.Time) func(*model.PromoCode) {
	return func(p *model.PromoCode) {
		p.ExpiresAt = &at
	}
}

// WithInactive deactivates the promo.
func WithInactive() func(*model.PromoCode) {
	return func(p *model.PromoCode) {
		p.Active = false
	}
}

// TestSponsor creates an active sponsor row.
func TestSponsor(t *testing.T, db *gorm.DB, chatID int64, reward int) *model.Sponsor {
	t.Helper()

	sponsor := &model.Sponsor{
		Title:  fmt.Sprintf("Sponsor %d", chatID),
		ChatID: chatID,
		URL:    "https://t.me/example",
		Reward: reward,
		Active: true,
	}

	if err := db.Create(sponsor).Error; err != nil {
		t.Fatalf("Failed to create test sponsor: %v", err)
	}

	return sponsor
}
