package model

import (
	"time"
)

// PromoCode grants a fixed premium duration. Days == 0 means forever.
// Active can be flipped by an administrator at any time; it is also
// flipped off automatically the moment Uses reaches MaxUses.
type PromoCode struct {
	ID        int64      `gorm:"primaryKey" json:"id"`
	Code      string     `gorm:"size:64;uniqueIndex;not null" json:"code"` // stored upper-cased
	Days      int        `gorm:"not null" json:"days"`
	MaxUses   int        `gorm:"not null" json:"max_uses"`
	Uses      int        `gorm:"default:0;not null" json:"uses"`
	Active    bool       `gorm:"default:true" json:"active"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

func (PromoCode) TableName() string {
	return "promo_codes"
}

// PromoUse prevents a second redemption of the same code by the same user.
type PromoUse struct {
	ID          int64     `gorm:"primaryKey" json:"id"`
	PromoCodeID int64     `gorm:"not null;uniqueIndex:idx_promo_use_pair" json:"promo_code_id"`
	UserID      int64     `gorm:"not null;uniqueIndex:idx_promo_use_pair" json:"user_id"`
	CreatedAt   time.Time `json:"created_at"`
}

func (PromoUse) TableName() string {
	return "promo_uses"
}
