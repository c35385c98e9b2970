package model

import (
	"time"
)

// Report reasons. Closed set.
const (
	ReasonSpam      = "spam"
	ReasonOffensive = "offensive"
	ReasonFraud     = "fraud"
	ReasonOther     = "other"
)

var ReportReasons = []string{ReasonSpam, ReasonOffensive, ReasonFraud, ReasonOther}

func ValidReportReason(r string) bool {
	for _, v := range ReportReasons {
		if v == r {
			return true
		}
	}
	return false
}

// Favorite is a (user, announcement) bookmark, unique per pair,
// displayed in insertion order.
type Favorite struct {
	ID             int64     `gorm:"primaryKey" json:"id"`
	UserID         int64     `gorm:"not null;uniqueIndex:idx_fav_pair" json:"user_id"`
	AnnouncementID int64     `gorm:"not null;uniqueIndex:idx_fav_pair" json:"announcement_id"`
	CreatedAt      time.Time `json:"created_at"`
}

func (Favorite) TableName() string {
	return "favorites"
}

// Report is append-only. Recorded per announcement, but its effect is
// owner-wide: one report hides everything by that owner from the
// reporter's rotation.
type Report struct {
	ID             int64     `gorm:"primaryKey" json:"id"`
	UserID         int64     `gorm:"not null;uniqueIndex:idx_report_pair" json:"user_id"`
	AnnouncementID int64     `gorm:"not null;uniqueIndex:idx_report_pair" json:"announcement_id"`
	Reason         string    `gorm:"size:20;not null" json:"reason"`
	CreatedAt      time.Time `json:"created_at"`
}

func (Report) TableName() string {
	return "reports"
}

// Referral links a referred user to the referrer. ReferredID is unique
// system-wide: a user can be referred only once, ever.
type Referral struct {
	ID         int64     `gorm:"primaryKey" json:"id"`
	ReferrerID int64     `gorm:"not null;index" json:"referrer_id"`
	ReferredID int64     `gorm:"not null;uniqueIndex" json:"referred_id"`
	CreatedAt  time.Time `json:"created_at"`
}

func (Referral) TableName() string {
	return "referrals"
}
