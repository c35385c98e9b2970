package model

import (
	"time"
)

// Achievement is a catalog row seeded at startup. Titles and
// descriptions live in locale files, keyed by Code.
type Achievement struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	Code      string    `gorm:"size:40;uniqueIndex;not null" json:"code"`
	Position  int       `gorm:"default:0" json:"position"` // display order
	CreatedAt time.Time `json:"created_at"`
}

func (Achievement) TableName() string {
	return "achievements"
}

// UserAchievement rows are append-only, unique per (user, achievement).
type UserAchievement struct {
	ID            int64     `gorm:"primaryKey" json:"id"`
	UserID        int64     `gorm:"not null;uniqueIndex:idx_user_achievement" json:"user_id"`
	AchievementID int64     `gorm:"not null;uniqueIndex:idx_user_achievement" json:"achievement_id"`
	CreatedAt     time.Time `json:"created_at"`

	Achievement *Achievement `gorm:"foreignKey:AchievementID" json:"achievement,omitempty"`
}

func (UserAchievement) TableName() string {
	return "user_achievements"
}
