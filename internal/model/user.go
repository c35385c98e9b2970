package model

import (
	"database/sql/driver"
	"encoding/json"
	"time"
)

// StringList is stored as a JSON array column.
type StringList []string

func (s StringList) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	return json.Marshal(s)
}

func (s *StringList) Scan(value interface{}) error {
	if value == nil {
		*s = []string{}
		return nil
	}
	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return nil
	}
	return json.Unmarshal(bytes, s)
}

func (s StringList) Contains(v string) bool {
	for _, e := range s {
		if e == v {
			return true
		}
	}
	return false
}

// User is keyed by the Telegram user ID. Rows are never deleted;
// Blocked is the soft removal state.
type User struct {
	ID                int64      `gorm:"primaryKey;autoIncrement:false" json:"id"`
	Username          string     `gorm:"size:100" json:"username"`
	FirstName         string     `gorm:"size:100" json:"first_name"`
	Language          string     `gorm:"size:8;default:ru" json:"language"`
	Crystals          int        `gorm:"default:0;not null" json:"crystals"`
	Coins             int        `gorm:"default:0;not null" json:"coins"`
	Premium           bool       `gorm:"default:false" json:"premium"`
	PremiumUntil      *time.Time `json:"premium_until,omitempty"` // nil with Premium=true means forever
	Blocked           bool       `gorm:"default:false" json:"blocked"`
	LastBonusAt       *time.Time `json:"last_bonus_at,omitempty"`
	VisitedSections   StringList `gorm:"type:json" json:"visited_sections,omitempty"`
	TeamAnnouncements int        `gorm:"default:0" json:"team_announcements"`
	ClubAnnouncements int        `gorm:"default:0" json:"club_announcements"`
	Referrals         int        `gorm:"default:0" json:"referrals"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}
