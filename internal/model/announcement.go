package model

import (
	"time"
)

// Announcement types.
const (
	TypeTeam = "team"
	TypeClub = "club"
)

// Media kinds.
const (
	MediaPhoto     = "photo"
	MediaVideo     = "video"
	MediaAnimation = "animation"
)

// Keywords narrowing team-announcement search. Closed set.
const (
	KeywordTrophyModes = "trophy_modes"
	KeywordRanked      = "ranked"
	KeywordClubEvents  = "club_events"
	KeywordMapMaker    = "map_maker"
	KeywordOther       = "other"
)

var Keywords = []string{
	KeywordTrophyModes,
	KeywordRanked,
	KeywordClubEvents,
	KeywordMapMaker,
	KeywordOther,
}

func ValidKeyword(k string) bool {
	for _, v := range Keywords {
		if v == k {
			return true
		}
	}
	return false
}

func ValidMediaKind(k string) bool {
	return k == MediaPhoto || k == MediaVideo || k == MediaAnimation
}

// Announcement is append-only: rows are never updated in place and the
// owner cannot delete them; they only drop out of other users' rotation
// through report exclusion.
type Announcement struct {
	ID          int64     `gorm:"primaryKey" json:"id"`
	UserID      int64     `gorm:"not null;index" json:"user_id"`
	Type        string    `gorm:"size:10;not null;index" json:"type"` // team, club
	MediaID     string    `gorm:"size:200;not null" json:"media_id"`  // opaque transport file handle
	MediaKind   string    `gorm:"size:12;not null" json:"media_kind"` // photo, video, animation
	Description string    `gorm:"type:text;not null" json:"description"`
	Keyword     *string   `gorm:"size:20" json:"keyword,omitempty"` // team announcements only
	CreatedAt   time.Time `gorm:"index" json:"created_at"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (Announcement) TableName() string {
	return "announcements"
}
