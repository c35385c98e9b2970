package model

// Bot sections tracked in User.VisitedSections.
const (
	SectionProfile      = "profile"
	SectionSearchTeam   = "search_team_menu"
	SectionSearchClub   = "search_club_menu"
	SectionCrystals     = "crystals"
	SectionShop         = "shop"
	SectionAchievements = "achievements"
	SectionFavorites    = "favorites"
	SectionSponsors     = "sponsors"
)
