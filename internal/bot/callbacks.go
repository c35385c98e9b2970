package bot

import (
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/dkoroteev/brawlmate/internal/model"
	"github.com/dkoroteev/brawlmate/internal/repository"
	"github.com/dkoroteev/brawlmate/internal/service"
)

func (b *Bot) handleCallback(query *tgbotapi.CallbackQuery) {
	user, _, err := b.resolveUser(query.From)
	if err != nil {
		log.Printf("resolve user %d: %v", query.From.ID, err)
		return
	}
	if user == nil {
		b.answerCallback(query, "")
		return
	}

	chatID := query.Message.Chat.ID
	data := query.Data

	switch {
	case data == "menu_main":
		b.sessions.End(user.ID)
		b.answerCallback(query, "")
		b.sendWithKeyboard(chatID, b.loc.T(user.Language, "menu.title"), b.mainMenuKeyboard(user.Language))

	case data == "menu_profile":
		b.visitSection(chatID, user, model.SectionProfile)
		b.answerCallback(query, "")
		b.showProfile(chatID, user)

	case data == "menu_crystals":
		b.visitSection(chatID, user, model.SectionCrystals)
		b.answerCallback(query, "")
		b.sendWithKeyboard(chatID, b.loc.T(user.Language, "crystals.title", user.Crystals, user.Coins), b.crystalsKeyboard(user.Language))

	case data == "menu_shop":
		b.visitSection(chatID, user, model.SectionShop)
		b.answerCallback(query, "")
		b.sendWithKeyboard(chatID, b.loc.T(user.Language, "shop.title"), b.shopKeyboard(user.Language))

	case data == "menu_achievements":
		b.visitSection(chatID, user, model.SectionAchievements)
		b.answerCallback(query, "")
		b.showAchievements(chatID, user)

	case data == "menu_favorites":
		b.answerCallback(query, "")
		b.showFavoritesPage(chatID, user, 0)

	case data == "menu_sponsors":
		b.answerCallback(query, "")
		b.showSponsors(chatID, user)

	case data == "menu_search_team":
		b.visitSection(chatID, user, model.SectionSearchTeam)
		b.answerCallback(query, "")
		b.showNextCandidate(chatID, user, model.TypeTeam, repository.RotationQuery{})

	case data == "menu_search_club":
		b.visitSection(chatID, user, model.SectionSearchClub)
		b.answerCallback(query, "")
		b.showNextCandidate(chatID, user, model.TypeClub, repository.RotationQuery{})

	case data == "new_team" || data == "new_club":
		announcementType := model.TypeTeam
		if data == "new_club" {
			announcementType = model.TypeClub
		}
		b.answerCallback(query, "")
		b.startAnnouncementFlow(chatID, user, announcementType)

	case strings.HasPrefix(data, "kw_"):
		b.handleKeywordChoice(query, user, strings.TrimPrefix(data, "kw_"))

	case data == "ann_confirm":
		b.handleAnnouncementConfirm(query, user)

	case data == "ann_cancel":
		b.sessions.End(user.ID)
		b.answerCallback(query, "")
		b.send(chatID, b.loc.T(user.Language, "flow.cancelled"))

	case strings.HasPrefix(data, "rot_"):
		b.answerCallback(query, "")
		b.showNextCandidate(chatID, user, strings.TrimPrefix(data, "rot_"), repository.RotationQuery{})

	case strings.HasPrefix(data, "filters_"):
		b.answerCallback(query, "")
		announcementType := strings.TrimPrefix(data, "filters_")
		b.sendWithKeyboard(chatID, b.loc.T(user.Language, "filters.title"), b.filtersKeyboard(user.Language, announcementType))

	case strings.HasPrefix(data, "rotf_"):
		b.answerCallback(query, "")
		parts := strings.SplitN(strings.TrimPrefix(data, "rotf_"), "_", 2)
		if len(parts) != 2 {
			return
		}
		b.showNextCandidate(chatID, user, parts[0], repository.RotationQuery{Order: parts[1]})

	case strings.HasPrefix(data, "rotkw_"):
		b.answerCallback(query, "")
		b.showNextCandidate(chatID, user, model.TypeTeam, repository.RotationQuery{Keyword: strings.TrimPrefix(data, "rotkw_")})

	case strings.HasPrefix(data, "fav_add_"):
		b.handleFavoriteAdd(query, user, strings.TrimPrefix(data, "fav_add_"))

	case strings.HasPrefix(data, "fav_del_"):
		b.handleFavoriteDelete(query, user, strings.TrimPrefix(data, "fav_del_"))

	case strings.HasPrefix(data, "favnav_"):
		index, err := strconv.Atoi(strings.TrimPrefix(data, "favnav_"))
		if err != nil {
			return
		}
		b.answerCallback(query, "")
		b.showFavoritesPage(chatID, user, index)

	case strings.HasPrefix(data, "repr_"):
		b.handleReport(query, user, strings.TrimPrefix(data, "repr_"))

	case strings.HasPrefix(data, "rep_"):
		announcementID, err := strconv.ParseInt(strings.TrimPrefix(data, "rep_"), 10, 64)
		if err != nil {
			return
		}
		b.answerCallback(query, "")
		b.sendWithKeyboard(chatID, b.loc.T(user.Language, "report.choose_reason"), b.reportReasonsKeyboard(user.Language, announcementID))

	case strings.HasPrefix(data, "buy_"):
		b.handleBuyPremium(query, user, strings.TrimPrefix(data, "buy_"))

	case data == "promo_enter":
		b.sessions.Begin(user.ID, StatePromoCode)
		b.answerCallback(query, "")
		b.send(chatID, b.loc.T(user.Language, "promo.enter"))

	case data == "gift":
		b.sessions.Begin(user.ID, StateGiftRecipient)
		b.answerCallback(query, "")
		b.send(chatID, b.loc.T(user.Language, "gift.enter_recipient"))

	case data == "bonus":
		b.handleDailyBonus(query, user)

	case strings.HasPrefix(data, "sp_claim_"):
		b.handleSponsorClaim(query, user, strings.TrimPrefix(data, "sp_claim_"))

	case strings.HasPrefix(data, "lang_"):
		lang := strings.TrimPrefix(data, "lang_")
		if !b.loc.Has(lang) {
			b.answerCallback(query, "")
			return
		}
		if err := b.users.SetLanguage(user.ID, lang); err != nil {
			log.Printf("set language for %d: %v", user.ID, err)
		}
		b.answerCallback(query, "")
		b.sendWithKeyboard(chatID, b.loc.T(lang, "menu.title"), b.mainMenuKeyboard(lang))
	}
}

// visitSection records the visit and announces any badge it completed.
func (b *Bot) visitSection(chatID int64, user *model.User, section string) {
	awarded, err := b.achievements.VisitSection(user.ID, section)
	if err != nil {
		log.Printf("visit section %s for %d: %v", section, user.ID, err)
		return
	}
	b.notifyAchievements(chatID, user.Language, awarded)
}

func (b *Bot) showProfile(chatID int64, user *model.User) {
	lang := user.Language

	premiumLine := b.loc.T(lang, "profile.premium_no")
	if b.entitlement.IsPremium(user) {
		if user.PremiumUntil == nil {
			premiumLine = b.loc.T(lang, "profile.premium_forever")
		} else {
			premiumLine = b.loc.T(lang, "profile.premium_until", user.PremiumUntil.Format("02.01.2006"))
		}
	}

	b.send(chatID, b.loc.T(lang, "profile.text",
		user.FirstName,
		user.ID,
		user.Crystals,
		user.Coins,
		premiumLine,
		user.TeamAnnouncements,
		user.ClubAnnouncements,
		user.Referrals,
	))
}

func (b *Bot) showAchievements(chatID int64, user *model.User) {
	lang := user.Language

	earned, err := b.achievements.ListEarned(user.ID)
	if err != nil {
		log.Printf("list achievements for %d: %v", user.ID, err)
		b.send(chatID, b.loc.T(lang, "error.generic"))
		return
	}

	earnedSet := make(map[string]bool, len(earned))
	for _, code := range earned {
		earnedSet[code] = true
	}

	var sb strings.Builder
	sb.WriteString(b.loc.T(lang, "achievements.title"))
	for _, code := range service.CatalogCodes() {
		mark := "☐"
		if earnedSet[code] {
			mark = "✅"
		}
		sb.WriteString(fmt.Sprintf("\n%s %s", mark, b.loc.T(lang, "achievement."+code)))
	}
	b.send(chatID, sb.String())
}

// showNextCandidate serves the top of the viewer's rotation pool.
func (b *Bot) showNextCandidate(chatID int64, user *model.User, announcementType string, q repository.RotationQuery) {
	lang := user.Language
	if announcementType != model.TypeTeam && announcementType != model.TypeClub {
		return
	}

	candidate, err := b.rotation.NextCandidate(user.ID, announcementType, q)
	if err != nil {
		log.Printf("rotation for %d: %v", user.ID, err)
		b.send(chatID, b.loc.T(lang, "error.generic"))
		return
	}
	if candidate == nil {
		b.sendWithKeyboard(chatID, b.loc.T(lang, "search.empty"), b.mainMenuKeyboard(lang))
		return
	}

	b.sendAnnouncement(chatID, lang, candidate, b.announcementKeyboard(lang, candidate, announcementType))
}

func (b *Bot) showFavoritesPage(chatID int64, user *model.User, index int) {
	lang := user.Language

	page, err := b.rotation.FavoritesPage(user.ID, index)
	if err != nil {
		log.Printf("favorites page for %d: %v", user.ID, err)
		b.send(chatID, b.loc.T(lang, "error.generic"))
		return
	}
	if page.Total == 0 || page.Announcement == nil {
		b.sendWithKeyboard(chatID, b.loc.T(lang, "favorites.empty"), b.mainMenuKeyboard(lang))
		return
	}

	b.send(chatID, b.loc.T(lang, "favorites.position", page.Index+1, page.Total))
	b.sendAnnouncement(chatID, lang, page.Announcement, b.favoritesKeyboard(lang, page.Announcement.ID, page.Index))
}

func (b *Bot) showSponsors(chatID int64, user *model.User) {
	lang := user.Language

	sponsors, err := b.sponsors.ListActive()
	if err != nil {
		log.Printf("list sponsors: %v", err)
		b.send(chatID, b.loc.T(lang, "error.generic"))
		return
	}
	if len(sponsors) == 0 {
		b.sendWithKeyboard(chatID, b.loc.T(lang, "sponsors.empty"), b.mainMenuKeyboard(lang))
		return
	}

	b.sendWithKeyboard(chatID, b.loc.T(lang, "sponsors.title"), b.sponsorsKeyboard(lang, sponsors))
}

func (b *Bot) startAnnouncementFlow(chatID int64, user *model.User, announcementType string) {
	lang := user.Language

	if err := b.entitlement.CanCreateAnnouncement(user, announcementType); err != nil {
		switch {
		case errors.Is(err, service.ErrFreeLimitReached):
			b.send(chatID, b.loc.T(lang, "ann.free_limit"))
		case errors.Is(err, service.ErrPremiumLimitReached):
			b.send(chatID, b.loc.T(lang, "ann.premium_limit"))
		default:
			log.Printf("quota check for %d: %v", user.ID, err)
			b.send(chatID, b.loc.T(lang, "error.generic"))
		}
		return
	}

	conv := b.sessions.Begin(user.ID, StateAnnMedia)
	conv.AnnType = announcementType
	b.send(chatID, b.loc.T(lang, "ann.send_media"))
}

func (b *Bot) handleKeywordChoice(query *tgbotapi.CallbackQuery, user *model.User, keyword string) {
	lang := user.Language
	chatID := query.Message.Chat.ID

	conv := b.sessions.Get(user.ID)
	if conv == nil || conv.State != StateAnnKeyword {
		b.answerCallback(query, "")
		return
	}

	if keyword != "skip" {
		if !model.ValidKeyword(keyword) {
			b.answerCallback(query, "")
			return
		}
		conv.Keyword = keyword
	}
	conv.State = StateAnnConfirm
	b.answerCallback(query, "")
	b.sendWithKeyboard(chatID, b.loc.T(lang, "ann.confirm", conv.Description), b.confirmKeyboard(lang))
}

func (b *Bot) handleAnnouncementConfirm(query *tgbotapi.CallbackQuery, user *model.User) {
	lang := user.Language
	chatID := query.Message.Chat.ID

	conv := b.sessions.Get(user.ID)
	if conv == nil || conv.State != StateAnnConfirm {
		b.answerCallback(query, "")
		return
	}
	b.sessions.End(user.ID)

	_, err := b.announcements.Create(user.ID, service.CreateAnnouncementInput{
		Type:        conv.AnnType,
		MediaID:     conv.MediaID,
		MediaKind:   conv.MediaKind,
		Description: conv.Description,
		Keyword:     conv.Keyword,
	})
	if err != nil {
		b.answerCallback(query, "")
		switch {
		case errors.Is(err, service.ErrFreeLimitReached):
			b.send(chatID, b.loc.T(lang, "ann.free_limit"))
		case errors.Is(err, service.ErrPremiumLimitReached):
			b.send(chatID, b.loc.T(lang, "ann.premium_limit"))
		case errors.Is(err, service.ErrDescriptionShort):
			b.send(chatID, b.loc.T(lang, "ann.description_short", b.cfg.Announcement.MinDescriptionLen))
		case errors.Is(err, service.ErrMediaNotAllowed):
			b.send(chatID, b.loc.T(lang, "ann.media_premium"))
		default:
			log.Printf("create announcement for %d: %v", user.ID, err)
			b.send(chatID, b.loc.T(lang, "error.generic"))
		}
		return
	}

	b.answerCallback(query, "")
	b.sendWithKeyboard(chatID, b.loc.T(lang, "ann.created"), b.mainMenuKeyboard(lang))
}

func (b *Bot) handleFavoriteAdd(query *tgbotapi.CallbackQuery, user *model.User, rawID string) {
	lang := user.Language

	announcementID, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		return
	}

	added, err := b.favorites.AddFavorite(user.ID, announcementID)
	if err != nil {
		if errors.Is(err, service.ErrAnnouncementNotFound) {
			b.answerCallback(query, b.loc.T(lang, "favorites.gone"))
			return
		}
		log.Printf("add favorite for %d: %v", user.ID, err)
		b.answerCallback(query, b.loc.T(lang, "error.generic"))
		return
	}

	if added {
		b.answerCallback(query, b.loc.T(lang, "favorites.added"))
	} else {
		b.answerCallback(query, b.loc.T(lang, "favorites.already"))
	}
}

func (b *Bot) handleFavoriteDelete(query *tgbotapi.CallbackQuery, user *model.User, payload string) {
	lang := user.Language
	chatID := query.Message.Chat.ID

	// payload is "<announcementID>_<index>"
	parts := strings.SplitN(payload, "_", 2)
	announcementID, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return
	}
	index := 0
	if len(parts) == 2 {
		if i, err := strconv.Atoi(parts[1]); err == nil {
			index = i
		}
	}

	removed, err := b.favorites.RemoveFavorite(user.ID, announcementID)
	if err != nil {
		log.Printf("remove favorite for %d: %v", user.ID, err)
		b.answerCallback(query, b.loc.T(lang, "error.generic"))
		return
	}
	if removed {
		b.answerCallback(query, b.loc.T(lang, "favorites.removed"))
	} else {
		b.answerCallback(query, "")
	}
	b.showFavoritesPage(chatID, user, index)
}

func (b *Bot) handleReport(query *tgbotapi.CallbackQuery, user *model.User, payload string) {
	lang := user.Language
	chatID := query.Message.Chat.ID

	// payload is "<reason>_<announcementID>"
	idx := strings.LastIndex(payload, "_")
	if idx < 0 {
		return
	}
	reason := payload[:idx]
	announcementID, err := strconv.ParseInt(payload[idx+1:], 10, 64)
	if err != nil {
		return
	}

	if err := b.favorites.Report(user.ID, announcementID, reason); err != nil {
		switch {
		case errors.Is(err, service.ErrAnnouncementNotFound):
			b.answerCallback(query, b.loc.T(lang, "favorites.gone"))
		case errors.Is(err, service.ErrInvalidReason):
			b.answerCallback(query, "")
		default:
			log.Printf("report by %d: %v", user.ID, err)
			b.answerCallback(query, b.loc.T(lang, "error.generic"))
		}
		return
	}

	b.answerCallback(query, b.loc.T(lang, "report.recorded"))
	b.send(chatID, b.loc.T(lang, "report.thanks"))
}

func (b *Bot) handleBuyPremium(query *tgbotapi.CallbackQuery, user *model.User, rawDays string) {
	lang := user.Language
	chatID := query.Message.Chat.ID

	days, err := strconv.Atoi(rawDays)
	if err != nil {
		return
	}

	if err := b.wallet.BuyPremium(user.ID, days); err != nil {
		switch {
		case errors.Is(err, service.ErrInsufficientCrystals):
			b.answerCallback(query, b.loc.T(lang, "shop.insufficient"))
		case errors.Is(err, service.ErrUnknownPlan):
			b.answerCallback(query, "")
		default:
			log.Printf("buy premium for %d: %v", user.ID, err)
			b.answerCallback(query, b.loc.T(lang, "error.generic"))
		}
		return
	}

	b.answerCallback(query, "")
	if days > 0 {
		b.send(chatID, b.loc.T(lang, "shop.bought", days))
	} else {
		b.send(chatID, b.loc.T(lang, "shop.bought_forever"))
	}
}

func (b *Bot) handleDailyBonus(query *tgbotapi.CallbackQuery, user *model.User) {
	lang := user.Language
	chatID := query.Message.Chat.ID

	amount, err := b.wallet.ClaimDailyBonus(user.ID)
	if err != nil {
		if errors.Is(err, service.ErrBonusCooldown) {
			b.answerCallback(query, b.loc.T(lang, "bonus.cooldown"))
			return
		}
		log.Printf("daily bonus for %d: %v", user.ID, err)
		b.answerCallback(query, b.loc.T(lang, "error.generic"))
		return
	}

	b.answerCallback(query, "")
	b.send(chatID, b.loc.T(lang, "bonus.claimed", amount))
}

func (b *Bot) handleSponsorClaim(query *tgbotapi.CallbackQuery, user *model.User, rawID string) {
	lang := user.Language
	chatID := query.Message.Chat.ID

	sponsorID, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		return
	}

	sponsor, err := b.sponsors.Get(sponsorID)
	if err != nil {
		b.answerCallback(query, "")
		return
	}

	subscribed := b.isChannelMember(sponsor.ChatID, user.ID)
	reward, err := b.sponsors.ClaimReward(user.ID, sponsorID, subscribed)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotSubscribed):
			b.answerCallback(query, b.loc.T(lang, "sponsors.not_subscribed"))
		case errors.Is(err, service.ErrAlreadyClaimed):
			b.answerCallback(query, b.loc.T(lang, "sponsors.already_claimed"))
		default:
			log.Printf("sponsor claim by %d: %v", user.ID, err)
			b.answerCallback(query, b.loc.T(lang, "error.generic"))
		}
		return
	}

	b.answerCallback(query, "")
	b.send(chatID, b.loc.T(lang, "sponsors.claimed", reward))
}
