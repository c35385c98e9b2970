package bot

import (
	"errors"
	"log"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/dkoroteev/brawlmate/internal/model"
	"github.com/dkoroteev/brawlmate/internal/service"
)

// handleAdminCommand serves the privileged command subset. It is gated
// by the static allow-list and calls the same services ordinary flows use.
func (b *Bot) handleAdminCommand(message *tgbotapi.Message, user *model.User) {
	if !b.cfg.IsAdmin(user.ID) {
		return
	}
	lang := user.Language
	chatID := message.Chat.ID
	args := strings.Fields(message.CommandArguments())

	switch message.Command() {
	case "addpromo":
		// /addpromo CODE DAYS MAX_USES [EXPIRES_RFC3339]
		if len(args) < 3 {
			b.send(chatID, b.loc.T(lang, "admin.addpromo_usage"))
			return
		}
		days, err1 := strconv.Atoi(args[1])
		maxUses, err2 := strconv.Atoi(args[2])
		if err1 != nil || err2 != nil || maxUses < 1 || days < 0 {
			b.send(chatID, b.loc.T(lang, "admin.addpromo_usage"))
			return
		}
		var expiresAt *time.Time
		if len(args) > 3 {
			t, err := time.Parse(time.RFC3339, args[3])
			if err != nil {
				b.send(chatID, b.loc.T(lang, "admin.addpromo_usage"))
				return
			}
			expiresAt = &t
		}
		promo, err := b.promo.Create(args[0], days, maxUses, expiresAt)
		if err != nil {
			if errors.Is(err, service.ErrPromoExists) {
				b.send(chatID, b.loc.T(lang, "admin.promo_exists"))
				return
			}
			log.Printf("addpromo: %v", err)
			b.send(chatID, b.loc.T(lang, "error.generic"))
			return
		}
		b.send(chatID, b.loc.T(lang, "admin.promo_created", promo.Code, promo.Days, promo.MaxUses))

	case "delpromo":
		if len(args) < 1 {
			b.send(chatID, b.loc.T(lang, "admin.delpromo_usage"))
			return
		}
		if err := b.promo.Deactivate(args[0]); err != nil {
			if errors.Is(err, service.ErrPromoNotFound) {
				b.send(chatID, b.loc.T(lang, "promo.not_found"))
				return
			}
			log.Printf("delpromo: %v", err)
			b.send(chatID, b.loc.T(lang, "error.generic"))
			return
		}
		b.send(chatID, b.loc.T(lang, "admin.promo_deactivated"))

	case "grant":
		// /grant USER_ID DAYS (0 = forever)
		if len(args) < 2 {
			b.send(chatID, b.loc.T(lang, "admin.grant_usage"))
			return
		}
		targetID, err1 := strconv.ParseInt(args[0], 10, 64)
		days, err2 := strconv.Atoi(args[1])
		if err1 != nil || err2 != nil || days < 0 {
			b.send(chatID, b.loc.T(lang, "admin.grant_usage"))
			return
		}
		if _, err := b.users.Get(targetID); err != nil {
			b.send(chatID, b.loc.T(lang, "admin.user_not_found"))
			return
		}
		if err := b.entitlement.GrantPremium(targetID, days); err != nil {
			log.Printf("grant: %v", err)
			b.send(chatID, b.loc.T(lang, "error.generic"))
			return
		}
		b.achievements.OnPremiumGranted(targetID)
		b.send(chatID, b.loc.T(lang, "admin.granted", targetID))

	case "block":
		if len(args) < 1 {
			b.send(chatID, b.loc.T(lang, "admin.block_usage"))
			return
		}
		targetID, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			b.send(chatID, b.loc.T(lang, "admin.block_usage"))
			return
		}
		if _, err := b.users.Get(targetID); err != nil {
			b.send(chatID, b.loc.T(lang, "admin.user_not_found"))
			return
		}
		if err := b.users.SetBlocked(targetID, true); err != nil {
			log.Printf("block: %v", err)
			b.send(chatID, b.loc.T(lang, "error.generic"))
			return
		}
		b.send(chatID, b.loc.T(lang, "admin.blocked", targetID))

	case "stats":
		stats, err := b.collectStats()
		if err != nil {
			log.Printf("stats: %v", err)
			b.send(chatID, b.loc.T(lang, "error.generic"))
			return
		}
		b.send(chatID, b.loc.T(lang, "admin.stats", stats.users, stats.premium, stats.announcements))
	}
}

type botStats struct {
	users         int64
	premium       int64
	announcements int64
}

func (b *Bot) collectStats() (*botStats, error) {
	users, err := b.users.CountUsers()
	if err != nil {
		return nil, err
	}
	premium, err := b.users.CountPremium()
	if err != nil {
		return nil, err
	}
	announcements, err := b.announcements.Count()
	if err != nil {
		return nil, err
	}
	return &botStats{users: users, premium: premium, announcements: announcements}, nil
}
