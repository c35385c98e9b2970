package bot

import (
	"errors"
	"log"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/dkoroteev/brawlmate/internal/model"
	"github.com/dkoroteev/brawlmate/internal/service"
)

func (b *Bot) handleMessage(message *tgbotapi.Message) {
	user, _, err := b.resolveUser(message.From)
	if err != nil {
		log.Printf("resolve user %d: %v", message.From.ID, err)
		return
	}
	if user == nil {
		// blocked
		return
	}
	lang := user.Language
	chatID := message.Chat.ID

	if message.IsCommand() {
		b.sessions.End(user.ID)
		switch message.Command() {
		case "start":
			b.handleStart(message, user)
		case "help":
			b.send(chatID, b.loc.T(lang, "help"))
		case "menu":
			b.sendWithKeyboard(chatID, b.loc.T(lang, "menu.title"), b.mainMenuKeyboard(lang))
		case "language":
			b.sendWithKeyboard(chatID, b.loc.T(lang, "language.choose"), b.languageKeyboard())
		case "cancel":
			b.send(chatID, b.loc.T(lang, "flow.cancelled"))
		case "addpromo", "delpromo", "grant", "block", "stats":
			b.handleAdminCommand(message, user)
		}
		return
	}

	if conv := b.sessions.Get(user.ID); conv != nil {
		b.handleStateInput(message, user, conv)
	}
}

// handleStart greets the user and registers the referral carried in the
// deep-link payload, if any.
func (b *Bot) handleStart(message *tgbotapi.Message, user *model.User) {
	lang := user.Language

	payload := strings.TrimSpace(message.CommandArguments())
	if payload != "" {
		if referrerID, err := strconv.ParseInt(payload, 10, 64); err == nil {
			credited, err := b.referrals.Register(referrerID, user.ID)
			if err != nil {
				log.Printf("referral %d->%d: %v", referrerID, user.ID, err)
			} else if credited {
				referrer, err := b.users.Get(referrerID)
				if err == nil {
					b.send(referrerID, b.loc.T(referrer.Language, "referral.credited", b.cfg.Economy.ReferralReward))
				}
			}
		}
	}

	b.sendWithKeyboard(message.Chat.ID, b.loc.T(lang, "start", user.FirstName), b.mainMenuKeyboard(lang))
}

func (b *Bot) handleStateInput(message *tgbotapi.Message, user *model.User, conv *Conversation) {
	lang := user.Language
	chatID := message.Chat.ID

	switch conv.State {
	case StateAnnMedia:
		mediaID, mediaKind, ok := extractMedia(message)
		if !ok {
			b.send(chatID, b.loc.T(lang, "ann.need_media"))
			return
		}
		if err := b.entitlement.CheckMediaKind(user, mediaKind); err != nil {
			b.send(chatID, b.loc.T(lang, "ann.media_premium"))
			return
		}
		conv.MediaID = mediaID
		conv.MediaKind = mediaKind
		conv.State = StateAnnDescription
		b.send(chatID, b.loc.T(lang, "ann.enter_description", b.cfg.Announcement.MinDescriptionLen))

	case StateAnnDescription:
		description := strings.TrimSpace(message.Text)
		if len([]rune(description)) < b.cfg.Announcement.MinDescriptionLen {
			b.send(chatID, b.loc.T(lang, "ann.description_short", b.cfg.Announcement.MinDescriptionLen))
			return
		}
		conv.Description = description
		if conv.AnnType == model.TypeTeam {
			conv.State = StateAnnKeyword
			b.sendWithKeyboard(chatID, b.loc.T(lang, "ann.choose_keyword"), b.keywordKeyboard(lang))
			return
		}
		conv.State = StateAnnConfirm
		b.sendWithKeyboard(chatID, b.loc.T(lang, "ann.confirm", conv.Description), b.confirmKeyboard(lang))

	case StatePromoCode:
		b.sessions.End(user.ID)
		b.redeemPromo(chatID, user, strings.TrimSpace(message.Text))

	case StateGiftRecipient:
		recipientID, err := strconv.ParseInt(strings.TrimSpace(message.Text), 10, 64)
		if err != nil {
			b.send(chatID, b.loc.T(lang, "gift.bad_recipient"))
			return
		}
		conv.GiftRecipient = recipientID
		conv.State = StateGiftAmount
		b.send(chatID, b.loc.T(lang, "gift.enter_amount", user.Crystals))

	case StateGiftAmount:
		amount, err := strconv.Atoi(strings.TrimSpace(message.Text))
		if err != nil || amount <= 0 {
			b.send(chatID, b.loc.T(lang, "gift.bad_amount"))
			return
		}
		recipientID := conv.GiftRecipient
		b.sessions.End(user.ID)
		b.sendGift(chatID, user, recipientID, amount)
	}
}

func (b *Bot) redeemPromo(chatID int64, user *model.User, code string) {
	lang := user.Language

	promo, err := b.promo.Redeem(user.ID, code)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPromoNotFound), errors.Is(err, service.ErrPromoInactive):
			b.send(chatID, b.loc.T(lang, "promo.not_found"))
		case errors.Is(err, service.ErrPromoExpired):
			b.send(chatID, b.loc.T(lang, "promo.expired"))
		case errors.Is(err, service.ErrPromoExhausted):
			b.send(chatID, b.loc.T(lang, "promo.exhausted"))
		case errors.Is(err, service.ErrPromoAlreadyUsed):
			b.send(chatID, b.loc.T(lang, "promo.already_used"))
		default:
			log.Printf("promo redeem for %d: %v", user.ID, err)
			b.send(chatID, b.loc.T(lang, "error.generic"))
		}
		return
	}

	if promo.Days > 0 {
		b.send(chatID, b.loc.T(lang, "promo.redeemed", promo.Days))
	} else {
		b.send(chatID, b.loc.T(lang, "promo.redeemed_forever"))
	}
}

func (b *Bot) sendGift(chatID int64, user *model.User, recipientID int64, amount int) {
	lang := user.Language

	err := b.wallet.TransferCrystals(user.ID, recipientID, amount)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			b.send(chatID, b.loc.T(lang, "gift.recipient_missing"))
		case errors.Is(err, service.ErrSelfTransfer):
			b.send(chatID, b.loc.T(lang, "gift.self"))
		case errors.Is(err, service.ErrInsufficientCrystals):
			b.send(chatID, b.loc.T(lang, "gift.insufficient"))
		case errors.Is(err, service.ErrUserBlocked):
			b.send(chatID, b.loc.T(lang, "gift.recipient_missing"))
		default:
			log.Printf("transfer %d->%d: %v", user.ID, recipientID, err)
			b.send(chatID, b.loc.T(lang, "error.generic"))
		}
		return
	}

	b.send(chatID, b.loc.T(lang, "gift.sent", amount))
	if recipient, err := b.users.Get(recipientID); err == nil {
		b.send(recipientID, b.loc.T(recipient.Language, "gift.received", amount))
	}
}

// extractMedia pulls the largest photo, video or animation file handle
// out of the message.
func extractMedia(message *tgbotapi.Message) (fileID, kind string, ok bool) {
	switch {
	case len(message.Photo) > 0:
		return message.Photo[len(message.Photo)-1].FileID, model.MediaPhoto, true
	case message.Animation != nil:
		// animation check must precede video: Telegram sets both
		return message.Animation.FileID, model.MediaAnimation, true
	case message.Video != nil:
		return message.Video.FileID, model.MediaVideo, true
	}
	return "", "", false
}
