package bot

import (
	"log"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/dkoroteev/brawlmate/config"
	"github.com/dkoroteev/brawlmate/internal/locale"
	"github.com/dkoroteev/brawlmate/internal/model"
	"github.com/dkoroteev/brawlmate/internal/service"
)

// Bot wires the Telegram transport to the domain services. Each update
// is one short-lived unit of work; the only cross-update state is the
// conversation scratchpad.
type Bot struct {
	api      *tgbotapi.BotAPI
	cfg      *config.Config
	loc      *locale.Bundle
	sessions *Sessions

	users         *service.UserService
	entitlement   *service.EntitlementService
	rotation      *service.RotationService
	favorites     *service.FavoriteService
	achievements  *service.AchievementService
	promo         *service.PromoService
	wallet        *service.WalletService
	referrals     *service.ReferralService
	announcements *service.AnnouncementService
	sponsors      *service.SponsorService

	stopChan chan struct{}
}

type Services struct {
	Users         *service.UserService
	Entitlement   *service.EntitlementService
	Rotation      *service.RotationService
	Favorites     *service.FavoriteService
	Achievements  *service.AchievementService
	Promo         *service.PromoService
	Wallet        *service.WalletService
	Referrals     *service.ReferralService
	Announcements *service.AnnouncementService
	Sponsors      *service.SponsorService
}

func New(cfg *config.Config, loc *locale.Bundle, svc Services) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(cfg.Bot.Token)
	if err != nil {
		return nil, err
	}
	api.Debug = cfg.Bot.Debug

	return &Bot{
		api:           api,
		cfg:           cfg,
		loc:           loc,
		sessions:      NewSessions(),
		users:         svc.Users,
		entitlement:   svc.Entitlement,
		rotation:      svc.Rotation,
		favorites:     svc.Favorites,
		achievements:  svc.Achievements,
		promo:         svc.Promo,
		wallet:        svc.Wallet,
		referrals:     svc.Referrals,
		announcements: svc.Announcements,
		sponsors:      svc.Sponsors,
		stopChan:      make(chan struct{}),
	}, nil
}

// Run starts the long-polling loop and blocks until Stop is called.
func (b *Bot) Run() {
	log.Printf("Bot authorized as @%s", b.api.Self.UserName)

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 30
	updates := b.api.GetUpdatesChan(u)

	for {
		select {
		case <-b.stopChan:
			b.api.StopReceivingUpdates()
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			b.handleUpdate(update)
		}
	}
}

func (b *Bot) Stop() {
	close(b.stopChan)
}

func (b *Bot) handleUpdate(update tgbotapi.Update) {
	if update.Message != nil {
		b.handleMessage(update.Message)
	}
	if update.CallbackQuery != nil {
		b.handleCallback(update.CallbackQuery)
	}
}

// resolveUser registers the sender on first contact and drops blocked
// users early.
func (b *Bot) resolveUser(from *tgbotapi.User) (*model.User, bool, error) {
	username := from.UserName
	if username == "" {
		username = from.FirstName
	}
	user, created, err := b.users.GetOrCreate(from.ID, username, from.FirstName)
	if err != nil {
		return nil, false, err
	}
	if user.Blocked {
		return nil, false, nil
	}
	return user, created, nil
}

func (b *Bot) send(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.api.Send(msg); err != nil {
		log.Printf("send to %d failed: %v", chatID, err)
	}
}

func (b *Bot) sendWithKeyboard(chatID int64, text string, keyboard tgbotapi.InlineKeyboardMarkup) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = keyboard
	if _, err := b.api.Send(msg); err != nil {
		log.Printf("send to %d failed: %v", chatID, err)
	}
}

// sendAnnouncement renders an announcement as its media with a caption.
func (b *Bot) sendAnnouncement(chatID int64, lang string, a *model.Announcement, keyboard tgbotapi.InlineKeyboardMarkup) {
	caption := b.announcementCaption(lang, a)

	var chattable tgbotapi.Chattable
	switch a.MediaKind {
	case model.MediaVideo:
		video := tgbotapi.NewVideo(chatID, tgbotapi.FileID(a.MediaID))
		video.Caption = caption
		video.ReplyMarkup = keyboard
		chattable = video
	case model.MediaAnimation:
		animation := tgbotapi.NewAnimation(chatID, tgbotapi.FileID(a.MediaID))
		animation.Caption = caption
		animation.ReplyMarkup = keyboard
		chattable = animation
	default:
		photo := tgbotapi.NewPhoto(chatID, tgbotapi.FileID(a.MediaID))
		photo.Caption = caption
		photo.ReplyMarkup = keyboard
		chattable = photo
	}

	if _, err := b.api.Send(chattable); err != nil {
		log.Printf("send announcement %d to %d failed: %v", a.ID, chatID, err)
	}
}

func (b *Bot) announcementCaption(lang string, a *model.Announcement) string {
	author := ""
	if a.User != nil && a.User.Username != "" {
		author = "@" + a.User.Username
	}

	caption := b.loc.T(lang, "announcement.caption", author, a.Description)
	if a.Keyword != nil {
		caption += "\n" + b.loc.T(lang, "announcement.keyword", b.loc.T(lang, "keyword."+*a.Keyword))
	}
	return caption
}

func (b *Bot) answerCallback(query *tgbotapi.CallbackQuery, text string) {
	callback := tgbotapi.NewCallback(query.ID, text)
	if _, err := b.api.Request(callback); err != nil {
		log.Printf("answer callback failed: %v", err)
	}
}

// isChannelMember asks the transport whether the user is in the chat.
func (b *Bot) isChannelMember(chatID, userID int64) bool {
	member, err := b.api.GetChatMember(tgbotapi.GetChatMemberConfig{
		ChatConfigWithUser: tgbotapi.ChatConfigWithUser{
			ChatID: chatID,
			UserID: userID,
		},
	})
	if err != nil {
		log.Printf("GetChatMember(%d, %d) failed: %v", chatID, userID, err)
		return false
	}
	switch member.Status {
	case "creator", "administrator", "member":
		return true
	}
	return false
}

// notifyAchievements announces newly earned badges.
func (b *Bot) notifyAchievements(chatID int64, lang string, codes []string) {
	for _, code := range codes {
		b.send(chatID, b.loc.T(lang, "achievement.unlocked", b.loc.T(lang, "achievement."+code)))
	}
}
