package bot

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/dkoroteev/brawlmate/internal/model"
)

// Keyboards are pure formatting of the current option set into callback
// payloads; no state lives here.

func (b *Bot) mainMenuKeyboard(lang string) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(b.loc.T(lang, "btn.search_team"), "menu_search_team"),
			tgbotapi.NewInlineKeyboardButtonData(b.loc.T(lang, "btn.search_club"), "menu_search_club"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(b.loc.T(lang, "btn.new_team"), "new_team"),
			tgbotapi.NewInlineKeyboardButtonData(b.loc.T(lang, "btn.new_club"), "new_club"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(b.loc.T(lang, "btn.profile"), "menu_profile"),
			tgbotapi.NewInlineKeyboardButtonData(b.loc.T(lang, "btn.crystals"), "menu_crystals"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(b.loc.T(lang, "btn.shop"), "menu_shop"),
			tgbotapi.NewInlineKeyboardButtonData(b.loc.T(lang, "btn.achievements"), "menu_achievements"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(b.loc.T(lang, "btn.favorites"), "menu_favorites"),
			tgbotapi.NewInlineKeyboardButtonData(b.loc.T(lang, "btn.sponsors"), "menu_sponsors"),
		),
	)
}

func (b *Bot) announcementKeyboard(lang string, a *model.Announcement, announcementType string) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(b.loc.T(lang, "btn.fav_add"), fmt.Sprintf("fav_add_%d", a.ID)),
			tgbotapi.NewInlineKeyboardButtonData(b.loc.T(lang, "btn.report"), fmt.Sprintf("rep_%d", a.ID)),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(b.loc.T(lang, "btn.next"), "rot_"+announcementType),
			tgbotapi.NewInlineKeyboardButtonData(b.loc.T(lang, "btn.filters"), "filters_"+announcementType),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(b.loc.T(lang, "btn.menu"), "menu_main"),
		),
	)
}

func (b *Bot) filtersKeyboard(lang, announcementType string) tgbotapi.InlineKeyboardMarkup {
	rows := [][]tgbotapi.InlineKeyboardButton{
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(b.loc.T(lang, "btn.order_newest"), fmt.Sprintf("rotf_%s_newest", announcementType)),
			tgbotapi.NewInlineKeyboardButtonData(b.loc.T(lang, "btn.order_oldest"), fmt.Sprintf("rotf_%s_oldest", announcementType)),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(b.loc.T(lang, "btn.order_premium"), fmt.Sprintf("rotf_%s_premium", announcementType)),
		),
	}

	// keywords narrow team searches only
	if announcementType == model.TypeTeam {
		for _, kw := range model.Keywords {
			kw := kw
			rows = append(rows, tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData(b.loc.T(lang, "keyword."+kw), fmt.Sprintf("rotkw_%s", kw)),
			))
		}
	}

	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData(b.loc.T(lang, "btn.menu"), "menu_main"),
	))

	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func (b *Bot) favoritesKeyboard(lang string, announcementID int64, index int) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(b.loc.T(lang, "btn.prev"), fmt.Sprintf("favnav_%d", index-1)),
			tgbotapi.NewInlineKeyboardButtonData(b.loc.T(lang, "btn.next"), fmt.Sprintf("favnav_%d", index+1)),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(b.loc.T(lang, "btn.fav_del"), fmt.Sprintf("fav_del_%d_%d", announcementID, index)),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(b.loc.T(lang, "btn.menu"), "menu_main"),
		),
	)
}

func (b *Bot) reportReasonsKeyboard(lang string, announcementID int64) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(model.ReportReasons)+1)
	for _, reason := range model.ReportReasons {
		reason := reason
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(b.loc.T(lang, "reason."+reason), fmt.Sprintf("repr_%s_%d", reason, announcementID)),
		))
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData(b.loc.T(lang, "btn.cancel"), "menu_main"),
	))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func (b *Bot) keywordKeyboard(lang string) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(model.Keywords)+1)
	for _, kw := range model.Keywords {
		kw := kw
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(b.loc.T(lang, "keyword."+kw), "kw_"+kw),
		))
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData(b.loc.T(lang, "btn.skip"), "kw_skip"),
	))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func (b *Bot) confirmKeyboard(lang string) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(b.loc.T(lang, "btn.confirm"), "ann_confirm"),
			tgbotapi.NewInlineKeyboardButtonData(b.loc.T(lang, "btn.cancel"), "ann_cancel"),
		),
	)
}

func (b *Bot) crystalsKeyboard(lang string) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(b.loc.T(lang, "btn.gift"), "gift"),
			tgbotapi.NewInlineKeyboardButtonData(b.loc.T(lang, "btn.bonus"), "bonus"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(b.loc.T(lang, "btn.menu"), "menu_main"),
		),
	)
}

func (b *Bot) shopKeyboard(lang string) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(b.wallet.Plans())+3)
	for _, plan := range b.wallet.Plans() {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(
				b.loc.T(lang, "shop.plan", plan.Days, plan.Price),
				fmt.Sprintf("buy_%d", plan.Days),
			),
		))
	}
	if b.cfg.Premium.ForeverPrice > 0 {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(
				b.loc.T(lang, "shop.plan_forever", b.cfg.Premium.ForeverPrice),
				"buy_0",
			),
		))
	}
	rows = append(rows,
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(b.loc.T(lang, "btn.promo"), "promo_enter"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(b.loc.T(lang, "btn.menu"), "menu_main"),
		),
	)
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func (b *Bot) sponsorsKeyboard(lang string, sponsors []*model.Sponsor) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(sponsors)+1)
	for _, s := range sponsors {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonURL(s.Title, s.URL),
			tgbotapi.NewInlineKeyboardButtonData(b.loc.T(lang, "btn.claim"), fmt.Sprintf("sp_claim_%d", s.ID)),
		))
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData(b.loc.T(lang, "btn.menu"), "menu_main"),
	))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func (b *Bot) languageKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Русский", "lang_ru"),
			tgbotapi.NewInlineKeyboardButtonData("English", "lang_en"),
		),
	)
}
