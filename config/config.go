package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Bot          BotConfig          `mapstructure:"bot"`
	Database     DatabaseConfig     `mapstructure:"database"`
	AdminAPI     AdminAPIConfig     `mapstructure:"admin_api"`
	Economy      EconomyConfig      `mapstructure:"economy"`
	Premium      PremiumConfig      `mapstructure:"premium"`
	Announcement AnnouncementConfig `mapstructure:"announcement"`
	Sponsors     []SponsorConfig    `mapstructure:"sponsors"`
}

type BotConfig struct {
	Token           string  `mapstructure:"token"`
	AdminIDs        []int64 `mapstructure:"admin_ids"`
	LocaleDir       string  `mapstructure:"locale_dir"`
	DefaultLanguage string  `mapstructure:"default_language"`
	Debug           bool    `mapstructure:"debug"`
}

type DatabaseConfig struct {
	Driver       string `mapstructure:"driver"` // mysql or sqlite
	Host         string `mapstructure:"host"`
	Port         int    `mapstructure:"port"`
	Username     string `mapstructure:"username"`
	Password     string `mapstructure:"password"`
	Database     string `mapstructure:"database"`
	Path         string `mapstructure:"path"` // sqlite file
	MaxIdleConns int    `mapstructure:"max_idle_conns"`
	MaxOpenConns int    `mapstructure:"max_open_conns"`
}

type AdminAPIConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Host    string `mapstructure:"host"`
	Port    int    `mapstructure:"port"`
	Mode    string `mapstructure:"mode"`
	Token   string `mapstructure:"token"`
}

type EconomyConfig struct {
	StartCrystals      int `mapstructure:"start_crystals"`
	StartCoins         int `mapstructure:"start_coins"`
	ReferralReward     int `mapstructure:"referral_reward"`
	DailyBonusCoins    int `mapstructure:"daily_bonus_coins"`
	DailyBonusCooldown int `mapstructure:"daily_bonus_cooldown_hours"`
}

type PremiumConfig struct {
	Plans        []PremiumPlan `mapstructure:"plans"`
	ForeverPrice int           `mapstructure:"forever_price"`
}

type PremiumPlan struct {
	Days  int `mapstructure:"days"`
	Price int `mapstructure:"price"` // crystals
}

type AnnouncementConfig struct {
	MinDescriptionLen int `mapstructure:"min_description_len"`
	FreeLimit         int `mapstructure:"free_limit"`
	PremiumTypeLimit  int `mapstructure:"premium_type_limit"`
}

type SponsorConfig struct {
	Title  string `mapstructure:"title"`
	ChatID int64  `mapstructure:"chat_id"`
	URL    string `mapstructure:"url"`
	Reward int    `mapstructure:"reward"`
}

func Load(configPath string) (*Config, error) {
	// config.local.yaml holds real secrets and is not committed
	dir := filepath.Dir(configPath)
	localConfigPath := filepath.Join(dir, "config.local.yaml")

	if _, err := os.Stat(localConfigPath); err == nil {
		configPath = localConfigPath
	}

	viper.SetConfigFile(configPath)
	viper.SetConfigType("yaml")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	cfg.applyDefaults()

	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Bot.DefaultLanguage == "" {
		c.Bot.DefaultLanguage = "ru"
	}
	if c.Bot.LocaleDir == "" {
		c.Bot.LocaleDir = "locales"
	}
	if c.Economy.DailyBonusCooldown <= 0 {
		c.Economy.DailyBonusCooldown = 24
	}
	if c.Announcement.MinDescriptionLen <= 0 {
		c.Announcement.MinDescriptionLen = 20
	}
	if c.Announcement.FreeLimit <= 0 {
		c.Announcement.FreeLimit = 1
	}
	if c.Announcement.PremiumTypeLimit <= 0 {
		c.Announcement.PremiumTypeLimit = 2
	}
}

// IsAdmin reports whether the Telegram user is on the static allow-list.
func (c *Config) IsAdmin(userID int64) bool {
	for _, id := range c.Bot.AdminIDs {
		if id == userID {
			return true
		}
	}
	return false
}
