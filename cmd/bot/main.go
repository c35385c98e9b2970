package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/dkoroteev/brawlmate/config"
	"github.com/dkoroteev/brawlmate/internal/api"
	"github.com/dkoroteev/brawlmate/internal/api/handler"
	"github.com/dkoroteev/brawlmate/internal/bot"
	"github.com/dkoroteev/brawlmate/internal/database"
	"github.com/dkoroteev/brawlmate/internal/locale"
	"github.com/dkoroteev/brawlmate/internal/pkg/cron"
	"github.com/dkoroteev/brawlmate/internal/repository"
	"github.com/dkoroteev/brawlmate/internal/service"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := database.New(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect database: %v", err)
	}
	log.Println("Database connected")

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	if err := database.SeedSponsors(db, cfg.Sponsors); err != nil {
		log.Fatalf("Failed to seed sponsors: %v", err)
	}

	userRepo := repository.NewUserRepository(db)
	announcementRepo := repository.NewAnnouncementRepository(db)
	favoriteRepo := repository.NewFavoriteRepository(db)
	reportRepo := repository.NewReportRepository(db)
	referralRepo := repository.NewReferralRepository(db)
	promoRepo := repository.NewPromoRepository(db)
	achievementRepo := repository.NewAchievementRepository(db)
	sponsorRepo := repository.NewSponsorRepository(db)

	achievementService := service.NewAchievementService(achievementRepo, userRepo)
	if err := achievementService.Seed(); err != nil {
		log.Fatalf("Failed to seed achievements: %v", err)
	}

	entitlementService := service.NewEntitlementService(userRepo, announcementRepo, cfg)
	userService := service.NewUserService(userRepo, cfg)
	rotationService := service.NewRotationService(announcementRepo, favoriteRepo)
	favoriteService := service.NewFavoriteService(favoriteRepo, reportRepo, announcementRepo)
	promoService := service.NewPromoService(promoRepo, entitlementService, achievementService)
	walletService := service.NewWalletService(userRepo, entitlementService, achievementService, cfg)
	referralService := service.NewReferralService(referralRepo, userRepo, achievementService, cfg)
	announcementService := service.NewAnnouncementService(announcementRepo, userRepo, entitlementService, achievementService, cfg)
	sponsorService := service.NewSponsorService(sponsorRepo, userRepo, achievementService)

	loc, err := locale.Load(cfg.Bot.LocaleDir, cfg.Bot.DefaultLanguage)
	if err != nil {
		log.Fatalf("Failed to load locales: %v", err)
	}

	b, err := bot.New(cfg, loc, bot.Services{
		Users:         userService,
		Entitlement:   entitlementService,
		Rotation:      rotationService,
		Favorites:     favoriteService,
		Achievements:  achievementService,
		Promo:         promoService,
		Wallet:        walletService,
		Referrals:     referralService,
		Announcements: announcementService,
		Sponsors:      sponsorService,
	})
	if err != nil {
		log.Fatalf("Failed to create bot: %v", err)
	}

	cronService := cron.NewService(userRepo)
	cronService.Start()

	if cfg.AdminAPI.Enabled {
		adminHandler := handler.NewAdminHandler(promoService, userService, entitlementService, userRepo, announcementRepo)
		router := api.NewRouter(adminHandler, cfg)
		engine := router.Setup()

		addr := fmt.Sprintf("%s:%d", cfg.AdminAPI.Host, cfg.AdminAPI.Port)
		go func() {
			log.Printf("Admin API listening on %s", addr)
			if err := engine.Run(addr); err != nil {
				log.Fatalf("Admin API failed: %v", err)
			}
		}()
	}

	go b.Run()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down")
	b.Stop()
	cronService.Stop()
}
