package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkoroteev/brawlmate/config"
	"github.com/dkoroteev/brawlmate/internal/model"
	"github.com/dkoroteev/brawlmate/internal/repository"
	"github.com/dkoroteev/brawlmate/internal/testutil"
)

func testConfig() *config.Config {
	return &config.Config{
		Bot: config.BotConfig{
			DefaultLanguage: "ru",
		},
		Economy: config.EconomyConfig{
			StartCrystals:      100,
			StartCoins:         50,
			ReferralReward:     25,
			DailyBonusCoins:    10,
			DailyBonusCooldown: 24,
		},
		Premium: config.PremiumConfig{
			Plans: []config.PremiumPlan{
				{Days: 7, Price: 150},
				{Days: 30, Price: 500},
			},
			ForeverPrice: 3000,
		},
		Announcement: config.AnnouncementConfig{
			MinDescriptionLen: 20,
			FreeLimit:         1,
			PremiumTypeLimit:  2,
		},
	}
}

func TestEntitlementService_IsPremium_Forever(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	svc := NewEntitlementService(repository.NewUserRepository(db), repository.NewAnnouncementRepository(db), testConfig())

	user := testutil.TestUser(t, db, testutil.WithPremium(nil))
	assert.True(t, svc.IsPremium(user))
}

func TestEntitlementService_IsPremium_LazyDowngrade(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	userRepo := repository.NewUserRepository(db)
	svc := NewEntitlementService(userRepo, repository.NewAnnouncementRepository(db), testConfig())

	past := time.Now().Add(-time.Hour)
	user := testutil.TestUser(t, db, testutil.WithPremium(&past))

	// a read past the expiry downgrades in place and persists
	assert.False(t, svc.IsPremium(user))
	assert.False(t, user.Premium)
	assert.Nil(t, user.PremiumUntil)

	stored, err := userRepo.GetByID(user.ID)
	require.NoError(t, err)
	assert.False(t, stored.Premium)
	assert.Nil(t, stored.PremiumUntil)
}

func TestEntitlementService_GrantPremium_ExtendsActive(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	userRepo := repository.NewUserRepository(db)
	svc := NewEntitlementService(userRepo, repository.NewAnnouncementRepository(db), testConfig())

	until := time.Now().Add(5 * 24 * time.Hour)
	user := testutil.TestUser(t, db, testutil.WithPremium(&until))

	require.NoError(t, svc.GrantPremium(user.ID, 7))

	stored, err := userRepo.GetByID(user.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.PremiumUntil)
	// active subscription stacks on top of the current expiry
	assert.WithinDuration(t, until.Add(7*24*time.Hour), *stored.PremiumUntil, 2*time.Second)
}

func TestEntitlementService_GrantPremium_LapsedStartsFromNow(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	userRepo := repository.NewUserRepository(db)
	svc := NewEntitlementService(userRepo, repository.NewAnnouncementRepository(db), testConfig())

	past := time.Now().Add(-10 * 24 * time.Hour)
	user := testutil.TestUser(t, db, testutil.WithPremium(&past))

	require.NoError(t, svc.GrantPremium(user.ID, 7))

	stored, err := userRepo.GetByID(user.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.PremiumUntil)
	assert.WithinDuration(t, time.Now().Add(7*24*time.Hour), *stored.PremiumUntil, 2*time.Second)
}

func TestEntitlementService_GrantPremium_Forever(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	userRepo := repository.NewUserRepository(db)
	svc := NewEntitlementService(userRepo, repository.NewAnnouncementRepository(db), testConfig())

	user := testutil.TestUser(t, db)

	require.NoError(t, svc.GrantPremium(user.ID, 0))

	stored, err := userRepo.GetByID(user.ID)
	require.NoError(t, err)
	assert.True(t, stored.Premium)
	assert.Nil(t, stored.PremiumUntil)
}

func TestEntitlementService_CanCreateAnnouncement_FreeLimit(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	svc := NewEntitlementService(repository.NewUserRepository(db), repository.NewAnnouncementRepository(db), testConfig())

	user := testutil.TestUser(t, db)

	require.NoError(t, svc.CanCreateAnnouncement(user, model.TypeTeam))

	// one announcement of either type exhausts the free quota
	testutil.TestAnnouncement(t, db, user.ID, testutil.WithType(model.TypeClub))

	err := svc.CanCreateAnnouncement(user, model.TypeTeam)
	assert.ErrorIs(t, err, ErrFreeLimitReached)
}

func TestEntitlementService_CanCreateAnnouncement_PremiumPerType(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	svc := NewEntitlementService(repository.NewUserRepository(db), repository.NewAnnouncementRepository(db), testConfig())

	user := testutil.TestUser(t, db, testutil.WithPremium(nil))

	testutil.TestAnnouncement(t, db, user.ID)
	testutil.TestAnnouncement(t, db, user.ID)

	err := svc.CanCreateAnnouncement(user, model.TypeTeam)
	assert.ErrorIs(t, err, ErrPremiumLimitReached)

	// the club quota is independent of the team quota
	require.NoError(t, svc.CanCreateAnnouncement(user, model.TypeClub))
}

func TestEntitlementService_CheckMediaKind(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	svc := NewEntitlementService(repository.NewUserRepository(db), repository.NewAnnouncementRepository(db), testConfig())

	free := testutil.TestUser(t, db)
	premium := testutil.TestUser(t, db, testutil.WithPremium(nil))

	assert.NoError(t, svc.CheckMediaKind(free, model.MediaPhoto))
	assert.ErrorIs(t, svc.CheckMediaKind(free, model.MediaVideo), ErrMediaNotAllowed)
	assert.ErrorIs(t, svc.CheckMediaKind(free, model.MediaAnimation), ErrMediaNotAllowed)

	assert.NoError(t, svc.CheckMediaKind(premium, model.MediaVideo))
	assert.NoError(t, svc.CheckMediaKind(premium, model.MediaAnimation))
}
