package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/dkoroteev/brawlmate/internal/repository"
	"github.com/dkoroteev/brawlmate/internal/testutil"
)

func newPromoEnv(t *testing.T) (*PromoService, *repository.UserRepository, *repository.PromoRepository, *gorm.DB) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	t.Cleanup(func() { testutil.CleanupTestDB(t, db) })

	userRepo := repository.NewUserRepository(db)
	promoRepo := repository.NewPromoRepository(db)

	achievement := NewAchievementService(repository.NewAchievementRepository(db), userRepo)
	require.NoError(t, achievement.Seed())

	entitlement := NewEntitlementService(userRepo, repository.NewAnnouncementRepository(db), testConfig())
	svc := NewPromoService(promoRepo, entitlement, achievement)

	return svc, userRepo, promoRepo, db
}

func TestPromoService_Redeem(t *testing.T) {
	svc, userRepo, _, db := newPromoEnv(t)

	user := testutil.TestUser(t, db)
	testutil.TestPromo(t, db, "WELCOME7", 7, 10)

	promo, err := svc.Redeem(user.ID, "welcome7") // case-insensitive entry
	require.NoError(t, err)
	assert.Equal(t, 1, promo.Uses)

	stored, err := userRepo.GetByID(user.ID)
	require.NoError(t, err)
	assert.True(t, stored.Premium)
	require.NotNil(t, stored.PremiumUntil)
	assert.WithinDuration(t, time.Now().Add(7*24*time.Hour), *stored.PremiumUntil, 2*time.Second)
}

func TestPromoService_Redeem_OncePerUser(t *testing.T) {
	svc, _, _, db := newPromoEnv(t)

	user := testutil.TestUser(t, db)
	testutil.TestPromo(t, db, "TWICE", 7, 10)

	_, err := svc.Redeem(user.ID, "TWICE")
	require.NoError(t, err)

	_, err = svc.Redeem(user.ID, "TWICE")
	assert.ErrorIs(t, err, ErrPromoAlreadyUsed)
}

func TestPromoService_Redeem_ExhaustionDeactivates(t *testing.T) {
	svc, _, promoRepo, db := newPromoEnv(t)

	first := testutil.TestUser(t, db)
	second := testutil.TestUser(t, db)
	third := testutil.TestUser(t, db)

	testutil.TestPromo(t, db, "SAVE30", 30, 2)

	_, err := svc.Redeem(first.ID, "SAVE30")
	require.NoError(t, err)

	// the last permitted use flips the code off
	promo, err := svc.Redeem(second.ID, "SAVE30")
	require.NoError(t, err)
	assert.False(t, promo.Active)

	stored, err := promoRepo.GetByCode("SAVE30")
	require.NoError(t, err)
	assert.False(t, stored.Active)
	assert.Equal(t, 2, stored.Uses)

	_, err = svc.Redeem(third.ID, "SAVE30")
	assert.ErrorIs(t, err, ErrPromoInactive)
}

func TestPromoService_Redeem_Expired(t *testing.T) {
	svc, _, _, db := newPromoEnv(t)

	user := testutil.TestUser(t, db)
	testutil.TestPromo(t, db, "OLD", 7, 10, testutil.WithExpiry(time.Now().Add(-time.Hour)))

	_, err := svc.Redeem(user.ID, "OLD")
	assert.ErrorIs(t, err, ErrPromoExpired)
}

func TestPromoService_Redeem_NotFound(t *testing.T) {
	svc, _, _, db := newPromoEnv(t)

	user := testutil.TestUser(t, db)

	_, err := svc.Redeem(user.ID, "NOPE")
	assert.ErrorIs(t, err, ErrPromoNotFound)
}

func TestPromoService_Redeem_Inactive(t *testing.T) {
	svc, _, _, db := newPromoEnv(t)

	user := testutil.TestUser(t, db)
	testutil.TestPromo(t, db, "DISABLED", 7, 10, testutil.WithInactive())

	_, err := svc.Redeem(user.ID, "DISABLED")
	assert.ErrorIs(t, err, ErrPromoInactive)
}

func TestPromoService_Redeem_ForeverCode(t *testing.T) {
	svc, userRepo, _, db := newPromoEnv(t)

	user := testutil.TestUser(t, db)
	testutil.TestPromo(t, db, "ETERNAL", 0, 1)

	promo, err := svc.Redeem(user.ID, "ETERNAL")
	require.NoError(t, err)
	assert.Equal(t, 0, promo.Days)

	stored, err := userRepo.GetByID(user.ID)
	require.NoError(t, err)
	assert.True(t, stored.Premium)
	assert.Nil(t, stored.PremiumUntil)
}

func TestPromoService_Create_DuplicateCode(t *testing.T) {
	svc, _, _, _ := newPromoEnv(t)

	_, err := svc.Create("fresh", 7, 5, nil)
	require.NoError(t, err)

	// stored upper-cased, so a different-cased duplicate collides
	_, err = svc.Create("FRESH", 7, 5, nil)
	assert.ErrorIs(t, err, ErrPromoExists)
}

func TestPromoService_Deactivate(t *testing.T) {
	svc, _, _, db := newPromoEnv(t)

	user := testutil.TestUser(t, db)
	testutil.TestPromo(t, db, "KILLME", 7, 100)

	require.NoError(t, svc.Deactivate("killme"))

	_, err := svc.Redeem(user.ID, "KILLME")
	assert.ErrorIs(t, err, ErrPromoInactive)
}
