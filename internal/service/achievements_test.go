package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/dkoroteev/brawlmate/internal/model"
	"github.com/dkoroteev/brawlmate/internal/repository"
	"github.com/dkoroteev/brawlmate/internal/testutil"
)

func newAchievementEnv(t *testing.T) (*AchievementService, *repository.UserRepository, *gorm.DB) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	t.Cleanup(func() { testutil.CleanupTestDB(t, db) })

	userRepo := repository.NewUserRepository(db)
	svc := NewAchievementService(repository.NewAchievementRepository(db), userRepo)
	require.NoError(t, svc.Seed())

	return svc, userRepo, db
}

func TestAchievementService_OnAnnouncementCreated(t *testing.T) {
	svc, userRepo, db := newAchievementEnv(t)

	user := testutil.TestUser(t, db)
	require.NoError(t, userRepo.IncrementAnnouncementCount(user.ID, model.TypeTeam))

	awarded, err := svc.OnAnnouncementCreated(user.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{AchFirstTeam}, awarded)

	// re-checking awards nothing new
	awarded, err = svc.OnAnnouncementCreated(user.ID)
	require.NoError(t, err)
	assert.Empty(t, awarded)
}

func TestAchievementService_Tycoon(t *testing.T) {
	svc, _, db := newAchievementEnv(t)

	poor := testutil.TestUser(t, db, testutil.WithCrystals(999))
	rich := testutil.TestUser(t, db, testutil.WithCrystals(1000))

	awarded, err := svc.OnBalanceChanged(poor.ID)
	require.NoError(t, err)
	assert.Empty(t, awarded)

	awarded, err = svc.OnBalanceChanged(rich.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{AchTycoon}, awarded)
}

func TestAchievementService_ReferralThresholds(t *testing.T) {
	svc, userRepo, db := newAchievementEnv(t)

	user := testutil.TestUser(t, db)
	for i := 0; i < 5; i++ {
		require.NoError(t, userRepo.IncrementReferrals(user.ID))
	}

	awarded, err := svc.OnReferral(user.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{AchRecruiter}, awarded)

	for i := 0; i < 20; i++ {
		require.NoError(t, userRepo.IncrementReferrals(user.ID))
	}

	awarded, err = svc.OnReferral(user.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{AchHeadhunter}, awarded)
}

func TestAchievementService_VisitSection_Explorer(t *testing.T) {
	svc, _, db := newAchievementEnv(t)

	user := testutil.TestUser(t, db)

	sections := []string{
		model.SectionProfile,
		model.SectionSearchTeam,
		model.SectionSearchClub,
		model.SectionCrystals,
		model.SectionShop,
	}
	for _, s := range sections {
		awarded, err := svc.VisitSection(user.ID, s)
		require.NoError(t, err)
		assert.Empty(t, awarded)
	}

	// repeat visits never count toward coverage
	awarded, err := svc.VisitSection(user.ID, model.SectionProfile)
	require.NoError(t, err)
	assert.Empty(t, awarded)

	// the sixth distinct required section completes the set
	awarded, err = svc.VisitSection(user.ID, model.SectionAchievements)
	require.NoError(t, err)
	assert.Equal(t, []string{AchExplorer}, awarded)
}

func TestAchievementService_VisitSection_OptionalSectionsDoNotComplete(t *testing.T) {
	svc, _, db := newAchievementEnv(t)

	user := testutil.TestUser(t, db)

	for _, s := range []string{
		model.SectionProfile,
		model.SectionSearchTeam,
		model.SectionSearchClub,
		model.SectionCrystals,
		model.SectionShop,
		model.SectionFavorites,
		model.SectionSponsors,
	} {
		awarded, err := svc.VisitSection(user.ID, s)
		require.NoError(t, err)
		assert.Empty(t, awarded)
	}
}

func TestAchievementService_OnGiftReceived(t *testing.T) {
	svc, _, db := newAchievementEnv(t)

	user := testutil.TestUser(t, db)

	awarded, err := svc.OnGiftReceived(user.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{AchGifted}, awarded)
}

func TestAchievementService_ListEarned_CatalogOrder(t *testing.T) {
	svc, userRepo, db := newAchievementEnv(t)

	user := testutil.TestUser(t, db, testutil.WithCrystals(1000))

	// earn gifted first, then tycoon; listing must follow catalog order
	_, err := svc.OnGiftReceived(user.ID)
	require.NoError(t, err)
	_, err = svc.OnBalanceChanged(user.ID)
	require.NoError(t, err)
	require.NoError(t, userRepo.IncrementAnnouncementCount(user.ID, model.TypeTeam))
	_, err = svc.OnAnnouncementCreated(user.ID)
	require.NoError(t, err)

	earned, err := svc.ListEarned(user.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{AchFirstTeam, AchTycoon, AchGifted}, earned)
}
