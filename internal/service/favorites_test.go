package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkoroteev/brawlmate/internal/model"
	"github.com/dkoroteev/brawlmate/internal/repository"
	"github.com/dkoroteev/brawlmate/internal/testutil"
)

func TestFavoriteService_AddFavorite_Idempotent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	favoriteRepo := repository.NewFavoriteRepository(db)
	svc := NewFavoriteService(favoriteRepo, repository.NewReportRepository(db), repository.NewAnnouncementRepository(db))

	user := testutil.TestUser(t, db)
	owner := testutil.TestUser(t, db)
	a := testutil.TestAnnouncement(t, db, owner.ID)

	added, err := svc.AddFavorite(user.ID, a.ID)
	require.NoError(t, err)
	assert.True(t, added)

	// second add reports existing state, no duplicate row
	added, err = svc.AddFavorite(user.ID, a.ID)
	require.NoError(t, err)
	assert.False(t, added)

	count, err := favoriteRepo.CountByUser(user.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestFavoriteService_AddFavorite_MissingAnnouncement(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	svc := NewFavoriteService(repository.NewFavoriteRepository(db), repository.NewReportRepository(db), repository.NewAnnouncementRepository(db))

	user := testutil.TestUser(t, db)

	_, err := svc.AddFavorite(user.ID, 99999)
	assert.ErrorIs(t, err, ErrAnnouncementNotFound)
}

func TestFavoriteService_RemoveFavorite(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	svc := NewFavoriteService(repository.NewFavoriteRepository(db), repository.NewReportRepository(db), repository.NewAnnouncementRepository(db))

	user := testutil.TestUser(t, db)
	owner := testutil.TestUser(t, db)
	a := testutil.TestAnnouncement(t, db, owner.ID)

	_, err := svc.AddFavorite(user.ID, a.ID)
	require.NoError(t, err)

	removed, err := svc.RemoveFavorite(user.ID, a.ID)
	require.NoError(t, err)
	assert.True(t, removed)

	// removing an absent pair is not an error
	removed, err = svc.RemoveFavorite(user.ID, a.ID)
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestFavoriteService_Report_DuplicateSilentlyDropped(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	reportRepo := repository.NewReportRepository(db)
	svc := NewFavoriteService(repository.NewFavoriteRepository(db), reportRepo, repository.NewAnnouncementRepository(db))

	user := testutil.TestUser(t, db)
	owner := testutil.TestUser(t, db)
	a := testutil.TestAnnouncement(t, db, owner.ID)

	require.NoError(t, svc.Report(user.ID, a.ID, model.ReasonSpam))
	require.NoError(t, svc.Report(user.ID, a.ID, model.ReasonFraud))

	count, err := reportRepo.CountByAnnouncement(a.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestFavoriteService_Report_InvalidReason(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	svc := NewFavoriteService(repository.NewFavoriteRepository(db), repository.NewReportRepository(db), repository.NewAnnouncementRepository(db))

	user := testutil.TestUser(t, db)
	owner := testutil.TestUser(t, db)
	a := testutil.TestAnnouncement(t, db, owner.ID)

	err := svc.Report(user.ID, a.ID, "nonsense")
	assert.ErrorIs(t, err, ErrInvalidReason)
}
