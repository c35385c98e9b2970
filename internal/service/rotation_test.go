package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkoroteev/brawlmate/internal/model"
	"github.com/dkoroteev/brawlmate/internal/repository"
	"github.com/dkoroteev/brawlmate/internal/testutil"
)

func TestCycleIndex(t *testing.T) {
	assert.Equal(t, 0, CycleIndex(0, 3))
	assert.Equal(t, 2, CycleIndex(2, 3))
	assert.Equal(t, 0, CycleIndex(3, 3))  // past the end wraps to the start
	assert.Equal(t, 2, CycleIndex(-1, 3)) // before the start wraps to the end
	assert.Equal(t, 1, CycleIndex(7, 3))
	assert.Equal(t, 0, CycleIndex(5, 0))
}

func TestRotationService_NextCandidate_EmptyPool(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	svc := NewRotationService(repository.NewAnnouncementRepository(db), repository.NewFavoriteRepository(db))

	viewer := testutil.TestUser(t, db)

	a, err := svc.NextCandidate(viewer.ID, model.TypeTeam, repository.RotationQuery{})
	require.NoError(t, err)
	assert.Nil(t, a)
}

func TestRotationService_NextCandidate(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	svc := NewRotationService(repository.NewAnnouncementRepository(db), repository.NewFavoriteRepository(db))

	viewer := testutil.TestUser(t, db)
	owner := testutil.TestUser(t, db)
	a := testutil.TestAnnouncement(t, db, owner.ID)

	found, err := svc.NextCandidate(viewer.ID, model.TypeTeam, repository.RotationQuery{})
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, a.ID, found.ID)
	require.NotNil(t, found.User)
	assert.Equal(t, owner.ID, found.User.ID)
}

func TestRotationService_FavoritesPage_Cyclic(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	favoriteRepo := repository.NewFavoriteRepository(db)
	svc := NewRotationService(repository.NewAnnouncementRepository(db), favoriteRepo)

	user := testutil.TestUser(t, db)
	owner := testutil.TestUser(t, db)

	first := testutil.TestAnnouncement(t, db, owner.ID)
	second := testutil.TestAnnouncement(t, db, owner.ID)

	require.NoError(t, favoriteRepo.Create(&model.Favorite{UserID: user.ID, AnnouncementID: first.ID}))
	require.NoError(t, favoriteRepo.Create(&model.Favorite{UserID: user.ID, AnnouncementID: second.ID}))

	page, err := svc.FavoritesPage(user.ID, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, page.Total)
	assert.Equal(t, first.ID, page.Announcement.ID)

	// stepping past the last favorite lands back on the first
	page, err = svc.FavoritesPage(user.ID, 2)
	require.NoError(t, err)
	assert.Equal(t, 0, page.Index)
	assert.Equal(t, first.ID, page.Announcement.ID)

	// stepping before the first lands on the last
	page, err = svc.FavoritesPage(user.ID, -1)
	require.NoError(t, err)
	assert.Equal(t, 1, page.Index)
	assert.Equal(t, second.ID, page.Announcement.ID)
}

func TestRotationService_FavoritesPage_Empty(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	svc := NewRotationService(repository.NewAnnouncementRepository(db), repository.NewFavoriteRepository(db))

	user := testutil.TestUser(t, db)

	page, err := svc.FavoritesPage(user.ID, 5)
	require.NoError(t, err)
	assert.Equal(t, 0, page.Total)
	assert.Nil(t, page.Announcement)
}

func TestRotationService_OwnPage(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	svc := NewRotationService(repository.NewAnnouncementRepository(db), repository.NewFavoriteRepository(db))

	user := testutil.TestUser(t, db)
	a := testutil.TestAnnouncement(t, db, user.ID)

	page, err := svc.OwnPage(user.ID, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, page.Total)
	assert.Equal(t, a.ID, page.Announcement.ID)
}
