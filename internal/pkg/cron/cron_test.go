package cron

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkoroteev/brawlmate/internal/repository"
	"github.com/dkoroteev/brawlmate/internal/testutil"
)

func TestService_RunNow_SweepsExpired(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	userRepo := repository.NewUserRepository(db)
	svc := NewService(userRepo)

	past := time.Now().Add(-time.Hour)
	expired := testutil.TestUser(t, db, testutil.WithPremium(&past))
	forever := testutil.TestUser(t, db, testutil.WithPremium(nil))

	require.NoError(t, svc.RunNow())

	downgraded, err := userRepo.GetByID(expired.ID)
	require.NoError(t, err)
	assert.False(t, downgraded.Premium)

	untouched, err := userRepo.GetByID(forever.ID)
	require.NoError(t, err)
	assert.True(t, untouched.Premium)
}
