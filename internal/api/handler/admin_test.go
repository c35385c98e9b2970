package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/dkoroteev/brawlmate/config"
	"github.com/dkoroteev/brawlmate/internal/pkg/response"
	"github.com/dkoroteev/brawlmate/internal/repository"
	"github.com/dkoroteev/brawlmate/internal/service"
	"github.com/dkoroteev/brawlmate/internal/testutil"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newAdminEnv(t *testing.T) (*AdminHandler, *repository.UserRepository, *gorm.DB) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	t.Cleanup(func() { testutil.CleanupTestDB(t, db) })

	cfg := &config.Config{
		Announcement: config.AnnouncementConfig{FreeLimit: 1, PremiumTypeLimit: 2, MinDescriptionLen: 20},
	}

	userRepo := repository.NewUserRepository(db)
	announcementRepo := repository.NewAnnouncementRepository(db)

	achievement := service.NewAchievementService(repository.NewAchievementRepository(db), userRepo)
	require.NoError(t, achievement.Seed())

	entitlement := service.NewEntitlementService(userRepo, announcementRepo, cfg)
	userService := service.NewUserService(userRepo, cfg)
	promoService := service.NewPromoService(repository.NewPromoRepository(db), entitlement, achievement)

	h := NewAdminHandler(promoService, userService, entitlement, userRepo, announcementRepo)
	return h, userRepo, db
}

func perform(t *testing.T, handler gin.HandlerFunc, method, path string, params gin.Params, body interface{}) (*httptest.ResponseRecorder, response.Response) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, path, &buf)
	c.Request.Header.Set("Content-Type", "application/json")
	c.Params = params

	handler(c)

	var resp response.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return w, resp
}

func TestAdminHandler_CreatePromo(t *testing.T) {
	h, _, _ := newAdminEnv(t)

	_, resp := perform(t, h.CreatePromo, "POST", "/api/v1/promos", nil, gin.H{
		"code":     "launch10",
		"days":     10,
		"max_uses": 50,
	})

	assert.Equal(t, response.CodeSuccess, resp.Code)

	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "LAUNCH10", data["code"])
}

func TestAdminHandler_CreatePromo_Duplicate(t *testing.T) {
	h, _, _ := newAdminEnv(t)

	_, resp := perform(t, h.CreatePromo, "POST", "/api/v1/promos", nil, gin.H{
		"code": "DUP", "days": 7, "max_uses": 5,
	})
	require.Equal(t, response.CodeSuccess, resp.Code)

	_, resp = perform(t, h.CreatePromo, "POST", "/api/v1/promos", nil, gin.H{
		"code": "dup", "days": 7, "max_uses": 5,
	})
	assert.Equal(t, response.CodeDuplicateAction, resp.Code)
}

func TestAdminHandler_CreatePromo_BadExpiry(t *testing.T) {
	h, _, _ := newAdminEnv(t)

	_, resp := perform(t, h.CreatePromo, "POST", "/api/v1/promos", nil, gin.H{
		"code": "BAD", "days": 7, "max_uses": 5, "expires_at": "tomorrow",
	})
	assert.Equal(t, response.CodeParamError, resp.Code)
}

func TestAdminHandler_GrantPremium(t *testing.T) {
	h, userRepo, db := newAdminEnv(t)

	user := testutil.TestUser(t, db)

	params := gin.Params{{Key: "id", Value: fmt.Sprintf("%d", user.ID)}}
	_, resp := perform(t, h.GrantPremium, "POST", "/api/v1/users/premium", params, gin.H{"days": 7})
	assert.Equal(t, response.CodeSuccess, resp.Code)

	stored, err := userRepo.GetByID(user.ID)
	require.NoError(t, err)
	assert.True(t, stored.Premium)
}

func TestAdminHandler_GrantPremium_UnknownUser(t *testing.T) {
	h, _, _ := newAdminEnv(t)

	params := gin.Params{{Key: "id", Value: "99999"}}
	_, resp := perform(t, h.GrantPremium, "POST", "/api/v1/users/premium", params, gin.H{"days": 7})
	assert.Equal(t, response.CodeResourceNotFound, resp.Code)
}

func TestAdminHandler_BlockUser(t *testing.T) {
	h, userRepo, db := newAdminEnv(t)

	user := testutil.TestUser(t, db)

	params := gin.Params{{Key: "id", Value: fmt.Sprintf("%d", user.ID)}}
	_, resp := perform(t, h.BlockUser, "POST", "/api/v1/users/block", params, gin.H{"blocked": true})
	assert.Equal(t, response.CodeSuccess, resp.Code)

	stored, err := userRepo.GetByID(user.ID)
	require.NoError(t, err)
	assert.True(t, stored.Blocked)
}

func TestAdminHandler_Stats(t *testing.T) {
	h, _, db := newAdminEnv(t)

	owner := testutil.TestUser(t, db)
	testutil.TestUser(t, db, testutil.WithPremium(nil))
	testutil.TestAnnouncement(t, db, owner.ID)

	_, resp := perform(t, h.Stats, "GET", "/api/v1/stats", nil, nil)
	require.Equal(t, response.CodeSuccess, resp.Code)

	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, float64(2), data["users"])
	assert.Equal(t, float64(1), data["premium_users"])
	assert.Equal(t, float64(1), data["announcements"])
}
