package handler

import (
	"errors"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dkoroteev/brawlmate/internal/pkg/response"
	"github.com/dkoroteev/brawlmate/internal/repository"
	"github.com/dkoroteev/brawlmate/internal/service"
)

// AdminHandler exposes the privileged operations over HTTP. It calls
// the same services the bot's admin commands use.
type AdminHandler struct {
	promoService     *service.PromoService
	userService      *service.UserService
	entitlement      *service.EntitlementService
	userRepo         *repository.UserRepository
	announcementRepo *repository.AnnouncementRepository
}

func NewAdminHandler(
	promoService *service.PromoService,
	userService *service.UserService,
	entitlement *service.EntitlementService,
	userRepo *repository.UserRepository,
	announcementRepo *repository.AnnouncementRepository,
) *AdminHandler {
	return &AdminHandler{
		promoService:     promoService,
		userService:      userService,
		entitlement:      entitlement,
		userRepo:         userRepo,
		announcementRepo: announcementRepo,
	}
}

type createPromoRequest struct {
	Code      string `json:"code" binding:"required"`
	Days      int    `json:"days"`
	MaxUses   int    `json:"max_uses" binding:"required,min=1"`
	ExpiresAt string `json:"expires_at"` // RFC3339, optional
}

func (h *AdminHandler) CreatePromo(c *gin.Context) {
	var req createPromoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	var expiresAt *time.Time
	if req.ExpiresAt != "" {
		t, err := time.Parse(time.RFC3339, req.ExpiresAt)
		if err != nil {
			response.ParamError(c, "expires_at must be RFC3339")
			return
		}
		expiresAt = &t
	}

	promo, err := h.promoService.Create(req.Code, req.Days, req.MaxUses, expiresAt)
	if err != nil {
		if errors.Is(err, service.ErrPromoExists) {
			response.DuplicateError(c, err.Error())
			return
		}
		response.ServerError(c, err.Error())
		return
	}

	response.Success(c, promo)
}

func (h *AdminHandler) DeactivatePromo(c *gin.Context) {
	code := c.Param("code")

	if err := h.promoService.Deactivate(code); err != nil {
		if errors.Is(err, service.ErrPromoNotFound) {
			response.NotFoundError(c, err.Error())
			return
		}
		response.ServerError(c, err.Error())
		return
	}

	response.Success(c, nil)
}

type grantPremiumRequest struct {
	Days int `json:"days"` // 0 means forever
}

func (h *AdminHandler) GrantPremium(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ParamError(c, "invalid user id")
		return
	}

	var req grantPremiumRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	if _, err := h.userService.Get(userID); err != nil {
		response.NotFoundError(c, "user not found")
		return
	}

	if err := h.entitlement.GrantPremium(userID, req.Days); err != nil {
		response.ServerError(c, err.Error())
		return
	}

	response.Success(c, nil)
}

type blockRequest struct {
	Blocked bool `json:"blocked"`
}

func (h *AdminHandler) BlockUser(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ParamError(c, "invalid user id")
		return
	}

	var req blockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	if _, err := h.userService.Get(userID); err != nil {
		response.NotFoundError(c, "user not found")
		return
	}

	if err := h.userService.SetBlocked(userID, req.Blocked); err != nil {
		response.ServerError(c, err.Error())
		return
	}

	response.Success(c, nil)
}

type statsResponse struct {
	Users         int64 `json:"users"`
	PremiumUsers  int64 `json:"premium_users"`
	Announcements int64 `json:"announcements"`
}

func (h *AdminHandler) Stats(c *gin.Context) {
	users, err := h.userRepo.Count()
	if err != nil {
		response.ServerError(c, err.Error())
		return
	}
	premium, err := h.userRepo.CountPremium()
	if err != nil {
		response.ServerError(c, err.Error())
		return
	}
	announcements, err := h.announcementRepo.Count()
	if err != nil {
		response.ServerError(c, err.Error())
		return
	}

	response.Success(c, statsResponse{
		Users:         users,
		PremiumUsers:  premium,
		Announcements: announcements,
	})
}
