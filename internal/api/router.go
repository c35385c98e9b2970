package api

import (
	"github.com/gin-gonic/gin"

	"github.com/dkoroteev/brawlmate/config"
	"github.com/dkoroteev/brawlmate/internal/api/handler"
	"github.com/dkoroteev/brawlmate/internal/api/middleware"
)

type Router struct {
	adminHandler *handler.AdminHandler
	cfg          *config.Config
}

func NewRouter(adminHandler *handler.AdminHandler, cfg *config.Config) *Router {
	return &Router{
		adminHandler: adminHandler,
		cfg:          cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	if r.cfg.AdminAPI.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())

	engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := engine.Group("/api/v1")
	api.Use(middleware.Auth(r.cfg.AdminAPI.Token))
	{
		api.GET("/stats", r.adminHandler.Stats)

		promos := api.Group("/promos")
		{
			promos.POST("", r.adminHandler.CreatePromo)
			promos.POST("/:code/deactivate", r.adminHandler.DeactivatePromo)
		}

		users := api.Group("/users")
		{
			users.POST("/:id/premium", r.adminHandler.GrantPremium)
			users.POST("/:id/block", r.adminHandler.BlockUser)
		}
	}

	return engine
}
