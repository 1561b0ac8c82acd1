package webserver

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/campus-voice/campusvoice/src/CVApi/config"
	"github.com/campus-voice/campusvoice/src/CVApi/gate"
	"github.com/campus-voice/campusvoice/src/CVApi/store"
)

func attachRoutes(r *gin.Engine, cfg config.Config, g *gate.Gate, board *store.Proposals, news *store.Announcements) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	secret := []byte(cfg.JWTSecret)
	authH := NewAuth(secret, cfg.MemberPassword, cfg.AdminPassword)
	draftH := NewDrafts(g)
	propH := NewProposals(board)
	newsH := NewAnnouncements(news)
	checkLimiter := NewRateLimiter(cfg.CheckRate, time.Duration(cfg.CheckWindow)*time.Second)

	v1 := r.Group("/v1")
	{
		v1.POST("/auth/login", authH.Login)

		secured := v1.Group("")
		secured.Use(JWTMiddleware(secret))
		{
			secured.GET("/draft", draftH.Get)
			secured.PUT("/draft", draftH.Update)
			secured.POST("/draft/check", RateLimitMiddleware(checkLimiter), draftH.Check)
			secured.POST("/draft/submit", draftH.Submit)
			secured.DELETE("/draft", draftH.Discard)

			secured.GET("/proposals", propH.List)
			secured.GET("/proposals/trending", propH.Trending)
			secured.POST("/proposals/:id/endorsement", propH.ToggleEndorsement)

			secured.GET("/announcements", newsH.List)
		}

		admin := v1.Group("/admin")
		admin.Use(JWTMiddleware(secret), AdminMiddleware())
		{
			admin.PUT("/proposals/:id/status", propH.SetStatus)
			admin.POST("/announcements", newsH.Create)
			admin.PUT("/announcements/:id", newsH.Update)
			admin.DELETE("/announcements/:id", newsH.Delete)
		}
	}
}
