package webserver

import (
	"github.com/gin-gonic/gin"

	"github.com/campus-voice/campusvoice/src/CVApi/config"
	"github.com/campus-voice/campusvoice/src/CVApi/gate"
	"github.com/campus-voice/campusvoice/src/CVApi/store"
)

func New(cfg config.Config, g *gate.Gate, board *store.Proposals, news *store.Announcements) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())
	attachRoutes(r, cfg, g, board, news)
	return r
}
