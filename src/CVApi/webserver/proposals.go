package webserver

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/campus-voice/campusvoice/src/CVApi/store"
	"github.com/campus-voice/campusvoice/src/CVApi/views"
)

// Proposals serves the board: listing with derived views, endorsement
// toggling, and the admin status workflow.
type Proposals struct {
	board *store.Proposals
}

func NewProposals(board *store.Proposals) Proposals {
	return Proposals{board: board}
}

func (p Proposals) List(c *gin.Context) {
	category := c.DefaultQuery("category", views.CategoryAll)
	search := c.Query("q")
	order := c.DefaultQuery("sort", views.SortNewest)

	list := views.Filter(p.board.List(), category, search)
	list = views.Sort(list, order)
	c.JSON(http.StatusOK, gin.H{"proposals": list})
}

func (p Proposals) Trending(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "5"))
	c.JSON(http.StatusOK, gin.H{"tags": views.TrendingTags(p.board.List(), limit)})
}

func (p Proposals) ToggleEndorsement(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"err": "invalid proposal id"})
		return
	}

	updated, signed, err := p.board.ToggleEndorsement(c.Request.Context(), id, currentIdentity(c))
	switch err {
	case nil:
		c.JSON(http.StatusOK, gin.H{"signed": signed, "proposal": updated})
	case store.ErrAuthRequired:
		c.JSON(http.StatusUnauthorized, gin.H{"err": "authentication required"})
	case store.ErrNotFound:
		c.JSON(http.StatusNotFound, gin.H{"err": "proposal not found"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"err": "your change was not saved"})
	}
}

func (p Proposals) SetStatus(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"err": "invalid proposal id"})
		return
	}

	var req struct {
		Status   string `json:"status" binding:"required,oneof=RECEIVED UNDER_REVIEW COORDINATING RESOLVED"`
		Response string `json:"response" binding:"max=10000"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"err": err.Error()})
		return
	}

	// A stale id is tolerated: the store leaves the collection unchanged.
	switch err := p.board.SetStatus(c.Request.Context(), id, req.Status, req.Response); err {
	case nil:
		c.JSON(http.StatusOK, gin.H{"success": true})
	case store.ErrBadStatus:
		c.JSON(http.StatusBadRequest, gin.H{"err": "unknown status"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"err": "your change was not saved"})
	}
}
