package webserver

import (
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
	"github.com/microcosm-cc/bluemonday"

	"github.com/campus-voice/campusvoice/src/CVApi/gate"
)

// Drafts exposes the submission gate: edit, check, submit, discard.
type Drafts struct {
	gate      *gate.Gate
	sanitizer *bluemonday.Policy
}

func NewDrafts(g *gate.Gate) Drafts {
	// Proposals are plain text; strip all markup outright.
	return Drafts{gate: g, sanitizer: bluemonday.StrictPolicy()}
}

func (d Drafts) Get(c *gin.Context) {
	draft, ok := d.gate.Draft(currentIdentity(c).ID)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"err": "no draft in progress"})
		return
	}
	c.JSON(http.StatusOK, draft)
}

func (d Drafts) Update(c *gin.Context) {
	var req struct {
		Title    string `json:"title" binding:"max=255"`
		Content  string `json:"content" binding:"max=10000"`
		Category string `json:"category" binding:"max=32"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"err": err.Error()})
		return
	}

	req.Title = strings.TrimSpace(d.sanitizer.Sanitize(req.Title))
	req.Content = strings.TrimSpace(d.sanitizer.Sanitize(req.Content))
	if !utf8.ValidString(req.Title) || !utf8.ValidString(req.Content) {
		c.JSON(http.StatusBadRequest, gin.H{"err": "invalid characters in input"})
		return
	}

	draft := d.gate.Update(currentIdentity(c).ID, req.Title, req.Content, req.Category)
	c.JSON(http.StatusOK, draft)
}

func (d Drafts) Check(c *gin.Context) {
	draft, err := d.gate.Check(c.Request.Context(), currentIdentity(c).ID)
	switch err {
	case nil:
		c.JSON(http.StatusOK, draft)
	case gate.ErrNoDraft:
		c.JSON(http.StatusNotFound, gin.H{"err": "no draft in progress"})
	case gate.ErrValidation:
		c.JSON(http.StatusBadRequest, gin.H{"err": "title and content are required"})
	case gate.ErrCheckInFlight:
		c.JSON(http.StatusConflict, gin.H{"err": "check already in flight"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"err": err.Error()})
	}
}

func (d Drafts) Submit(c *gin.Context) {
	p, err := d.gate.Submit(c.Request.Context(), currentIdentity(c).ID)
	switch err {
	case nil:
		c.JSON(http.StatusCreated, p)
	case gate.ErrNoDraft:
		c.JSON(http.StatusNotFound, gin.H{"err": "no draft in progress"})
	case gate.ErrNotApproved:
		c.JSON(http.StatusConflict, gin.H{"err": "draft must pass the content check first"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"err": "your change was not saved"})
	}
}

func (d Drafts) Discard(c *gin.Context) {
	d.gate.Discard(currentIdentity(c).ID)
	c.Status(http.StatusNoContent)
}
