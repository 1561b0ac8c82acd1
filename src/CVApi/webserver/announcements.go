package webserver

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/campus-voice/campusvoice/src/CVApi/store"
)

// Announcements is the news board. Mutations are admin-only.
type Announcements struct {
	news *store.Announcements
}

func NewAnnouncements(news *store.Announcements) Announcements {
	return Announcements{news: news}
}

func (a Announcements) List(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"announcements": a.news.List()})
}

func (a Announcements) Create(c *gin.Context) {
	var req struct {
		Title string `json:"title" binding:"required,max=255"`
		Body  string `json:"body" binding:"required,max=10000"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"err": err.Error()})
		return
	}

	created, err := a.news.Create(c.Request.Context(), req.Title, req.Body)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"err": "your change was not saved"})
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (a Announcements) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"err": "invalid announcement id"})
		return
	}

	var req struct {
		Title string `json:"title" binding:"required,max=255"`
		Body  string `json:"body" binding:"required,max=10000"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"err": err.Error()})
		return
	}

	switch err := a.news.Update(c.Request.Context(), id, req.Title, req.Body); err {
	case nil:
		c.JSON(http.StatusOK, gin.H{"success": true})
	case store.ErrNotFound:
		c.JSON(http.StatusNotFound, gin.H{"err": "announcement not found"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"err": "your change was not saved"})
	}
}

func (a Announcements) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"err": "invalid announcement id"})
		return
	}

	switch err := a.news.Delete(c.Request.Context(), id); err {
	case nil:
		c.Status(http.StatusNoContent)
	case store.ErrNotFound:
		c.JSON(http.StatusNotFound, gin.H{"err": "announcement not found"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"err": "your change was not saved"})
	}
}
