package handlers

import (
	"errors"
	"net/http"

	"github.com/Tonkata28/imotiko-website/internal/database"
	"github.com/Tonkata28/imotiko-website/internal/session"

	"github.com/gin-gonic/gin"
)

// FavoriteHandler serves the session-scoped favorites endpoints
type FavoriteHandler struct {
	db       *database.GormDB
	sessions *session.Manager
}

// NewFavoriteHandler creates a new favorite handler
func NewFavoriteHandler(db *database.GormDB, sessions *session.Manager) *FavoriteHandler {
	return &FavoriteHandler{db: db, sessions: sessions}
}

// Toggle handles POST /api/favorites/toggle. A caller without a session
// gets one minted and attached to the response, so the next toggle lands
// on the same favorites set.
func (h *FavoriteHandler) Toggle(c *gin.Context) {
	var req struct {
		PropertyID uint `json:"property_id" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": fieldErrors(err)})
		return
	}

	token, err := h.sessions.EnsureToken(c.Request, c.Writer)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to establish session"})
		return
	}

	favorited, err := h.db.ToggleFavorite(token, req.PropertyID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Property not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to toggle favorite"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"favorited": favorited})
}

// List handles GET /api/favorites. A caller with no session gets an
// empty list; no session is minted on a read.
func (h *FavoriteHandler) List(c *gin.Context) {
	token := h.sessions.Token(c.Request)
	if token == "" {
		c.JSON(http.StatusOK, gin.H{"properties": []struct{}{}, "count": 0})
		return
	}

	properties, err := h.db.ListFavorites(token)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query favorites"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"properties": properties,
		"count":      len(properties),
	})
}
