package handlers

import (
	"net/http"

	"github.com/Tonkata28/imotiko-website/internal/database"

	"github.com/gin-gonic/gin"
)

// StatsHandler serves the public aggregate statistics
type StatsHandler struct {
	db *database.GormDB
}

// NewStatsHandler creates a new stats handler
func NewStatsHandler(db *database.GormDB) *StatsHandler {
	return &StatsHandler{db: db}
}

// Get handles GET /api/stats
func (h *StatsHandler) Get(c *gin.Context) {
	stats, err := h.db.GetStats()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute statistics"})
		return
	}

	c.JSON(http.StatusOK, stats)
}
