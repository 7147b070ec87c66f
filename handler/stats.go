package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

// HandleStats returns the aggregate submission counts.
func (h *Handlers) HandleStats(c *gin.Context) {
	stats, err := h.store.Stats()
	if err != nil {
		slog.Error("stats query failed", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(http.StatusOK, stats)
}
