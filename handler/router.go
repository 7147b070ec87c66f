package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes wires every endpoint onto r.
//
//	POST  /api/webhook              - Telegram update intake
//	GET   /api/applications         - list submissions, newest first
//	PATCH /api/applications/:id     - reviewer verdict
//	GET   /api/stats                - aggregate counts
//	POST  /api/set-webhook          - register the webhook URL
//	GET   /api/set-webhook          - current webhook info
//	GET   /health                   - liveness
func RegisterRoutes(r *gin.Engine, h *Handlers) {
	api := r.Group("/api")
	api.POST("/webhook", h.HandleWebhook)
	api.GET("/applications", h.HandleListApplications)
	api.PATCH("/applications/:id", h.HandleUpdateApplication)
	api.GET("/stats", h.HandleStats)
	api.POST("/set-webhook", h.HandleSetWebhook)
	api.GET("/set-webhook", h.HandleWebhookInfo)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}
