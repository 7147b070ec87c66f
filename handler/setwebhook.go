package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

type setWebhookRequest struct {
	WebhookURL string `json:"webhookUrl"`
}

// HandleSetWebhook registers the given URL as the bot's webhook.
func (h *Handlers) HandleSetWebhook(c *gin.Context) {
	if h.webhooks == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "telegram is not connected"})
		return
	}

	var req setWebhookRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.WebhookURL == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "webhook URL is required"})
		return
	}

	if err := h.webhooks.SetWebhook(req.WebhookURL); err != nil {
		slog.Error("set webhook failed", "url", req.WebhookURL, "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to set webhook"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// HandleWebhookInfo reports the webhook Telegram currently has on
// file for this bot.
func (h *Handlers) HandleWebhookInfo(c *gin.Context) {
	if h.webhooks == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "telegram is not connected"})
		return
	}

	info, err := h.webhooks.WebhookInfo()
	if err != nil {
		slog.Error("webhook info failed", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch webhook info"})
		return
	}

	c.JSON(http.StatusOK, info)
}
