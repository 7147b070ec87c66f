package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Selaelo1/telemanBot/model"
)

// HandleWebhook ingests one Telegram update. Telegram only needs a 200
// back; all protocol replies travel through the bot API, so updates
// without a usable text message are acknowledged and dropped.
func (h *Handlers) HandleWebhook(c *gin.Context) {
	var update tgbotapi.Update
	if err := c.ShouldBindJSON(&update); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "malformed update"})
		return
	}

	m := update.Message
	if m == nil || m.Text == "" || m.From == nil || m.Chat == nil {
		c.JSON(http.StatusOK, gin.H{"success": true})
		return
	}

	h.engine.HandleMessage(model.InboundMessage{
		TelegramID: strconv.FormatInt(m.From.ID, 10),
		FirstName:  m.From.FirstName,
		Username:   m.From.UserName,
		Text:       m.Text,
		ChatID:     m.Chat.ID,
	})

	c.JSON(http.StatusOK, gin.H{"success": true})
}
