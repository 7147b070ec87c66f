// Package telegram wraps the Bot API for the two things this system
// does over it: sending HTML-formatted messages and managing the
// webhook registration.
package telegram

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Client is the outbound Telegram connection.
type Client struct {
	bot *tgbotapi.BotAPI
}

// NewClient authenticates against the Bot API with token.
func NewClient(token string) (*Client, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram auth: %w", err)
	}
	return &Client{bot: bot}, nil
}

// Username returns the bot account's username.
func (c *Client) Username() string {
	return c.bot.Self.UserName
}

// Notify sends text to the chat, rendered as HTML.
func (c *Client) Notify(chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	_, err := c.bot.Send(msg)
	return err
}

// SetWebhook points the bot's webhook at url.
func (c *Client) SetWebhook(url string) error {
	wh, err := tgbotapi.NewWebhook(url)
	if err != nil {
		return err
	}
	_, err = c.bot.Request(wh)
	return err
}

// WebhookInfo returns the currently registered webhook.
func (c *Client) WebhookInfo() (tgbotapi.WebhookInfo, error) {
	return c.bot.GetWebhookInfo()
}
