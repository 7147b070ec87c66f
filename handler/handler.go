// Package handler is the HTTP surface: the Telegram webhook intake and
// the reviewer/dashboard API.
package handler

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Selaelo1/telemanBot/db"
	"github.com/Selaelo1/telemanBot/engine"
)

// WebhookManager is the slice of the Telegram client the setup
// endpoints need.
type WebhookManager interface {
	SetWebhook(url string) error
	WebhookInfo() (tgbotapi.WebhookInfo, error)
}

// Handlers bundles the endpoints with their collaborators.
type Handlers struct {
	engine   *engine.Engine
	store    *db.Store
	notifier engine.Notifier
	webhooks WebhookManager
}

// New builds the handler set. webhooks may be nil when the process
// runs without a Telegram connection; the setup endpoints then answer
// 503.
func New(eng *engine.Engine, store *db.Store, notifier engine.Notifier, webhooks WebhookManager) *Handlers {
	return &Handlers{
		engine:   eng,
		store:    store,
		notifier: notifier,
		webhooks: webhooks,
	}
}
