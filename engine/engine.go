// Package engine drives each Telegram user through the intake form one
// message at a time. It owns the step state machine; transport and
// storage are collaborators passed in at construction.
package engine

import (
	"log/slog"
	"strings"

	"github.com/Selaelo1/telemanBot/model"
	"github.com/Selaelo1/telemanBot/session"
)

// Notifier delivers a formatted message to a chat. Implementations
// report failure through the error; the engine logs it and moves on —
// delivery is best effort and never gates a state change.
type Notifier interface {
	Notify(chatID int64, text string) error
}

// SubmissionStore is the slice of the submission store the engine
// needs: the pending check on /start and finalization.
type SubmissionStore interface {
	CreateSubmission(n model.NewSubmission) (*model.Submission, error)
	GetSubmissionByTelegramID(telegramID string) (*model.Submission, error)
}

// Engine is the conversation state machine. All state lives in the
// stores; the engine itself holds no per-user data, so concurrent
// messages for different users never interact.
type Engine struct {
	sessions    *session.Store
	submissions SubmissionStore
	notifier    Notifier
}

// New wires an engine to its collaborators.
func New(sessions *session.Store, submissions SubmissionStore, notifier Notifier) *Engine {
	return &Engine{
		sessions:    sessions,
		submissions: submissions,
		notifier:    notifier,
	}
}

const startCommand = "/start"

// HandleMessage runs one state-machine transition for the user behind
// msg. Store effects are committed before any reply goes out.
func (e *Engine) HandleMessage(msg model.InboundMessage) {
	text := strings.TrimSpace(msg.Text)

	if text == startCommand {
		e.handleStart(msg)
		return
	}

	sess := e.sessions.Get(msg.TelegramID)
	if sess == nil {
		// Recovery path for users who skipped /start; same rules apply,
		// including the pending-application check.
		e.handleStart(msg)
		return
	}

	e.step(msg, sess, text)
}

// handleStart begins a fresh intake unless the user already has an
// application in review.
func (e *Engine) handleStart(msg model.InboundMessage) {
	existing, err := e.submissions.GetSubmissionByTelegramID(msg.TelegramID)
	if err != nil {
		slog.Error("pending-submission lookup failed", "telegram_id", msg.TelegramID, "err", err)
		e.reset(msg)
		return
	}
	if existing != nil && existing.Status == model.StatusPending {
		e.send(msg.ChatID, pendingNoticeMessage(existing.SubmittedAt))
		return
	}
	e.begin(msg)
}

// begin starts a fresh session and sends the welcome prompt.
func (e *Engine) begin(msg model.InboundMessage) {
	e.sessions.Create(msg.TelegramID)
	e.send(msg.ChatID, welcomeMessage)
}

// reset is the defensive path for corrupted or unknown session state:
// drop the session and ask the user to start over.
func (e *Engine) reset(msg model.InboundMessage) {
	e.sessions.Delete(msg.TelegramID)
	e.send(msg.ChatID, resetMessage)
}

// step validates text against the session's current step and either
// reprompts, advances, or finalizes.
func (e *Engine) step(msg model.InboundMessage, sess *model.Session, text string) {
	if sess.Step == model.StepCompleted {
		// Another delivery for this user is mid-finalization holding
		// the claim; the finalizer replies and settles the session.
		// Touching it here would tear down a claim we don't own.
		return
	}

	t, ok := transitions[sess.Step]
	if !ok {
		e.reset(msg)
		return
	}

	if !t.valid(text) {
		e.send(msg.ChatID, t.errorPrompt)
		return
	}

	if t.final {
		e.finalize(msg, sess.Step, text)
		return
	}

	if _, ok := e.sessions.Advance(msg.TelegramID, sess.Step, t.next, func(d *model.FormData) {
		t.assign(d, text)
	}); !ok {
		// Lost a race with another message for this user, or the
		// session expired under us. Only a vanished session needs
		// action; a step conflict means the winner already replied.
		if e.sessions.Get(msg.TelegramID) == nil {
			e.handleStart(msg)
		}
		return
	}

	e.send(msg.ChatID, t.prompt)
}

// finalize claims the session, creates the submission, confirms, and
// deletes the session. The claim is a step compare-and-swap, so a
// redelivered final input cannot create a second record. If the create
// fails the claim is rolled back and the session kept, so the user is
// not silently dropped.
func (e *Engine) finalize(msg model.InboundMessage, from model.Step, email string) {
	claimed, ok := e.sessions.Advance(msg.TelegramID, from, model.StepCompleted, func(d *model.FormData) {
		d.Email = email
	})
	if !ok {
		if e.sessions.Get(msg.TelegramID) == nil {
			e.handleStart(msg)
		}
		return
	}

	sub, err := e.submissions.CreateSubmission(model.NewSubmission{
		TelegramID:  msg.TelegramID,
		Username:    msg.Username,
		FirstName:   claimed.Data.FirstName,
		LastName:    claimed.Data.LastName,
		Age:         claimed.Data.Age,
		DateOfBirth: claimed.Data.DateOfBirth,
		Email:       claimed.Data.Email,
	})
	if err != nil {
		slog.Error("submission create failed", "telegram_id", msg.TelegramID, "err", err)
		step := model.StepEmail
		e.sessions.Update(msg.TelegramID, model.SessionPatch{Step: &step})
		e.send(msg.ChatID, saveFailedMessage)
		return
	}

	e.sessions.Delete(msg.TelegramID)
	slog.Info("application submitted", "id", sub.ID, "telegram_id", sub.TelegramID)
	e.send(msg.ChatID, summaryMessage(claimed.Data))
}

func (e *Engine) send(chatID int64, text string) {
	if err := e.notifier.Notify(chatID, text); err != nil {
		slog.Warn("notification delivery failed", "chat_id", chatID, "err", err)
	}
}
