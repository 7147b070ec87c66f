package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Selaelo1/telemanBot/engine"
	"github.com/Selaelo1/telemanBot/model"
)

// HandleListApplications returns every submission, newest first.
func (h *Handlers) HandleListApplications(c *gin.Context) {
	subs, err := h.store.GetAllSubmissions()
	if err != nil {
		slog.Error("list submissions failed", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(http.StatusOK, subs)
}

// updateRequest is the reviewer's PATCH body. AdminNotes is a pointer
// so "no notes field" and "clear the notes" stay distinguishable.
type updateRequest struct {
	Status     string  `json:"status"`
	AdminNotes *string `json:"adminNotes"`
}

// HandleUpdateApplication applies the reviewer's verdict and notifies
// the applicant. The record is committed before the notification is
// attempted; a failed delivery is logged and the updated record is
// returned regardless.
func (h *Handlers) HandleUpdateApplication(c *gin.Context) {
	id := c.Param("id")

	var req updateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "malformed request body"})
		return
	}
	if req.Status != model.StatusAccepted && req.Status != model.StatusDeclined {
		c.JSON(http.StatusBadRequest, gin.H{"error": "status must be accepted or declined"})
		return
	}

	sub, err := h.store.UpdateSubmission(id, model.SubmissionPatch{
		Status:     &req.Status,
		AdminNotes: req.AdminNotes,
	})
	if err != nil {
		slog.Error("update submission failed", "id", id, "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	if sub == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "application not found"})
		return
	}

	h.notifyVerdict(sub, req.AdminNotes)
	c.JSON(http.StatusOK, sub)
}

// notifyVerdict tells the applicant the outcome. Only notes supplied
// with this verdict go into the message; notes stored by an earlier
// verdict stay out of it.
func (h *Handlers) notifyVerdict(sub *model.Submission, notes *string) {
	var noteText string
	if notes != nil {
		noteText = *notes
	}

	var text string
	switch sub.Status {
	case model.StatusAccepted:
		text = engine.AcceptanceMessage(sub.FirstName, noteText)
	case model.StatusDeclined:
		text = engine.DeclineMessage(sub.FirstName, noteText)
	default:
		return
	}

	chatID, err := strconv.ParseInt(sub.TelegramID, 10, 64)
	if err != nil {
		slog.Warn("submission has a non-numeric telegram id, skipping notification", "id", sub.ID)
		return
	}
	if err := h.notifier.Notify(chatID, text); err != nil {
		slog.Warn("verdict notification failed", "submission_id", sub.ID, "chat_id", chatID, "err", err)
	}
}
