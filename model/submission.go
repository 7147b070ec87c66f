package model

import "time"

// Submission statuses.
const (
	StatusPending  = "pending"
	StatusAccepted = "accepted"
	StatusDeclined = "declined"
)

// Submission represents one completed application record.
type Submission struct {
	ID          string     `json:"id"`
	TelegramID  string     `json:"telegramId"`
	Username    string     `json:"username"`
	FirstName   string     `json:"firstName"`
	LastName    string     `json:"lastName"`
	Age         int        `json:"age"`
	DateOfBirth string     `json:"dateOfBirth"`
	Email       string     `json:"email"`
	Status      string     `json:"status"`
	SubmittedAt time.Time  `json:"submittedAt"`
	ProcessedAt *time.Time `json:"processedAt,omitempty"`
	AdminNotes  string     `json:"adminNotes,omitempty"`
}

// NewSubmission carries the fields a completed session hands to the
// store. The store fills in id, status and timestamps.
type NewSubmission struct {
	TelegramID  string
	Username    string
	FirstName   string
	LastName    string
	Age         int
	DateOfBirth string
	Email       string
}

// SubmissionPatch is a partial update applied by the reviewer action.
// Nil fields are left untouched.
type SubmissionPatch struct {
	Status     *string
	AdminNotes *string
}

// Stats are the aggregate counts the dashboard displays.
type Stats struct {
	Total    int `json:"total"`
	Pending  int `json:"pending"`
	Accepted int `json:"accepted"`
	Declined int `json:"declined"`
}
