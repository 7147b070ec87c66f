package model

import "time"

// Step is one stage of the intake form. Steps are strictly ordered;
// each requires one validated input before the session moves on.
type Step int

const (
	StepName Step = iota
	StepSurname
	StepAge
	StepDOB
	StepEmail
	// StepCompleted marks a session claimed by finalization. It is
	// never prompted for and only exists between the final input and
	// session deletion.
	StepCompleted
)

func (s Step) String() string {
	switch s {
	case StepName:
		return "name"
	case StepSurname:
		return "surname"
	case StepAge:
		return "age"
	case StepDOB:
		return "dob"
	case StepEmail:
		return "email"
	case StepCompleted:
		return "completed"
	default:
		return "unknown"
	}
}

// FormData holds the incrementally collected form fields, mirroring
// the Submission field set. Zero values mean "not collected yet":
// names must be at least two characters and age at least 1, so a zero
// value never collides with accepted input.
type FormData struct {
	FirstName   string
	LastName    string
	Age         int
	DateOfBirth string
	Email       string
}

// Session tracks one user's progress through the intake form.
type Session struct {
	TelegramID   string
	Step         Step
	Data         FormData
	LastActivity time.Time
}

// SessionPatch is a partial session update. Nil fields are left
// untouched.
type SessionPatch struct {
	Step *Step
	Data *FormData
}
