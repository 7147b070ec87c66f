package model

// InboundMessage is one chat message lifted out of a webhook update.
// ChatID is carried through to the notification capability unopened.
type InboundMessage struct {
	TelegramID string
	FirstName  string
	Username   string
	Text       string
	ChatID     int64
}
