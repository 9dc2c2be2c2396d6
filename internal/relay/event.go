// Package relay routes inbound events between end-users and the admin pool
// without either side learning the other's contact identity.
package relay

import "supportbot/internal/models"

type EventKind int

const (
	EventStart EventKind = iota
	EventText
	EventMedia
	EventButton
	EventCancel
)

// Identity addresses one Telegram account, user or admin alike.
type Identity struct {
	ID       int64
	Username string
	Lang     string
}

// ReplyRef carries the text of the message an inbound message replies to.
// For admins that text is a forwarded notification holding the bound
// identity marker.
type ReplyRef struct {
	Text string
}

// CallbackRef carries an inline-button press.
type CallbackRef struct {
	ID   string
	Data string
}

// Event is the tagged-variant inbound unit of work. Exactly the fields
// matching Kind are set: Text for EventText, Media/Caption for EventMedia,
// Callback for EventButton.
type Event struct {
	Kind     EventKind
	From     Identity
	Text     string
	Caption  string
	Media    *models.Media
	ReplyTo  *ReplyRef
	Callback *CallbackRef
}

// Reply-keyboard labels. Incoming text is matched against these verbatim, so
// they are fixed independent of the sender's language.
const (
	ButtonActiveChats = "📋 Active chats"
	ButtonBroadcast   = "📨 Broadcast"
	ButtonFAQ         = "❓ How to place an order?"
	ButtonStartChat   = "📞 Place an order or ask a question"
)
