package conversation

import (
	"modelchat/app/provider"
	"time"
)

type Sender string

const (
	SenderUser Sender = "user"
	SenderBot  Sender = "bot"
)

// Message is one entry of the conversation log. Immutable once appended;
// Provider is set only on bot messages and records the model that was
// selected when the owning exchange was dispatched.
type Message struct {
	Text      string      `json:"text"`
	Sender    Sender      `json:"sender"`
	Provider  provider.ID `json:"provider,omitempty"`
	CreatedAt time.Time   `json:"created_at"`
}
