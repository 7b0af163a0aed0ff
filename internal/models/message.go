package models

// Sender identifies which side of the conversation produced a message.
type Sender string

const (
	SenderUser Sender = "user"
	SenderAI   Sender = "ai"
)

// Message is one bubble in the chat transcript. Properties carries the
// catalog entries resolved from a [PROPERTIES: ...] directive, if any.
type Message struct {
	ID         string     `json:"id"`
	Text       string     `json:"text"`
	Sender     Sender     `json:"sender"`
	Properties []Property `json:"properties,omitempty"`
}
