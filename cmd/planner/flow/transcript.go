package flow

import "tour-planner/models"

type Sender string

const (
	SenderBot  Sender = "bot"
	SenderUser Sender = "user"
)

type MessageType string

const (
	MessageText      MessageType = "text"
	MessageOptions   MessageType = "options"
	MessageItinerary MessageType = "itinerary"
	MessageGuides    MessageType = "guides"
	MessageError     MessageType = "error"
)

// Message is one transcript entry. Entries are appended and never edited;
// a reset drops the whole transcript.
type Message struct {
	Sender  Sender
	Type    MessageType
	Text    string
	Options []string
	Guides  []models.Guide
	// PlanID is set on itinerary entries.
	PlanID string
	// InputHint describes the expected answer format ("number", "YYYY-MM-DD").
	InputHint string
	// CreditAction marks the insufficient-credits entry that carries the request-credits control.
	CreditAction bool
	IsError      bool
}

func (f *Flow) appendMessage(m Message) {
	f.transcript = append(f.transcript, m)
}

func (f *Flow) appendUser(text string) {
	f.appendMessage(Message{Sender: SenderUser, Type: MessageText, Text: text})
}

func (f *Flow) appendBot(text string) {
	f.appendMessage(Message{Sender: SenderBot, Type: MessageText, Text: text})
}

func (f *Flow) appendError(text string) {
	f.appendMessage(Message{Sender: SenderBot, Type: MessageError, Text: text, IsError: true})
}

func (f *Flow) appendOptions(text string, options []string) {
	f.appendMessage(Message{
		Sender:  SenderBot,
		Type:    MessageOptions,
		Text:    text,
		Options: append([]string(nil), options...),
	})
}
