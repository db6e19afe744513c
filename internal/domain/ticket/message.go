package ticket

import (
	"strings"
	"time"
)

// Message is a conversation entry on a ticket. Internal messages are notes
// for staff and are never shown to client readers.
type Message struct {
	id         string
	ticketID   string
	userID     string
	content    string
	isInternal bool
	createdAt  time.Time
}

func NewMessage(id, ticketID, userID, content string, isInternal bool, now time.Time) (*Message, error) {
	if strings.TrimSpace(content) == "" {
		return nil, ErrContentRequired
	}
	if ticketID == "" || userID == "" {
		return nil, ErrTicketMismatch
	}
	return &Message{
		id:         id,
		ticketID:   ticketID,
		userID:     userID,
		content:    content,
		isInternal: isInternal,
		createdAt:  now.UTC(),
	}, nil
}

func ReconstructMessage(id, ticketID, userID, content string, isInternal bool, createdAt time.Time) *Message {
	return &Message{
		id:         id,
		ticketID:   ticketID,
		userID:     userID,
		content:    content,
		isInternal: isInternal,
		createdAt:  createdAt,
	}
}

func (m *Message) ID() string { return m.id }
func (m *Message) TicketID() string { return m.ticketID }
func (m *Message) UserID() string { return m.userID }
func (m *Message) Content() string { return m.content }
func (m *Message) IsInternal() bool { return m.isInternal }
func (m *Message) CreatedAt() time.Time { return m.createdAt }
