package domain

import (
	"time"

	"github.com/google/uuid"
)

// Notification belongs to exactly one account; nobody else may read it.
type Notification struct {
	Id        uuid.UUID
	AccountId uuid.UUID
	Message   string
	Read      bool
	CreatedAt time.Time
}

func (n *Notification) Owner() uuid.UUID     { return n.AccountId }
func (n *Notification) Parties() []uuid.UUID { return []uuid.UUID{n.AccountId} }

// Message is a direct message, visible only to sender and recipient.
// Messages are immutable once sent.
type Message struct {
	Id          uuid.UUID
	SenderId    uuid.UUID
	Sender      string // username, joined from accounts
	RecipientId uuid.UUID
	Content     string
	CreatedAt   time.Time
}

func (m *Message) Owner() uuid.UUID     { return m.SenderId }
func (m *Message) Parties() []uuid.UUID { return []uuid.UUID{m.SenderId, m.RecipientId} }
