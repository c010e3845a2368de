package service

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/pebblenet/pebble/db"
	"github.com/pebblenet/pebble/domain"
	"github.com/pebblenet/pebble/perm"
)

// Notifications is the resource service for an account's notifications.
// Notifications have no update or delete path; the only mutation is
// marking one as read.
type Notifications struct {
	db     *db.DB
	policy perm.Policy
}

func NewNotifications(database *db.DB, policy perm.Policy) *Notifications {
	return &Notifications{db: database, policy: policy}
}

// List returns the actor's own notifications, newest first.
func (s *Notifications) List(actor *domain.Account) ([]domain.Notification, error) {
	err, notifications := s.db.ReadNotificationsByAccountId(actor.Id)
	if err != nil {
		return nil, err
	}
	return *notifications, nil
}

// MarkRead flips the read flag on one of the actor's notifications.
func (s *Notifications) MarkRead(actor *domain.Account, id uuid.UUID) (*domain.Notification, error) {
	err, notification := s.db.ReadNotificationById(id)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("notification %s: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}

	if !s.policy.Allows(perm.OpMarkRead, actor.Id, notification) {
		return nil, fmt.Errorf("not the owner of notification %s: %w", id, domain.ErrForbidden)
	}

	if err := s.db.MarkNotificationRead(id); err != nil {
		return nil, err
	}
	notification.Read = true
	return notification, nil
}

// Messages is the resource service for direct messages. Messages are
// immutable after creation and visible only to sender and recipient.
type Messages struct {
	db     *db.DB
	policy perm.Policy
}

func NewMessages(database *db.DB, policy perm.Policy) *Messages {
	return &Messages{db: database, policy: policy}
}

// Send stores a message from the actor to the recipient. The sender
// field is always the actor.
func (s *Messages) Send(actor *domain.Account, recipientId uuid.UUID, content string) (*domain.Message, error) {
	if strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("message content is required: %w", domain.ErrValidation)
	}

	err, _ := s.db.ReadAccountById(recipientId)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("account %s: %w", recipientId, domain.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}

	id, err := s.db.CreateMessage(actor.Id, recipientId, content)
	if err != nil {
		return nil, err
	}

	err, message := s.db.ReadMessageById(id)
	if err != nil {
		return nil, err
	}
	return message, nil
}

// List returns every message the actor sent or received.
func (s *Messages) List(actor *domain.Account) ([]domain.Message, error) {
	err, messages := s.db.ReadMessagesInvolving(actor.Id)
	if err != nil {
		return nil, err
	}
	return *messages, nil
}

// Retrieve returns one message, involved parties only.
func (s *Messages) Retrieve(actor *domain.Account, id uuid.UUID) (*domain.Message, error) {
	err, message := s.db.ReadMessageById(id)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("message %s: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}

	if !s.policy.Allows(perm.OpRetrieve, actor.Id, message) {
		return nil, fmt.Errorf("not a party to message %s: %w", id, domain.ErrForbidden)
	}
	return message, nil
}
