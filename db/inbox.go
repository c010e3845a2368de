package db

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/pebblenet/pebble/domain"
)

// Notifications queries
const (
	sqlInsertNotification     = `INSERT INTO notifications(id, account_id, message, read, created_at) VALUES (?, ?, ?, 0, ?)`
	sqlSelectNotificationById = `SELECT id, account_id, message, read, created_at FROM notifications WHERE id = ?`
	sqlSelectNotifications    = `SELECT id, account_id, message, read, created_at FROM notifications
                                                            WHERE account_id = ?
                                                            ORDER BY created_at DESC`
	sqlMarkNotificationRead = `UPDATE notifications SET read = 1 WHERE id = ?`
)

// Messages queries
const (
	sqlInsertMessage     = `INSERT INTO messages(id, sender_id, recipient_id, content, created_at) VALUES (?, ?, ?, ?, ?)`
	sqlSelectMessageById = `SELECT messages.id, messages.sender_id, accounts.username, messages.recipient_id, messages.content, messages.created_at FROM messages
                                                            INNER JOIN accounts ON accounts.id = messages.sender_id
                                                            WHERE messages.id = ?`
	sqlSelectMessagesInvolving = `SELECT messages.id, messages.sender_id, accounts.username, messages.recipient_id, messages.content, messages.created_at FROM messages
                                                            INNER JOIN accounts ON accounts.id = messages.sender_id
                                                            WHERE messages.sender_id = ? OR messages.recipient_id = ?
                                                            ORDER BY messages.created_at DESC`
)

func (db *DB) CreateNotification(accountId uuid.UUID, message string) (uuid.UUID, error) {
	id := uuid.New()
	err := db.wrapTransaction(func(tx *sql.Tx) error {
		_, err := tx.Exec(sqlInsertNotification, id, accountId, message, time.Now())
		return err
	})
	if err != nil {
		return uuid.Nil, err
	}
	return id, nil
}

func (db *DB) ReadNotificationById(id uuid.UUID) (error, *domain.Notification) {
	row := db.db.QueryRow(sqlSelectNotificationById, id)
	var n domain.Notification
	err := row.Scan(&n.Id, &n.AccountId, &n.Message, &n.Read, &n.CreatedAt)
	if err != nil {
		return err, nil
	}
	return nil, &n
}

func (db *DB) ReadNotificationsByAccountId(accountId uuid.UUID) (error, *[]domain.Notification) {
	rows, err := db.db.Query(sqlSelectNotifications, accountId)
	if err != nil {
		return err, nil
	}
	defer rows.Close()

	var notifications []domain.Notification

	for rows.Next() {
		var n domain.Notification
		if err := rows.Scan(&n.Id, &n.AccountId, &n.Message, &n.Read, &n.CreatedAt); err != nil {
			return err, &notifications
		}
		notifications = append(notifications, n)
	}
	if err = rows.Err(); err != nil {
		return err, &notifications
	}

	return nil, &notifications
}

func (db *DB) MarkNotificationRead(id uuid.UUID) error {
	return db.wrapTransaction(func(tx *sql.Tx) error {
		_, err := tx.Exec(sqlMarkNotificationRead, id)
		return err
	})
}

func (db *DB) CreateMessage(senderId, recipientId uuid.UUID, content string) (uuid.UUID, error) {
	id := uuid.New()
	err := db.wrapTransaction(func(tx *sql.Tx) error {
		_, err := tx.Exec(sqlInsertMessage, id, senderId, recipientId, content, time.Now())
		return err
	})
	if err != nil {
		return uuid.Nil, err
	}
	return id, nil
}

func (db *DB) ReadMessageById(id uuid.UUID) (error, *domain.Message) {
	row := db.db.QueryRow(sqlSelectMessageById, id)
	var m domain.Message
	err := row.Scan(&m.Id, &m.SenderId, &m.Sender, &m.RecipientId, &m.Content, &m.CreatedAt)
	if err != nil {
		return err, nil
	}
	return nil, &m
}

// ReadMessagesInvolving returns every message the account sent or received.
func (db *DB) ReadMessagesInvolving(accountId uuid.UUID) (error, *[]domain.Message) {
	rows, err := db.db.Query(sqlSelectMessagesInvolving, accountId, accountId)
	if err != nil {
		return err, nil
	}
	defer rows.Close()

	var messages []domain.Message

	for rows.Next() {
		var m domain.Message
		if err := rows.Scan(&m.Id, &m.SenderId, &m.Sender, &m.RecipientId, &m.Content, &m.CreatedAt); err != nil {
			return err, &messages
		}
		messages = append(messages, m)
	}
	if err = rows.Err(); err != nil {
		return err, &messages
	}

	return nil, &messages
}
