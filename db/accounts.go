package db

import (
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/pebblenet/pebble/domain"
)

// Accounts queries
const (
	sqlInsertAccount           = `INSERT INTO accounts(id, email, username, password_hash, created_at) VALUES (?, ?, ?, ?, ?)`
	sqlSelectAccountById       = `SELECT id, email, username, password_hash, created_at FROM accounts WHERE id = ?`
	sqlSelectAccountByEmail    = `SELECT id, email, username, password_hash, created_at FROM accounts WHERE email = ?`
	sqlSelectAccountByUsername = `SELECT id, email, username, password_hash, created_at FROM accounts WHERE username = ?`
	sqlDeleteAccountById       = `DELETE FROM accounts WHERE id = ?`
)

// ErrDuplicate is returned when an insert hits a UNIQUE constraint.
// Exported so services can translate it without inspecting driver errors.
var ErrDuplicate = errors.New("duplicate record")

func (db *DB) CreateAccount(email, username, passwordHash string) (uuid.UUID, error) {
	id := uuid.New()
	err := db.wrapTransaction(func(tx *sql.Tx) error {
		_, err := tx.Exec(sqlInsertAccount, id, email, username, passwordHash, time.Now())
		return err
	})
	if err != nil {
		if isUniqueViolation(err) {
			return uuid.Nil, ErrDuplicate
		}
		return uuid.Nil, err
	}
	return id, nil
}

func (db *DB) ReadAccountById(id uuid.UUID) (error, *domain.Account) {
	return db.scanAccount(db.db.QueryRow(sqlSelectAccountById, id))
}

func (db *DB) ReadAccountByEmail(email string) (error, *domain.Account) {
	return db.scanAccount(db.db.QueryRow(sqlSelectAccountByEmail, email))
}

func (db *DB) ReadAccountByUsername(username string) (error, *domain.Account) {
	return db.scanAccount(db.db.QueryRow(sqlSelectAccountByUsername, username))
}

func (db *DB) DeleteAccountById(id uuid.UUID) error {
	return db.wrapTransaction(func(tx *sql.Tx) error {
		_, err := tx.Exec(sqlDeleteAccountById, id)
		return err
	})
}

func (db *DB) scanAccount(row *sql.Row) (error, *domain.Account) {
	var acc domain.Account
	err := row.Scan(&acc.Id, &acc.Email, &acc.Username, &acc.PasswordHash, &acc.CreatedAt)
	if err != nil {
		return err, nil
	}
	return nil, &acc
}
