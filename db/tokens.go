package db

import (
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"time"

	"github.com/google/uuid"
	"github.com/pebblenet/pebble/domain"
)

// Tokens queries
const (
	sqlInsertToken             = `INSERT INTO tokens(key, account_id, created_at) VALUES (?, ?, ?) ON CONFLICT(account_id) DO NOTHING`
	sqlSelectTokenByAccountId  = `SELECT key, account_id, created_at FROM tokens WHERE account_id = ?`
	sqlSelectAccountByTokenKey = `SELECT accounts.id, accounts.email, accounts.username, accounts.password_hash, accounts.created_at FROM tokens
		INNER JOIN accounts ON accounts.id = tokens.account_id
		WHERE tokens.key = ?`
)

const tokenKeyBytes = 20

// GetOrCreateToken returns the account's token, issuing one if absent.
// The insert is a single atomic insert-if-absent, so concurrent callers
// for the same account always end up with the same key.
func (db *DB) GetOrCreateToken(accountId uuid.UUID) (error, *domain.Token) {
	key, err := generateTokenKey()
	if err != nil {
		return err, nil
	}

	err = db.wrapTransaction(func(tx *sql.Tx) error {
		_, err := tx.Exec(sqlInsertToken, key, accountId, time.Now())
		return err
	})
	if err != nil {
		return err, nil
	}

	var token domain.Token
	row := db.db.QueryRow(sqlSelectTokenByAccountId, accountId)
	if err := row.Scan(&token.Key, &token.AccountId, &token.CreatedAt); err != nil {
		return err, nil
	}
	return nil, &token
}

// ReadAccountByToken resolves a token key to its account.
func (db *DB) ReadAccountByToken(key string) (error, *domain.Account) {
	return db.scanAccount(db.db.QueryRow(sqlSelectAccountByTokenKey, key))
}

func generateTokenKey() (string, error) {
	b := make([]byte, tokenKeyBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
