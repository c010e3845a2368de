package service

import (
	"path/filepath"
	"testing"

	"github.com/pebblenet/pebble/db"
	"github.com/pebblenet/pebble/domain"
)

func testDB(t *testing.T) *db.DB {
	database, err := db.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	return database
}

func registerAccount(t *testing.T, accounts *Accounts, email, username string) *domain.Account {
	acc, _, err := accounts.Register(email, username, "secret123", "secret123")
	if err != nil {
		t.Fatalf("Failed to register %s: %v", username, err)
	}
	return acc
}
