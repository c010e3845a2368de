package service

import (
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/pebblenet/pebble/domain"
)

func TestRegisterAndLogin(t *testing.T) {
	accounts := NewAccounts(testDB(t))

	acc, token, err := accounts.Register("alice@x.com", "alice", "secret123", "secret123")
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if acc.Username != "alice" {
		t.Errorf("Expected username alice, got %s", acc.Username)
	}
	if token.Key == "" {
		t.Fatal("Expected a token key on register")
	}

	acc2, token2, err := accounts.Login("alice@x.com", "secret123")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if acc2.Id != acc.Id {
		t.Error("Login returned a different account")
	}
	if token2.Key != token.Key {
		t.Error("Expected login to return the same token as register")
	}
}

func TestRegisterValidation(t *testing.T) {
	accounts := NewAccounts(testDB(t))

	cases := []struct {
		name      string
		email     string
		username  string
		password  string
		password2 string
	}{
		{"missing email", "", "alice", "secret123", "secret123"},
		{"missing username", "alice@x.com", "", "secret123", "secret123"},
		{"missing password", "alice@x.com", "alice", "", ""},
		{"password mismatch", "alice@x.com", "alice", "secret123", "other456"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := accounts.Register(tc.email, tc.username, tc.password, tc.password2)
			if !errors.Is(err, domain.ErrValidation) {
				t.Errorf("Expected ErrValidation, got %v", err)
			}
		})
	}
}

func TestRegisterDuplicate(t *testing.T) {
	accounts := NewAccounts(testDB(t))

	registerAccount(t, accounts, "alice@x.com", "alice")

	_, _, err := accounts.Register("alice@x.com", "other", "secret123", "secret123")
	if !errors.Is(err, domain.ErrValidation) {
		t.Errorf("Expected ErrValidation for duplicate email, got %v", err)
	}
	_, _, err = accounts.Register("other@x.com", "alice", "secret123", "secret123")
	if !errors.Is(err, domain.ErrValidation) {
		t.Errorf("Expected ErrValidation for duplicate username, got %v", err)
	}
}

func TestLoginUnknownEmail(t *testing.T) {
	accounts := NewAccounts(testDB(t))

	_, _, err := accounts.Login("nobody@x.com", "secret123")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("Expected ErrNotFound for unknown email, got %v", err)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	accounts := NewAccounts(testDB(t))

	registerAccount(t, accounts, "alice@x.com", "alice")

	_, _, err := accounts.Login("alice@x.com", "wrongpass")
	if !errors.Is(err, domain.ErrValidation) {
		t.Errorf("Expected ErrValidation for wrong password, got %v", err)
	}
}

func TestAuthenticate(t *testing.T) {
	accounts := NewAccounts(testDB(t))

	acc, token, err := accounts.Register("alice@x.com", "alice", "secret123", "secret123")
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	actor, err := accounts.Authenticate(token.Key)
	if err != nil {
		t.Fatalf("Authenticate failed: %v", err)
	}
	if actor.Id != acc.Id {
		t.Error("Authenticate resolved the wrong account")
	}

	_, err = accounts.Authenticate("")
	if !errors.Is(err, domain.ErrUnauthenticated) {
		t.Errorf("Expected ErrUnauthenticated for empty token, got %v", err)
	}
	_, err = accounts.Authenticate("bogus-key")
	if !errors.Is(err, domain.ErrUnauthenticated) {
		t.Errorf("Expected ErrUnauthenticated for unknown token, got %v", err)
	}
}

func TestGetUnknownAccount(t *testing.T) {
	accounts := NewAccounts(testDB(t))

	_, err := accounts.Get(uuid.New())
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestDeleteAccount(t *testing.T) {
	accounts := NewAccounts(testDB(t))

	acc := registerAccount(t, accounts, "alice@x.com", "alice")

	if err := accounts.Delete(acc.Id); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	_, err := accounts.Get(acc.Id)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("Expected ErrNotFound after delete, got %v", err)
	}
}
