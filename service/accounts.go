package service

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/pebblenet/pebble/db"
	"github.com/pebblenet/pebble/domain"
	"golang.org/x/crypto/bcrypt"
)

// Accounts handles registration, login and account lifecycle.
type Accounts struct {
	db *db.DB
}

func NewAccounts(database *db.DB) *Accounts {
	return &Accounts{db: database}
}

// Register creates an account and issues its token. Mismatched passwords
// and duplicate email/username both fail validation.
func (s *Accounts) Register(email, username, password, password2 string) (*domain.Account, *domain.Token, error) {
	email = strings.TrimSpace(email)
	username = strings.TrimSpace(username)

	if email == "" || username == "" || password == "" {
		return nil, nil, fmt.Errorf("email, username and password are required: %w", domain.ErrValidation)
	}
	if password != password2 {
		return nil, nil, fmt.Errorf("passwords must match: %w", domain.ErrValidation)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, nil, err
	}

	id, err := s.db.CreateAccount(email, username, string(hash))
	if err != nil {
		if errors.Is(err, db.ErrDuplicate) {
			return nil, nil, fmt.Errorf("email or username already taken: %w", domain.ErrValidation)
		}
		return nil, nil, err
	}

	err, acc := s.db.ReadAccountById(id)
	if err != nil {
		return nil, nil, err
	}

	err, token := s.db.GetOrCreateToken(acc.Id)
	if err != nil {
		return nil, nil, err
	}
	return acc, token, nil
}

// Login verifies credentials and returns the account's token. An unknown
// email is NotFound; a wrong password fails validation.
func (s *Accounts) Login(email, password string) (*domain.Account, *domain.Token, error) {
	err, acc := s.db.ReadAccountByEmail(strings.TrimSpace(email))
	if err == sql.ErrNoRows {
		return nil, nil, fmt.Errorf("user with this email does not exist: %w", domain.ErrNotFound)
	}
	if err != nil {
		return nil, nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(acc.PasswordHash), []byte(password)) != nil {
		return nil, nil, fmt.Errorf("invalid credentials: %w", domain.ErrValidation)
	}

	err, token := s.db.GetOrCreateToken(acc.Id)
	if err != nil {
		return nil, nil, err
	}
	return acc, token, nil
}

// Authenticate resolves a token key to its account.
func (s *Accounts) Authenticate(key string) (*domain.Account, error) {
	if key == "" {
		return nil, domain.ErrUnauthenticated
	}
	err, acc := s.db.ReadAccountByToken(key)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("invalid token: %w", domain.ErrUnauthenticated)
	}
	if err != nil {
		return nil, err
	}
	return acc, nil
}

// Get returns the account with the given id.
func (s *Accounts) Get(id uuid.UUID) (*domain.Account, error) {
	err, acc := s.db.ReadAccountById(id)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("account %s: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return acc, nil
}

// Delete removes the actor's own account; the schema cascades to every
// owned post, comment, edge, notification and message.
func (s *Accounts) Delete(actor uuid.UUID) error {
	if _, err := s.Get(actor); err != nil {
		return err
	}
	return s.db.DeleteAccountById(actor)
}
