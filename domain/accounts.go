package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type Account struct {
	Id           uuid.UUID
	Email        string
	Username     string
	PasswordHash string
	CreatedAt    time.Time
}

func (acc *Account) ToString() string {
	return fmt.Sprintf("\n\tId: %s \n\tEmail: %s \n\tUsername: %s \n\tCreatedAt: %s)", acc.Id, acc.Email, acc.Username, acc.CreatedAt)
}

// Token is the bearer credential for an account. One token per account,
// issued at registration and reused on every login.
type Token struct {
	Key       string
	AccountId uuid.UUID
	CreatedAt time.Time
}
