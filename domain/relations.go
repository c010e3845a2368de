package domain

import (
	"time"

	"github.com/google/uuid"
)

// Follow represents a directed follow edge between two accounts.
// At most one edge exists per (FollowerId, FollowingId) pair.
type Follow struct {
	Id          uuid.UUID
	FollowerId  uuid.UUID
	FollowingId uuid.UUID
	CreatedAt   time.Time
}

// Like represents a like edge between an account and a post.
// At most one edge exists per (AccountId, PostId) pair.
type Like struct {
	Id        uuid.UUID
	AccountId uuid.UUID
	PostId    uuid.UUID
	CreatedAt time.Time
}
