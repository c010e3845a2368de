package service

import (
	"database/sql"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/pebblenet/pebble/db"
	"github.com/pebblenet/pebble/domain"
)

// Ledger maintains the follow and like edges. Both edge kinds have set
// semantics: repeated inserts and deletes are no-ops, and the UNIQUE
// constraints in the schema settle concurrent racers.
type Ledger struct {
	db *db.DB
}

func NewLedger(database *db.DB) *Ledger {
	return &Ledger{db: database}
}

// Follow creates the edge actor -> target, returning the existing edge
// unchanged when it is already present. Following yourself is an error.
func (s *Ledger) Follow(actor *domain.Account, targetId uuid.UUID) (*domain.Follow, error) {
	if actor.Id == targetId {
		return nil, domain.ErrSelfFollow
	}

	err, target := s.db.ReadAccountById(targetId)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("account %s: %w", targetId, domain.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}

	existedBefore, err := s.db.IsFollowing(actor.Id, target.Id)
	if err != nil {
		return nil, err
	}

	err, edge := s.db.CreateFollow(actor.Id, target.Id)
	if err != nil {
		return nil, err
	}

	if !existedBefore {
		fanout(s.db, target.Id, fmt.Sprintf("%s started following you", actor.Username))
	}
	return edge, nil
}

// Unfollow removes the edge actor -> target; absent edges are a no-op.
func (s *Ledger) Unfollow(actor *domain.Account, targetId uuid.UUID) error {
	err, _ := s.db.ReadAccountById(targetId)
	if err == sql.ErrNoRows {
		return fmt.Errorf("account %s: %w", targetId, domain.ErrNotFound)
	}
	if err != nil {
		return err
	}
	return s.db.DeleteFollow(actor.Id, targetId)
}

// Like creates the edge actor -> post; repeats are no-ops. Liking your
// own post is allowed.
func (s *Ledger) Like(actor *domain.Account, postId uuid.UUID) (*domain.Like, error) {
	err, post := s.db.ReadPostById(postId)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("post %s: %w", postId, domain.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}

	existedBefore, err := s.db.IsLiking(actor.Id, post.Id)
	if err != nil {
		return nil, err
	}

	err, edge := s.db.CreateLike(actor.Id, post.Id)
	if err != nil {
		return nil, err
	}

	if !existedBefore && post.AuthorId != actor.Id {
		fanout(s.db, post.AuthorId, fmt.Sprintf("%s liked your post %q", actor.Username, post.Title))
	}
	return edge, nil
}

// Unlike removes the edge actor -> post; absent edges are a no-op.
func (s *Ledger) Unlike(actor *domain.Account, postId uuid.UUID) error {
	err, _ := s.db.ReadPostById(postId)
	if err == sql.ErrNoRows {
		return fmt.Errorf("post %s: %w", postId, domain.ErrNotFound)
	}
	if err != nil {
		return err
	}
	return s.db.DeleteLike(actor.Id, postId)
}

// Followers returns the accounts following the given account, oldest
// edge first. Counts are derived from length, never stored.
func (s *Ledger) Followers(accountId uuid.UUID) ([]domain.Account, error) {
	if err := s.accountExists(accountId); err != nil {
		return nil, err
	}
	err, accounts := s.db.ReadFollowersOf(accountId)
	if err != nil {
		return nil, err
	}
	return *accounts, nil
}

// Following returns the accounts the given account follows.
func (s *Ledger) Following(accountId uuid.UUID) ([]domain.Account, error) {
	if err := s.accountExists(accountId); err != nil {
		return nil, err
	}
	err, accounts := s.db.ReadFollowingOf(accountId)
	if err != nil {
		return nil, err
	}
	return *accounts, nil
}

// Likers returns the accounts that liked the given post.
func (s *Ledger) Likers(postId uuid.UUID) ([]domain.Account, error) {
	err, accounts := s.db.ReadLikersOf(postId)
	if err != nil {
		return nil, err
	}
	return *accounts, nil
}

func (s *Ledger) accountExists(id uuid.UUID) error {
	err, _ := s.db.ReadAccountById(id)
	if err == sql.ErrNoRows {
		return fmt.Errorf("account %s: %w", id, domain.ErrNotFound)
	}
	return err
}

// fanout writes a notification, best effort. A lost notification never
// fails the triggering operation.
func fanout(database *db.DB, accountId uuid.UUID, message string) {
	if _, err := database.CreateNotification(accountId, message); err != nil {
		log.Printf("could not create notification for %s: %v", accountId, err)
	}
}
