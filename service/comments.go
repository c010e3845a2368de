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

// Comments is the resource service for comments on posts.
type Comments struct {
	db     *db.DB
	policy perm.Policy
}

func NewComments(database *db.DB, policy perm.Policy) *Comments {
	return &Comments{db: database, policy: policy}
}

// Create stores a comment by the actor on an existing post and notifies
// the post's author.
func (s *Comments) Create(actor *domain.Account, postId uuid.UUID, body string) (*domain.Comment, error) {
	if strings.TrimSpace(body) == "" {
		return nil, fmt.Errorf("comment text is required: %w", domain.ErrValidation)
	}

	err, post := s.db.ReadPostById(postId)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("post %s: %w", postId, domain.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}

	id, err := s.db.CreateComment(post.Id, actor.Id, body)
	if err != nil {
		return nil, err
	}

	if post.AuthorId != actor.Id {
		fanout(s.db, post.AuthorId, fmt.Sprintf("%s commented on your post %q", actor.Username, post.Title))
	}
	return s.get(id)
}

func (s *Comments) List() ([]domain.Comment, error) {
	err, comments := s.db.ReadAllComments()
	if err != nil {
		return nil, err
	}
	return *comments, nil
}

// ListByPost returns a post's comments, oldest first.
func (s *Comments) ListByPost(postId uuid.UUID) ([]domain.Comment, error) {
	err, _ := s.db.ReadPostById(postId)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("post %s: %w", postId, domain.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}

	err, comments := s.db.ReadCommentsByPostId(postId)
	if err != nil {
		return nil, err
	}
	return *comments, nil
}

func (s *Comments) Retrieve(id uuid.UUID) (*domain.Comment, error) {
	return s.get(id)
}

func (s *Comments) Update(actor *domain.Account, id uuid.UUID, body string) (*domain.Comment, error) {
	comment, err := s.get(id)
	if err != nil {
		return nil, err
	}

	if !s.policy.Allows(perm.OpUpdate, actor.Id, comment) {
		return nil, fmt.Errorf("not the owner of comment %s: %w", id, domain.ErrForbidden)
	}

	if strings.TrimSpace(body) == "" {
		return nil, fmt.Errorf("comment text is required: %w", domain.ErrValidation)
	}

	if err := s.db.UpdateComment(id, body); err != nil {
		return nil, err
	}
	return s.get(id)
}

func (s *Comments) Delete(actor *domain.Account, id uuid.UUID) error {
	comment, err := s.get(id)
	if err != nil {
		return err
	}

	if !s.policy.Allows(perm.OpDelete, actor.Id, comment) {
		return fmt.Errorf("not the owner of comment %s: %w", id, domain.ErrForbidden)
	}
	return s.db.DeleteCommentById(id)
}

func (s *Comments) get(id uuid.UUID) (*domain.Comment, error) {
	err, comment := s.db.ReadCommentById(id)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("comment %s: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return comment, nil
}
