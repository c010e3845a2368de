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

// PostView is a post together with its derived like data.
type PostView struct {
	domain.Post
	LikesCount int
	Likers     []string
}

// Posts is the resource service for posts. The policy table decides who
// may do what; the author field is always forced to the actor.
type Posts struct {
	db     *db.DB
	policy perm.Policy
}

func NewPosts(database *db.DB, policy perm.Policy) *Posts {
	return &Posts{db: database, policy: policy}
}

// Create stores a new post owned by the actor. Client-supplied author
// fields never reach this layer.
func (s *Posts) Create(actor *domain.Account, title, content string) (*PostView, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, fmt.Errorf("title is required: %w", domain.ErrValidation)
	}

	id, err := s.db.CreatePost(actor.Id, title, content)
	if err != nil {
		return nil, err
	}
	return s.get(id)
}

// List returns posts newest first; limit <= 0 returns everything.
func (s *Posts) List(limit int) ([]PostView, error) {
	err, posts := s.db.ReadAllPosts(limit)
	if err != nil {
		return nil, err
	}

	views := make([]PostView, 0, len(*posts))
	for i := range *posts {
		view, err := s.view(&(*posts)[i])
		if err != nil {
			return nil, err
		}
		views = append(views, *view)
	}
	return views, nil
}

func (s *Posts) Retrieve(id uuid.UUID) (*PostView, error) {
	return s.get(id)
}

// ByUsername returns one author's posts, newest first.
func (s *Posts) ByUsername(username string) ([]domain.Post, error) {
	err, posts := s.db.ReadPostsByUsername(username)
	if err != nil {
		return nil, err
	}
	return *posts, nil
}

func (s *Posts) Update(actor *domain.Account, id uuid.UUID, title, content string) (*PostView, error) {
	err, post := s.db.ReadPostById(id)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("post %s: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}

	if !s.policy.Allows(perm.OpUpdate, actor.Id, post) {
		return nil, fmt.Errorf("not the author of post %s: %w", id, domain.ErrForbidden)
	}

	title = strings.TrimSpace(title)
	if title == "" {
		return nil, fmt.Errorf("title is required: %w", domain.ErrValidation)
	}

	if err := s.db.UpdatePost(id, title, content); err != nil {
		return nil, err
	}
	return s.get(id)
}

func (s *Posts) Delete(actor *domain.Account, id uuid.UUID) error {
	err, post := s.db.ReadPostById(id)
	if err == sql.ErrNoRows {
		return fmt.Errorf("post %s: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return err
	}

	if !s.policy.Allows(perm.OpDelete, actor.Id, post) {
		return fmt.Errorf("not the author of post %s: %w", id, domain.ErrForbidden)
	}
	return s.db.DeletePostById(id)
}

func (s *Posts) get(id uuid.UUID) (*PostView, error) {
	err, post := s.db.ReadPostById(id)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("post %s: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return s.view(post)
}

func (s *Posts) view(post *domain.Post) (*PostView, error) {
	err, likers := s.db.ReadLikersOf(post.Id)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(*likers))
	for _, acc := range *likers {
		names = append(names, acc.Username)
	}
	return &PostView{Post: *post, LikesCount: len(names), Likers: names}, nil
}
