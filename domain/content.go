package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type Post struct {
	Id        uuid.UUID
	AuthorId  uuid.UUID
	Author    string // username, joined from accounts
	Title     string
	Content   string
	CreatedAt time.Time
}

func (post *Post) ToString() string {
	return fmt.Sprintf("\n\tId: %s \n\tAuthor: %s \n\tTitle: %s \n\tCreatedAt: %s)", post.Id, post.Author, post.Title, post.CreatedAt)
}

func (post *Post) Owner() uuid.UUID     { return post.AuthorId }
func (post *Post) Parties() []uuid.UUID { return []uuid.UUID{post.AuthorId} }

type Comment struct {
	Id        uuid.UUID
	PostId    uuid.UUID
	AccountId uuid.UUID
	Author    string // username, joined from accounts
	Body      string
	CreatedAt time.Time
}

func (comment *Comment) Owner() uuid.UUID     { return comment.AccountId }
func (comment *Comment) Parties() []uuid.UUID { return []uuid.UUID{comment.AccountId} }
