package service

import (
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/pebblenet/pebble/domain"
	"github.com/pebblenet/pebble/perm"
)

func TestCommentCreateAndList(t *testing.T) {
	database := testDB(t)
	accounts := NewAccounts(database)
	posts := NewPosts(database, perm.PublicOwned())
	comments := NewComments(database, perm.PublicOwned())

	alice := registerAccount(t, accounts, "alice@x.com", "alice")
	bob := registerAccount(t, accounts, "bob@x.com", "bob")
	post, _ := posts.Create(alice, "Hello", "First post")

	created, err := comments.Create(bob, post.Id, "Nice one")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if created.Author != "bob" {
		t.Errorf("Expected author bob, got %s", created.Author)
	}

	byPost, err := comments.ListByPost(post.Id)
	if err != nil {
		t.Fatalf("ListByPost failed: %v", err)
	}
	if len(byPost) != 1 || byPost[0].Body != "Nice one" {
		t.Errorf("Unexpected comments: %v", byPost)
	}
}

func TestCommentCreateValidation(t *testing.T) {
	database := testDB(t)
	accounts := NewAccounts(database)
	posts := NewPosts(database, perm.PublicOwned())
	comments := NewComments(database, perm.PublicOwned())

	alice := registerAccount(t, accounts, "alice@x.com", "alice")
	post, _ := posts.Create(alice, "Hello", "First post")

	_, err := comments.Create(alice, post.Id, "   ")
	if !errors.Is(err, domain.ErrValidation) {
		t.Errorf("Expected ErrValidation for blank body, got %v", err)
	}

	_, err = comments.Create(alice, uuid.New(), "body")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("Expected ErrNotFound for unknown post, got %v", err)
	}
}

func TestCommentCreateNotifiesPostAuthor(t *testing.T) {
	database := testDB(t)
	accounts := NewAccounts(database)
	posts := NewPosts(database, perm.PublicOwned())
	comments := NewComments(database, perm.PublicOwned())

	alice := registerAccount(t, accounts, "alice@x.com", "alice")
	bob := registerAccount(t, accounts, "bob@x.com", "bob")
	post, _ := posts.Create(alice, "Hello", "First post")

	// Commenting on your own post must not self-notify
	comments.Create(alice, post.Id, "my own thread")
	err, notifications := database.ReadNotificationsByAccountId(alice.Id)
	if err != nil {
		t.Fatalf("ReadNotificationsByAccountId failed: %v", err)
	}
	if len(*notifications) != 0 {
		t.Errorf("Expected no self-notification, got %d", len(*notifications))
	}

	comments.Create(bob, post.Id, "Nice one")
	err, notifications = database.ReadNotificationsByAccountId(alice.Id)
	if err != nil {
		t.Fatalf("ReadNotificationsByAccountId failed: %v", err)
	}
	if len(*notifications) != 1 {
		t.Fatalf("Expected 1 notification for the post author, got %d", len(*notifications))
	}
}

func TestCommentUpdateAndDeleteAuthorization(t *testing.T) {
	database := testDB(t)
	accounts := NewAccounts(database)
	posts := NewPosts(database, perm.PublicOwned())
	comments := NewComments(database, perm.PublicOwned())

	alice := registerAccount(t, accounts, "alice@x.com", "alice")
	mallory := registerAccount(t, accounts, "mallory@x.com", "mallory")
	post, _ := posts.Create(alice, "Hello", "First post")
	created, _ := comments.Create(alice, post.Id, "original")

	_, err := comments.Update(mallory, created.Id, "hijacked")
	if !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("Expected ErrForbidden on stranger update, got %v", err)
	}
	if err := comments.Delete(mallory, created.Id); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("Expected ErrForbidden on stranger delete, got %v", err)
	}

	updated, err := comments.Update(alice, created.Id, "edited")
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if updated.Body != "edited" {
		t.Errorf("Expected edited body, got %s", updated.Body)
	}

	if err := comments.Delete(alice, created.Id); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	_, err = comments.Retrieve(created.Id)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("Expected ErrNotFound after delete, got %v", err)
	}
}
