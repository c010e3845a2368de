package service

import (
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/pebblenet/pebble/domain"
	"github.com/pebblenet/pebble/perm"
)

func TestPostCreateAndRetrieve(t *testing.T) {
	database := testDB(t)
	accounts := NewAccounts(database)
	posts := NewPosts(database, perm.PublicOwned())

	alice := registerAccount(t, accounts, "alice@x.com", "alice")

	created, err := posts.Create(alice, "Hello", "First post")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if created.Author != "alice" {
		t.Errorf("Expected author alice, got %s", created.Author)
	}
	if created.LikesCount != 0 {
		t.Errorf("Expected 0 likes on a fresh post, got %d", created.LikesCount)
	}

	got, err := posts.Retrieve(created.Id)
	if err != nil {
		t.Fatalf("Retrieve failed: %v", err)
	}
	if got.Title != "Hello" {
		t.Errorf("Expected title Hello, got %s", got.Title)
	}
}

func TestPostCreateRequiresTitle(t *testing.T) {
	database := testDB(t)
	accounts := NewAccounts(database)
	posts := NewPosts(database, perm.PublicOwned())

	alice := registerAccount(t, accounts, "alice@x.com", "alice")

	_, err := posts.Create(alice, "", "body only")
	if !errors.Is(err, domain.ErrValidation) {
		t.Errorf("Expected ErrValidation, got %v", err)
	}
}

func TestPostRetrieveUnknown(t *testing.T) {
	database := testDB(t)
	posts := NewPosts(database, perm.PublicOwned())

	_, err := posts.Retrieve(uuid.New())
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestPostUpdateByOwner(t *testing.T) {
	database := testDB(t)
	accounts := NewAccounts(database)
	posts := NewPosts(database, perm.PublicOwned())

	alice := registerAccount(t, accounts, "alice@x.com", "alice")
	created, _ := posts.Create(alice, "Hello", "First post")

	updated, err := posts.Update(alice, created.Id, "Hello again", "Edited")
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if updated.Title != "Hello again" {
		t.Errorf("Expected updated title, got %s", updated.Title)
	}
}

func TestPostUpdateByStrangerForbidden(t *testing.T) {
	database := testDB(t)
	accounts := NewAccounts(database)
	posts := NewPosts(database, perm.PublicOwned())

	alice := registerAccount(t, accounts, "alice@x.com", "alice")
	mallory := registerAccount(t, accounts, "mallory@x.com", "mallory")
	created, _ := posts.Create(alice, "Hello", "First post")

	_, err := posts.Update(mallory, created.Id, "Hijacked", "")
	if !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("Expected ErrForbidden, got %v", err)
	}

	if err := posts.Delete(mallory, created.Id); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("Expected ErrForbidden on delete, got %v", err)
	}

	// The post is untouched
	got, err := posts.Retrieve(created.Id)
	if err != nil {
		t.Fatalf("Retrieve failed: %v", err)
	}
	if got.Title != "Hello" {
		t.Errorf("Expected original title, got %s", got.Title)
	}
}

func TestPostDeleteByOwner(t *testing.T) {
	database := testDB(t)
	accounts := NewAccounts(database)
	posts := NewPosts(database, perm.PublicOwned())

	alice := registerAccount(t, accounts, "alice@x.com", "alice")
	created, _ := posts.Create(alice, "Hello", "First post")

	if err := posts.Delete(alice, created.Id); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	_, err := posts.Retrieve(created.Id)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("Expected ErrNotFound after delete, got %v", err)
	}
}

func TestPostViewIncludesLikers(t *testing.T) {
	database := testDB(t)
	accounts := NewAccounts(database)
	ledger := NewLedger(database)
	posts := NewPosts(database, perm.PublicOwned())

	alice := registerAccount(t, accounts, "alice@x.com", "alice")
	bob := registerAccount(t, accounts, "bob@x.com", "bob")
	created, _ := posts.Create(alice, "Hello", "First post")

	ledger.Like(bob, created.Id)

	got, err := posts.Retrieve(created.Id)
	if err != nil {
		t.Fatalf("Retrieve failed: %v", err)
	}
	if got.LikesCount != 1 {
		t.Errorf("Expected 1 like, got %d", got.LikesCount)
	}
	if len(got.Likers) != 1 || got.Likers[0] != "bob" {
		t.Errorf("Expected likers [bob], got %v", got.Likers)
	}
}

func TestPostListAndByUsername(t *testing.T) {
	database := testDB(t)
	accounts := NewAccounts(database)
	posts := NewPosts(database, perm.PublicOwned())

	alice := registerAccount(t, accounts, "alice@x.com", "alice")
	bob := registerAccount(t, accounts, "bob@x.com", "bob")
	posts.Create(alice, "One", "")
	posts.Create(alice, "Two", "")
	posts.Create(bob, "Three", "")

	all, err := posts.List(0)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("Expected 3 posts, got %d", len(all))
	}

	limited, err := posts.List(2)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(limited) != 2 {
		t.Errorf("Expected 2 posts with limit, got %d", len(limited))
	}

	byAlice, err := posts.ByUsername("alice")
	if err != nil {
		t.Fatalf("ByUsername failed: %v", err)
	}
	if len(byAlice) != 2 {
		t.Errorf("Expected 2 posts by alice, got %d", len(byAlice))
	}
}
