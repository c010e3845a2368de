package db

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/pebblenet/pebble/domain"
)

// Posts queries
const (
	sqlInsertPost     = `INSERT INTO posts(id, author_id, title, content, created_at) VALUES (?, ?, ?, ?, ?)`
	sqlSelectPostById = `SELECT posts.id, posts.author_id, accounts.username, posts.title, posts.content, posts.created_at FROM posts
                                                            INNER JOIN accounts ON accounts.id = posts.author_id
                                                            WHERE posts.id = ?`
	sqlSelectAllPosts = `SELECT posts.id, posts.author_id, accounts.username, posts.title, posts.content, posts.created_at FROM posts
                                                            INNER JOIN accounts ON accounts.id = posts.author_id
                                                            ORDER BY posts.created_at DESC`
	sqlSelectAllPostsLimited = `SELECT posts.id, posts.author_id, accounts.username, posts.title, posts.content, posts.created_at FROM posts
                                                            INNER JOIN accounts ON accounts.id = posts.author_id
                                                            ORDER BY posts.created_at DESC LIMIT ?`
	sqlSelectPostsByUsername = `SELECT posts.id, posts.author_id, accounts.username, posts.title, posts.content, posts.created_at FROM posts
                                                            INNER JOIN accounts ON accounts.id = posts.author_id
                                                            WHERE accounts.username = ?
                                                            ORDER BY posts.created_at DESC`
	sqlUpdatePost     = `UPDATE posts SET title = ?, content = ? WHERE id = ?`
	sqlDeletePostById = `DELETE FROM posts WHERE id = ?`
)

func (db *DB) CreatePost(authorId uuid.UUID, title, content string) (uuid.UUID, error) {
	id := uuid.New()
	err := db.wrapTransaction(func(tx *sql.Tx) error {
		_, err := tx.Exec(sqlInsertPost, id, authorId, title, content, time.Now())
		return err
	})
	if err != nil {
		return uuid.Nil, err
	}
	return id, nil
}

func (db *DB) ReadPostById(id uuid.UUID) (error, *domain.Post) {
	row := db.db.QueryRow(sqlSelectPostById, id)
	var post domain.Post
	err := row.Scan(&post.Id, &post.AuthorId, &post.Author, &post.Title, &post.Content, &post.CreatedAt)
	if err != nil {
		return err, nil
	}
	return nil, &post
}

// ReadAllPosts returns posts newest first; limit <= 0 means no limit.
func (db *DB) ReadAllPosts(limit int) (error, *[]domain.Post) {
	if limit > 0 {
		return db.queryPosts(sqlSelectAllPostsLimited, limit)
	}
	return db.queryPosts(sqlSelectAllPosts)
}

func (db *DB) ReadPostsByUsername(username string) (error, *[]domain.Post) {
	return db.queryPosts(sqlSelectPostsByUsername, username)
}

func (db *DB) UpdatePost(id uuid.UUID, title, content string) error {
	return db.wrapTransaction(func(tx *sql.Tx) error {
		_, err := tx.Exec(sqlUpdatePost, title, content, id)
		return err
	})
}

func (db *DB) DeletePostById(id uuid.UUID) error {
	return db.wrapTransaction(func(tx *sql.Tx) error {
		_, err := tx.Exec(sqlDeletePostById, id)
		return err
	})
}

func (db *DB) queryPosts(query string, args ...interface{}) (error, *[]domain.Post) {
	rows, err := db.db.Query(query, args...)
	if err != nil {
		return err, nil
	}
	defer rows.Close()

	var posts []domain.Post

	for rows.Next() {
		var post domain.Post
		if err := rows.Scan(&post.Id, &post.AuthorId, &post.Author, &post.Title, &post.Content, &post.CreatedAt); err != nil {
			return err, &posts
		}
		posts = append(posts, post)
	}
	if err = rows.Err(); err != nil {
		return err, &posts
	}

	return nil, &posts
}
