package db

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/pebblenet/pebble/domain"
)

// Comments queries
const (
	sqlInsertComment     = `INSERT INTO comments(id, post_id, account_id, body, created_at) VALUES (?, ?, ?, ?, ?)`
	sqlSelectCommentById = `SELECT comments.id, comments.post_id, comments.account_id, accounts.username, comments.body, comments.created_at FROM comments
                                                            INNER JOIN accounts ON accounts.id = comments.account_id
                                                            WHERE comments.id = ?`
	sqlSelectAllComments = `SELECT comments.id, comments.post_id, comments.account_id, accounts.username, comments.body, comments.created_at FROM comments
                                                            INNER JOIN accounts ON accounts.id = comments.account_id
                                                            ORDER BY comments.created_at DESC`
	sqlSelectCommentsByPostId = `SELECT comments.id, comments.post_id, comments.account_id, accounts.username, comments.body, comments.created_at FROM comments
                                                            INNER JOIN accounts ON accounts.id = comments.account_id
                                                            WHERE comments.post_id = ?
                                                            ORDER BY comments.created_at ASC`
	sqlUpdateComment     = `UPDATE comments SET body = ? WHERE id = ?`
	sqlDeleteCommentById = `DELETE FROM comments WHERE id = ?`
)

func (db *DB) CreateComment(postId, accountId uuid.UUID, body string) (uuid.UUID, error) {
	id := uuid.New()
	err := db.wrapTransaction(func(tx *sql.Tx) error {
		_, err := tx.Exec(sqlInsertComment, id, postId, accountId, body, time.Now())
		return err
	})
	if err != nil {
		return uuid.Nil, err
	}
	return id, nil
}

func (db *DB) ReadCommentById(id uuid.UUID) (error, *domain.Comment) {
	row := db.db.QueryRow(sqlSelectCommentById, id)
	var comment domain.Comment
	err := row.Scan(&comment.Id, &comment.PostId, &comment.AccountId, &comment.Author, &comment.Body, &comment.CreatedAt)
	if err != nil {
		return err, nil
	}
	return nil, &comment
}

func (db *DB) ReadAllComments() (error, *[]domain.Comment) {
	return db.queryComments(sqlSelectAllComments)
}

func (db *DB) ReadCommentsByPostId(postId uuid.UUID) (error, *[]domain.Comment) {
	return db.queryComments(sqlSelectCommentsByPostId, postId)
}

func (db *DB) UpdateComment(id uuid.UUID, body string) error {
	return db.wrapTransaction(func(tx *sql.Tx) error {
		_, err := tx.Exec(sqlUpdateComment, body, id)
		return err
	})
}

func (db *DB) DeleteCommentById(id uuid.UUID) error {
	return db.wrapTransaction(func(tx *sql.Tx) error {
		_, err := tx.Exec(sqlDeleteCommentById, id)
		return err
	})
}

func (db *DB) queryComments(query string, args ...interface{}) (error, *[]domain.Comment) {
	rows, err := db.db.Query(query, args...)
	if err != nil {
		return err, nil
	}
	defer rows.Close()

	var comments []domain.Comment

	for rows.Next() {
		var comment domain.Comment
		if err := rows.Scan(&comment.Id, &comment.PostId, &comment.AccountId, &comment.Author, &comment.Body, &comment.CreatedAt); err != nil {
			return err, &comments
		}
		comments = append(comments, comment)
	}
	if err = rows.Err(); err != nil {
		return err, &comments
	}

	return nil, &comments
}
