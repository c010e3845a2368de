package db

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/pebblenet/pebble/domain"
)

// Follow queries. Inserts are atomic insert-if-absent: the UNIQUE
// constraint resolves concurrent racers without an error leaking out.
const (
	sqlInsertFollow = `INSERT INTO follows(id, follower_id, following_id, created_at) VALUES (?, ?, ?, ?)
                                                            ON CONFLICT(follower_id, following_id) DO NOTHING`
	sqlSelectFollow = `SELECT id, follower_id, following_id, created_at FROM follows
                                                            WHERE follower_id = ? AND following_id = ?`
	sqlDeleteFollow = `DELETE FROM follows WHERE follower_id = ? AND following_id = ?`

	sqlSelectFollowersOf = `SELECT accounts.id, accounts.email, accounts.username, accounts.password_hash, accounts.created_at FROM follows
                                                            INNER JOIN accounts ON accounts.id = follows.follower_id
                                                            WHERE follows.following_id = ?
                                                            ORDER BY follows.created_at ASC`
	sqlSelectFollowingOf = `SELECT accounts.id, accounts.email, accounts.username, accounts.password_hash, accounts.created_at FROM follows
                                                            INNER JOIN accounts ON accounts.id = follows.following_id
                                                            WHERE follows.follower_id = ?
                                                            ORDER BY follows.created_at ASC`
)

// Like queries
const (
	sqlInsertLike = `INSERT INTO likes(id, account_id, post_id, created_at) VALUES (?, ?, ?, ?)
                                                            ON CONFLICT(account_id, post_id) DO NOTHING`
	sqlSelectLike = `SELECT id, account_id, post_id, created_at FROM likes
                                                            WHERE account_id = ? AND post_id = ?`
	sqlDeleteLike = `DELETE FROM likes WHERE account_id = ? AND post_id = ?`

	sqlSelectLikersOf = `SELECT accounts.id, accounts.email, accounts.username, accounts.password_hash, accounts.created_at FROM likes
                                                            INNER JOIN accounts ON accounts.id = likes.account_id
                                                            WHERE likes.post_id = ?
                                                            ORDER BY likes.created_at ASC`
)

// CreateFollow inserts the edge if absent and returns it either way.
func (db *DB) CreateFollow(followerId, followingId uuid.UUID) (error, *domain.Follow) {
	err := db.wrapTransaction(func(tx *sql.Tx) error {
		_, err := tx.Exec(sqlInsertFollow, uuid.New(), followerId, followingId, time.Now())
		return err
	})
	if err != nil {
		return err, nil
	}
	return db.ReadFollow(followerId, followingId)
}

func (db *DB) ReadFollow(followerId, followingId uuid.UUID) (error, *domain.Follow) {
	row := db.db.QueryRow(sqlSelectFollow, followerId, followingId)
	var follow domain.Follow
	err := row.Scan(&follow.Id, &follow.FollowerId, &follow.FollowingId, &follow.CreatedAt)
	if err != nil {
		return err, nil
	}
	return nil, &follow
}

// DeleteFollow removes the edge; deleting a missing edge is a no-op.
func (db *DB) DeleteFollow(followerId, followingId uuid.UUID) error {
	return db.wrapTransaction(func(tx *sql.Tx) error {
		_, err := tx.Exec(sqlDeleteFollow, followerId, followingId)
		return err
	})
}

func (db *DB) IsFollowing(followerId, followingId uuid.UUID) (bool, error) {
	err, _ := db.ReadFollow(followerId, followingId)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (db *DB) ReadFollowersOf(accountId uuid.UUID) (error, *[]domain.Account) {
	return db.queryAccounts(sqlSelectFollowersOf, accountId)
}

func (db *DB) ReadFollowingOf(accountId uuid.UUID) (error, *[]domain.Account) {
	return db.queryAccounts(sqlSelectFollowingOf, accountId)
}

// CreateLike inserts the edge if absent and returns it either way.
func (db *DB) CreateLike(accountId, postId uuid.UUID) (error, *domain.Like) {
	err := db.wrapTransaction(func(tx *sql.Tx) error {
		_, err := tx.Exec(sqlInsertLike, uuid.New(), accountId, postId, time.Now())
		return err
	})
	if err != nil {
		return err, nil
	}

	row := db.db.QueryRow(sqlSelectLike, accountId, postId)
	var like domain.Like
	if err := row.Scan(&like.Id, &like.AccountId, &like.PostId, &like.CreatedAt); err != nil {
		return err, nil
	}
	return nil, &like
}

// DeleteLike removes the edge; deleting a missing edge is a no-op.
func (db *DB) DeleteLike(accountId, postId uuid.UUID) error {
	return db.wrapTransaction(func(tx *sql.Tx) error {
		_, err := tx.Exec(sqlDeleteLike, accountId, postId)
		return err
	})
}

func (db *DB) IsLiking(accountId, postId uuid.UUID) (bool, error) {
	row := db.db.QueryRow(sqlSelectLike, accountId, postId)
	var like domain.Like
	err := row.Scan(&like.Id, &like.AccountId, &like.PostId, &like.CreatedAt)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (db *DB) ReadLikersOf(postId uuid.UUID) (error, *[]domain.Account) {
	return db.queryAccounts(sqlSelectLikersOf, postId)
}

func (db *DB) queryAccounts(query string, arg interface{}) (error, *[]domain.Account) {
	rows, err := db.db.Query(query, arg)
	if err != nil {
		return err, nil
	}
	defer rows.Close()

	var accounts []domain.Account

	for rows.Next() {
		var acc domain.Account
		if err := rows.Scan(&acc.Id, &acc.Email, &acc.Username, &acc.PasswordHash, &acc.CreatedAt); err != nil {
			return err, &accounts
		}
		accounts = append(accounts, acc)
	}
	if err = rows.Err(); err != nil {
		return err, &accounts
	}

	return nil, &accounts
}
