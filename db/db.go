package db

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"sync"
	"time"

	"modernc.org/sqlite"
	sqlitelib "modernc.org/sqlite/lib"
)

// DB is the database struct.
type DB struct {
	db *sql.DB
}

var (
	dbInstance *DB
	dbOnce     sync.Once
)

const DatabaseFile = "pebble.db"

// GetDB returns the process-wide database, opening it on first use.
func GetDB() *DB {
	dbOnce.Do(func() {
		var err error
		dbInstance, err = Open(DatabaseFile)
		if err != nil {
			panic(err)
		}
	})

	return dbInstance
}

// Open opens a database at the given path, configures the connection
// pool and creates the schema. The PRAGMAs ride in the DSN because most
// of them are per-connection settings: foreign_keys in particular must
// hold on every pooled connection or the cascading deletes stop applying.
func Open(path string) (*DB, error) {
	dsn := path +
		"?_pragma=foreign_keys(1)" +
		"&_pragma=busy_timeout(5000)" +
		"&_pragma=journal_mode(WAL)" +
		"&_pragma=synchronous(NORMAL)" +
		"&_pragma=cache_size(-64000)" +
		"&_pragma=temp_store(MEMORY)"

	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	// Configure connection pool for concurrent access
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(time.Hour)

	var journalMode string
	if err := sqlDB.QueryRow("PRAGMA journal_mode").Scan(&journalMode); err != nil {
		log.Printf("Warning: Failed to read journal mode: %v", err)
	} else {
		log.Printf("Database journal mode: %s", journalMode)
	}

	db := &DB{db: sqlDB}

	if err := db.RunMigrations(); err != nil {
		sqlDB.Close()
		return nil, err
	}

	return db, nil
}

// Close closes the underlying connection pool.
func (db *DB) Close() error {
	return db.db.Close()
}

// wrapTransaction runs the given function within a transaction, starting
// a fresh one on every SQLITE_BUSY retry; a busy rollback invalidates the
// old transaction handle.
func (db *DB) wrapTransaction(f func(tx *sql.Tx) error) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()
	for {
		tx, err := db.db.BeginTx(ctx, nil)
		if err != nil {
			log.Printf("error starting transaction: %s", err)
			return err
		}
		if err := f(tx); err != nil {
			tx.Rollback()
			if isBusy(err) {
				continue
			}
			return err
		}
		if err := tx.Commit(); err != nil {
			if isBusy(err) {
				continue
			}
			log.Printf("error committing transaction: %s", err)
			return err
		}
		return nil
	}
}

func isBusy(err error) bool {
	serr, ok := err.(*sqlite.Error)
	return ok && serr.Code() == sqlitelib.SQLITE_BUSY
}

// isUniqueViolation reports whether err is a UNIQUE constraint failure.
func isUniqueViolation(err error) bool {
	var serr *sqlite.Error
	if errors.As(err, &serr) {
		return serr.Code() == sqlitelib.SQLITE_CONSTRAINT_UNIQUE ||
			serr.Code() == sqlitelib.SQLITE_CONSTRAINT_PRIMARYKEY
	}
	return false
}
