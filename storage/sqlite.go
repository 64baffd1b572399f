package storage

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var embedMigrations embed.FS

// DefaultSQLiteBucket is the state row the recipe book is stored under.
const DefaultSQLiteBucket = "recipes"

// OpenSQLite opens (creating if needed) a SQLite database file and applies all
// pending migrations.
func OpenSQLite(path string) (*sqlx.DB, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}

	db, err := sqlx.Connect("sqlite", path+"?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("connecting to db : %w", err)
	}
	db.SetMaxOpenConns(1)

	goose.SetBaseFS(embedMigrations)
	goose.SetLogger(goose.NopLogger())

	if err := goose.SetDialect(string(goose.DialectSQLite3)); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting dialect for migrations : %w", err)
	}
	if err := goose.Up(db.DB, "migrations"); err != nil {
		db.Close()
		return nil, fmt.Errorf("applying migration : %w", err)
	}
	return db, nil
}

// SQLiteRecipeState stores the whole recipe book as one JSON payload row of
// the state table, replaced on every save.
type SQLiteRecipeState struct {
	db     *sqlx.DB
	bucket string
}

func NewSQLiteRecipeState(db *sqlx.DB, bucket string) *SQLiteRecipeState {
	if bucket == "" {
		bucket = DefaultSQLiteBucket
	}
	return &SQLiteRecipeState{db: db, bucket: bucket}
}

func (s *SQLiteRecipeState) Load(ctx context.Context) ([]byte, error) {
	var payload []byte
	err := s.db.GetContext(ctx, &payload, `SELECT payload FROM state WHERE bucket = ?`, s.bucket)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: bucket %s", ErrNotFound, s.bucket)
	}
	if err != nil {
		return nil, fmt.Errorf("selecting state %s: %w", s.bucket, err)
	}
	return payload, nil
}

func (s *SQLiteRecipeState) Save(ctx context.Context, data []byte) error {
	query := `INSERT INTO state (bucket, payload, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(bucket) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at`
	if _, err := s.db.ExecContext(ctx, query, s.bucket, data); err != nil {
		return fmt.Errorf("saving state %s: %w", s.bucket, err)
	}
	return nil
}

// Close closes the underlying database.
func (s *SQLiteRecipeState) Close() error {
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("closing db : %w", err)
	}
	return nil
}
