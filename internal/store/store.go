// Package store keeps the history of submitted searchbox values in SQLite.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	appErrors "segbox/internal/errors"
)

const schema = `
	CREATE TABLE IF NOT EXISTS submissions (
		id TEXT PRIMARY KEY,
		field_id TEXT NOT NULL,
		value TEXT NOT NULL,
		submitted_at TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS submissions_field_time
		ON submissions (field_id, submitted_at);
`

// timeLayout is fixed width so submitted_at sorts lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Submission is one recorded submit of a searchbox's plain value.
type Submission struct {
	ID          string    `json:"id"`
	FieldID     string    `json:"fieldId"`
	Value       string    `json:"value"`
	SubmittedAt time.Time `json:"submittedAt"`
}

// Store is a handle on the history database.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens (creating if needed) the database at path and applies the schema.
func Open(ctx context.Context, path string) (*Store, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return nil, appErrors.New(appErrors.CodeStore, "database path is empty", nil)
	}
	if err := os.MkdirAll(filepath.Dir(trimmed), 0o755); err != nil {
		return nil, appErrors.New(appErrors.CodeStore, "create database directory", err)
	}

	db, err := sql.Open("sqlite", buildDSN(trimmed))
	if err != nil {
		return nil, appErrors.New(appErrors.CodeStore, "open history db", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, appErrors.New(appErrors.CodeStore, "ping history db", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, appErrors.New(appErrors.CodeStore, "apply history schema", err)
	}
	return &Store{db: db, now: time.Now}, nil
}

// buildDSN creates a read-write WAL DSN for the given path.
func buildDSN(path string) string {
	u := url.URL{
		Scheme: "file",
		Path:   filepath.ToSlash(path),
	}
	q := url.Values{}
	q.Add("_pragma", "journal_mode(WAL)")
	q.Add("_pragma", "busy_timeout(3000)")
	u.RawQuery = q.Encode()
	return u.String()
}

// Close releases the database.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Save records value for fieldID and returns the stored submission.
func (s *Store) Save(ctx context.Context, fieldID, value string) (Submission, error) {
	sub := Submission{
		ID:          uuid.NewString(),
		FieldID:     fieldID,
		Value:       value,
		SubmittedAt: s.now().UTC(),
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO submissions (id, field_id, value, submitted_at) VALUES (?, ?, ?, ?)`,
		sub.ID, sub.FieldID, sub.Value, sub.SubmittedAt.Format(timeLayout),
	)
	if err != nil {
		return Submission{}, appErrors.New(appErrors.CodeStore, "insert submission", err)
	}
	return sub, nil
}

// Last returns the most recent submission for fieldID. ok is false when
// nothing was ever submitted.
func (s *Store) Last(ctx context.Context, fieldID string) (sub Submission, ok bool, err error) {
	subs, err := s.List(ctx, fieldID, 1)
	if err != nil {
		return Submission{}, false, err
	}
	if len(subs) == 0 {
		return Submission{}, false, nil
	}
	return subs[0], true, nil
}

// List returns submissions newest first. An empty fieldID lists every
// field; limit <= 0 means no limit.
func (s *Store) List(ctx context.Context, fieldID string, limit int) ([]Submission, error) {
	query := `SELECT id, field_id, value, submitted_at FROM submissions`
	var args []any
	if fieldID != "" {
		query += ` WHERE field_id = ?`
		args = append(args, fieldID)
	}
	query += ` ORDER BY submitted_at DESC, rowid DESC`
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, appErrors.New(appErrors.CodeStore, "query submissions", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var subs []Submission
	for rows.Next() {
		var sub Submission
		var at string
		if err := rows.Scan(&sub.ID, &sub.FieldID, &sub.Value, &at); err != nil {
			return nil, appErrors.New(appErrors.CodeStore, "scan submission", err)
		}
		sub.SubmittedAt, err = time.Parse(timeLayout, at)
		if err != nil {
			return nil, appErrors.New(appErrors.CodeStore, fmt.Sprintf("parse time of submission %s", sub.ID), err)
		}
		subs = append(subs, sub)
	}
	if err := rows.Err(); err != nil {
		return nil, appErrors.New(appErrors.CodeStore, "iterate submissions", err)
	}
	return subs, nil
}
