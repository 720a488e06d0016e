// Package history keeps a SQLite log of past analyses.
package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

const (
	driverName   = "sqlite"
	maxAttempts  = 5
	defaultLimit = 20

	// fixed width so text ordering matches time ordering
	timeLayout = "2006-01-02T15:04:05.000000000Z"
)

// Store is a file-backed analysis history
type Store struct {
	path string
	db   *sql.DB
	mu   sync.Mutex
}

// Open opens or creates the history database at path
func Open(path string) (*Store, error) {
	cleanPath := strings.TrimSpace(path)
	if cleanPath == "" {
		return nil, fmt.Errorf("history path must not be empty")
	}
	if info, err := os.Stat(cleanPath); err == nil && info.IsDir() {
		return nil, fmt.Errorf("history path %q is a directory, expected file", cleanPath)
	}

	dir := filepath.Dir(cleanPath)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create history directory %q: %w", dir, err)
		}
	}

	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(2000)&_pragma=journal_mode(WAL)", cleanPath)
	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite history %q: %w", cleanPath, err)
	}
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite history %q: %w", cleanPath, err)
	}
	if err := EnsureSchema(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initialize sqlite schema %q: %w", cleanPath, err)
	}

	return &Store{path: cleanPath, db: db}, nil
}

// Close releases the database handle. It is safe on a nil store.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database file path
func (s *Store) Path() string {
	if s == nil {
		return ""
	}
	return s.path
}

// Save inserts a record, assigning an ID and timestamp when missing
func (s *Store) Save(rec Record) (Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	if rec.AnalyzedAt.IsZero() {
		rec.AnalyzedAt = time.Now().UTC()
	}
	rec.Source = strings.TrimSpace(rec.Source)
	if rec.Source == "" {
		rec.Source = "<inline>"
	}

	query := `
INSERT INTO analyses (
  id, source, analyzed_at_utc, issue_count, error_count, warning_count, info_count,
  cyclomatic, maintainability, readability, testability, performance, security, can_execute
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`
	err := s.withRetry("save analysis", func() error {
		_, err := s.db.Exec(
			query,
			rec.ID.String(),
			rec.Source,
			rec.AnalyzedAt.UTC().Format(timeLayout),
			rec.IssueCount,
			rec.ErrorCount,
			rec.WarningCount,
			rec.InfoCount,
			rec.Cyclomatic,
			rec.Scores.Maintainability,
			rec.Scores.Readability,
			rec.Scores.Testability,
			rec.Scores.Performance,
			rec.Scores.Security,
			rec.CanExecute,
		)
		return err
	})
	if err != nil {
		return Record{}, err
	}
	return rec, nil
}

// Recent returns up to limit records, newest first
func (s *Store) Recent(limit int) ([]Record, error) {
	return s.list("", limit)
}

// ForSource returns up to limit records for one source, newest first
func (s *Store) ForSource(source string, limit int) ([]Record, error) {
	source = strings.TrimSpace(source)
	if source == "" {
		return nil, fmt.Errorf("source must not be empty")
	}
	return s.list(source, limit)
}

func (s *Store) list(source string, limit int) ([]Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if limit <= 0 {
		limit = defaultLimit
	}

	query := `
SELECT
  id, source, analyzed_at_utc, issue_count, error_count, warning_count, info_count,
  cyclomatic, maintainability, readability, testability, performance, security, can_execute
FROM analyses
`
	args := make([]any, 0, 2)
	if source != "" {
		query += " WHERE source = ?"
		args = append(args, source)
	}
	query += " ORDER BY analyzed_at_utc DESC, created_at_utc DESC LIMIT ?"
	args = append(args, limit)

	var rows *sql.Rows
	err := s.withRetry("list analyses", func() error {
		var qErr error
		rows, qErr = s.db.Query(query, args...)
		return qErr
	})
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make([]Record, 0)
	for rows.Next() {
		var (
			idRaw string
			tsRaw string
			rec   Record
		)
		if err := rows.Scan(
			&idRaw,
			&rec.Source,
			&tsRaw,
			&rec.IssueCount,
			&rec.ErrorCount,
			&rec.WarningCount,
			&rec.InfoCount,
			&rec.Cyclomatic,
			&rec.Scores.Maintainability,
			&rec.Scores.Readability,
			&rec.Scores.Testability,
			&rec.Scores.Performance,
			&rec.Scores.Security,
			&rec.CanExecute,
		); err != nil {
			return nil, fmt.Errorf("scan analysis row: %w", err)
		}

		id, err := uuid.Parse(idRaw)
		if err != nil {
			return nil, fmt.Errorf("parse analysis id %q: %w", idRaw, err)
		}
		rec.ID = id

		ts, err := time.Parse(timeLayout, tsRaw)
		if err != nil {
			return nil, fmt.Errorf("parse analysis timestamp %q: %w", tsRaw, err)
		}
		rec.AnalyzedAt = ts.UTC()

		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate analysis rows: %w", err)
	}

	return records, nil
}

func (s *Store) withRetry(op string, fn func() error) error {
	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		err := fn()
		if err == nil {
			return nil
		}
		lastErr = err
		if !isLockError(err) || attempt == maxAttempts {
			break
		}
		time.Sleep(time.Duration(attempt*25) * time.Millisecond)
	}
	return fmt.Errorf("%s: %w", op, lastErr)
}

func isLockError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "database is locked") || strings.Contains(msg, "busy")
}
