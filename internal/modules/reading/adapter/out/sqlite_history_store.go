package out

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"writerly/internal/modules/reading/domain"
	readingout "writerly/internal/modules/reading/port/out"

	_ "modernc.org/sqlite"
)

type SQLiteHistoryStore struct {
	db *sql.DB
}

func NewSQLiteHistoryStore(dbPath string) (readingout.HistoryStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	store := &SQLiteHistoryStore{db: db}
	if err := store.ensureSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

func (s *SQLiteHistoryStore) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS reading_history (
  session_id TEXT PRIMARY KEY,
  work_id TEXT NOT NULL,
  section_id TEXT,
  started_at TEXT NOT NULL,
  completed_at TEXT NOT NULL,
  time_on_page INTEGER NOT NULL,
  scroll_depth REAL NOT NULL
);
`
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create reading_history table: %w", err)
	}
	return nil
}

func (s *SQLiteHistoryStore) Record(ctx context.Context, entry domain.HistoryEntry) error {
	const stmt = `
INSERT INTO reading_history (session_id, work_id, section_id, started_at, completed_at, time_on_page, scroll_depth)
VALUES (?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(session_id) DO UPDATE SET
  completed_at=excluded.completed_at,
  time_on_page=excluded.time_on_page,
  scroll_depth=excluded.scroll_depth;
`
	_, err := s.db.ExecContext(ctx, stmt,
		entry.SessionID,
		entry.WorkID,
		entry.SectionID,
		entry.StartedAt.UTC().Format(time.RFC3339),
		entry.CompletedAt.UTC().Format(time.RFC3339),
		entry.TimeOnPage,
		entry.ScrollDepth,
	)
	if err != nil {
		return fmt.Errorf("record reading session %s: %w", entry.SessionID, err)
	}
	return nil
}

func (s *SQLiteHistoryStore) List(ctx context.Context, limit int) ([]domain.HistoryEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT session_id, work_id, COALESCE(section_id, ''), started_at, completed_at, time_on_page, scroll_depth
FROM reading_history
ORDER BY completed_at DESC
LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query reading history: %w", err)
	}
	defer rows.Close()

	entries := []domain.HistoryEntry{}
	for rows.Next() {
		var (
			entry                  domain.HistoryEntry
			startedAt, completedAt string
		)
		if err := rows.Scan(&entry.SessionID, &entry.WorkID, &entry.SectionID, &startedAt, &completedAt, &entry.TimeOnPage, &entry.ScrollDepth); err != nil {
			return nil, fmt.Errorf("scan reading history: %w", err)
		}
		entry.StartedAt, _ = time.Parse(time.RFC3339, startedAt)
		entry.CompletedAt, _ = time.Parse(time.RFC3339, completedAt)
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

func (s *SQLiteHistoryStore) Close() error {
	return s.db.Close()
}
