package memory

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteStore implements the Store interface using SQLite.
// It backs single-node deployments and hermetic tests; timestamps are stored
// as unix nanoseconds so recency ordering is exact at any write rate.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a new SQLiteStore connected to the given database path.
// The path should be a file path (e.g., "./gateway.db") or ":memory:" for an
// in-memory database. It opens the connection and verifies it with a ping.
func NewSQLiteStore(ctx context.Context, dbPath string) (*SQLiteStore, error) {
	// Enable WAL mode for better concurrent write behavior
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// A single connection keeps :memory: databases coherent and serializes
	// writers, which SQLite wants anyway.
	db.SetMaxOpenConns(1)

	// Verify connection
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// InitSchema creates the necessary tables if they don't exist.
// This should be called after creating a new SQLiteStore.
func (s *SQLiteStore) InitSchema(ctx context.Context) error {
	schema := `
		-- Shared cross-agent memory log
		CREATE TABLE IF NOT EXISTS shared_memory (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			created_at INTEGER NOT NULL,
			source TEXT NOT NULL,
			category TEXT NOT NULL,
			workstream TEXT NOT NULL DEFAULT 'GENERAL',
			summary TEXT NOT NULL,
			details TEXT,
			priority TEXT NOT NULL DEFAULT 'MEDIUM'
		);

		-- Index for recency-ordered reads
		CREATE INDEX IF NOT EXISTS idx_shared_memory_created_at ON shared_memory(created_at DESC);

		-- Conversation audit log (append-only sink)
		CREATE TABLE IF NOT EXISTS conversation_log (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			conversation_id TEXT NOT NULL,
			role TEXT NOT NULL,
			content TEXT NOT NULL,
			model TEXT NOT NULL,
			created_at INTEGER NOT NULL
		);
	`

	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}
	return nil
}

// AppendEntry writes a shared memory entry.
func (s *SQLiteStore) AppendEntry(ctx context.Context, e Entry) error {
	e = normalizeEntry(e)
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}

	details, err := json.Marshal(e.Details)
	if err != nil {
		return fmt.Errorf("failed to encode details: %w", err)
	}

	query := `
		INSERT INTO shared_memory (created_at, source, category, workstream, summary, details, priority)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	if _, err := s.db.ExecContext(ctx, query, e.CreatedAt.UnixNano(), e.Source, e.Category, e.Workstream, e.Summary, string(details), e.Priority); err != nil {
		return fmt.Errorf("failed to append entry: %w", err)
	}
	return nil
}

// RecentEntries returns at most limit entries, newest first.
func (s *SQLiteStore) RecentEntries(ctx context.Context, limit int) ([]Entry, error) {
	query := `
		SELECT id, created_at, source, category, workstream, summary, details, priority
		FROM shared_memory
		ORDER BY created_at DESC
		LIMIT ?
	`

	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query entries: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var createdAt int64
		var details sql.NullString
		if err := rows.Scan(&e.ID, &createdAt, &e.Source, &e.Category, &e.Workstream, &e.Summary, &details, &e.Priority); err != nil {
			return nil, fmt.Errorf("failed to scan entry: %w", err)
		}
		e.CreatedAt = time.Unix(0, createdAt).UTC()
		if details.Valid && details.String != "" {
			if err := json.Unmarshal([]byte(details.String), &e.Details); err != nil {
				return nil, fmt.Errorf("failed to decode details: %w", err)
			}
		}
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating entries: %w", err)
	}

	return entries, nil
}

// AppendTurn writes one conversation turn.
func (s *SQLiteStore) AppendTurn(ctx context.Context, t Turn) error {
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now().UTC()
	}

	query := `
		INSERT INTO conversation_log (conversation_id, role, content, model, created_at)
		VALUES (?, ?, ?, ?, ?)
	`

	if _, err := s.db.ExecContext(ctx, query, t.ConversationID, t.Role, Truncate(t.Content, ContentMaxLen), t.Model, t.CreatedAt.UnixNano()); err != nil {
		return fmt.Errorf("failed to append turn: %w", err)
	}
	return nil
}

// Ping reports whether the database is reachable.
func (s *SQLiteStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close releases the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Ensure SQLiteStore implements Store
var _ Store = (*SQLiteStore)(nil)
