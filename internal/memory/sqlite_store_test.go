package memory

import (
	"context"
	"strings"
	"testing"
	"time"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	ctx := context.Background()

	store, err := NewSQLiteStore(ctx, ":memory:")
	if err != nil {
		t.Fatalf("failed to create SQLite store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	if err := store.InitSchema(ctx); err != nil {
		t.Fatalf("failed to initialize schema: %v", err)
	}
	return store
}

// TestNewSQLiteStore tests SQLite store creation and initialization.
func TestNewSQLiteStore(t *testing.T) {
	store := newTestStore(t)

	if err := store.Ping(context.Background()); err != nil {
		t.Errorf("ping failed: %v", err)
	}
}

// TestAppendEntry_Defaults tests that write-time defaults are applied.
func TestAppendEntry_Defaults(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	err := store.AppendEntry(ctx, Entry{
		Source:   "GEMINI",
		Category: "INSIGHT",
		Summary:  "test note",
	})
	if err != nil {
		t.Fatalf("failed to append entry: %v", err)
	}

	entries, err := store.RecentEntries(ctx, 5)
	if err != nil {
		t.Fatalf("failed to read entries: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}

	e := entries[0]
	if e.Workstream != "GENERAL" {
		t.Errorf("expected workstream GENERAL, got %q", e.Workstream)
	}
	if e.Priority != "MEDIUM" {
		t.Errorf("expected priority MEDIUM, got %q", e.Priority)
	}
	if e.ID == 0 {
		t.Error("expected store-assigned ID")
	}
	if e.CreatedAt.IsZero() {
		t.Error("expected store-assigned creation timestamp")
	}
}

// TestAppendEntry_SummaryTruncation tests that an oversized summary is
// silently capped rather than rejected.
func TestAppendEntry_SummaryTruncation(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	long := strings.Repeat("x", SummaryMaxLen+500)
	err := store.AppendEntry(ctx, Entry{
		Source:   "GEMINI",
		Category: "INSIGHT",
		Summary:  long,
	})
	if err != nil {
		t.Fatalf("append with oversized summary should not fail: %v", err)
	}

	entries, err := store.RecentEntries(ctx, 1)
	if err != nil {
		t.Fatalf("failed to read entries: %v", err)
	}
	if got := entries[0].Summary; got != long[:SummaryMaxLen] {
		t.Errorf("expected summary truncated to %d bytes, got %d", SummaryMaxLen, len(got))
	}
}

// TestRecentEntries_Ordering tests strict recency ordering with a limit.
func TestRecentEntries_Ordering(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	for i, summary := range []string{"first", "second", "third"} {
		err := store.AppendEntry(ctx, Entry{
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
			Source:    "GEMINI",
			Category:  "INSIGHT",
			Summary:   summary,
		})
		if err != nil {
			t.Fatalf("failed to append entry %d: %v", i, err)
		}
	}

	entries, err := store.RecentEntries(ctx, 2)
	if err != nil {
		t.Fatalf("failed to read entries: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Summary != "third" || entries[1].Summary != "second" {
		t.Errorf("expected [third, second], got [%s, %s]", entries[0].Summary, entries[1].Summary)
	}
}

// TestAppendEntry_Details tests that the structured detail payload survives a
// write/read cycle.
func TestAppendEntry_Details(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	err := store.AppendEntry(ctx, Entry{
		Source:   "GEMINI",
		Category: "DECISION",
		Summary:  "picked option B",
		Details:  map[string]any{"ticket": "OPS-42", "weight": float64(3)},
	})
	if err != nil {
		t.Fatalf("failed to append entry: %v", err)
	}

	entries, err := store.RecentEntries(ctx, 1)
	if err != nil {
		t.Fatalf("failed to read entries: %v", err)
	}
	details := entries[0].Details
	if details["ticket"] != "OPS-42" {
		t.Errorf("expected ticket OPS-42, got %v", details["ticket"])
	}
	if details["weight"] != float64(3) {
		t.Errorf("expected weight 3, got %v", details["weight"])
	}
}

// TestAppendTurn tests conversation turn writes, including the content cap.
func TestAppendTurn(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	long := strings.Repeat("y", ContentMaxLen+100)
	err := store.AppendTurn(ctx, Turn{
		ConversationID: "conv-1",
		Role:           "user",
		Content:        long,
		Model:          "gemini-2.0-flash-exp",
	})
	if err != nil {
		t.Fatalf("append with oversized content should not fail: %v", err)
	}

	var content string
	row := store.db.QueryRowContext(ctx, `SELECT content FROM conversation_log WHERE conversation_id = ?`, "conv-1")
	if err := row.Scan(&content); err != nil {
		t.Fatalf("failed to read turn back: %v", err)
	}
	if content != long[:ContentMaxLen] {
		t.Errorf("expected content truncated to %d bytes, got %d", ContentMaxLen, len(content))
	}
}

// TestRecentEntries_Empty tests reads from an empty store.
func TestRecentEntries_Empty(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	entries, err := store.RecentEntries(ctx, 5)
	if err != nil {
		t.Fatalf("failed to read entries: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("expected no entries, got %d", len(entries))
	}
}

// TestStoreUnavailable tests that a closed store reports errors rather than
// panicking, which is what the callers' degradation paths rely on.
func TestStoreUnavailable(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	store.Close()

	if _, err := store.RecentEntries(ctx, 5); err == nil {
		t.Error("expected read error from closed store")
	}
	if err := store.AppendEntry(ctx, Entry{Source: "GEMINI", Category: "INSIGHT", Summary: "x"}); err == nil {
		t.Error("expected write error from closed store")
	}
	if err := store.AppendTurn(ctx, Turn{ConversationID: "c", Role: "user", Content: "x", Model: "m"}); err == nil {
		t.Error("expected turn write error from closed store")
	}
}
