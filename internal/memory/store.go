package memory

import "context"

// Store defines the contract for memory operations.
// It abstracts the storage layer for both the shared memory log and the
// conversation audit log.
type Store interface {
	// AppendEntry writes a shared memory entry. Defaults are applied for
	// empty Workstream ("GENERAL") and Priority ("MEDIUM"), and Summary is
	// capped at SummaryMaxLen. Success means the write is committed.
	AppendEntry(ctx context.Context, e Entry) error

	// RecentEntries returns at most limit entries ordered by creation time
	// descending (newest first).
	RecentEntries(ctx context.Context, limit int) ([]Entry, error)

	// AppendTurn writes one conversation turn. Content is capped at
	// ContentMaxLen. Turns are never read back by this system.
	AppendTurn(ctx context.Context, t Turn) error

	// Ping reports whether the store is reachable.
	Ping(ctx context.Context) error

	// Close releases any resources held by the store.
	Close() error
}

// normalizeEntry applies write-time defaults and the summary length cap.
// Both store implementations call it so the invariants hold regardless of
// backend.
func normalizeEntry(e Entry) Entry {
	if e.Workstream == "" {
		e.Workstream = "GENERAL"
	}
	if e.Priority == "" {
		e.Priority = "MEDIUM"
	}
	e.Summary = Truncate(e.Summary, SummaryMaxLen)
	return e
}
