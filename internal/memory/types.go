// Package memory provides storage interfaces and implementations for the
// shared cross-agent memory log and the conversation audit log.
package memory

import "time"

// Length caps applied before any write. Oversized values are truncated
// silently so a write never fails on length alone.
const (
	SummaryMaxLen = 2000
	ContentMaxLen = 4000
)

// Entry is a single shared note visible to all agent instances.
// Entries are append-only: this system never mutates or deletes them.
type Entry struct {
	ID         int64
	CreatedAt  time.Time
	Source     string
	Category   string
	Workstream string
	Summary    string
	Details    map[string]any
	Priority   string
}

// Turn is one logged exchange unit of a generation request.
// The user turn and the assistant turn of a request share one ConversationID.
type Turn struct {
	ConversationID string
	Role           string
	Content        string
	Model          string
	CreatedAt      time.Time
}

// Truncate returns s capped at max bytes.
func Truncate(s string, max int) string {
	if len(s) > max {
		return s[:max]
	}
	return s
}
