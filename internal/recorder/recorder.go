// Package recorder logs conversation turns to the durable audit log.
package recorder

import (
	"context"
	"log/slog"

	"github.com/jstewartrr/gemini-mcp/internal/memory"
)

// TurnWriter is the slice of the memory store the recorder needs.
type TurnWriter interface {
	AppendTurn(ctx context.Context, t memory.Turn) error
}

// Recorder appends conversation turns on a best-effort basis. A write
// failure is logged and swallowed: audit logging must never abort the
// request that produced the turn.
type Recorder struct {
	store  TurnWriter
	model  string
	logger *slog.Logger
}

// New creates a Recorder that stamps every turn with the given model
// identifier.
func New(store TurnWriter, model string, logger *slog.Logger) *Recorder {
	return &Recorder{store: store, model: model, logger: logger}
}

// Record appends one turn. role is "user" or "assistant"; both turns of a
// request share conversationID.
func (r *Recorder) Record(ctx context.Context, conversationID, role, content string) {
	err := r.store.AppendTurn(ctx, memory.Turn{
		ConversationID: conversationID,
		Role:           role,
		Content:        content,
		Model:          r.model,
	})
	if err != nil {
		r.logger.Warn("failed to log conversation turn", "conversation_id", conversationID, "role", role, "err", err)
	}
}
