package recorder

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/jstewartrr/gemini-mcp/internal/memory"
)

// fakeWriter captures appended turns and can simulate store failure.
type fakeWriter struct {
	turns []memory.Turn
	err   error
}

func (f *fakeWriter) AppendTurn(_ context.Context, t memory.Turn) error {
	if f.err != nil {
		return f.err
	}
	f.turns = append(f.turns, t)
	return nil
}

// TestRecord tests that a turn carries the conversation id, role, and model.
func TestRecord(t *testing.T) {
	writer := &fakeWriter{}
	rec := New(writer, "gemini-2.0-flash-exp", slog.New(slog.DiscardHandler))

	rec.Record(context.Background(), "conv-1", "user", "hello")

	if len(writer.turns) != 1 {
		t.Fatalf("expected 1 turn, got %d", len(writer.turns))
	}
	turn := writer.turns[0]
	if turn.ConversationID != "conv-1" || turn.Role != "user" || turn.Content != "hello" {
		t.Errorf("unexpected turn: %+v", turn)
	}
	if turn.Model != "gemini-2.0-flash-exp" {
		t.Errorf("expected model stamp, got %q", turn.Model)
	}
}

// TestRecord_SwallowsFailure tests that a store failure does not propagate.
func TestRecord_SwallowsFailure(t *testing.T) {
	writer := &fakeWriter{err: errors.New("connection refused")}
	rec := New(writer, "gemini-2.0-flash-exp", slog.New(slog.DiscardHandler))

	// Must not panic or otherwise surface the failure.
	rec.Record(context.Background(), "conv-1", "user", "hello")

	if len(writer.turns) != 0 {
		t.Errorf("expected no recorded turns, got %d", len(writer.turns))
	}
}
