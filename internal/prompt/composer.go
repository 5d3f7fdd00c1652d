// Package prompt builds the per-request instruction context sent to the
// generative backend alongside the user message.
package prompt

import (
	"context"
	"log/slog"
	"strings"

	"github.com/jstewartrr/gemini-mcp/internal/memory"
)

// contextEntries is the number of recent shared memory entries injected into
// every instruction context. It is independent of the caller-visible limit on
// the memory-read tool.
const contextEntries = 3

// RecentReader is the slice of the memory store the composer needs.
type RecentReader interface {
	RecentEntries(ctx context.Context, limit int) ([]memory.Entry, error)
}

// Composer assembles instruction contexts from a static identity profile, an
// optional caller addendum, and a live snapshot of recent shared memory.
// The result is never persisted; it exists for one generative call.
type Composer struct {
	store   RecentReader
	profile string
	logger  *slog.Logger
}

// NewComposer creates a Composer over the given store. An empty profile
// selects DefaultProfile.
func NewComposer(store RecentReader, profile string, logger *slog.Logger) *Composer {
	if profile == "" {
		profile = DefaultProfile
	}
	return &Composer{store: store, profile: profile, logger: logger}
}

// Compose builds the instruction context for one request. A store failure
// degrades to a sentinel section rather than failing the request.
func (c *Composer) Compose(ctx context.Context, addendum string) string {
	var b strings.Builder
	b.WriteString(c.profile)

	if addendum != "" {
		b.WriteString("\n\n# ADDITIONAL INSTRUCTIONS\n")
		b.WriteString(addendum)
	}

	snapshot := memory.UnavailableMsg
	entries, err := c.store.RecentEntries(ctx, contextEntries)
	if err != nil {
		c.logger.Warn("shared memory snapshot failed", "err", err)
	} else {
		snapshot = memory.FormatEntries(entries)
	}

	b.WriteString("\n\n# RECENT SHARED MEMORY\n")
	b.WriteString(snapshot)

	return b.String()
}
