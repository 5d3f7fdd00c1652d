package memory

import (
	"fmt"
	"strings"
	"time"
)

// Sentinel texts returned in place of entries when the store cannot serve a
// read. Callers surface these as ordinary results, never as errors.
const (
	UnavailableMsg = "Shared memory unavailable"
	NoEntriesMsg   = "No recent memory entries"
)

// FormatEntries renders entries one per line as
// "[timestamp] source (category): summary", preserving the given order.
// An empty slice renders as NoEntriesMsg.
func FormatEntries(entries []Entry) string {
	if len(entries) == 0 {
		return NoEntriesMsg
	}
	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		lines = append(lines, fmt.Sprintf("[%s] %s (%s): %s",
			e.CreatedAt.Format(time.RFC3339), e.Source, e.Category, e.Summary))
	}
	return strings.Join(lines, "\n")
}
