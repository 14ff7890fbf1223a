package prof

import (
	"fmt"
	"io"
	"sync"
	"time"
)

// Entry is a single labeled timing measurement.
type Entry struct {
	Label   string
	Elapsed time.Duration
}

var (
	mu      sync.Mutex
	entries []Entry
)

// Track records the time elapsed since start under the given label.
// Intended for use with defer at the top of the measured section.
func Track(start time.Time, label string) {
	elapsed := time.Since(start)
	mu.Lock()
	entries = append(entries, Entry{Label: label, Elapsed: elapsed})
	mu.Unlock()
}

// SnapshotAndReset returns the collected entries and clears the record.
func SnapshotAndReset() []Entry {
	mu.Lock()
	defer mu.Unlock()
	out := make([]Entry, len(entries))
	copy(out, entries)
	entries = nil
	return out
}

// Dump writes the collected entries to w, one per line, and clears the
// record.
func Dump(w io.Writer) {
	for _, e := range SnapshotAndReset() {
		fmt.Fprintf(w, "%-24s %v\n", e.Label, e.Elapsed)
	}
}
