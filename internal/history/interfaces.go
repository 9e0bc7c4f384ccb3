// Package history records every submitted command line, one per line, in an
// append-only plain text log.
package history

// Recorder defines the interface for the command log.
// This interface enables dependency injection and easier testing.
type Recorder interface {
	// Record appends the raw command line exactly as submitted
	Record(line string) error

	// Close releases the underlying file, if any
	Close() error
}

// Ensure concrete types implement the interface
var (
	_ Recorder = (*FileLog)(nil)
	_ Recorder = (*MemoryLog)(nil)
	_ Recorder = Discard{}
)
