package history

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// ErrClosed is returned when recording to a closed log
var ErrClosed = errors.New("command log is closed")

// FileLog appends command lines to a file
type FileLog struct {
	mu   sync.Mutex
	path string
	f    *os.File
}

// Open opens (creating if needed) the log file at path in append mode.
// Parent directories are created.
func Open(path string) (*FileLog, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open command log %s: %w", path, err)
	}

	return &FileLog{path: path, f: f}, nil
}

// Path returns the file being written
func (l *FileLog) Path() string {
	return l.path
}

// Record appends line followed by a newline. Embedded newlines are written
// as-is; the REPL never submits them.
func (l *FileLog) Record(line string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.f == nil {
		return ErrClosed
	}
	if _, err := l.f.WriteString(line + "\n"); err != nil {
		return fmt.Errorf("failed to write command log: %w", err)
	}
	return nil
}

// Close closes the file. Closing twice is a no-op.
func (l *FileLog) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.f == nil {
		return nil
	}
	err := l.f.Close()
	l.f = nil
	return err
}

// MemoryLog keeps lines in memory for callers that need to inspect what
// was recorded.
type MemoryLog struct {
	mu    sync.Mutex
	lines []string
}

// NewMemoryLog creates an empty in-memory log
func NewMemoryLog() *MemoryLog {
	return &MemoryLog{}
}

// Record stores line
func (m *MemoryLog) Record(line string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lines = append(m.lines, line)
	return nil
}

// Close is a no-op
func (m *MemoryLog) Close() error { return nil }

// Lines returns a copy of the recorded lines
func (m *MemoryLog) Lines() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.lines))
	copy(out, m.lines)
	return out
}

// String returns the log as the file would contain it
func (m *MemoryLog) String() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.lines) == 0 {
		return ""
	}
	return strings.Join(m.lines, "\n") + "\n"
}

// Discard drops every line
type Discard struct{}

// Record does nothing
func (Discard) Record(string) error { return nil }

// Close does nothing
func (Discard) Close() error { return nil }
