package history

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestFileLog_RecordAppendsRawLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log.txt")

	log, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}

	lines := []string{"ls", "cd  docs", "foo bar", "  echo   spaced  "}
	for _, line := range lines {
		if err := log.Record(line); err != nil {
			t.Fatalf("Record(%q) error = %v", line, err)
		}
	}
	if err := log.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read log: %v", err)
	}

	want := "ls\ncd  docs\nfoo bar\n  echo   spaced  \n"
	if string(data) != want {
		t.Errorf("log content = %q, want %q", string(data), want)
	}
}

func TestFileLog_AppendsAcrossOpens(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log.txt")

	for _, line := range []string{"first", "second"} {
		log, err := Open(path)
		if err != nil {
			t.Fatalf("Open() error = %v", err)
		}
		if err := log.Record(line); err != nil {
			t.Fatalf("Record() error = %v", err)
		}
		log.Close()
	}

	data, _ := os.ReadFile(path)
	if string(data) != "first\nsecond\n" {
		t.Errorf("log content = %q, want both lines", string(data))
	}
}

func TestFileLog_CreatesParentDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "log.txt")

	log, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer log.Close()

	if log.Path() != path {
		t.Errorf("Path() = %q, want %q", log.Path(), path)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("log file should exist: %v", err)
	}
}

func TestFileLog_RecordAfterClose(t *testing.T) {
	log, err := Open(filepath.Join(t.TempDir(), "log.txt"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	log.Close()

	if err := log.Record("ls"); !errors.Is(err, ErrClosed) {
		t.Errorf("Record() after Close error = %v, want ErrClosed", err)
	}
	if err := log.Close(); err != nil {
		t.Errorf("second Close() error = %v, want nil", err)
	}
}

func TestMemoryLog(t *testing.T) {
	m := NewMemoryLog()
	if m.String() != "" {
		t.Errorf("empty log String() = %q", m.String())
	}

	m.Record("ls")
	m.Record("exit")

	got := m.Lines()
	if len(got) != 2 || got[0] != "ls" || got[1] != "exit" {
		t.Errorf("Lines() = %v", got)
	}
	if m.String() != "ls\nexit\n" {
		t.Errorf("String() = %q", m.String())
	}

	// Lines must be a copy
	got[0] = "changed"
	if m.Lines()[0] != "ls" {
		t.Error("Lines() should return a copy")
	}
}

func TestDiscard(t *testing.T) {
	var d Discard
	if err := d.Record("anything"); err != nil {
		t.Errorf("Record() error = %v", err)
	}
	if err := d.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}
