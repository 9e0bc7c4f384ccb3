package shell

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// Session is the state a command runs against. It is a value: handlers
// return the next session instead of mutating the process working directory.
type Session struct {
	ID           string
	Cwd          string
	ComputerName string
}

// NewSession creates a session rooted at dir, which must be an existing
// directory. An empty dir means the process working directory.
func NewSession(dir, computerName string) (Session, error) {
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return Session{}, fmt.Errorf("failed to get working directory: %w", err)
		}
		dir = wd
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		return Session{}, fmt.Errorf("invalid session directory %s: %w", dir, err)
	}

	info, err := os.Stat(abs)
	if err != nil {
		return Session{}, fmt.Errorf("invalid session directory: %w", err)
	}
	if !info.IsDir() {
		return Session{}, fmt.Errorf("invalid session directory: %s is not a directory", abs)
	}
	if err := checkEnterable(abs); err != nil {
		return Session{}, fmt.Errorf("invalid session directory: %w", err)
	}

	return Session{
		ID:           uuid.New().String(),
		Cwd:          abs,
		ComputerName: computerName,
	}, nil
}

// WithCwd returns a copy of s rooted at dir
func (s Session) WithCwd(dir string) Session {
	s.Cwd = dir
	return s
}
