package shell

import (
	"fmt"

	"github.com/quocvuong92/vconsole/internal/constants"
)

// Kind classifies a failed command
type Kind int

const (
	// KindNotFound means the target directory or file does not exist
	KindNotFound Kind = iota + 1
	// KindAccess covers permission and other OS-level errors
	KindAccess
	// KindBadArchive means a malformed or unreadable archive
	KindBadArchive
	// KindUnknownCommand means the first token matched no handler
	KindUnknownCommand
	// KindUsage means the command was called with missing arguments
	KindUsage
	// KindUnexpected is the catch-all for handler panics
	KindUnexpected
)

// String returns the name of the kind
func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindAccess:
		return "access"
	case KindBadArchive:
		return "bad_archive"
	case KindUnknownCommand:
		return "unknown_command"
	case KindUsage:
		return "usage"
	case KindUnexpected:
		return "unexpected"
	default:
		return "unknown"
	}
}

// Operation names used when rendering access errors
const (
	OpAccess   = "accessing"
	OpChange   = "changing"
	OpTraverse = "traversing"
)

// Error is the tagged failure carried by a Result
type Error struct {
	Kind   Kind
	Op     string
	Detail string
}

// Error renders the message shown in the console
func (e *Error) Error() string {
	switch e.Kind {
	case KindNotFound:
		return constants.MsgDirectoryNotFound
	case KindAccess:
		return fmt.Sprintf("Error %s directory: %s", e.Op, e.Detail)
	case KindBadArchive:
		return fmt.Sprintf("Error: Invalid zip file: %s", e.Detail)
	case KindUnknownCommand:
		return constants.MsgNotRecognized
	case KindUsage:
		return e.Detail
	default:
		return fmt.Sprintf("An error occurred: %s", e.Detail)
	}
}

// Result is the outcome of one dispatched line
type Result struct {
	Output string
	Err    *Error
	// Exit asks the host to end the session
	Exit bool
}

// OK wraps successful output
func OK(output string) Result {
	return Result{Output: output}
}

// Fail builds a failed result
func Fail(kind Kind, op, detail string) Result {
	return Result{Err: &Error{Kind: kind, Op: op, Detail: detail}}
}

// Failed reports whether the command failed
func (r Result) Failed() bool {
	return r.Err != nil
}

// String renders the result for display
func (r Result) String() string {
	if r.Err != nil {
		return r.Err.Error()
	}
	return r.Output
}
