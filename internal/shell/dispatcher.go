// Package shell implements the console core: a dispatcher mapping a typed
// line to a fixed set of commands, and the filesystem functions behind them.
//
// Every command runs against a Session value and returns the next Session
// together with a Result. Nothing here writes to the terminal; rendering a
// Result to text happens at the presentation boundary through
// Result.String.
package shell

import (
	"fmt"
	"sort"
	"strings"

	"github.com/quocvuong92/vconsole/internal/history"
	"github.com/quocvuong92/vconsole/internal/logging"
)

// Builtin handles one command. args excludes the command name.
type Builtin func(args []string, sess Session) (Session, Result)

// Dispatcher maps command names to builtins
type Dispatcher struct {
	builtins map[string]Builtin
	recorder history.Recorder
	logger   *logging.Logger
}

// Option configures a Dispatcher
type Option func(*Dispatcher)

// WithLogger sets the diagnostic logger
func WithLogger(l *logging.Logger) Option {
	return func(d *Dispatcher) {
		if l != nil {
			d.logger = l
		}
	}
}

// NewDispatcher creates a dispatcher with the console builtins registered.
// A nil recorder discards the command log.
func NewDispatcher(rec history.Recorder, opts ...Option) *Dispatcher {
	if rec == nil {
		rec = history.Discard{}
	}

	d := &Dispatcher{
		builtins: make(map[string]Builtin),
		recorder: rec,
		logger:   logging.Nop(),
	}
	for _, opt := range opts {
		opt(d)
	}

	d.registerBuiltins()
	return d
}

// Register adds or replaces a builtin
func (d *Dispatcher) Register(name string, fn Builtin) {
	d.builtins[name] = fn
}

// Commands returns the registered command names in sorted order
func (d *Dispatcher) Commands() []string {
	names := make([]string, 0, len(d.builtins))
	for name := range d.builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Dispatch records line, runs the matching builtin and returns the next
// session. It never panics: a panicking builtin yields an unexpected-error
// Result and the session is returned unchanged.
func (d *Dispatcher) Dispatch(line string, sess Session) (next Session, res Result) {
	log := d.logger.WithFields(logging.Fields{"session": sess.ID})

	if err := d.recorder.Record(line); err != nil {
		log.Warn("failed to record command", logging.Fields{"error": err.Error()})
	}

	fields := strings.Fields(line)
	if len(fields) == 0 {
		return sess, OK("")
	}

	name, args := fields[0], fields[1:]
	fn, ok := d.builtins[name]
	if !ok {
		log.Debug("command not recognized", logging.Fields{"command": name})
		return sess, Fail(KindUnknownCommand, "", name)
	}

	defer func() {
		if r := recover(); r != nil {
			log.Error("command panicked", fmt.Errorf("%v", r), logging.Fields{"command": name})
			next = sess
			res = Fail(KindUnexpected, "", fmt.Sprint(r))
		}
	}()

	next, res = fn(args, sess)
	if res.Failed() {
		log.Debug("command failed", logging.Fields{
			"command": name,
			"kind":    res.Err.Kind.String(),
		})
	}
	return next, res
}

// Handle is Dispatch with the result rendered to its display string
func (d *Dispatcher) Handle(line string, sess Session) (Session, string) {
	next, res := d.Dispatch(line, sess)
	return next, res.String()
}
