package shell

import (
	"strings"

	"github.com/quocvuong92/vconsole/internal/constants"
)

// CommandHelp describes a builtin for help output and completion
type CommandHelp struct {
	Name  string
	Usage string
	Desc  string
}

// BuiltinHelp lists the console commands in display order
var BuiltinHelp = []CommandHelp{
	{Name: "ls", Usage: "ls [path]", Desc: "List directory entries."},
	{Name: "cd", Usage: "cd <path>", Desc: "Change directory, relative to the current one."},
	{Name: "tree", Usage: "tree [path]", Desc: "Print the directory tree."},
	{Name: "echo", Usage: "echo [text...]", Desc: "Print arguments."},
	{Name: "exit", Usage: "exit", Desc: "End the session."},
}

func (d *Dispatcher) registerBuiltins() {

	d.builtins["exit"] = func(args []string, sess Session) (Session, Result) {
		return sess, Result{Exit: true}
	}

	d.builtins["ls"] = func(args []string, sess Session) (Session, Result) {
		path := ""
		if len(args) > 0 {
			path = args[0]
		}
		return sess, ListDirectory(sess.Cwd, path)
	}

	d.builtins["cd"] = func(args []string, sess Session) (Session, Result) {
		if len(args) == 0 {
			return sess, Fail(KindUsage, "", constants.MsgCdUsage)
		}

		dir, res := ChangeDirectory(sess.Cwd, args[0])
		if res.Failed() {
			return sess, res
		}
		return sess.WithCwd(dir), res
	}

	d.builtins["echo"] = func(args []string, sess Session) (Session, Result) {
		return sess, OK(strings.Join(args, " "))
	}

	d.builtins["tree"] = func(args []string, sess Session) (Session, Result) {
		path := ""
		if len(args) > 0 {
			path = args[0]
		}
		return sess, Tree(sess.Cwd, path)
	}
}
