// Package cmd implements the CLI commands for vconsole.
//
// # Architecture
//
// ## Core CLI
//
//   - root.go: Main entry point, App struct, cobra command setup, and flags
//   - exec.go: The exec and init subcommands
//
// ## Interactive Mode
//
//   - interactive.go: REPL session, completion, plain-input fallback
//   - slash_commands.go: Slash command handlers (/load, /config, /help, /exit)
//
// # Key Components
//
// ## App
//
// The App struct holds the configuration, the diagnostic logger, the
// command dispatcher and the current shell.Session. It's created in
// Execute() and shared by every subcommand.
//
// ## InteractiveSession
//
// Reads lines from a go-prompt REPL on a terminal, or line by line from
// any other input. Lines starting with "/" are console commands handled
// here; everything else goes to the dispatcher and is echoed to the
// transcript as "<cwd>/:> <line>" followed by the result.
//
// # Usage
//
//	// Main entry point
//	func main() {
//	    cmd.Execute()
//	}
package cmd
