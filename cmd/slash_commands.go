package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/briandowns/spinner"

	"github.com/quocvuong92/vconsole/internal/config"
	"github.com/quocvuong92/vconsole/internal/constants"
	"github.com/quocvuong92/vconsole/internal/display"
	"github.com/quocvuong92/vconsole/internal/logging"
	"github.com/quocvuong92/vconsole/internal/shell"
	"github.com/quocvuong92/vconsole/internal/vfs"
)

// slashHelp lists the console-level commands handled outside the dispatcher
var slashHelp = []shell.CommandHelp{
	{Name: "/load", Usage: "/load <zip>", Desc: "Load a zip archive as the virtual filesystem"},
	{Name: "/config", Usage: "/config", Desc: "Show the current configuration"},
	{Name: "/help", Usage: "/help, /h", Desc: "Show this help"},
	{Name: "/exit", Usage: "/exit, /quit, /q", Desc: "Exit the console"},
}

// slashAliases are offered by completion but not listed in help
var slashAliases = []shell.CommandHelp{
	{Name: "/h", Desc: "Help (alias)"},
	{Name: "/quit", Desc: "Exit (alias)"},
	{Name: "/q", Desc: "Exit (alias)"},
}

// handleCommand processes slash commands in interactive mode.
// Returns true if the session should exit, false otherwise.
func (app *App) handleCommand(input string) bool {
	parts := strings.Fields(input)
	cmd := strings.ToLower(parts[0])

	switch cmd {
	case "/exit", "/quit", "/q":
		fmt.Fprintln(app.out, "Goodbye!")
		return true

	case "/help", "/h":
		app.showHelp()

	case "/config":
		app.showConfig()

	case "/load":
		if len(parts) < 2 {
			display.ShowError(app.errOut, "/load requires a zip file argument")
			return false
		}
		if err := app.loadVFS(context.Background(), parts[1]); err == nil {
			fmt.Fprintf(app.out, "Virtual filesystem loaded from: %s\n", app.cfg.VFSPath)
		}

	default:
		fmt.Fprintf(app.out, "Unknown command: %s\n", cmd)
		fmt.Fprintln(app.out, "Type /help for available commands")
	}

	return false
}

// showHelp displays the console and slash commands
func (app *App) showHelp() {
	commands := make([]display.HelpEntry, 0, len(shell.BuiltinHelp))
	for _, c := range shell.BuiltinHelp {
		commands = append(commands, display.HelpEntry{Usage: c.Usage, Desc: c.Desc})
	}

	slash := make([]display.HelpEntry, 0, len(slashHelp))
	for _, c := range slashHelp {
		slash = append(slash, display.HelpEntry{Usage: c.Usage, Desc: c.Desc})
	}

	md := display.HelpMarkdown(commands, slash)
	if app.render {
		display.ShowContentRendered(app.out, md)
		return
	}
	display.ShowContent(app.out, md)
}

// showConfig prints the active configuration and session
func (app *App) showConfig() {
	vfsPath := app.cfg.VFSPath
	if vfsPath == "" {
		vfsPath = "(none)"
	}

	fmt.Fprintf(app.out, "  %-16s %s\n", "Config file:", app.configPath)
	fmt.Fprintf(app.out, "  %-16s %s\n", "Computer name:", app.cfg.ComputerName)
	fmt.Fprintf(app.out, "  %-16s %s\n", "VFS archive:", vfsPath)
	fmt.Fprintf(app.out, "  %-16s %s\n", "Log file:", app.cfg.LogFile)
	fmt.Fprintf(app.out, "  %-16s %s\n", "Session:", app.session.ID)
	fmt.Fprintf(app.out, "  %-16s %s\n", "Directory:", app.session.Cwd)
}

// loadVFS extracts archive into the vfs folder under the session directory,
// moves the session there and records the archive in the config. Failures
// go to the diagnostic logger and leave the session unchanged.
func (app *App) loadVFS(ctx context.Context, archive string) error {
	if !filepath.IsAbs(archive) {
		archive = filepath.Join(app.session.Cwd, archive)
	}
	dest := filepath.Join(app.session.Cwd, constants.VFSDirName)

	ctx, cancel := context.WithTimeout(ctx, constants.DefaultExtractTimeout)
	defer cancel()
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	var sp *spinner.Spinner
	if app.tty {
		sp = display.NewSpinner(app.errOut, "Extracting "+filepath.Base(archive)+"...")
	}
	stats, err := vfs.Load(ctx, archive, dest)
	if sp != nil {
		sp.Stop()
	}

	log := app.logger.WithFields(logging.Fields{"session": app.session.ID, "archive": archive})
	if err != nil {
		log.Error(loadErrorMessage(err), err)
		return err
	}

	app.session = app.session.WithCwd(stats.Dir)
	app.cfg.VFSPath = archive
	if err := config.Save(app.configPath, app.cfg); err != nil {
		log.Warn("failed to save config", logging.Fields{"path": app.configPath, "error": err.Error()})
	}

	log.Info("virtual filesystem loaded", logging.Fields{
		"dir":     stats.Dir,
		"files":   stats.Files,
		"dirs":    stats.Dirs,
		"bytes":   stats.Bytes,
	})
	return nil
}

// loadErrorMessage renders an archive failure the way the console reports it
func loadErrorMessage(err error) string {
	switch {
	case errors.Is(err, vfs.ErrArchiveNotFound):
		return "Error: Zip file not found."
	case errors.Is(err, vfs.ErrInvalidArchive):
		return shell.Fail(shell.KindBadArchive, "", err.Error()).String()
	default:
		return fmt.Sprintf("An unexpected error occurred: %v", err)
	}
}
