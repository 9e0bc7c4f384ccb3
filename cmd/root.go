package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/quocvuong92/vconsole/internal/config"
	"github.com/quocvuong92/vconsole/internal/display"
	"github.com/quocvuong92/vconsole/internal/history"
	"github.com/quocvuong92/vconsole/internal/logging"
	"github.com/quocvuong92/vconsole/internal/shell"
)

// App holds the application state
type App struct {
	cfg        *config.Config
	env        *config.Env
	configPath string
	vfsArchive string
	verbose    bool
	render     bool
	tty        bool

	logger     *logging.Logger
	recorder   history.Recorder
	dispatcher *shell.Dispatcher
	session    shell.Session

	in     io.Reader
	out    io.Writer
	errOut io.Writer
}

// NewApp creates a new App bound to the process streams
func NewApp() *App {
	return newApp(os.Stdin, os.Stdout, os.Stderr)
}

func newApp(in io.Reader, out, errOut io.Writer) *App {
	return &App{
		cfg:    config.NewConfig(),
		env:    config.DefaultEnv(),
		logger: logging.Nop(),
		in:     in,
		out:    out,
		errOut: errOut,
	}
}

// Execute runs the root command
func Execute() {
	app := NewApp()
	if err := app.newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func (app *App) newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "vconsole",
		Short: "A small console emulator over a directory tree",
		Long: `vconsole is an interactive console that understands ls, cd, tree, echo
and exit. Every submitted line is appended to a command log.

A zip archive can be loaded as a virtual filesystem: it is extracted into
a vfs folder under the current directory and the console moves into it.

Examples:
  vconsole                        # Interactive console
  vconsole --vfs image.zip        # Load an archive, then start the console
  vconsole exec tree              # Run a single line
  vconsole init                   # Write a default config.toml`,
		Args:             cobra.NoArgs,
		SilenceUsage:     true,
		SilenceErrors:    true,
		TraverseChildren: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.setup(cmd.Context()); err != nil {
				display.ShowError(app.errOut, err.Error())
				return err
			}
			defer app.close()

			app.runInteractive()
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&app.configPath, "config", "", "Config file (default: $VCONSOLE_CONFIG or config.toml)")
	rootCmd.PersistentFlags().StringVar(&app.vfsArchive, "vfs", "", "Zip archive to load as the virtual filesystem")
	rootCmd.PersistentFlags().BoolVarP(&app.verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVarP(&app.render, "render", "r", false, "Render help as markdown")

	rootCmd.AddCommand(NewExecCmd(app))
	rootCmd.AddCommand(NewInitCmd(app))

	rootCmd.SetIn(app.in)
	rootCmd.SetOut(app.out)
	rootCmd.SetErr(app.errOut)

	return rootCmd
}

// initLogger points the diagnostic logger at stderr with the level and
// format from env; --verbose forces debug.
func (app *App) initLogger(env *config.Env) {
	app.logger = logging.New(logging.Options{
		Level:  logging.ParseLevel(env.LogLevel),
		Format: logging.ParseFormat(env.LogFormat),
		Output: app.errOut,
	})
	if app.verbose {
		app.logger.SetLevel(logging.LevelDebug)
	}
}

// setup loads the environment and config, opens the command log and
// creates the session. A --vfs archive is loaded last.
func (app *App) setup(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}

	env, err := config.LoadEnv()
	if err != nil {
		return err
	}
	app.env = env

	app.initLogger(env)

	app.configPath = config.ResolvePath(app.configPath, env)
	cfg, created, err := config.Load(app.configPath)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}
	app.cfg = cfg
	if created {
		app.logger.Info("wrote default config", logging.Fields{"path": app.configPath})
	}

	rec, err := history.Open(cfg.LogFile)
	if err != nil {
		return err
	}
	app.recorder = rec
	app.dispatcher = shell.NewDispatcher(rec, shell.WithLogger(app.logger))

	sess, err := shell.NewSession("", cfg.ComputerName)
	if err != nil {
		return err
	}
	app.session = sess
	app.tty = isTerminal(app.in)

	app.logger.Debug("session started", logging.Fields{
		"session":  sess.ID,
		"cwd":      sess.Cwd,
		"config":   app.configPath,
		"log_file": cfg.LogFile,
	})

	if app.render {
		if err := display.InitRenderer(); err != nil {
			app.logger.Warn("failed to initialize renderer", logging.Fields{"error": err.Error()})
		}
	}

	if app.vfsArchive != "" {
		// Load failures are reported by loadVFS; the console still starts.
		_ = app.loadVFS(ctx, app.vfsArchive)
	}
	return nil
}

// close releases the command log and flushes diagnostics
func (app *App) close() {
	if app.recorder != nil {
		if err := app.recorder.Close(); err != nil {
			app.logger.Warn("failed to close command log", logging.Fields{"error": err.Error()})
		}
	}
	_ = app.logger.Sync()
}

func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
