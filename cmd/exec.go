package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/quocvuong92/vconsole/internal/config"
	"github.com/quocvuong92/vconsole/internal/display"
	"github.com/quocvuong92/vconsole/internal/logging"
)

// NewExecCmd creates the exec command
func NewExecCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "exec <line...>",
		Short: "Run a single console line",
		Long: `Run a single console line and print its transcript.

The arguments are joined with single spaces and handled exactly as if they
had been typed at the console prompt, including the command log entry.
Everything after exec belongs to the line, dashes included, so global
flags go before it.

Examples:
  vconsole exec ls
  vconsole exec tree docs
  vconsole exec echo -n hi
  vconsole --vfs image.zip exec tree`,
		Args:               cobra.MinimumNArgs(1),
		DisableFlagParsing: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.setup(cmd.Context()); err != nil {
				display.ShowError(app.errOut, err.Error())
				return err
			}
			defer app.close()

			app.runLine(strings.Join(args, " "))
			return nil
		},
	}
}

// NewInitCmd creates the init command
func NewInitCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Write a default config file",
		Long: `Write a config file with default values.

The file is written to --config, $VCONSOLE_CONFIG or config.toml, in that
order. A path ending in .yaml or .yml is written as YAML. An existing file
is never overwritten.

Examples:
  vconsole init
  vconsole init --config vconsole.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := config.LoadEnv()
			if err != nil {
				display.ShowError(app.errOut, err.Error())
				return err
			}
			app.initLogger(env)

			path := config.ResolvePath(app.configPath, env)
			if err := config.CreateDefaultConfigFile(path); err != nil {
				display.ShowError(app.errOut, err.Error())
				return err
			}

			app.logger.Debug("config written", logging.Fields{"path": path})
			cmd.Printf("Created %s\n", path)
			return nil
		},
	}
}
