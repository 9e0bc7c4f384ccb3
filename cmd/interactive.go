package cmd

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/elk-language/go-prompt"
	istrings "github.com/elk-language/go-prompt/strings"

	"github.com/quocvuong92/vconsole/internal/display"
	"github.com/quocvuong92/vconsole/internal/logging"
	"github.com/quocvuong92/vconsole/internal/shell"
)

// InteractiveSession holds the REPL state around the App
type InteractiveSession struct {
	app      *App
	exitFlag bool
}

// completer suggests console commands for the first word and slash
// commands when the input starts with "/".
func (s *InteractiveSession) completer(d prompt.Document) ([]prompt.Suggest, istrings.RuneNumber, istrings.RuneNumber) {
	text := d.TextBeforeCursor()
	endIndex := d.CurrentRuneIndex()
	w := d.GetWordBeforeCursor()
	startIndex := endIndex - istrings.RuneCountInString(w)

	// Arguments are paths; leave them alone
	if strings.ContainsAny(strings.TrimLeft(text, " "), " \t") {
		return []prompt.Suggest{}, startIndex, endIndex
	}

	var suggestions []prompt.Suggest
	if strings.HasPrefix(text, "/") {
		for _, c := range append(slashHelp, slashAliases...) {
			suggestions = append(suggestions, prompt.Suggest{Text: c.Name, Description: c.Desc})
		}
	} else {
		desc := make(map[string]string, len(shell.BuiltinHelp))
		for _, c := range shell.BuiltinHelp {
			desc[c.Name] = c.Desc
		}
		for _, name := range s.app.dispatcher.Commands() {
			suggestions = append(suggestions, prompt.Suggest{Text: name, Description: desc[name]})
		}
	}

	return prompt.FilterHasPrefix(suggestions, w, false), startIndex, endIndex
}

// runInteractive starts the console. A terminal gets the go-prompt REPL
// with completion; anything else is read line by line.
func (app *App) runInteractive() {
	session := &InteractiveSession{app: app}

	if !app.tty {
		session.runPlain()
		return
	}

	fmt.Fprintln(app.out, banner(app.session))
	fmt.Fprintln(app.out, "Type /help for commands, exit or Ctrl+D to quit")
	fmt.Fprintln(app.out)

	p := prompt.New(
		session.executor,
		prompt.WithCompleter(session.completer),
		prompt.WithPrefix(promptPrefix(app.session)),
		prompt.WithTitle(app.session.ComputerName),
		prompt.WithPrefixTextColor(prompt.Green),
		prompt.WithSuggestionBGColor(prompt.DarkBlue),
		prompt.WithSuggestionTextColor(prompt.White),
		prompt.WithSelectedSuggestionBGColor(prompt.Cyan),
		prompt.WithSelectedSuggestionTextColor(prompt.Black),
		prompt.WithDescriptionBGColor(prompt.DarkBlue),
		prompt.WithDescriptionTextColor(prompt.LightGray),
		prompt.WithSelectedDescriptionBGColor(prompt.Cyan),
		prompt.WithSelectedDescriptionTextColor(prompt.Black),
		prompt.WithExitChecker(func(in string, breakline bool) bool {
			return session.exitFlag
		}),
		prompt.WithKeyBind(prompt.KeyBind{
			Key: prompt.ControlC,
			Fn: func(p *prompt.Prompt) bool {
				fmt.Fprintln(app.out, "\nGoodbye!")
				session.exitFlag = true
				return false
			},
		}),
		prompt.WithKeyBind(prompt.KeyBind{
			Key: prompt.ControlD,
			Fn: func(p *prompt.Prompt) bool {
				if p.Buffer().Text() == "" {
					fmt.Fprintln(app.out, "Goodbye!")
					session.exitFlag = true
				}
				return false
			},
		}),
	)

	p.Run()
}

// banner is the first line of a terminal session
func banner(sess shell.Session) string {
	return fmt.Sprintf("%s - %s", sess.ComputerName, sess.Cwd)
}

func promptPrefix(sess shell.Session) string {
	return sess.ComputerName + "$ "
}

// runPlain reads lines from the app input until EOF or exit
func (s *InteractiveSession) runPlain() {
	scanner := bufio.NewScanner(s.app.in)
	for !s.exitFlag && scanner.Scan() {
		s.executor(scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		s.app.logger.Error("failed to read input", err)
	}
}

// executor handles one submitted line
func (s *InteractiveSession) executor(input string) {
	if s.exitFlag {
		return
	}

	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return
	}
	if strings.HasPrefix(trimmed, "/") {
		if s.app.handleCommand(trimmed) {
			s.exitFlag = true
		}
		return
	}

	if s.app.runLine(input) {
		s.exitFlag = true
	}
}

// runLine dispatches a console line, writes its transcript and reports
// whether the session should end.
func (app *App) runLine(line string) bool {
	next, res := app.dispatcher.Dispatch(line, app.session)
	app.session = next

	if err := display.Transcript(app.out, app.session.Cwd, line, res.String()); err != nil {
		app.logger.Error("failed to write output", err, logging.Fields{"session": app.session.ID})
	}
	return res.Exit
}
