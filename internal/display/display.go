// Package display formats console output: the transcript of each command,
// help text, errors and the progress spinner.
package display

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/briandowns/spinner"
	"github.com/charmbracelet/glamour"
)

// PromptSuffix follows the directory in every prompt line
const PromptSuffix = "/:> "

var (
	renderer   *glamour.TermRenderer
	rendererMu sync.Mutex
)

// PromptLine is the echo of a submitted line: cwd, the prompt suffix, and
// the raw line.
func PromptLine(cwd, line string) string {
	return cwd + PromptSuffix + line
}

// Transcript writes the prompt line and the result text, each followed by a
// newline. The result line is written even when empty.
func Transcript(w io.Writer, cwd, line, result string) error {
	_, err := fmt.Fprintf(w, "%s\n%s\n", PromptLine(cwd, line), result)
	return err
}

// InitRenderer prepares the markdown renderer
func InitRenderer() error {
	rendererMu.Lock()
	defer rendererMu.Unlock()

	if renderer != nil {
		return nil
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return fmt.Errorf("failed to create markdown renderer: %w", err)
	}
	renderer = r
	return nil
}

// RenderMarkdown renders md for the terminal. Without an initialized
// renderer the input is returned unchanged.
func RenderMarkdown(md string) (string, error) {
	rendererMu.Lock()
	r := renderer
	rendererMu.Unlock()

	if r == nil {
		return md, nil
	}
	out, err := r.Render(md)
	if err != nil {
		return md, fmt.Errorf("failed to render markdown: %w", err)
	}
	return out, nil
}

// ShowContent writes content followed by a newline
func ShowContent(w io.Writer, content string) {
	fmt.Fprintln(w, strings.TrimRight(content, "\n"))
}

// ShowContentRendered writes markdown content, rendered when possible
func ShowContentRendered(w io.Writer, content string) {
	out, err := RenderMarkdown(content)
	if err != nil {
		ShowContent(w, content)
		return
	}
	ShowContent(w, out)
}

// ShowError writes an error message
func ShowError(w io.Writer, msg string) {
	fmt.Fprintf(w, "Error: %s\n", msg)
}

// ShowWarning writes a warning message
func ShowWarning(w io.Writer, msg string) {
	fmt.Fprintf(w, "Warning: %s\n", msg)
}

// NewSpinner starts a spinner on w with msg as its suffix. Callers stop it.
func NewSpinner(w io.Writer, msg string) *spinner.Spinner {
	sp := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(w))
	sp.Suffix = " " + msg
	sp.Start()
	return sp
}
