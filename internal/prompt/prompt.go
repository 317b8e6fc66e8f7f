// Package prompt reads lines typed by the user.
//
// An interactive terminal gets a readline-style editor with history and tab
// completion. Anything else (pipes, files, tests) is read line by line with
// the prompt echoed to the output writer.
package prompt

import (
	"bufio"
	"errors"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/peterh/liner"
)

// ErrAborted is returned by ReadLine when the user interrupts the prompt (Ctrl-C).
var ErrAborted = errors.New("input aborted")

// Reader reads lines typed by the user.
type Reader interface {
	// ReadLine shows prompt and returns the next line without its line ending.
	// Returns io.EOF once input is exhausted and ErrAborted on interrupt.
	ReadLine(prompt string) (string, error)
	Close() error
}

// Options configures Open.
type Options struct {
	// HistoryFile is loaded on open and rewritten on close. Empty disables history.
	HistoryFile string
	// Complete returns tab completions for the line typed so far.
	Complete func(line string) []string
	Logger   *slog.Logger
}

// Open returns a Terminal when in is stdin attached to a terminal, and a
// Buffered reader over in otherwise.
func Open(in io.Reader, out io.Writer, opts Options) Reader {
	if f, ok := in.(*os.File); ok && f == os.Stdin && IsTerminal(f.Fd()) && liner.TerminalSupported() {
		return NewTerminal(opts)
	}

	return NewBuffered(in, out)
}

// Buffered reads lines from any io.Reader and echoes prompts to out.
type Buffered struct {
	in  *bufio.Reader
	out io.Writer
}

// NewBuffered creates a Buffered reader.
func NewBuffered(in io.Reader, out io.Writer) *Buffered {
	return &Buffered{in: bufio.NewReader(in), out: out}
}

// ReadLine implements Reader. A final line without a trailing newline is
// returned before io.EOF.
func (b *Buffered) ReadLine(prompt string) (string, error) {
	_, _ = io.WriteString(b.out, prompt)

	line, err := b.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimRight(line, "\r\n"), nil
		}

		return "", err
	}

	return strings.TrimRight(line, "\r\n"), nil
}

// Close implements Reader. It does not close the underlying reader.
func (b *Buffered) Close() error {
	return nil
}
