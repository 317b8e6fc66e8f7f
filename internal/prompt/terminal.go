package prompt

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/natefinch/atomic"
	"github.com/peterh/liner"
)

// Terminal is a line editor on the controlling terminal.
type Terminal struct {
	state       *liner.State
	historyFile string
	logger      *slog.Logger
}

// NewTerminal puts the terminal into line-editing mode. Close must be called
// to restore it.
func NewTerminal(opts Options) *Terminal {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	state := liner.NewLiner()
	state.SetCtrlCAborts(true)

	if opts.Complete != nil {
		state.SetCompleter(opts.Complete)
	}

	t := &Terminal{
		state:       state,
		historyFile: opts.HistoryFile,
		logger:      logger,
	}

	if t.historyFile != "" {
		err := loadHistory(state, t.historyFile)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			logger.Warn("history not loaded", "path", t.historyFile, "err", err)
		}
	}

	return t
}

// ReadLine implements Reader. Non-blank lines are added to the history.
func (t *Terminal) ReadLine(prompt string) (string, error) {
	line, err := t.state.Prompt(prompt)
	if err != nil {
		if errors.Is(err, liner.ErrPromptAborted) {
			return "", ErrAborted
		}

		return "", err
	}

	if strings.TrimSpace(line) != "" {
		t.state.AppendHistory(line)
	}

	return line, nil
}

// Close writes the history file and restores the terminal.
func (t *Terminal) Close() error {
	var saveErr error

	if t.historyFile != "" {
		saveErr = saveHistory(t.state, t.historyFile)
		if saveErr != nil {
			t.logger.Warn("history not saved", "path", t.historyFile, "err", saveErr)
		}
	}

	return errors.Join(saveErr, t.state.Close())
}

type historyReader interface {
	ReadHistory(r io.Reader) (int, error)
}

type historyWriter interface {
	WriteHistory(w io.Writer) (int, error)
}

func loadHistory(h historyReader, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := h.ReadHistory(f); err != nil {
		return fmt.Errorf("reading history %s: %w", path, err)
	}

	return nil
}

// saveHistory atomically replaces the history file.
func saveHistory(h historyWriter, path string) error {
	var buf bytes.Buffer

	if _, err := h.WriteHistory(&buf); err != nil {
		return fmt.Errorf("encoding history: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("creating history dir: %w", err)
	}

	if err := atomic.WriteFile(path, &buf); err != nil {
		return fmt.Errorf("writing history %s: %w", path, err)
	}

	return nil
}
