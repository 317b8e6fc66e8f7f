package cli

import (
	"errors"
	"io"
	"log/slog"
	"strings"

	"github.com/calvinalkan/bills/internal/bill"
	"github.com/calvinalkan/bills/internal/prompt"
)

// Prompts shown by the menu.
const (
	selectionPrompt = "Enter selection: "
	namePrompt      = "Bill name: "
	amountPrompt    = "Bill amount: "
	removePrompt    = "Enter bill name to remove: "
	updatePrompt    = "Enter bill name to update: "
)

// Selection is a main menu choice.
type Selection int

// Menu choices, numbered as typed by the user.
const (
	SelectAdd Selection = iota + 1
	SelectView
	SelectRemove
	SelectUpdate
)

// ParseSelection maps a menu token to a Selection. Surrounding whitespace is
// ignored; anything but "1" through "4" is rejected.
func ParseSelection(s string) (Selection, bool) {
	switch strings.TrimSpace(s) {
	case "1":
		return SelectAdd, true
	case "2":
		return SelectView, true
	case "3":
		return SelectRemove, true
	case "4":
		return SelectUpdate, true
	default:
		return 0, false
	}
}

// Menu is the interactive loop over a bill store.
type Menu struct {
	store    *bill.Store
	in       prompt.Reader
	io       *IO
	logger   *slog.Logger
	decimals int
}

// NewMenu creates a menu that owns store for the duration of Run.
func NewMenu(store *bill.Store, in prompt.Reader, o *IO, logger *slog.Logger, decimals int) *Menu {
	return &Menu{
		store:    store,
		in:       in,
		io:       o,
		logger:   logger,
		decimals: decimals,
	}
}

// Run shows the menu until the user enters an empty line, input ends, or an
// unrecognized selection is made.
func (m *Menu) Run() {
	for {
		m.showMenu()

		input, ok := m.readLine(selectionPrompt)
		if !ok {
			return
		}

		sel, ok := ParseSelection(input)
		if !ok {
			m.logger.Debug("invalid selection", "input", input)
			m.io.Println("Invalid menu")

			return
		}

		switch sel {
		case SelectAdd:
			m.addBill()
		case SelectView:
			m.viewBills()
		case SelectRemove:
			m.removeBill()
		case SelectUpdate:
			m.updateBill()
		}
	}
}

func (m *Menu) showMenu() {
	m.io.Println()
	m.io.Println(" == Bill Manager ==")
	m.io.Println("1. Add Bill")
	m.io.Println("2. View Bills")
	m.io.Println("3. Remove Bill")
	m.io.Println("4. Update Bill")
	m.io.Println()
}

// readLine returns the trimmed next line. ok is false for an empty line, end
// of input or an interrupt. Other read errors are reported and the prompt is
// repeated.
func (m *Menu) readLine(p string) (string, bool) {
	for {
		line, err := m.in.ReadLine(p)
		if err == nil {
			line = strings.TrimSpace(line)

			return line, line != ""
		}

		if errors.Is(err, io.EOF) || errors.Is(err, prompt.ErrAborted) {
			m.io.Println()

			return "", false
		}

		m.logger.Warn("reading input failed", "err", err)
		m.io.Println("Please enter your data again!")
	}
}

// readAmount prompts until a number is entered. ok is false if the user
// cancels with an empty line.
func (m *Menu) readAmount() (float64, bool) {
	for {
		input, ok := m.readLine(amountPrompt)
		if !ok {
			return 0, false
		}

		amount, err := bill.ParseAmount(input)
		if err == nil {
			return amount, true
		}

		m.logger.Debug("amount rejected", "err", err)
		m.io.Println("Please enter a number")
	}
}
