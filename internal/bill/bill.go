// Package bill holds the in-memory bill store.
package bill

import (
	"math"
	"sort"
	"strconv"
	"strings"
)

// Bill is a named monetary amount.
type Bill struct {
	Name   string
	Amount float64
}

// Store maps bill names to bills. At most one bill exists per name.
//
// Store is not safe for concurrent use; the menu loop is its only caller.
type Store struct {
	bills map[string]Bill
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{bills: make(map[string]Bill)}
}

// Add inserts b, replacing any bill with the same name.
func (s *Store) Add(b Bill) {
	s.bills[b.Name] = b
}

// List returns a copy of all bills sorted by name.
func (s *Store) List() []Bill {
	out := make([]Bill, 0, len(s.bills))
	for _, b := range s.bills {
		out = append(out, b)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].Name < out[j].Name
	})

	return out
}

// Get returns the bill stored under name.
func (s *Store) Get(name string) (Bill, bool) {
	b, ok := s.bills[name]

	return b, ok
}

// Remove deletes the bill stored under name. Returns false if there was none.
func (s *Store) Remove(name string) bool {
	if _, ok := s.bills[name]; !ok {
		return false
	}

	delete(s.bills, name)

	return true
}

// Update replaces the amount of the bill stored under name.
// Returns false and leaves the store untouched if there is no such bill.
func (s *Store) Update(name string, amount float64) bool {
	b, ok := s.bills[name]
	if !ok {
		return false
	}

	b.Amount = amount
	s.bills[name] = b

	return true
}

// Len returns the number of stored bills.
func (s *Store) Len() int {
	return len(s.bills)
}

// Names returns the sorted names of all bills starting with prefix.
func (s *Store) Names(prefix string) []string {
	var names []string

	for name := range s.bills {
		if strings.HasPrefix(name, prefix) {
			names = append(names, name)
		}
	}

	sort.Strings(names)

	return names
}

// ParseAmount parses a decimal amount typed by the user.
// Surrounding whitespace is ignored. NaN and infinities are rejected.
func ParseAmount(s string) (float64, error) {
	s = strings.TrimSpace(s)

	amount, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, &AmountError{Input: s, Err: ErrInvalidAmount}
	}

	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return 0, &AmountError{Input: s, Err: ErrInvalidAmount}
	}

	return amount, nil
}

// FormatAmount renders amount with a fixed number of decimals.
func FormatAmount(amount float64, decimals int) string {
	return strconv.FormatFloat(amount, 'f', decimals, 64)
}
