package repl

import (
	"strings"
	"sync"
)

// Mode controls how history is rendered. It never changes computation.
type Mode string

const (
	ModeBrief   Mode = "brief"
	ModeVerbose Mode = "verbose"
)

// ParseMode accepts the literal mode names.
func ParseMode(s string) (Mode, bool) {
	switch Mode(s) {
	case ModeBrief, ModeVerbose:
		return Mode(s), true
	}
	return "", false
}

// Dataset is a loaded CSV file.
type Dataset struct {
	Path       string
	Rows       [][]string
	HasHeaders bool
}

// Width is the number of columns of the first row.
func (d *Dataset) Width() int {
	if d == nil || len(d.Rows) == 0 {
		return 0
	}
	return len(d.Rows[0])
}

// ColumnIndex resolves a header name, case-insensitively.
func (d *Dataset) ColumnIndex(name string) (int, bool) {
	if d == nil || !d.HasHeaders || len(d.Rows) == 0 {
		return 0, false
	}
	for i, h := range d.Rows[0] {
		if strings.EqualFold(strings.TrimSpace(h), name) {
			return i, true
		}
	}
	return 0, false
}

// Session is the mutable REPL state shared by the built-in handlers.
type Session struct {
	mu   sync.RWMutex
	mode Mode
	data *Dataset
}

// NewSession creates a session in the given mode.
func NewSession(mode Mode) *Session {
	if _, ok := ParseMode(string(mode)); !ok {
		mode = ModeBrief
	}
	return &Session{mode: mode}
}

func (s *Session) Mode() Mode {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.mode
}

func (s *Session) SetMode(m Mode) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mode = m
}

// Dataset returns the loaded CSV, if any.
func (s *Session) Dataset() (*Dataset, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data, s.data != nil
}

// SetDataset replaces the loaded CSV.
func (s *Session) SetDataset(d *Dataset) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = d
}
