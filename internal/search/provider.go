// Package search provides the cell matching strategies used by the REPL
// search command. Providers share one interface so the strategy can be
// chosen by configuration.
package search

import "fmt"

// Provider matches a single CSV cell against a query.
type Provider interface {
	// Match reports whether cell matches query.
	Match(cell, query string) bool

	// Name returns the provider name for identification and debugging.
	Name() string
}

// Options holds configuration options for creating search providers.
type Options struct {
	CaseInsensitive bool // If true, comparisons ignore case
	TrimSpace       bool // If true, surrounding whitespace of cells is ignored
}

// DefaultOptions returns the default search options.
func DefaultOptions() Options {
	return Options{TrimSpace: true}
}

// Option is a function that modifies search options.
type Option func(*Options)

// WithCaseInsensitive sets case-insensitive matching.
func WithCaseInsensitive(enabled bool) Option {
	return func(o *Options) {
		o.CaseInsensitive = enabled
	}
}

// WithTrimSpace controls whether cell whitespace is trimmed before matching.
func WithTrimSpace(enabled bool) Option {
	return func(o *Options) {
		o.TrimSpace = enabled
	}
}

func applyOptions(opts []Option) Options {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// New returns the provider registered under name: "exact", "substring" or "regex".
func New(name string, opts ...Option) (Provider, error) {
	switch name {
	case "", "exact":
		return NewExactProvider(opts...), nil
	case "substring":
		return NewSubstringProvider(opts...), nil
	case "regex":
		return NewRegexProvider(opts...), nil
	default:
		return nil, fmt.Errorf("search: unknown provider %q", name)
	}
}
