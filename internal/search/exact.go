package search

import "strings"

// ExactProvider matches cells equal to the query.
type ExactProvider struct {
	opts Options
}

// NewExactProvider creates a new exact match provider.
func NewExactProvider(opts ...Option) Provider {
	return &ExactProvider{opts: applyOptions(opts)}
}

func (p *ExactProvider) Match(cell, query string) bool {
	if p.opts.TrimSpace {
		cell = strings.TrimSpace(cell)
	}
	if p.opts.CaseInsensitive {
		return strings.EqualFold(cell, query)
	}
	return cell == query
}

func (p *ExactProvider) Name() string {
	return "exact"
}
