package search

import "strings"

// SubstringProvider matches cells containing the query.
// An empty query matches every cell.
type SubstringProvider struct {
	opts Options
}

// NewSubstringProvider creates a new substring search provider.
func NewSubstringProvider(opts ...Option) Provider {
	return &SubstringProvider{opts: applyOptions(opts)}
}

func (p *SubstringProvider) Match(cell, query string) bool {
	if query == "" {
		return true
	}
	if p.opts.TrimSpace {
		cell = strings.TrimSpace(cell)
	}
	if p.opts.CaseInsensitive {
		cell = strings.ToLower(cell)
		query = strings.ToLower(query)
	}
	return strings.Contains(cell, query)
}

func (p *SubstringProvider) Name() string {
	return "substring"
}
