package search

import (
	"regexp"
	"strings"
	"sync"
)

// RegexProvider matches cells against the query as a regular expression.
// Invalid patterns match nothing. Compiled patterns are cached.
type RegexProvider struct {
	opts    Options
	cache   map[string]*regexp.Regexp
	cacheMu sync.RWMutex
}

// NewRegexProvider creates a new regex search provider.
func NewRegexProvider(opts ...Option) Provider {
	return &RegexProvider{
		opts:  applyOptions(opts),
		cache: make(map[string]*regexp.Regexp),
	}
}

func (p *RegexProvider) Match(cell, query string) bool {
	re, err := p.compile(query)
	if err != nil {
		return false
	}
	if p.opts.TrimSpace {
		cell = strings.TrimSpace(cell)
	}
	return re.MatchString(cell)
}

func (p *RegexProvider) compile(pattern string) (*regexp.Regexp, error) {
	p.cacheMu.RLock()
	re, ok := p.cache[pattern]
	p.cacheMu.RUnlock()
	if ok {
		return re, nil
	}

	expr := pattern
	if p.opts.CaseInsensitive {
		expr = "(?i)" + pattern
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, err
	}

	p.cacheMu.Lock()
	p.cache[pattern] = re
	p.cacheMu.Unlock()
	return re, nil
}

func (p *RegexProvider) Name() string {
	return "regex"
}
