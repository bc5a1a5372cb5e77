package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	for _, name := range []string{"", "exact", "substring", "regex"} {
		p, err := New(name)
		require.NoError(t, err, name)
		if name == "" {
			name = "exact"
		}
		assert.Equal(t, name, p.Name())
	}

	_, err := New("fuzzy")
	assert.Error(t, err)
}

func TestProviders(t *testing.T) {
	tests := []struct {
		name     string
		provider Provider
		cell     string
		query    string
		want     bool
	}{
		{"exact match", NewExactProvider(), "black", "black", true},
		{"exact rejects partial", NewExactProvider(), "blackish", "black", false},
		{"exact is case sensitive", NewExactProvider(), "Black", "black", false},
		{"exact case insensitive", NewExactProvider(WithCaseInsensitive(true)), "Black", "black", true},
		{"exact trims cell", NewExactProvider(), " black ", "black", true},
		{"exact without trim", NewExactProvider(WithTrimSpace(false)), " black ", "black", false},
		{"substring contains", NewSubstringProvider(), "H&M store", "H&M", true},
		{"substring empty query", NewSubstringProvider(), "anything", "", true},
		{"substring case insensitive", NewSubstringProvider(WithCaseInsensitive(true)), "JEANS", "jean", true},
		{"substring miss", NewSubstringProvider(), "shirt", "jeans", false},
		{"regex anchors", NewRegexProvider(), "blazer", "^bl", true},
		{"regex miss", NewRegexProvider(), "shirt", "^bl", false},
		{"regex invalid pattern", NewRegexProvider(), "shirt", "([", false},
		{"regex case insensitive", NewRegexProvider(WithCaseInsensitive(true)), "SHIRT", "^shirt$", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.provider.Match(tt.cell, tt.query))
		})
	}
}

func TestRegexProviderCachesPatterns(t *testing.T) {
	p := NewRegexProvider().(*RegexProvider)

	p.Match("a", "^a$")
	p.Match("b", "^a$")
	p.Match("b", "([")

	assert.Len(t, p.cache, 1, "only valid patterns are cached")
}
