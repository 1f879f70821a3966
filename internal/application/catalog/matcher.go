package catalog

import (
	"strings"

	"github.com/alchemorsel/composer/internal/domain/ingredient"
)

// MatchTier records which resolution tier produced a match
type MatchTier string

const (
	MatchExact       MatchTier = "exact"
	MatchToken       MatchTier = "token"
	MatchSubstring   MatchTier = "substring"
	MatchPlaceholder MatchTier = "placeholder"
)

const minTokenLength = 3

// Resolution is the outcome of resolving one typed name
type Resolution struct {
	Input      string
	Ingredient ingredient.Ingredient
	Tier       MatchTier
}

// Matcher resolves free-text ingredient names against a fixed catalog
type Matcher struct {
	entries []matchEntry
}

type matchEntry struct {
	ingredient ingredient.Ingredient
	names      []string
	tokens     map[string]struct{}
}

// NewMatcher indexes the canonical and localized names of the catalog
func NewMatcher(ingredients []ingredient.Ingredient) *Matcher {
	m := &Matcher{entries: make([]matchEntry, 0, len(ingredients))}
	for _, ing := range ingredients {
		entry := matchEntry{ingredient: ing, tokens: map[string]struct{}{}}
		for _, name := range []string{ing.Name, ing.LocalizedName} {
			normalized := normalize(name)
			if normalized == "" {
				continue
			}
			entry.names = append(entry.names, normalized)
			for _, tok := range tokenize(normalized) {
				entry.tokens[tok] = struct{}{}
			}
		}
		m.entries = append(m.entries, entry)
	}
	return m
}

// Resolve returns exactly one resolution per input name, in input order.
// Names that match nothing become placeholders.
func (m *Matcher) Resolve(names []string) []Resolution {
	out := make([]Resolution, 0, len(names))
	for _, name := range names {
		out = append(out, m.ResolveOne(name))
	}
	return out
}

// ResolveOne resolves a single name; the first tier with a hit wins and
// within a tier the first catalog entry wins.
func (m *Matcher) ResolveOne(name string) Resolution {
	input := normalize(name)
	if input == "" {
		return placeholder(name)
	}

	for _, e := range m.entries {
		for _, n := range e.names {
			if n == input {
				return Resolution{Input: name, Ingredient: e.ingredient, Tier: MatchExact}
			}
		}
	}

	if tokens := tokenize(input); len(tokens) > 0 {
		for _, e := range m.entries {
			if e.matchesTokens(tokens) {
				return Resolution{Input: name, Ingredient: e.ingredient, Tier: MatchToken}
			}
		}
	}

	for _, e := range m.entries {
		for _, n := range e.names {
			if strings.Contains(n, input) || strings.Contains(input, n) {
				return Resolution{Input: name, Ingredient: e.ingredient, Tier: MatchSubstring}
			}
		}
	}

	return placeholder(name)
}

func (e matchEntry) matchesTokens(tokens []string) bool {
	for _, tok := range tokens {
		if _, ok := e.tokens[tok]; ok {
			return true
		}
		for _, n := range e.names {
			if strings.Contains(n, tok) {
				return true
			}
		}
	}
	return false
}

func placeholder(name string) Resolution {
	return Resolution{Input: name, Ingredient: ingredient.NewPlaceholder(name), Tier: MatchPlaceholder}
}

func normalize(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

// tokenize splits on whitespace, hyphens and commas and keeps tokens of at
// least three characters.
func tokenize(s string) []string {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ' ' || r == '\t' || r == '\n' || r == '-' || r == ','
	})
	tokens := fields[:0]
	for _, f := range fields {
		if len([]rune(f)) >= minTokenLength {
			tokens = append(tokens, f)
		}
	}
	return tokens
}
