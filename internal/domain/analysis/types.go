// Package analysis holds the flavor composition analysis: aggregation,
// balance rules, gustatory scoring and ingredient suggestions.
package analysis

import (
	"sort"

	"github.com/alchemorsel/composer/internal/domain/ingredient"
)

// ElementType names a gap the suggestion engine knows how to fill
type ElementType string

const (
	ElementCarrier   ElementType = "carrier"
	ElementUmami     ElementType = "umami"
	ElementAcid      ElementType = "acid"
	ElementCrunch    ElementType = "crunch"
	ElementFreshness ElementType = "freshness"
	ElementRichness  ElementType = "richness"
	ElementIntensity ElementType = "intensity"
)

// Priority orders missing elements and suggestions
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Rank returns a sort key, lower ranks first
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityMedium:
		return 1
	case PriorityLow:
		return 2
	default:
		return 3
	}
}

// MissingElement is a detected gap in a composition's balance
type MissingElement struct {
	Type        ElementType `json:"type"`
	Priority    Priority    `json:"priority"`
	Issue       string      `json:"issue"`
	Description string      `json:"description"`
	Remedy      string      `json:"remedy,omitempty"`
}

// Suggestion is a catalog ingredient proposed to close a missing element
type Suggestion struct {
	Ingredient  ingredient.Ingredient `json:"ingredient"`
	Reason      string                `json:"reason"`
	ElementType ElementType           `json:"element_type"`
	Priority    Priority              `json:"priority"`
}

// SortMissing returns the elements stably ordered high to low priority
func SortMissing(missing []MissingElement) []MissingElement {
	out := make([]MissingElement, len(missing))
	copy(out, missing)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Priority.Rank() < out[j].Priority.Rank()
	})
	return out
}
