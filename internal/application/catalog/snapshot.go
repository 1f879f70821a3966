package catalog

import (
	"time"

	"github.com/alchemorsel/composer/internal/domain/ingredient"
	"github.com/google/uuid"
)

// Snapshot is an immutable view of the catalog at one point in time
type Snapshot struct {
	ingredients []ingredient.Ingredient
	byID        map[uuid.UUID]int
	matcher     *Matcher
	loadedAt    time.Time
	origin      string
}

// NewSnapshot indexes ingredients; origin records where they came from
func NewSnapshot(ingredients []ingredient.Ingredient, origin string, loadedAt time.Time) *Snapshot {
	owned := make([]ingredient.Ingredient, len(ingredients))
	copy(owned, ingredients)

	byID := make(map[uuid.UUID]int, len(owned))
	for i, ing := range owned {
		byID[ing.ID] = i
	}

	return &Snapshot{
		ingredients: owned,
		byID:        byID,
		matcher:     NewMatcher(owned),
		loadedAt:    loadedAt,
		origin:      origin,
	}
}

// Ingredients returns the catalog in source order. Callers must not modify it.
func (s *Snapshot) Ingredients() []ingredient.Ingredient { return s.ingredients }

// Len returns the number of ingredients
func (s *Snapshot) Len() int { return len(s.ingredients) }

// LoadedAt returns when the snapshot was taken
func (s *Snapshot) LoadedAt() time.Time { return s.loadedAt }

// Origin returns "source" or "snapshot-cache"
func (s *Snapshot) Origin() string { return s.origin }

// ByID looks up an ingredient
func (s *Snapshot) ByID(id uuid.UUID) (ingredient.Ingredient, bool) {
	idx, ok := s.byID[id]
	if !ok {
		return ingredient.Ingredient{}, false
	}
	return s.ingredients[idx], true
}

// Resolve maps typed names to catalog entries or placeholders
func (s *Snapshot) Resolve(names []string) []Resolution {
	return s.matcher.Resolve(names)
}
