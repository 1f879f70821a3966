package catalogfile

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/alchemorsel/composer/internal/domain/ingredient"
	"github.com/alchemorsel/composer/internal/ports/outbound"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Loader fetches the current catalog document
type Loader func(ctx context.Context) (*Document, error)

// FileLoader reads a catalog document from the local filesystem
func FileLoader(path string) Loader {
	return func(ctx context.Context) (*Document, error) {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open catalog file: %w", err)
		}
		defer f.Close()
		return Decode(f)
	}
}

// SeedLoader serves the embedded catalog
func SeedLoader() Loader {
	return func(ctx context.Context) (*Document, error) {
		return Seed()
	}
}

type indexed struct {
	ingredients []ingredient.Ingredient
	byID        map[uuid.UUID]int
	profiles    map[effectKey]ingredient.Smaakprofiel
	deltas      map[effectKey]ingredient.CookingEffect
}

type effectKey struct {
	id     uuid.UUID
	method ingredient.CookingMethod
}

// Source serves a catalog document through the catalog and cooking effect
// ports. FindAll always fetches a fresh document; the other lookups use the
// last fetched one.
type Source struct {
	load   Loader
	logger *zap.Logger

	mu      sync.RWMutex
	current *indexed
}

// NewSource creates a document-backed catalog source
func NewSource(load Loader, logger *zap.Logger) *Source {
	return &Source{load: load, logger: logger.Named("catalog-document")}
}

var (
	_ outbound.IngredientCatalogSource = (*Source)(nil)
	_ outbound.CookingEffectSource     = (*Source)(nil)
)

// FindAll fetches the document and returns its ingredients ordered by name
func (s *Source) FindAll(ctx context.Context) ([]ingredient.Ingredient, error) {
	idx, err := s.reload(ctx)
	if err != nil {
		return nil, err
	}
	return copyIngredients(idx.ingredients), nil
}

// FindByID returns the ingredient with id, or nil
func (s *Source) FindByID(ctx context.Context, id uuid.UUID) (*ingredient.Ingredient, error) {
	idx, err := s.index(ctx)
	if err != nil {
		return nil, err
	}
	pos, ok := idx.byID[id]
	if !ok {
		return nil, nil
	}
	ing := idx.ingredients[pos]
	return &ing, nil
}

// FindByCategory returns the ingredients of one category
func (s *Source) FindByCategory(ctx context.Context, category string) ([]ingredient.Ingredient, error) {
	idx, err := s.index(ctx)
	if err != nil {
		return nil, err
	}
	category = strings.ToLower(strings.TrimSpace(category))
	out := []ingredient.Ingredient{}
	for _, ing := range idx.ingredients {
		if strings.ToLower(ing.Category) == category {
			out = append(out, ing)
		}
	}
	return out, nil
}

// Search matches query against both names, case-insensitively
func (s *Source) Search(ctx context.Context, query string, limit int) ([]ingredient.Ingredient, error) {
	idx, err := s.index(ctx)
	if err != nil {
		return nil, err
	}
	query = strings.ToLower(strings.TrimSpace(query))
	out := []ingredient.Ingredient{}
	for _, ing := range idx.ingredients {
		if limit > 0 && len(out) == limit {
			break
		}
		if strings.Contains(strings.ToLower(ing.Name), query) ||
			strings.Contains(strings.ToLower(ing.LocalizedName), query) {
			out = append(out, ing)
		}
	}
	return out, nil
}

// FindProfile returns the recorded post-cooking profile, or nil
func (s *Source) FindProfile(ctx context.Context, ingredientID uuid.UUID, method ingredient.CookingMethod) (*ingredient.Smaakprofiel, error) {
	idx, err := s.index(ctx)
	if err != nil {
		return nil, err
	}
	p, ok := idx.profiles[effectKey{ingredientID, method}]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

// FindDelta returns the recorded cooking delta, or nil
func (s *Source) FindDelta(ctx context.Context, ingredientID uuid.UUID, method ingredient.CookingMethod) (*ingredient.CookingEffect, error) {
	idx, err := s.index(ctx)
	if err != nil {
		return nil, err
	}
	e, ok := idx.deltas[effectKey{ingredientID, method}]
	if !ok {
		return nil, nil
	}
	return &e, nil
}

func (s *Source) index(ctx context.Context) (*indexed, error) {
	s.mu.RLock()
	idx := s.current
	s.mu.RUnlock()
	if idx != nil {
		return idx, nil
	}
	return s.reload(ctx)
}

func (s *Source) reload(ctx context.Context) (*indexed, error) {
	doc, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	idx := buildIndex(doc)

	s.mu.Lock()
	s.current = idx
	s.mu.Unlock()

	s.logger.Debug("Catalog document loaded",
		zap.Int("ingredients", len(idx.ingredients)),
		zap.Int("cooking_effects", len(doc.CookingEffects)),
	)
	return idx, nil
}

func buildIndex(doc *Document) *indexed {
	idx := &indexed{
		ingredients: copyIngredients(doc.Ingredients),
		byID:        make(map[uuid.UUID]int, len(doc.Ingredients)),
		profiles:    make(map[effectKey]ingredient.Smaakprofiel),
		deltas:      make(map[effectKey]ingredient.CookingEffect),
	}
	sort.SliceStable(idx.ingredients, func(i, j int) bool {
		return idx.ingredients[i].Name < idx.ingredients[j].Name
	})
	for i, ing := range idx.ingredients {
		idx.byID[ing.ID] = i
	}
	for _, e := range doc.CookingEffects {
		key := effectKey{e.IngredientID, e.Method}
		if e.Profile != nil {
			idx.profiles[key] = *e.Profile
		} else {
			idx.deltas[key] = e.Effect()
		}
	}
	return idx
}

func copyIngredients(in []ingredient.Ingredient) []ingredient.Ingredient {
	out := make([]ingredient.Ingredient, len(in))
	copy(out, in)
	return out
}
