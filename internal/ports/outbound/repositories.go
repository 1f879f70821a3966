// Package outbound defines the interfaces for outbound ports (secondary/driven adapters)
// These are the interfaces that the application uses to interact with external systems
package outbound

import (
	"context"
	"errors"
	"time"

	"github.com/alchemorsel/composer/internal/domain/composition"
	"github.com/alchemorsel/composer/internal/domain/ingredient"
	"github.com/google/uuid"
)

// ErrCacheMiss is returned by CacheRepository.Get for absent or expired keys
var ErrCacheMiss = errors.New("cache miss")

// IngredientCatalogSource supplies read-only ingredient reference data
type IngredientCatalogSource interface {
	// FindAll returns the complete catalog
	FindAll(ctx context.Context) ([]ingredient.Ingredient, error)
	FindByID(ctx context.Context, id uuid.UUID) (*ingredient.Ingredient, error)
	FindByCategory(ctx context.Context, category string) ([]ingredient.Ingredient, error)
	Search(ctx context.Context, query string, limit int) ([]ingredient.Ingredient, error)
}

// CookingEffectSource supplies precomputed profiles and deltas per
// (ingredient, cooking method). Absent records are returned as (nil, nil).
type CookingEffectSource interface {
	FindProfile(ctx context.Context, ingredientID uuid.UUID, method ingredient.CookingMethod) (*ingredient.Smaakprofiel, error)
	FindDelta(ctx context.Context, ingredientID uuid.UUID, method ingredient.CookingMethod) (*ingredient.CookingEffect, error)
}

// CompositionStore holds compositions for the duration of a caller's session.
// View and Update run fn while the composition is locked against other edits.
type CompositionStore interface {
	Create(ctx context.Context, c *composition.Composition) error
	View(ctx context.Context, id uuid.UUID, fn func(c *composition.Composition) error) error
	Update(ctx context.Context, id uuid.UUID, fn func(c *composition.Composition) error) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context) (int, error)
}

// CacheRepository defines the interface for caching operations.
// A zero ttl stores the value without expiry.
type CacheRepository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}
