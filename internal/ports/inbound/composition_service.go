// Package inbound defines the interfaces for inbound ports (primary/driving adapters)
// These are the interfaces that the application exposes to the outside world
package inbound

import (
	"context"
	"time"

	"github.com/alchemorsel/composer/internal/domain/analysis"
	"github.com/alchemorsel/composer/internal/domain/ingredient"
	"github.com/google/uuid"
)

// CompositionService defines the composition analysis use cases
type CompositionService interface {
	// Stateless analyses of free-text ingredient names
	AnalyzeComposition(ctx context.Context, names []string) (*CompositionAnalysis, error)
	GetSuggestions(ctx context.Context, names []string) (*SuggestionList, error)

	// Session compositions
	CreateComposition(ctx context.Context, cmd CreateCompositionCommand) (*CompositionDTO, error)
	GetComposition(ctx context.Context, compositionID uuid.UUID) (*CompositionDTO, error)
	DeleteComposition(ctx context.Context, compositionID uuid.UUID) error
	AddIngredient(ctx context.Context, cmd AddIngredientCommand) (*CompositionDTO, error)
	RemoveIngredient(ctx context.Context, compositionID, ingredientID uuid.UUID) (*CompositionDTO, error)
	SetCookingMethod(ctx context.Context, cmd SetCookingMethodCommand) (*CompositionDTO, error)
	SetWeight(ctx context.Context, cmd SetWeightCommand) (*CompositionDTO, error)
	ComputeProfile(ctx context.Context, compositionID uuid.UUID) (*ingredient.Smaakprofiel, error)
	AnalyzeMouthfeel(ctx context.Context, compositionID uuid.UUID) (*MouthfeelAnalysis, error)
}

// CatalogService defines catalog queries and maintenance
type CatalogService interface {
	ListIngredients(ctx context.Context, query IngredientQuery) ([]ingredient.Ingredient, error)
	ResolveProfile(ctx context.Context, ingredientID uuid.UUID, method string) (*ProfileDTO, error)
	RefreshCatalog(ctx context.Context) (*CatalogStatus, error)
	Status(ctx context.Context) (*CatalogStatus, error)
}

// Command objects for operations

// CreateCompositionCommand starts a new composition
type CreateCompositionCommand struct {
	Name string
}

// AddIngredientCommand places an ingredient into a composition. Ingredient is
// a catalog id or a free-text name; Weight nil means the role default.
type AddIngredientCommand struct {
	CompositionID uuid.UUID
	Ingredient    string
	Weight        *int
	CookingMethod string
}

// SetCookingMethodCommand changes the preparation of an ingredient
type SetCookingMethodCommand struct {
	CompositionID uuid.UUID
	IngredientID  uuid.UUID
	CookingMethod string
}

// SetWeightCommand adjusts the weight of an ingredient; zero restores the
// role default.
type SetWeightCommand struct {
	CompositionID uuid.UUID
	IngredientID  uuid.UUID
	Weight        int
}

// IngredientQuery filters catalog listings
type IngredientQuery struct {
	Query    string
	Category string
	Limit    int
}

// DTOs for data transfer

// ResolvedName pairs a typed name with the catalog entry it resolved to
type ResolvedName struct {
	Input       string                `json:"input"`
	Ingredient  ingredient.Ingredient `json:"ingredient"`
	Match       string                `json:"match"`
	Placeholder bool                  `json:"placeholder"`
}

// CompositionAnalysis is the gustatory analysis of a list of names
type CompositionAnalysis struct {
	Ingredients     []ResolvedName            `json:"ingredients"`
	FlavorProfile   ingredient.FlavorProfile  `json:"flavor_profile"`
	Smaakprofiel    ingredient.Smaakprofiel   `json:"smaakprofiel"`
	Carrier         *ingredient.Ingredient    `json:"carrier"`
	OverallScore    int                       `json:"overall_score"`
	MissingElements []analysis.MissingElement `json:"missing_elements"`
	Suggestions     []analysis.Suggestion     `json:"suggestions"`
	Unresolved      []string                  `json:"unresolved"`
	Retryable       bool                      `json:"retryable"`
}

// SuggestionList is a ranked list of ingredient suggestions
type SuggestionList struct {
	Suggestions []analysis.Suggestion `json:"suggestions"`
	Retryable   bool                  `json:"retryable"`
}

// CompositionItemDTO is one ingredient of a composition
type CompositionItemDTO struct {
	IngredientID  uuid.UUID                `json:"ingredient_id"`
	Name          string                   `json:"name"`
	Role          ingredient.Role          `json:"role"`
	CookingMethod ingredient.CookingMethod `json:"cooking_method"`
	Weight        int                      `json:"weight"`
	Placeholder   bool                     `json:"placeholder"`
	Profile       ingredient.Smaakprofiel  `json:"profile"`
}

// CompositionDTO is a composition with its current aggregate profile
type CompositionDTO struct {
	ID        uuid.UUID               `json:"id"`
	Name      string                  `json:"name"`
	Items     []CompositionItemDTO    `json:"items"`
	Profile   ingredient.Smaakprofiel `json:"profile"`
	Version   int64                   `json:"version"`
	CreatedAt time.Time               `json:"created_at"`
	UpdatedAt time.Time               `json:"updated_at"`
}

// MouthfeelAnalysis is the mouthfeel and richness analysis of a composition
type MouthfeelAnalysis struct {
	CompositionID uuid.UUID               `json:"composition_id"`
	Profile       ingredient.Smaakprofiel `json:"profile"`
	Balance       analysis.BalanceResult  `json:"balance"`
	Suggestions   []analysis.Suggestion   `json:"suggestions"`
	Retryable     bool                    `json:"retryable"`
}

// ProfileDTO is the resolved profile of one ingredient preparation
type ProfileDTO struct {
	Ingredient    ingredient.Ingredient    `json:"ingredient"`
	CookingMethod ingredient.CookingMethod `json:"cooking_method"`
	Profile       ingredient.Smaakprofiel  `json:"profile"`
}

// CatalogStatus describes the cached catalog
type CatalogStatus struct {
	Loaded   bool      `json:"loaded"`
	Size     int       `json:"size"`
	Origin   string    `json:"origin,omitempty"`
	LoadedAt time.Time `json:"loaded_at,omitempty"`
}
