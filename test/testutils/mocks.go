// Package testutils provides mock implementations for testing
package testutils

import (
	"context"
	"time"

	"github.com/alchemorsel/composer/internal/domain/ingredient"
	"github.com/alchemorsel/composer/internal/ports/inbound"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockCatalogSource provides a mock implementation of IngredientCatalogSource
type MockCatalogSource struct {
	mock.Mock
}

// FindAll returns the complete catalog
func (m *MockCatalogSource) FindAll(ctx context.Context) ([]ingredient.Ingredient, error) {
	args := m.Called(ctx)
	if v := args.Get(0); v != nil {
		return v.([]ingredient.Ingredient), args.Error(1)
	}
	return nil, args.Error(1)
}

// FindByID finds an ingredient by ID
func (m *MockCatalogSource) FindByID(ctx context.Context, id uuid.UUID) (*ingredient.Ingredient, error) {
	args := m.Called(ctx, id)
	if v := args.Get(0); v != nil {
		return v.(*ingredient.Ingredient), args.Error(1)
	}
	return nil, args.Error(1)
}

// FindByCategory finds ingredients in a category
func (m *MockCatalogSource) FindByCategory(ctx context.Context, category string) ([]ingredient.Ingredient, error) {
	args := m.Called(ctx, category)
	if v := args.Get(0); v != nil {
		return v.([]ingredient.Ingredient), args.Error(1)
	}
	return nil, args.Error(1)
}

// Search finds ingredients by name
func (m *MockCatalogSource) Search(ctx context.Context, query string, limit int) ([]ingredient.Ingredient, error) {
	args := m.Called(ctx, query, limit)
	if v := args.Get(0); v != nil {
		return v.([]ingredient.Ingredient), args.Error(1)
	}
	return nil, args.Error(1)
}

// MockCookingEffectSource provides a mock implementation of CookingEffectSource
type MockCookingEffectSource struct {
	mock.Mock
}

// FindProfile returns a precomputed profile
func (m *MockCookingEffectSource) FindProfile(ctx context.Context, ingredientID uuid.UUID, method ingredient.CookingMethod) (*ingredient.Smaakprofiel, error) {
	args := m.Called(ctx, ingredientID, method)
	if v := args.Get(0); v != nil {
		return v.(*ingredient.Smaakprofiel), args.Error(1)
	}
	return nil, args.Error(1)
}

// FindDelta returns a cooking delta
func (m *MockCookingEffectSource) FindDelta(ctx context.Context, ingredientID uuid.UUID, method ingredient.CookingMethod) (*ingredient.CookingEffect, error) {
	args := m.Called(ctx, ingredientID, method)
	if v := args.Get(0); v != nil {
		return v.(*ingredient.CookingEffect), args.Error(1)
	}
	return nil, args.Error(1)
}

// SetupNoEffects makes every lookup return "no record"
func (m *MockCookingEffectSource) SetupNoEffects() {
	m.On("FindProfile", mock.Anything, mock.Anything, mock.Anything).Return(nil, nil).Maybe()
	m.On("FindDelta", mock.Anything, mock.Anything, mock.Anything).Return(nil, nil).Maybe()
}

// MockCacheRepository provides a mock implementation of CacheRepository
type MockCacheRepository struct {
	mock.Mock
}

// Get retrieves a value
func (m *MockCacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if v := args.Get(0); v != nil {
		return v.([]byte), args.Error(1)
	}
	return nil, args.Error(1)
}

// Set stores a value
func (m *MockCacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return m.Called(ctx, key, value, ttl).Error(0)
}

// Delete removes a value
func (m *MockCacheRepository) Delete(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

// Exists checks for a key
func (m *MockCacheRepository) Exists(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

// MockCompositionService provides a mock implementation of CompositionService
type MockCompositionService struct {
	mock.Mock
}

func (m *MockCompositionService) AnalyzeComposition(ctx context.Context, names []string) (*inbound.CompositionAnalysis, error) {
	args := m.Called(ctx, names)
	if v := args.Get(0); v != nil {
		return v.(*inbound.CompositionAnalysis), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCompositionService) GetSuggestions(ctx context.Context, names []string) (*inbound.SuggestionList, error) {
	args := m.Called(ctx, names)
	if v := args.Get(0); v != nil {
		return v.(*inbound.SuggestionList), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCompositionService) CreateComposition(ctx context.Context, cmd inbound.CreateCompositionCommand) (*inbound.CompositionDTO, error) {
	args := m.Called(ctx, cmd)
	if v := args.Get(0); v != nil {
		return v.(*inbound.CompositionDTO), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCompositionService) GetComposition(ctx context.Context, compositionID uuid.UUID) (*inbound.CompositionDTO, error) {
	args := m.Called(ctx, compositionID)
	if v := args.Get(0); v != nil {
		return v.(*inbound.CompositionDTO), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCompositionService) DeleteComposition(ctx context.Context, compositionID uuid.UUID) error {
	return m.Called(ctx, compositionID).Error(0)
}

func (m *MockCompositionService) AddIngredient(ctx context.Context, cmd inbound.AddIngredientCommand) (*inbound.CompositionDTO, error) {
	args := m.Called(ctx, cmd)
	if v := args.Get(0); v != nil {
		return v.(*inbound.CompositionDTO), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCompositionService) RemoveIngredient(ctx context.Context, compositionID, ingredientID uuid.UUID) (*inbound.CompositionDTO, error) {
	args := m.Called(ctx, compositionID, ingredientID)
	if v := args.Get(0); v != nil {
		return v.(*inbound.CompositionDTO), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCompositionService) SetCookingMethod(ctx context.Context, cmd inbound.SetCookingMethodCommand) (*inbound.CompositionDTO, error) {
	args := m.Called(ctx, cmd)
	if v := args.Get(0); v != nil {
		return v.(*inbound.CompositionDTO), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCompositionService) SetWeight(ctx context.Context, cmd inbound.SetWeightCommand) (*inbound.CompositionDTO, error) {
	args := m.Called(ctx, cmd)
	if v := args.Get(0); v != nil {
		return v.(*inbound.CompositionDTO), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCompositionService) ComputeProfile(ctx context.Context, compositionID uuid.UUID) (*ingredient.Smaakprofiel, error) {
	args := m.Called(ctx, compositionID)
	if v := args.Get(0); v != nil {
		return v.(*ingredient.Smaakprofiel), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCompositionService) AnalyzeMouthfeel(ctx context.Context, compositionID uuid.UUID) (*inbound.MouthfeelAnalysis, error) {
	args := m.Called(ctx, compositionID)
	if v := args.Get(0); v != nil {
		return v.(*inbound.MouthfeelAnalysis), args.Error(1)
	}
	return nil, args.Error(1)
}

// MockCatalogService provides a mock implementation of CatalogService
type MockCatalogService struct {
	mock.Mock
}

func (m *MockCatalogService) ListIngredients(ctx context.Context, query inbound.IngredientQuery) ([]ingredient.Ingredient, error) {
	args := m.Called(ctx, query)
	if v := args.Get(0); v != nil {
		return v.([]ingredient.Ingredient), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCatalogService) ResolveProfile(ctx context.Context, ingredientID uuid.UUID, method string) (*inbound.ProfileDTO, error) {
	args := m.Called(ctx, ingredientID, method)
	if v := args.Get(0); v != nil {
		return v.(*inbound.ProfileDTO), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCatalogService) RefreshCatalog(ctx context.Context) (*inbound.CatalogStatus, error) {
	args := m.Called(ctx)
	if v := args.Get(0); v != nil {
		return v.(*inbound.CatalogStatus), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCatalogService) Status(ctx context.Context) (*inbound.CatalogStatus, error) {
	args := m.Called(ctx)
	if v := args.Get(0); v != nil {
		return v.(*inbound.CatalogStatus), args.Error(1)
	}
	return nil, args.Error(1)
}
