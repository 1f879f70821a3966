package catalog

import (
	"context"
	"strings"

	"github.com/alchemorsel/composer/internal/application/cooking"
	"github.com/alchemorsel/composer/internal/domain/ingredient"
	"github.com/alchemorsel/composer/internal/ports/inbound"
	"github.com/alchemorsel/composer/internal/ports/outbound"
	"github.com/alchemorsel/composer/pkg/errors"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	defaultListLimit = 50
	maxListLimit     = 200
)

// Service implements the CatalogService interface
type Service struct {
	cache    *Cache
	source   outbound.IngredientCatalogSource
	resolver *cooking.Resolver
	logger   *zap.Logger
}

// NewService creates a new catalog service
func NewService(
	cache *Cache,
	source outbound.IngredientCatalogSource,
	resolver *cooking.Resolver,
	logger *zap.Logger,
) inbound.CatalogService {
	return &Service{
		cache:    cache,
		source:   source,
		resolver: resolver,
		logger:   logger.Named("catalog-service"),
	}
}

// ListIngredients lists catalog entries. Text and category filters are
// answered by the catalog source; an unfiltered listing comes from the cache.
func (s *Service) ListIngredients(ctx context.Context, query inbound.IngredientQuery) ([]ingredient.Ingredient, error) {
	limit := query.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}

	var (
		result []ingredient.Ingredient
		err    error
	)
	switch {
	case strings.TrimSpace(query.Query) != "":
		result, err = s.source.Search(ctx, strings.TrimSpace(query.Query), limit)
	case query.Category != "":
		result, err = s.source.FindByCategory(ctx, query.Category)
	default:
		var snap *Snapshot
		snap, err = s.cache.Get(ctx)
		if err == nil {
			result = snap.Ingredients()
		}
	}
	if err != nil {
		if errors.Is(err, errors.CodeCatalogUnavailable) {
			return nil, err
		}
		s.logger.Error("Failed to list ingredients", zap.Error(err))
		return nil, errors.NewCatalogUnavailableError(err)
	}

	if len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

// ResolveProfile returns the profile of one ingredient prepared with method
func (s *Service) ResolveProfile(ctx context.Context, ingredientID uuid.UUID, method string) (*inbound.ProfileDTO, error) {
	cookingMethod, ok := ingredient.ParseCookingMethod(method)
	if !ok {
		return nil, errors.NewInvalidCookingMethodError(method)
	}

	snap, err := s.cache.Get(ctx)
	if err != nil {
		return nil, err
	}

	ing, found := snap.ByID(ingredientID)
	if !found {
		return nil, errors.NewIngredientNotFoundError(ingredientID.String())
	}

	return &inbound.ProfileDTO{
		Ingredient:    ing,
		CookingMethod: cookingMethod,
		Profile:       s.resolver.Resolve(ctx, ing, cookingMethod),
	}, nil
}

// RefreshCatalog reloads the catalog from its source
func (s *Service) RefreshCatalog(ctx context.Context) (*inbound.CatalogStatus, error) {
	snap, err := s.cache.Refresh(ctx)
	if err != nil {
		return nil, err
	}
	return statusOf(snap), nil
}

// Status describes the cached catalog without loading it
func (s *Service) Status(ctx context.Context) (*inbound.CatalogStatus, error) {
	return statusOf(s.cache.Current()), nil
}

func statusOf(snap *Snapshot) *inbound.CatalogStatus {
	if snap == nil {
		return &inbound.CatalogStatus{}
	}
	return &inbound.CatalogStatus{
		Loaded:   true,
		Size:     snap.Len(),
		Origin:   snap.Origin(),
		LoadedAt: snap.LoadedAt(),
	}
}
