// Package cooking resolves the mouthfeel profile of an ingredient for a given
// cooking method.
package cooking

import (
	"context"

	"github.com/alchemorsel/composer/internal/domain/ingredient"
	"github.com/alchemorsel/composer/internal/ports/outbound"
	"go.uber.org/zap"
)

// Resolver turns (ingredient, cooking method) into a Smaakprofiel. Lookup
// failures are logged and degrade to the best available approximation; the
// resolver never returns an error.
type Resolver struct {
	effects outbound.CookingEffectSource
	logger  *zap.Logger
}

// NewResolver creates a resolver backed by a cooking-effect source
func NewResolver(effects outbound.CookingEffectSource, logger *zap.Logger) *Resolver {
	return &Resolver{
		effects: effects,
		logger:  logger.Named("cooking-resolver"),
	}
}

// BaseProfile returns the stored base profile, or derives one heuristically
func BaseProfile(ing ingredient.Ingredient) ingredient.Smaakprofiel {
	if ing.BaseProfile != nil {
		return *ing.BaseProfile
	}
	return ingredient.DeriveProfile(ing)
}

// Resolve returns the profile of ing prepared with method. A precomputed
// profile for the pair wins; otherwise a delta is applied to the base profile;
// otherwise the base profile is returned unchanged.
func (r *Resolver) Resolve(ctx context.Context, ing ingredient.Ingredient, method ingredient.CookingMethod) ingredient.Smaakprofiel {
	if ing.Placeholder {
		return ingredient.Smaakprofiel{}
	}

	base := BaseProfile(ing)
	if method.IsRaw() || r.effects == nil {
		return base
	}

	logger := r.logger.With(
		zap.String("ingredient_id", ing.ID.String()),
		zap.String("cooking_method", string(method)),
	)

	profile, err := r.effects.FindProfile(ctx, ing.ID, method)
	if err != nil {
		logger.Warn("Cooking profile lookup failed, trying delta", zap.Error(err))
	} else if profile != nil {
		return *profile
	}

	delta, err := r.effects.FindDelta(ctx, ing.ID, method)
	if err != nil {
		logger.Warn("Cooking delta lookup failed, using base profile", zap.Error(err))
		return base
	}
	if delta == nil {
		logger.Debug("No cooking effect recorded, using base profile")
		return base
	}

	return delta.Apply(base)
}
