package gorm

import (
	"context"
	"errors"

	"github.com/alchemorsel/composer/internal/domain/ingredient"
	"github.com/alchemorsel/composer/internal/ports/outbound"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CookingEffectRepository implements the cooking effect source using GORM
type CookingEffectRepository struct {
	db *gorm.DB
}

// NewCookingEffectRepository creates a new cooking effect repository
func NewCookingEffectRepository(db *gorm.DB) *CookingEffectRepository {
	return &CookingEffectRepository{db: db}
}

var _ outbound.CookingEffectSource = (*CookingEffectRepository)(nil)

// FindProfile returns the stored post-cooking profile, or nil
func (r *CookingEffectRepository) FindProfile(ctx context.Context, ingredientID uuid.UUID, method ingredient.CookingMethod) (*ingredient.Smaakprofiel, error) {
	model, err := r.find(ctx, ingredientID, method, EffectKindProfile)
	if err != nil || model == nil {
		return nil, err
	}
	profile := ModelToProfile(model)
	return &profile, nil
}

// FindDelta returns the stored cooking delta, or nil
func (r *CookingEffectRepository) FindDelta(ctx context.Context, ingredientID uuid.UUID, method ingredient.CookingMethod) (*ingredient.CookingEffect, error) {
	model, err := r.find(ctx, ingredientID, method, EffectKindDelta)
	if err != nil || model == nil {
		return nil, err
	}
	delta := ModelToDelta(model)
	return &delta, nil
}

// SaveProfile records the absolute profile of ingredientID cooked with method
func (r *CookingEffectRepository) SaveProfile(ctx context.Context, ingredientID uuid.UUID, method ingredient.CookingMethod, p ingredient.Smaakprofiel) error {
	return r.upsert(ctx, ProfileEffectToModel(ingredientID, method, p))
}

// SaveDelta records a cooking delta
func (r *CookingEffectRepository) SaveDelta(ctx context.Context, e ingredient.CookingEffect) error {
	return r.upsert(ctx, DeltaEffectToModel(e))
}

func (r *CookingEffectRepository) upsert(ctx context.Context, model *CookingEffectModel) error {
	return r.db.WithContext(ctx).
		Omit("Ingredient").
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "ingredient_id"}, {Name: "method"}, {Name: "kind"}},
			DoUpdates: clause.AssignmentColumns([]string{"strak", "filmend", "droog", "gehalte", "type"}),
		}).
		Create(model).Error
}

func (r *CookingEffectRepository) find(ctx context.Context, ingredientID uuid.UUID, method ingredient.CookingMethod, kind string) (*CookingEffectModel, error) {
	var model CookingEffectModel

	result := r.db.WithContext(ctx).
		Where("ingredient_id = ? AND method = ? AND kind = ?", ingredientID, string(method), kind).
		First(&model)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}

	return &model, nil
}
