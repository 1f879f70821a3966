package gorm

import (
	"context"
	"errors"
	"strings"

	"github.com/alchemorsel/composer/internal/domain/ingredient"
	"github.com/alchemorsel/composer/internal/ports/outbound"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// IngredientRepository implements the catalog source using GORM
type IngredientRepository struct {
	db *gorm.DB
}

// NewIngredientRepository creates a new ingredient repository
func NewIngredientRepository(db *gorm.DB) *IngredientRepository {
	return &IngredientRepository{db: db}
}

var _ outbound.IngredientCatalogSource = (*IngredientRepository)(nil)

// FindAll returns the whole catalog ordered by name
func (r *IngredientRepository) FindAll(ctx context.Context) ([]ingredient.Ingredient, error) {
	var models []IngredientModel

	result := r.db.WithContext(ctx).Order("name ASC").Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}

	return toIngredients(models)
}

// FindByID finds an ingredient by ID. It returns nil when there is none.
func (r *IngredientRepository) FindByID(ctx context.Context, id uuid.UUID) (*ingredient.Ingredient, error) {
	var model IngredientModel

	result := r.db.WithContext(ctx).First(&model, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}

	ing, err := ModelToIngredient(&model)
	if err != nil {
		return nil, err
	}
	return &ing, nil
}

// FindByCategory returns the ingredients of one category ordered by name
func (r *IngredientRepository) FindByCategory(ctx context.Context, category string) ([]ingredient.Ingredient, error) {
	var models []IngredientModel

	result := r.db.WithContext(ctx).
		Where("LOWER(category) = ?", strings.ToLower(strings.TrimSpace(category))).
		Order("name ASC").
		Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}

	return toIngredients(models)
}

// Search matches query against both names, case-insensitively
func (r *IngredientRepository) Search(ctx context.Context, query string, limit int) ([]ingredient.Ingredient, error) {
	var models []IngredientModel

	pattern := "%" + escapeLike(strings.ToLower(strings.TrimSpace(query))) + "%"
	db := r.db.WithContext(ctx).
		Where("LOWER(name) LIKE ? ESCAPE '\\' OR LOWER(name_nl) LIKE ? ESCAPE '\\'", pattern, pattern).
		Order("name ASC")
	if limit > 0 {
		db = db.Limit(limit)
	}

	if result := db.Find(&models); result.Error != nil {
		return nil, result.Error
	}

	return toIngredients(models)
}

// Upsert inserts or replaces catalog entries by id
func (r *IngredientRepository) Upsert(ctx context.Context, ingredients []ingredient.Ingredient) error {
	if len(ingredients) == 0 {
		return nil
	}

	models := make([]*IngredientModel, 0, len(ingredients))
	for _, i := range ingredients {
		if err := i.Validate(); err != nil {
			return err
		}
		model, err := IngredientToModel(i)
		if err != nil {
			return err
		}
		models = append(models, model)
	}

	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&models).Error
}

// Count returns the catalog size
func (r *IngredientRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&IngredientModel{}).Count(&total).Error
	return total, err
}

func toIngredients(models []IngredientModel) ([]ingredient.Ingredient, error) {
	ingredients := make([]ingredient.Ingredient, 0, len(models))
	for i := range models {
		ing, err := ModelToIngredient(&models[i])
		if err != nil {
			return nil, err
		}
		ingredients = append(ingredients, ing)
	}
	return ingredients, nil
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
