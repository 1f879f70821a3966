package gorm

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/alchemorsel/composer/internal/infrastructure/persistence/catalogfile"
)

// SeedCatalog loads doc into an empty catalog. A populated catalog is left
// untouched.
func SeedCatalog(ctx context.Context, db *gorm.DB, doc *catalogfile.Document, logger *zap.Logger) error {
	var count int64
	if err := db.WithContext(ctx).Model(&IngredientModel{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count ingredients: %w", err)
	}
	if count > 0 {
		return nil // Already seeded
	}

	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := NewIngredientRepository(tx).Upsert(ctx, doc.Ingredients); err != nil {
			return fmt.Errorf("failed to seed ingredients: %w", err)
		}

		effects := NewCookingEffectRepository(tx)
		for _, e := range doc.CookingEffects {
			var err error
			if e.Profile != nil {
				err = effects.SaveProfile(ctx, e.IngredientID, e.Method, *e.Profile)
			} else {
				err = effects.SaveDelta(ctx, e.Effect())
			}
			if err != nil {
				return fmt.Errorf("failed to seed cooking effect %s/%s: %w", e.IngredientID, e.Method, err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	logger.Info("Catalog seeded",
		zap.Int("ingredients", len(doc.Ingredients)),
		zap.Int("cooking_effects", len(doc.CookingEffects)),
	)
	return nil
}
