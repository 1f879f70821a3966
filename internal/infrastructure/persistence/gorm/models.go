// Package gorm provides GORM model definitions and repositories for the
// ingredient catalog
package gorm

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Cooking effect kinds
const (
	EffectKindProfile = "profile"
	EffectKindDelta   = "delta"
)

// IngredientModel represents the GORM model for catalog ingredients
type IngredientModel struct {
	ID       uuid.UUID `gorm:"type:char(36);primaryKey"`
	Name     string    `gorm:"type:varchar(255);not null;uniqueIndex"`
	NameNL   string    `gorm:"column:name_nl;type:varchar(255);index"`
	Category string    `gorm:"type:varchar(50);not null;index"`

	// Taste axes
	Sweetness  float64 `gorm:"not null;default:0"`
	Sourness   float64 `gorm:"not null;default:0"`
	Saltiness  float64 `gorm:"not null;default:0"`
	Bitterness float64 `gorm:"not null;default:0"`
	Umami      float64 `gorm:"not null;default:0"`

	Role            string         `gorm:"type:varchar(20);not null;index"`
	MoleculeType    string         `gorm:"type:varchar(20);not null"`
	Textures        datatypes.JSON `gorm:"type:json"`
	Mouthfeel       string         `gorm:"type:varchar(20)"`
	AromaIntensity  float64        `gorm:"not null;default:0"`
	AromaCategories datatypes.JSON `gorm:"type:json"`

	// Stored base profile; all nil means the heuristics derive it
	BaseStrak   *float64 `gorm:"column:base_strak"`
	BaseFilmend *float64 `gorm:"column:base_filmend"`
	BaseDroog   *float64 `gorm:"column:base_droog"`
	BaseGehalte *float64 `gorm:"column:base_gehalte"`
	BaseType    *float64 `gorm:"column:base_type"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName specifies the table name for IngredientModel
func (IngredientModel) TableName() string {
	return "ingredients"
}

// CookingEffectModel stores either an absolute post-cooking profile or a
// delta applied to the base profile
type CookingEffectModel struct {
	ID           uuid.UUID `gorm:"type:char(36);primaryKey"`
	IngredientID uuid.UUID `gorm:"type:char(36);not null;uniqueIndex:idx_cooking_effect"`
	Method       string    `gorm:"type:varchar(20);not null;uniqueIndex:idx_cooking_effect"`
	Kind         string    `gorm:"type:varchar(10);not null;uniqueIndex:idx_cooking_effect"`
	Strak        float64   `gorm:"not null;default:0"`
	Filmend      float64   `gorm:"not null;default:0"`
	Droog        float64   `gorm:"not null;default:0"`
	Gehalte      float64   `gorm:"not null;default:0"`
	Type         float64   `gorm:"not null;default:0"`
	CreatedAt    time.Time

	Ingredient IngredientModel `gorm:"foreignKey:IngredientID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for CookingEffectModel
func (CookingEffectModel) TableName() string {
	return "cooking_effects"
}

// AllModels returns every model managed by AutoMigrate
func AllModels() []interface{} {
	return []interface{}{
		&IngredientModel{},
		&CookingEffectModel{},
	}
}
