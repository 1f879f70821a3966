package gorm

import (
	"encoding/json"
	"fmt"

	"github.com/alchemorsel/composer/internal/domain/ingredient"
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// IngredientToModel converts a catalog ingredient to a GORM model
func IngredientToModel(i ingredient.Ingredient) (*IngredientModel, error) {
	textures, err := json.Marshal(emptyIfNil(texturesToStrings(i.Textures)))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal textures: %w", err)
	}
	aromas, err := json.Marshal(emptyIfNil(i.AromaCategories))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal aroma categories: %w", err)
	}

	model := &IngredientModel{
		ID:              i.ID,
		Name:            i.Name,
		NameNL:          i.LocalizedName,
		Category:        i.Category,
		Sweetness:       i.Flavor.Sweetness,
		Sourness:        i.Flavor.Sourness,
		Saltiness:       i.Flavor.Saltiness,
		Bitterness:      i.Flavor.Bitterness,
		Umami:           i.Flavor.Umami,
		Role:            string(i.Role),
		MoleculeType:    string(i.MoleculeType),
		Textures:        datatypes.JSON(textures),
		Mouthfeel:       string(i.Mouthfeel),
		AromaIntensity:  i.AromaIntensity,
		AromaCategories: datatypes.JSON(aromas),
	}
	if model.ID == uuid.Nil {
		model.ID = uuid.New()
	}

	if p := i.BaseProfile; p != nil {
		model.BaseStrak = float(p.Mondgevoel.Strak)
		model.BaseFilmend = float(p.Mondgevoel.Filmend)
		model.BaseDroog = float(p.Mondgevoel.Droog)
		model.BaseGehalte = float(p.Smaakrijkdom.Gehalte)
		model.BaseType = float(p.Smaakrijkdom.Type)
	}

	return model, nil
}

// ModelToIngredient converts a GORM model to a catalog ingredient
func ModelToIngredient(m *IngredientModel) (ingredient.Ingredient, error) {
	var textures []string
	if err := unmarshalJSON(m.Textures, &textures); err != nil {
		return ingredient.Ingredient{}, fmt.Errorf("ingredient %s: invalid textures: %w", m.ID, err)
	}
	var aromas []string
	if err := unmarshalJSON(m.AromaCategories, &aromas); err != nil {
		return ingredient.Ingredient{}, fmt.Errorf("ingredient %s: invalid aroma categories: %w", m.ID, err)
	}
	if len(aromas) == 0 {
		aromas = nil
	}

	i := ingredient.Ingredient{
		ID:            m.ID,
		Name:          m.Name,
		LocalizedName: m.NameNL,
		Category:      m.Category,
		Flavor: ingredient.FlavorProfile{
			Sweetness:  m.Sweetness,
			Saltiness:  m.Saltiness,
			Sourness:   m.Sourness,
			Bitterness: m.Bitterness,
			Umami:      m.Umami,
		},
		Role:            ingredient.Role(m.Role),
		MoleculeType:    ingredient.MoleculeType(m.MoleculeType),
		Mouthfeel:       ingredient.Mouthfeel(m.Mouthfeel),
		AromaIntensity:  m.AromaIntensity,
		AromaCategories: aromas,
	}
	for _, t := range textures {
		i.Textures = append(i.Textures, ingredient.Texture(t))
	}

	if m.BaseStrak != nil || m.BaseFilmend != nil || m.BaseDroog != nil || m.BaseGehalte != nil || m.BaseType != nil {
		i.BaseProfile = &ingredient.Smaakprofiel{
			Mondgevoel: ingredient.Mondgevoel{
				Strak:   deref(m.BaseStrak),
				Filmend: deref(m.BaseFilmend),
				Droog:   deref(m.BaseDroog),
			},
			Smaakrijkdom: ingredient.Smaakrijkdom{
				Gehalte: deref(m.BaseGehalte),
				Type:    deref(m.BaseType),
			},
		}
	}

	return i, nil
}

// ProfileEffectToModel stores an absolute post-cooking profile
func ProfileEffectToModel(ingredientID uuid.UUID, method ingredient.CookingMethod, p ingredient.Smaakprofiel) *CookingEffectModel {
	return &CookingEffectModel{
		ID:           uuid.New(),
		IngredientID: ingredientID,
		Method:       string(method),
		Kind:         EffectKindProfile,
		Strak:        p.Mondgevoel.Strak,
		Filmend:      p.Mondgevoel.Filmend,
		Droog:        p.Mondgevoel.Droog,
		Gehalte:      p.Smaakrijkdom.Gehalte,
		Type:         p.Smaakrijkdom.Type,
	}
}

// DeltaEffectToModel stores a shift applied to the base profile
func DeltaEffectToModel(e ingredient.CookingEffect) *CookingEffectModel {
	return &CookingEffectModel{
		ID:           uuid.New(),
		IngredientID: e.IngredientID,
		Method:       string(e.Method),
		Kind:         EffectKindDelta,
		Strak:        e.Strak,
		Filmend:      e.Filmend,
		Droog:        e.Droog,
		Type:         e.Type,
	}
}

// ModelToProfile reads an absolute profile row
func ModelToProfile(m *CookingEffectModel) ingredient.Smaakprofiel {
	return ingredient.Smaakprofiel{
		Mondgevoel:   ingredient.Mondgevoel{Strak: m.Strak, Filmend: m.Filmend, Droog: m.Droog},
		Smaakrijkdom: ingredient.Smaakrijkdom{Gehalte: m.Gehalte, Type: m.Type},
	}
}

// ModelToDelta reads a delta row
func ModelToDelta(m *CookingEffectModel) ingredient.CookingEffect {
	return ingredient.CookingEffect{
		IngredientID: m.IngredientID,
		Method:       ingredient.CookingMethod(m.Method),
		Strak:        m.Strak,
		Filmend:      m.Filmend,
		Droog:        m.Droog,
		Type:         m.Type,
	}
}

func texturesToStrings(textures []ingredient.Texture) []string {
	if textures == nil {
		return nil
	}
	out := make([]string, len(textures))
	for i, t := range textures {
		out[i] = string(t)
	}
	return out
}

func emptyIfNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func unmarshalJSON(raw datatypes.JSON, v interface{}) error {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	return json.Unmarshal(raw, v)
}

func float(v float64) *float64 { return &v }

func deref(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
