// Package catalogfile reads ingredient catalogs from JSON documents. The same
// format backs the embedded seed, local catalog files and objects in S3.
package catalogfile

import (
	"embed"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/alchemorsel/composer/internal/domain/ingredient"
	"github.com/google/uuid"
)

//go:embed seed/catalog.json
var seedFS embed.FS

// idNamespace derives stable ingredient ids from names
var idNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("composer/ingredient/catalog"))

// Document is a serialized ingredient catalog
type Document struct {
	Version        int                     `json:"version"`
	Ingredients    []ingredient.Ingredient `json:"ingredients"`
	CookingEffects []EffectEntry           `json:"cooking_effects,omitempty"`
}

// EffectEntry records how a cooking method changes one ingredient. Exactly
// one of Profile and Delta is set.
type EffectEntry struct {
	Ingredient   string                   `json:"ingredient,omitempty"`
	IngredientID uuid.UUID                `json:"ingredient_id,omitempty"`
	Method       ingredient.CookingMethod `json:"method"`
	Profile      *ingredient.Smaakprofiel `json:"profile,omitempty"`
	Delta        *Delta                   `json:"delta,omitempty"`
}

// Delta is the serialized form of a cooking delta
type Delta struct {
	Strak   float64 `json:"strak"`
	Filmend float64 `json:"filmend"`
	Droog   float64 `json:"droog"`
	Type    float64 `json:"type"`
}

// IngredientID returns the id given to a catalog entry that has none
func IngredientID(name string) uuid.UUID {
	return uuid.NewSHA1(idNamespace, []byte(strings.ToLower(strings.TrimSpace(name))))
}

// Decode reads and validates a catalog document
func Decode(r io.Reader) (*Document, error) {
	var doc Document
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode catalog document: %w", err)
	}
	if err := doc.normalize(); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Seed returns the catalog embedded in the binary
func Seed() (*Document, error) {
	f, err := seedFS.Open("seed/catalog.json")
	if err != nil {
		return nil, fmt.Errorf("failed to open seed catalog: %w", err)
	}
	defer f.Close()
	return Decode(f)
}

// normalize assigns missing ids, validates entries and links effects to
// their ingredients
func (d *Document) normalize() error {
	byName := make(map[string]uuid.UUID, len(d.Ingredients))
	seen := make(map[uuid.UUID]string, len(d.Ingredients))

	for i := range d.Ingredients {
		ing := &d.Ingredients[i]
		ing.Name = strings.TrimSpace(ing.Name)
		if err := ing.Validate(); err != nil {
			return fmt.Errorf("catalog entry %d (%q): %w", i, ing.Name, err)
		}
		if ing.ID == uuid.Nil {
			ing.ID = IngredientID(ing.Name)
		}
		if other, dup := seen[ing.ID]; dup {
			return fmt.Errorf("catalog entries %q and %q share id %s", other, ing.Name, ing.ID)
		}
		seen[ing.ID] = ing.Name
		byName[strings.ToLower(ing.Name)] = ing.ID
	}

	for i := range d.CookingEffects {
		e := &d.CookingEffects[i]
		if e.IngredientID == uuid.Nil {
			id, ok := byName[strings.ToLower(strings.TrimSpace(e.Ingredient))]
			if !ok {
				return fmt.Errorf("cooking effect %d refers to unknown ingredient %q", i, e.Ingredient)
			}
			e.IngredientID = id
		}
		if _, ok := seen[e.IngredientID]; !ok {
			return fmt.Errorf("cooking effect %d refers to unknown ingredient id %s", i, e.IngredientID)
		}
		method, ok := ingredient.ParseCookingMethod(string(e.Method))
		if !ok || method.IsRaw() {
			return fmt.Errorf("cooking effect %d has invalid method %q", i, e.Method)
		}
		e.Method = method
		if (e.Profile == nil) == (e.Delta == nil) {
			return fmt.Errorf("cooking effect %d must set exactly one of profile and delta", i)
		}
	}

	return nil
}

// Effect converts a delta entry to a domain cooking effect
func (e EffectEntry) Effect() ingredient.CookingEffect {
	if e.Delta == nil {
		return ingredient.CookingEffect{IngredientID: e.IngredientID, Method: e.Method}
	}
	return ingredient.CookingEffect{
		IngredientID: e.IngredientID,
		Method:       e.Method,
		Strak:        e.Delta.Strak,
		Filmend:      e.Delta.Filmend,
		Droog:        e.Delta.Droog,
		Type:         e.Delta.Type,
	}
}
