package ingredient

import (
	"strings"

	"github.com/google/uuid"
)

// placeholderNamespace seeds the deterministic ids given to unresolved names.
var placeholderNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("composer/ingredient/placeholder"))

// Ingredient is immutable catalog reference data for a single ingredient.
// Placeholder ingredients stand in for names that could not be resolved
// against the catalog; they are listed to the user but carry no flavor.
type Ingredient struct {
	ID              uuid.UUID     `json:"id"`
	Name            string        `json:"name"`
	LocalizedName   string        `json:"localized_name,omitempty"`
	Category        string        `json:"category"`
	Flavor          FlavorProfile `json:"flavor"`
	Role            Role          `json:"role"`
	MoleculeType    MoleculeType  `json:"molecule_type"`
	Textures        []Texture     `json:"textures,omitempty"`
	Mouthfeel       Mouthfeel     `json:"mouthfeel,omitempty"`
	AromaIntensity  float64       `json:"aroma_intensity"`
	AromaCategories []string      `json:"aroma_categories,omitempty"`
	BaseProfile     *Smaakprofiel `json:"base_profile,omitempty"`
	Placeholder     bool          `json:"placeholder,omitempty"`
}

// NewPlaceholder synthesizes an ingredient for a name that matched nothing in
// the catalog. The id is derived from the normalized name so repeated lookups
// of the same text agree.
func NewPlaceholder(raw string) Ingredient {
	name := strings.TrimSpace(raw)
	return Ingredient{
		ID:          uuid.NewSHA1(placeholderNamespace, []byte(strings.ToLower(name))),
		Name:        name,
		Category:    "unknown",
		Placeholder: true,
	}
}

// Validate checks the invariants of catalog reference data
func (i Ingredient) Validate() error {
	if strings.TrimSpace(i.Name) == "" {
		return ErrNameRequired
	}
	if !i.Role.IsValid() {
		return ErrInvalidRole
	}
	if !i.MoleculeType.IsValid() {
		return ErrInvalidMoleculeType
	}
	if !i.Mouthfeel.IsValid() {
		return ErrInvalidMouthfeel
	}
	for _, v := range []float64{i.Flavor.Sweetness, i.Flavor.Saltiness, i.Flavor.Sourness, i.Flavor.Bitterness, i.Flavor.Umami} {
		if v < 0 || v > 1 {
			return ErrFlavorOutOfRange
		}
	}
	if i.AromaIntensity < 0 || i.AromaIntensity > 1 {
		return ErrAromaOutOfRange
	}
	return nil
}

// HasTexture reports whether the ingredient carries any of the given textures
func (i Ingredient) HasTexture(textures ...Texture) bool {
	for _, have := range i.Textures {
		for _, want := range textures {
			if have == want {
				return true
			}
		}
	}
	return false
}

// HasAromaCategory reports whether any aroma tag equals one of tags, ignoring case
func (i Ingredient) HasAromaCategory(tags ...string) bool {
	for _, have := range i.AromaCategories {
		for _, want := range tags {
			if strings.EqualFold(strings.TrimSpace(have), want) {
				return true
			}
		}
	}
	return false
}

// HasRole reports whether the ingredient plays any of the given roles
func (i Ingredient) HasRole(roles ...Role) bool {
	for _, r := range roles {
		if i.Role == r {
			return true
		}
	}
	return false
}

// NameMatchesAny reports whether the canonical or localized name contains
// any of the keywords, ignoring case.
func (i Ingredient) NameMatchesAny(keywords []string) bool {
	name := strings.ToLower(i.Name)
	localized := strings.ToLower(i.LocalizedName)
	for _, kw := range keywords {
		if strings.Contains(name, kw) || (localized != "" && strings.Contains(localized, kw)) {
			return true
		}
	}
	return false
}

// DefaultWeight returns the composition weight implied by the ingredient's role
func (i Ingredient) DefaultWeight() int {
	return i.Role.DefaultWeight()
}
