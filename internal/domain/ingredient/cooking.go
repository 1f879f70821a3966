package ingredient

import (
	"strings"

	"github.com/google/uuid"
)

// CookingMethod is a preparation applied to an ingredient. MethodRaw is the
// default and means "no preparation".
type CookingMethod string

const (
	MethodRaw         CookingMethod = "raw"
	MethodBoiled      CookingMethod = "boiled"
	MethodSteamed     CookingMethod = "steamed"
	MethodPoached     CookingMethod = "poached"
	MethodBlanched    CookingMethod = "blanched"
	MethodFried       CookingMethod = "fried"
	MethodDeepFried   CookingMethod = "deep_fried"
	MethodSauteed     CookingMethod = "sauteed"
	MethodRoasted     CookingMethod = "roasted"
	MethodGrilled     CookingMethod = "grilled"
	MethodBaked       CookingMethod = "baked"
	MethodBraised     CookingMethod = "braised"
	MethodStewed      CookingMethod = "stewed"
	MethodSmoked      CookingMethod = "smoked"
	MethodCaramelized CookingMethod = "caramelized"
	MethodPickled     CookingMethod = "pickled"
	MethodFermented   CookingMethod = "fermented"
)

var cookingMethods = []CookingMethod{
	MethodRaw, MethodBoiled, MethodSteamed, MethodPoached, MethodBlanched,
	MethodFried, MethodDeepFried, MethodSauteed, MethodRoasted, MethodGrilled,
	MethodBaked, MethodBraised, MethodStewed, MethodSmoked, MethodCaramelized,
	MethodPickled, MethodFermented,
}

// CookingMethods returns every known cooking method
func CookingMethods() []CookingMethod {
	out := make([]CookingMethod, len(cookingMethods))
	copy(out, cookingMethods)
	return out
}

// ParseCookingMethod maps free text onto a known method. Empty input is raw.
// Anything unrecognised falls back to raw with ok=false so callers can decide
// whether to reject it.
func ParseCookingMethod(s string) (method CookingMethod, ok bool) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	normalized = strings.NewReplacer("-", "_", " ", "_").Replace(normalized)
	if normalized == "" {
		return MethodRaw, true
	}
	for _, m := range cookingMethods {
		if string(m) == normalized {
			return m, true
		}
	}
	return MethodRaw, false
}

// IsRaw reports whether the method leaves the base profile untouched
func (m CookingMethod) IsRaw() bool {
	return m == "" || m == MethodRaw
}

// CookingEffect is a delta applied to a base profile for one
// (ingredient, method) pair. Intensity (gehalte) is never shifted.
type CookingEffect struct {
	IngredientID uuid.UUID     `json:"ingredient_id"`
	Method       CookingMethod `json:"method"`
	Strak        float64       `json:"strak"`
	Filmend      float64       `json:"filmend"`
	Droog        float64       `json:"droog"`
	Type         float64       `json:"type"`
}

// Apply shifts base by the delta, clamping each touched axis to [0,1]
func (e CookingEffect) Apply(base Smaakprofiel) Smaakprofiel {
	return Smaakprofiel{
		Mondgevoel: Mondgevoel{
			Strak:   Clamp01(base.Mondgevoel.Strak + e.Strak),
			Filmend: Clamp01(base.Mondgevoel.Filmend + e.Filmend),
			Droog:   Clamp01(base.Mondgevoel.Droog + e.Droog),
		},
		Smaakrijkdom: Smaakrijkdom{
			Gehalte: base.Smaakrijkdom.Gehalte,
			Type:    Clamp01(base.Smaakrijkdom.Type + e.Type),
		},
	}
}
