package analysis

import (
	"github.com/alchemorsel/composer/internal/domain/composition"
	"github.com/alchemorsel/composer/internal/domain/ingredient"
)

// Gustatory thresholds and score deductions
const (
	MinUmami    = 0.3
	MinSourness = 0.3

	maxScore = 100
)

var scoreDeductions = map[ElementType]int{
	ElementCarrier: 25,
	ElementUmami:   15,
	ElementAcid:    10,
	ElementCrunch:  10,
}

// GustatoryProfile is the aggregate of the five taste axes plus the
// structural facts the gustatory rules look at.
type GustatoryProfile struct {
	Flavor          ingredient.FlavorProfile `json:"flavor"`
	Carrier         *ingredient.Ingredient   `json:"carrier"`
	IngredientCount int                      `json:"ingredient_count"`
	HasCrunch       bool                     `json:"has_crunch"`
	HasFreshAccent  bool                     `json:"has_fresh_accent"`
}

// AggregateGustatory builds the gustatory profile of the non-placeholder items
func AggregateGustatory(items []composition.Item) GustatoryProfile {
	profile := GustatoryProfile{Flavor: AggregateFlavor(items)}

	for _, item := range items {
		ing := item.Ingredient
		if ing.Placeholder {
			continue
		}
		profile.IngredientCount++
		if profile.Carrier == nil && ing.Role == ingredient.RoleCarrier {
			carrier := ing
			profile.Carrier = &carrier
		}
		if ing.HasTexture(ingredient.TextureCrispy, ingredient.TextureCrunchy) {
			profile.HasCrunch = true
		}
		if ing.HasRole(ingredient.RoleAccent, ingredient.RoleFinishing) {
			profile.HasFreshAccent = true
		}
	}

	return profile
}

// DetectGustatory returns the gaps in a gustatory profile in rule order.
// Acid and texture are only judged once something is on the plate.
func DetectGustatory(p GustatoryProfile) []MissingElement {
	missing := []MissingElement{}

	if p.Carrier == nil {
		missing = append(missing, MissingElement{
			Type:        ElementCarrier,
			Priority:    PriorityHigh,
			Issue:       IssueNoCarrier,
			Description: "No main ingredient anchors the dish.",
			Remedy:      "Choose a protein, starch or featured vegetable as the carrier.",
		})
	}
	if p.Flavor.Umami < MinUmami {
		missing = append(missing, MissingElement{
			Type:        ElementUmami,
			Priority:    PriorityMedium,
			Issue:       IssueLowUmami,
			Description: "The dish lacks savory depth.",
			Remedy:      "Add an umami-rich ingredient.",
		})
	}
	if p.IngredientCount > 0 && p.Flavor.Sourness < MinSourness {
		missing = append(missing, MissingElement{
			Type:        ElementAcid,
			Priority:    PriorityMedium,
			Issue:       IssueLowAcid,
			Description: "There is little acidity to brighten the flavors.",
			Remedy:      "Add a squeeze of citrus or a splash of vinegar.",
		})
	}
	if p.IngredientCount > 0 && !p.HasCrunch {
		missing = append(missing, MissingElement{
			Type:        ElementCrunch,
			Priority:    PriorityLow,
			Issue:       IssueNoCrunch,
			Description: "Nothing in the dish provides crunch.",
			Remedy:      "Add a crisp or crunchy element.",
		})
	}
	if p.IngredientCount >= 2 && !p.HasFreshAccent {
		missing = append(missing, MissingElement{
			Type:        ElementFreshness,
			Priority:    PriorityLow,
			Issue:       IssueNoFreshAccent,
			Description: "No accent or finishing ingredient lifts the dish.",
			Remedy:      "Finish with fresh herbs or zest.",
		})
	}

	return missing
}

// GustatoryScore is 100 minus one fixed deduction per detected gap, clamped
// to [0,100]. Freshness is advisory and costs nothing.
func GustatoryScore(missing []MissingElement) int {
	score := maxScore
	for _, m := range missing {
		score -= scoreDeductions[m.Type]
	}
	if score < 0 {
		return 0
	}
	return score
}
