package analysis

import (
	"fmt"
	"sort"

	"github.com/alchemorsel/composer/internal/domain/ingredient"
	"github.com/google/uuid"
)

// DefaultCandidatesPerElement is how many catalog hits one missing element may contribute
const DefaultCandidatesPerElement = 3

// Keyword lists matched against canonical and localized names
var (
	UmamiKeywords     = []string{"miso", "soy sauce", "soja", "parmesan", "anchovy", "fish sauce", "mushroom", "shiitake", "tomato paste", "kombu", "seaweed", "dashi", "worcestershire"}
	AcidKeywords      = []string{"lemon", "lime", "vinegar", "citrus", "yogurt", "tamarind", "sumac", "citroen", "azijn"}
	FreshnessKeywords = []string{"parsley", "cilantro", "coriander", "basil", "mint", "dill", "chive", "cucumber", "zest", "peterselie", "munt"}
	RichnessKeywords  = []string{"butter", "cream", "oil", "cheese", "avocado", "coconut milk", "ghee", "boter"}
	IntensityKeywords = []string{"garlic", "chili", "ginger", "peppercorn", "black pepper", "mustard", "knoflook", "gember"}
)

// Predicate decides whether a catalog ingredient can fill a missing element
type Predicate func(ing ingredient.Ingredient) bool

// PredicateTable maps element types to their catalog predicate and reason template
type PredicateTable map[ElementType]SuggestionRule

// SuggestionRule is the catalog query and reason template for one element type
type SuggestionRule struct {
	Match  Predicate
	Reason string
}

// DefaultPredicates returns the predicate table shared by both analyses
func DefaultPredicates() PredicateTable {
	return PredicateTable{
		ElementUmami: {
			Match: func(i ingredient.Ingredient) bool {
				return i.Flavor.Umami >= 0.5 || i.NameMatchesAny(UmamiKeywords)
			},
			Reason: "%s adds savory umami depth",
		},
		ElementAcid: {
			Match: func(i ingredient.Ingredient) bool {
				return i.Flavor.Sourness >= 0.5 || i.NameMatchesAny(AcidKeywords)
			},
			Reason: "%s brings acidity to lift the dish",
		},
		ElementCrunch: {
			Match: func(i ingredient.Ingredient) bool {
				return i.HasTexture(ingredient.TextureCrispy, ingredient.TextureCrunchy)
			},
			Reason: "%s adds a crisp textural contrast",
		},
		ElementFreshness: {
			Match: func(i ingredient.Ingredient) bool {
				return i.HasRole(ingredient.RoleFinishing, ingredient.RoleAccent) ||
					i.HasAromaCategory("green", "fresh") ||
					i.NameMatchesAny(FreshnessKeywords)
			},
			Reason: "%s adds a fresh note",
		},
		ElementRichness: {
			Match: func(i ingredient.Ingredient) bool {
				return i.MoleculeType == ingredient.MoleculeFat || i.NameMatchesAny(RichnessKeywords)
			},
			Reason: "%s rounds the dish with richness",
		},
		ElementCarrier: {
			Match: func(i ingredient.Ingredient) bool {
				return i.Role == ingredient.RoleCarrier ||
					i.MoleculeType == ingredient.MoleculeProtein ||
					i.MoleculeType == ingredient.MoleculeCarbohydrate
			},
			Reason: "%s can anchor the dish as its main ingredient",
		},
		ElementIntensity: {
			Match: func(i ingredient.Ingredient) bool {
				return i.AromaIntensity >= 0.6 ||
					i.HasAromaCategory("herbal", "spicy", "pungent") ||
					i.Flavor.Umami >= 0.5 ||
					i.NameMatchesAny(IntensityKeywords)
			},
			Reason: "%s intensifies the aroma",
		},
	}
}

// SuggestOptions tune the suggestion engine
type SuggestOptions struct {
	// PerElement caps candidates per missing element; zero means DefaultCandidatesPerElement.
	PerElement int
	// Limit caps the total; zero means uncapped.
	Limit int
}

// Suggest maps missing elements to catalog candidates. Elements are visited
// high to low priority; within an element candidates keep catalog order.
// Ingredients in present are never suggested and no ingredient is suggested twice.
func Suggest(catalog []ingredient.Ingredient, present map[uuid.UUID]struct{}, missing []MissingElement, table PredicateTable, opts SuggestOptions) []Suggestion {
	perElement := opts.PerElement
	if perElement <= 0 {
		perElement = DefaultCandidatesPerElement
	}

	taken := make(map[uuid.UUID]struct{}, len(present))
	for id := range present {
		taken[id] = struct{}{}
	}

	suggestions := []Suggestion{}
	for _, element := range SortMissing(missing) {
		rule, ok := table[element.Type]
		if !ok || rule.Match == nil {
			continue
		}

		found := 0
		for _, candidate := range catalog {
			if found == perElement {
				break
			}
			if candidate.Placeholder {
				continue
			}
			if _, skip := taken[candidate.ID]; skip {
				continue
			}
			if !rule.Match(candidate) {
				continue
			}

			suggestions = append(suggestions, Suggestion{
				Ingredient:  candidate,
				Reason:      fmt.Sprintf(rule.Reason, candidate.Name),
				ElementType: element.Type,
				Priority:    element.Priority,
			})
			taken[candidate.ID] = struct{}{}
			found++
		}
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		return suggestions[i].Priority.Rank() < suggestions[j].Priority.Rank()
	})

	if opts.Limit > 0 && len(suggestions) > opts.Limit {
		suggestions = suggestions[:opts.Limit]
	}
	return suggestions
}
