package analysis

import (
	"github.com/alchemorsel/composer/internal/domain/composition"
	"github.com/alchemorsel/composer/internal/domain/ingredient"
)

// DefaultGustatorySuggestionLimit caps the gustatory suggestion list
const DefaultGustatorySuggestionLimit = 8

// Strategy parameterizes the shared aggregate, detect, suggest pipeline.
// P is the aggregate profile type and R the strategy's evaluation report.
type Strategy[P, R any] interface {
	Name() string
	Aggregate(items []composition.Item) P
	Evaluate(profile P) (R, []MissingElement)
	Predicates() PredicateTable
	// SuggestionLimit caps the total suggestions; zero means uncapped.
	SuggestionLimit() int
}

// Outcome is the result of running a strategy over a composition
type Outcome[P, R any] struct {
	Profile     P
	Report      R
	Missing     []MissingElement
	Suggestions []Suggestion
}

// Run aggregates the items, evaluates the profile and looks up catalog
// candidates for every missing element. It never fails.
func Run[P, R any](s Strategy[P, R], items []composition.Item, catalog []ingredient.Ingredient, perElement int) Outcome[P, R] {
	profile := s.Aggregate(items)
	report, missing := s.Evaluate(profile)

	present := composition.IngredientIDs(items)

	return Outcome[P, R]{
		Profile: profile,
		Report:  report,
		Missing: missing,
		Suggestions: Suggest(catalog, present, missing, s.Predicates(), SuggestOptions{
			PerElement: perElement,
			Limit:      s.SuggestionLimit(),
		}),
	}
}

// GustatoryOutcome is the gustatory pipeline result
type GustatoryOutcome = Outcome[GustatoryProfile, GustatoryReport]

// MouthfeelOutcome is the mouthfeel pipeline result
type MouthfeelOutcome = Outcome[ingredient.Smaakprofiel, BalanceResult]

// GustatoryReport is the evaluation of a gustatory profile
type GustatoryReport struct {
	OverallScore int `json:"overall_score"`
}

// GustatoryStrategy analyzes the five taste axes with an unweighted mean
type GustatoryStrategy struct {
	MaxSuggestions int
	predicates     PredicateTable
}

// NewGustatoryStrategy creates the gustatory strategy; a non-positive limit uses the default of 8
func NewGustatoryStrategy(maxSuggestions int) GustatoryStrategy {
	if maxSuggestions <= 0 {
		maxSuggestions = DefaultGustatorySuggestionLimit
	}
	return GustatoryStrategy{MaxSuggestions: maxSuggestions, predicates: DefaultPredicates()}
}

func (GustatoryStrategy) Name() string { return "gustatory" }

func (GustatoryStrategy) Aggregate(items []composition.Item) GustatoryProfile {
	return AggregateGustatory(items)
}

func (GustatoryStrategy) Evaluate(p GustatoryProfile) (GustatoryReport, []MissingElement) {
	missing := DetectGustatory(p)
	return GustatoryReport{OverallScore: GustatoryScore(missing)}, missing
}

func (s GustatoryStrategy) Predicates() PredicateTable {
	if s.predicates == nil {
		return DefaultPredicates()
	}
	return s.predicates
}

func (s GustatoryStrategy) SuggestionLimit() int { return s.MaxSuggestions }

// Analyze runs the shared pipeline with this strategy
func (s GustatoryStrategy) Analyze(items []composition.Item, catalog []ingredient.Ingredient, perElement int) GustatoryOutcome {
	return Run[GustatoryProfile, GustatoryReport](s, items, catalog, perElement)
}

// MouthfeelStrategy analyzes the weighted mouthfeel and richness profile
type MouthfeelStrategy struct {
	predicates PredicateTable
}

// NewMouthfeelStrategy creates the mouthfeel strategy
func NewMouthfeelStrategy() MouthfeelStrategy {
	return MouthfeelStrategy{predicates: DefaultPredicates()}
}

func (MouthfeelStrategy) Name() string { return "mouthfeel" }

func (MouthfeelStrategy) Aggregate(items []composition.Item) ingredient.Smaakprofiel {
	return AggregateSmaakprofiel(items)
}

func (MouthfeelStrategy) Evaluate(p ingredient.Smaakprofiel) (BalanceResult, []MissingElement) {
	result := AnalyzeBalance(p)
	return result, result.MissingElements
}

func (s MouthfeelStrategy) Predicates() PredicateTable {
	if s.predicates == nil {
		return DefaultPredicates()
	}
	return s.predicates
}

// SuggestionLimit is zero: the mouthfeel variant leaves trimming to the caller.
func (MouthfeelStrategy) SuggestionLimit() int { return 0 }

// Analyze runs the shared pipeline with this strategy
func (s MouthfeelStrategy) Analyze(items []composition.Item, catalog []ingredient.Ingredient, perElement int) MouthfeelOutcome {
	return Run[ingredient.Smaakprofiel, BalanceResult](s, items, catalog, perElement)
}
