package analysis

import (
	"github.com/alchemorsel/composer/internal/domain/ingredient"
)

// Balance thresholds
const (
	MinStrakFilmendRatio = 0.3
	MaxStrakFilmendRatio = 3.0
	MinRichnessType      = 0.2
	MaxRichnessType      = 0.8
	MinGehalte           = 0.3

	// ratioWithoutFilmend is reported when there is tightness but no coating at all
	ratioWithoutFilmend = 10.0
)

// Issue codes raised by the balance analyzer
const (
	IssueTooCoating    = "too_coating"
	IssueTooTight      = "too_tight"
	IssueTooFresh      = "too_fresh"
	IssueTooRipe       = "too_ripe"
	IssueLowIntensity  = "low_intensity"
	IssueLacksTexture  = "lacks_texture_variety"
	IssueNoCarrier     = "no_carrier"
	IssueLowUmami      = "low_umami"
	IssueLowAcid       = "low_acid"
	IssueNoCrunch      = "no_crunch"
	IssueNoFreshAccent = "no_fresh_accent"
)

// BalanceResult is the evaluation of an aggregate mouthfeel profile
type BalanceResult struct {
	IsBalanced        bool             `json:"is_balanced"`
	StrakFilmendRatio float64          `json:"strak_filmend_ratio"`
	FrisRijpBalans    float64          `json:"fris_rijp_balans"`
	MissingElements   []MissingElement `json:"missing_elements"`
	Suggestions       []string         `json:"suggestions"`
	Narrative         string           `json:"narrative"`
}

// StrakFilmendRatio returns strak/filmend, or a sentinel when filmend is zero:
// 10 if there is any strak, 0 otherwise.
func StrakFilmendRatio(m ingredient.Mondgevoel) float64 {
	if m.Filmend == 0 {
		if m.Strak > 0 {
			return ratioWithoutFilmend
		}
		return 0
	}
	return m.Strak / m.Filmend
}

type balanceRule struct {
	fires    func(p ingredient.Smaakprofiel, ratio float64) bool
	blocking bool
	element  MissingElement
}

var balanceRules = []balanceRule{
	{
		fires:    func(_ ingredient.Smaakprofiel, ratio float64) bool { return ratio < MinStrakFilmendRatio },
		blocking: true,
		element: MissingElement{
			Type:        ElementAcid,
			Priority:    PriorityHigh,
			Issue:       IssueTooCoating,
			Description: "The dish leans heavily on coating, rich elements.",
			Remedy:      "Add acidity such as citrus or vinegar to cut through the richness.",
		},
	},
	{
		fires:    func(_ ingredient.Smaakprofiel, ratio float64) bool { return ratio > MaxStrakFilmendRatio },
		blocking: true,
		element: MissingElement{
			Type:        ElementRichness,
			Priority:    PriorityHigh,
			Issue:       IssueTooTight,
			Description: "The dish is tight and sour with little to coat the palate.",
			Remedy:      "Round it off with butter, cream or a good oil.",
		},
	},
	{
		fires:    func(p ingredient.Smaakprofiel, _ float64) bool { return p.Smaakrijkdom.Type < MinRichnessType },
		blocking: true,
		element: MissingElement{
			Type:        ElementUmami,
			Priority:    PriorityMedium,
			Issue:       IssueTooFresh,
			Description: "The flavor is very fresh and lacks depth.",
			Remedy:      "Add roasted, caramelized or umami-rich elements.",
		},
	},
	{
		fires:    func(p ingredient.Smaakprofiel, _ float64) bool { return p.Smaakrijkdom.Type > MaxRichnessType },
		blocking: true,
		element: MissingElement{
			Type:        ElementFreshness,
			Priority:    PriorityMedium,
			Issue:       IssueTooRipe,
			Description: "The flavor is ripe and heavy.",
			Remedy:      "Lift it with citrus, green herbs or raw vegetables.",
		},
	},
	{
		fires: func(p ingredient.Smaakprofiel, _ float64) bool { return p.Smaakrijkdom.Gehalte < MinGehalte },
		element: MissingElement{
			Type:        ElementIntensity,
			Priority:    PriorityLow,
			Issue:       IssueLowIntensity,
			Description: "The overall flavor intensity is low.",
			Remedy:      "Boost it with herbs, spices or umami.",
		},
	},
	{
		fires: func(p ingredient.Smaakprofiel, _ float64) bool {
			m := p.Mondgevoel
			return m.Droog < 0.1 && m.Strak < 0.3 && m.Filmend < 0.3
		},
		element: MissingElement{
			Type:        ElementCrunch,
			Priority:    PriorityLow,
			Issue:       IssueLacksTexture,
			Description: "The mouthfeel lacks texture variety.",
			Remedy:      "Add something crisp or crunchy for contrast.",
		},
	},
}

// AnalyzeBalance evaluates an aggregate profile against the balance rules.
// Every rule is evaluated; only the ratio and freshness/ripeness rules affect
// IsBalanced, the intensity and texture rules are advisory.
func AnalyzeBalance(p ingredient.Smaakprofiel) BalanceResult {
	ratio := StrakFilmendRatio(p.Mondgevoel)
	result := BalanceResult{
		IsBalanced:        true,
		StrakFilmendRatio: ratio,
		FrisRijpBalans:    p.Smaakrijkdom.Type,
		MissingElements:   []MissingElement{},
		Suggestions:       []string{},
	}

	for _, rule := range balanceRules {
		if !rule.fires(p, ratio) {
			continue
		}
		if rule.blocking {
			result.IsBalanced = false
		}
		result.MissingElements = append(result.MissingElements, rule.element)
		result.Suggestions = append(result.Suggestions, rule.element.Remedy)
	}

	result.Narrative = Narrative(p, result.MissingElements)
	return result
}
