package analysis

import (
	"github.com/alchemorsel/composer/internal/domain/composition"
	"github.com/alchemorsel/composer/internal/domain/ingredient"
)

// AggregateFlavor is the unweighted mean of the gustatory profiles.
// Placeholders are skipped; no ingredients yields the zero profile.
func AggregateFlavor(items []composition.Item) ingredient.FlavorProfile {
	var (
		sum   ingredient.FlavorProfile
		count int
	)
	for _, item := range items {
		if item.Ingredient.Placeholder {
			continue
		}
		sum = sum.Add(item.Ingredient.Flavor)
		count++
	}
	return sum.Divide(float64(count))
}

// AggregateSmaakprofiel is the weight-averaged mouthfeel and richness profile.
// The mouthfeel vector is rescaled when its sum exceeds 1 and the richness
// axes are clamped to [0,1]. A zero total weight yields the zero profile.
func AggregateSmaakprofiel(items []composition.Item) ingredient.Smaakprofiel {
	var (
		strak, filmend, droog, gehalte, typ float64
		total                               float64
	)
	for _, item := range items {
		if item.Ingredient.Placeholder || item.Weight <= 0 {
			continue
		}
		w := float64(item.Weight)
		p := item.Profile
		strak += p.Mondgevoel.Strak * w
		filmend += p.Mondgevoel.Filmend * w
		droog += p.Mondgevoel.Droog * w
		gehalte += p.Smaakrijkdom.Gehalte * w
		typ += p.Smaakrijkdom.Type * w
		total += w
	}
	if total == 0 {
		return ingredient.Smaakprofiel{}
	}

	mondgevoel := ingredient.Mondgevoel{
		Strak:   strak / total,
		Filmend: filmend / total,
		Droog:   droog / total,
	}
	rijkdom := ingredient.Smaakrijkdom{
		Gehalte: gehalte / total,
		Type:    typ / total,
	}

	return ingredient.Smaakprofiel{
		Mondgevoel:   mondgevoel.Normalized(),
		Smaakrijkdom: rijkdom.Clamped(),
	}
}
