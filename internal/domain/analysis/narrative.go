package analysis

import (
	"fmt"
	"strings"

	"github.com/alchemorsel/composer/internal/domain/ingredient"
)

// Narrative describes a profile in plain language. It is built only from the
// fired flags, in rule order, so equal inputs always produce equal text.
func Narrative(p ingredient.Smaakprofiel, fired []MissingElement) string {
	if len(fired) == 0 {
		return fmt.Sprintf("Well balanced: the composition is %s and %s, with a harmonious mouthfeel.",
			intensityAdjective(p.Smaakrijkdom.Gehalte), typeAdjective(p.Smaakrijkdom.Type))
	}

	parts := make([]string, 0, len(fired)*2)
	for _, m := range fired {
		parts = append(parts, m.Description)
		if m.Remedy != "" {
			parts = append(parts, m.Remedy)
		}
	}
	return strings.Join(parts, " ")
}

func intensityAdjective(gehalte float64) string {
	switch {
	case gehalte < 0.3:
		return "delicate"
	case gehalte < 0.6:
		return "medium-bodied"
	default:
		return "intense"
	}
}

func typeAdjective(t float64) string {
	switch {
	case t < 0.4:
		return "fresh"
	case t <= 0.6:
		return "rounded"
	default:
		return "ripe"
	}
}
