package ingredient

// Heuristic base-profile derivation, used only when an ingredient has no
// stored base profile. Each axis is an ordered rule list; the first match wins.

const defaultGehalte = 0.3

var (
	freshAromas   = []string{"green", "fresh", "citrus"}
	ripeAromas    = []string{"roasted", "caramel", "earthy"}
	toastedAromas = []string{"toasted", "smoky"}
)

// DeriveProfile estimates a Smaakprofiel from the ingredient's flavor,
// mouthfeel, molecule type, textures and aroma metadata.
func DeriveProfile(i Ingredient) Smaakprofiel {
	return Smaakprofiel{
		Mondgevoel: Mondgevoel{
			Strak:   DeriveStrak(i),
			Filmend: DeriveFilmend(i),
			Droog:   DeriveDroog(i),
		},
		Smaakrijkdom: Smaakrijkdom{
			Gehalte: DeriveGehalte(i),
			Type:    DeriveType(i),
		},
	}
}

// DeriveStrak estimates the tight/astringent axis
func DeriveStrak(i Ingredient) float64 {
	switch {
	case i.Mouthfeel == MouthfeelAstringent:
		return 0.8
	case i.Flavor.Sourness > 0.5:
		return 0.7
	case i.Flavor.Sourness > 0.3:
		return 0.5
	case i.Flavor.Saltiness > 0.5:
		return 0.3
	default:
		return 0.1
	}
}

// DeriveFilmend estimates the coating/rich axis
func DeriveFilmend(i Ingredient) float64 {
	switch {
	case i.Mouthfeel == MouthfeelCoating:
		return 0.8
	case i.Mouthfeel == MouthfeelRich:
		return 0.7
	case i.MoleculeType == MoleculeFat:
		return 0.9
	case i.Flavor.Umami > 0.5:
		return 0.6
	case i.Flavor.Umami > 0.3:
		return 0.4
	default:
		return 0.1
	}
}

// DeriveDroog estimates the dry axis
func DeriveDroog(i Ingredient) float64 {
	switch {
	case i.Mouthfeel == MouthfeelDry:
		return 0.8
	case i.MoleculeType == MoleculeCarbohydrate && i.HasTexture(TextureCrispy, TextureCrunchy):
		return 0.7
	case i.MoleculeType == MoleculeCarbohydrate:
		return 0.4
	default:
		return 0.1
	}
}

// DeriveType estimates the freshness (0) to ripeness (1) axis from aroma tags
func DeriveType(i Ingredient) float64 {
	switch {
	case i.HasAromaCategory(freshAromas...):
		return 0.2
	case i.HasAromaCategory(ripeAromas...):
		return 0.8
	case i.HasAromaCategory(toastedAromas...):
		return 0.75
	default:
		return 0.5
	}
}

// DeriveGehalte uses the stored aroma intensity, or a low default when unset
func DeriveGehalte(i Ingredient) float64 {
	if i.AromaIntensity <= 0 {
		return defaultGehalte
	}
	return Clamp01(i.AromaIntensity)
}
