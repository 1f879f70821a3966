package ingredient

// Value Objects - Immutable objects that describe aspects of an ingredient

// FlavorProfile is the five-axis gustatory profile, each axis in [0,1]
type FlavorProfile struct {
	Sweetness  float64 `json:"sweetness"`
	Saltiness  float64 `json:"saltiness"`
	Sourness   float64 `json:"sourness"`
	Bitterness float64 `json:"bitterness"`
	Umami      float64 `json:"umami"`
}

// Add returns the pointwise sum of two profiles
func (f FlavorProfile) Add(o FlavorProfile) FlavorProfile {
	return FlavorProfile{
		Sweetness:  f.Sweetness + o.Sweetness,
		Saltiness:  f.Saltiness + o.Saltiness,
		Sourness:   f.Sourness + o.Sourness,
		Bitterness: f.Bitterness + o.Bitterness,
		Umami:      f.Umami + o.Umami,
	}
}

// Divide returns the profile scaled by 1/n. A zero divisor yields the zero profile.
func (f FlavorProfile) Divide(n float64) FlavorProfile {
	if n == 0 {
		return FlavorProfile{}
	}
	return FlavorProfile{
		Sweetness:  f.Sweetness / n,
		Saltiness:  f.Saltiness / n,
		Sourness:   f.Sourness / n,
		Bitterness: f.Bitterness / n,
		Umami:      f.Umami / n,
	}
}

// IsZero reports whether every axis is zero
func (f FlavorProfile) IsZero() bool {
	return f == FlavorProfile{}
}

// Role describes the function an ingredient plays in a dish
type Role string

const (
	RoleCarrier    Role = "carrier"
	RoleSupporting Role = "supporting"
	RoleAccent     Role = "accent"
	RoleFinishing  Role = "finishing"
)

// DefaultWeight returns the weight an ingredient of this role gets when
// placed in a composition without an explicit weight.
func (r Role) DefaultWeight() int {
	switch r {
	case RoleCarrier:
		return 100
	case RoleSupporting:
		return 25
	case RoleAccent:
		return 15
	case RoleFinishing:
		return 10
	default:
		return 0
	}
}

// IsValid checks if the role is known
func (r Role) IsValid() bool {
	switch r {
	case RoleCarrier, RoleSupporting, RoleAccent, RoleFinishing:
		return true
	}
	return false
}

// MoleculeType is the dominant molecular make-up of an ingredient
type MoleculeType string

const (
	MoleculeWater        MoleculeType = "water"
	MoleculeFat          MoleculeType = "fat"
	MoleculeCarbohydrate MoleculeType = "carbohydrate"
	MoleculeProtein      MoleculeType = "protein"
	MoleculeMixed        MoleculeType = "mixed"
)

// IsValid checks if the molecule type is known
func (m MoleculeType) IsValid() bool {
	switch m {
	case MoleculeWater, MoleculeFat, MoleculeCarbohydrate, MoleculeProtein, MoleculeMixed:
		return true
	}
	return false
}

// Texture is a texture tag
type Texture string

const (
	TextureCrispy  Texture = "crispy"
	TextureCrunchy Texture = "crunchy"
	TextureCreamy  Texture = "creamy"
	TextureSmooth  Texture = "smooth"
	TextureSoft    Texture = "soft"
	TextureTender  Texture = "tender"
	TextureChewy   Texture = "chewy"
	TextureFirm    Texture = "firm"
	TextureJuicy   Texture = "juicy"
	TextureFlaky   Texture = "flaky"
)

// Mouthfeel is the dominant sensation an ingredient leaves in the mouth
type Mouthfeel string

const (
	MouthfeelNone       Mouthfeel = ""
	MouthfeelAstringent Mouthfeel = "astringent"
	MouthfeelCoating    Mouthfeel = "coating"
	MouthfeelDry        Mouthfeel = "dry"
	MouthfeelRefreshing Mouthfeel = "refreshing"
	MouthfeelRich       Mouthfeel = "rich"
)

// IsValid checks if the mouthfeel is known; the empty mouthfeel is valid
func (m Mouthfeel) IsValid() bool {
	switch m {
	case MouthfeelNone, MouthfeelAstringent, MouthfeelCoating, MouthfeelDry, MouthfeelRefreshing, MouthfeelRich:
		return true
	}
	return false
}

// Mondgevoel is the mouthfeel vector: tight/astringent, coating/rich and dry
type Mondgevoel struct {
	Strak   float64 `json:"strak"`
	Filmend float64 `json:"filmend"`
	Droog   float64 `json:"droog"`
}

// Sum returns strak+filmend+droog
func (m Mondgevoel) Sum() float64 {
	return m.Strak + m.Filmend + m.Droog
}

// Normalized rescales the vector so that its sum does not exceed 1
func (m Mondgevoel) Normalized() Mondgevoel {
	sum := m.Sum()
	if sum <= 1 {
		return m
	}
	return Mondgevoel{
		Strak:   m.Strak / sum,
		Filmend: m.Filmend / sum,
		Droog:   m.Droog / sum,
	}
}

// Smaakrijkdom is the richness vector: intensity and the freshness to ripeness axis
type Smaakrijkdom struct {
	Gehalte float64 `json:"gehalte"`
	Type    float64 `json:"type"`
}

// Clamped returns the vector with both axes clamped to [0,1]
func (s Smaakrijkdom) Clamped() Smaakrijkdom {
	return Smaakrijkdom{Gehalte: Clamp01(s.Gehalte), Type: Clamp01(s.Type)}
}

// Smaakprofiel combines mouthfeel and richness for one ingredient preparation
// or for a whole composition.
type Smaakprofiel struct {
	Mondgevoel   Mondgevoel   `json:"mondgevoel"`
	Smaakrijkdom Smaakrijkdom `json:"smaakrijkdom"`
}

// Clamp01 clamps v into [0,1]
func Clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
