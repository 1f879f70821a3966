package ingredient

import "errors"

// Domain errors for ingredient reference data

var (
	ErrNameRequired        = errors.New("ingredient name is required")
	ErrInvalidRole         = errors.New("invalid ingredient role")
	ErrInvalidMoleculeType = errors.New("invalid molecule type")
	ErrInvalidMouthfeel    = errors.New("invalid mouthfeel")
	ErrFlavorOutOfRange    = errors.New("flavor profile values must be between 0 and 1")
	ErrAromaOutOfRange     = errors.New("aroma intensity must be between 0 and 1")
	ErrIngredientNotFound  = errors.New("ingredient not found")
)
