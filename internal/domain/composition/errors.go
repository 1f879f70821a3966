package composition

import "errors"

// Domain errors for composition editing

var (
	ErrDuplicateIngredient        = errors.New("ingredient already exists in composition")
	ErrIngredientNotInComposition = errors.New("ingredient is not part of the composition")
	ErrInvalidWeight              = errors.New("weight cannot be negative")
	ErrCompositionNotFound        = errors.New("composition not found")
	ErrDuplicateComposition       = errors.New("composition already exists")
)
