package composition

import (
	"time"

	"github.com/alchemorsel/composer/internal/domain/ingredient"
	"github.com/google/uuid"
)

// CompositionCreatedEvent is raised when a new composition is started
type CompositionCreatedEvent struct {
	CompositionID uuid.UUID
	Name          string
	CreatedAt     time.Time
}

func (e CompositionCreatedEvent) AggregateID() uuid.UUID {
	return e.CompositionID
}

func (e CompositionCreatedEvent) EventName() string {
	return "composition.created"
}

func (e CompositionCreatedEvent) OccurredAt() time.Time {
	return e.CreatedAt
}

// IngredientAddedEvent is raised when an ingredient is placed into a composition
type IngredientAddedEvent struct {
	CompositionID uuid.UUID
	IngredientID  uuid.UUID
	Name          string
	Weight        int
	AddedAt       time.Time
}

func (e IngredientAddedEvent) AggregateID() uuid.UUID {
	return e.CompositionID
}

func (e IngredientAddedEvent) EventName() string {
	return "composition.ingredient.added"
}

func (e IngredientAddedEvent) OccurredAt() time.Time {
	return e.AddedAt
}

// IngredientRemovedEvent is raised when an ingredient is taken out
type IngredientRemovedEvent struct {
	CompositionID uuid.UUID
	IngredientID  uuid.UUID
	RemovedAt     time.Time
}

func (e IngredientRemovedEvent) AggregateID() uuid.UUID {
	return e.CompositionID
}

func (e IngredientRemovedEvent) EventName() string {
	return "composition.ingredient.removed"
}

func (e IngredientRemovedEvent) OccurredAt() time.Time {
	return e.RemovedAt
}

// CookingMethodChangedEvent is raised when an ingredient's preparation changes
type CookingMethodChangedEvent struct {
	CompositionID uuid.UUID
	IngredientID  uuid.UUID
	OldMethod     ingredient.CookingMethod
	NewMethod     ingredient.CookingMethod
	ChangedAt     time.Time
}

func (e CookingMethodChangedEvent) AggregateID() uuid.UUID {
	return e.CompositionID
}

func (e CookingMethodChangedEvent) EventName() string {
	return "composition.cooking_method.changed"
}

func (e CookingMethodChangedEvent) OccurredAt() time.Time {
	return e.ChangedAt
}

// WeightChangedEvent is raised when an ingredient's weight is adjusted
type WeightChangedEvent struct {
	CompositionID uuid.UUID
	IngredientID  uuid.UUID
	OldWeight     int
	NewWeight     int
	ChangedAt     time.Time
}

func (e WeightChangedEvent) AggregateID() uuid.UUID {
	return e.CompositionID
}

func (e WeightChangedEvent) EventName() string {
	return "composition.weight.changed"
}

func (e WeightChangedEvent) OccurredAt() time.Time {
	return e.ChangedAt
}
