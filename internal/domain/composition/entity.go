package composition

import (
	"time"

	"github.com/alchemorsel/composer/internal/domain/ingredient"
	"github.com/alchemorsel/composer/internal/domain/shared"
	"github.com/google/uuid"
)

// Item is an ingredient placed into a composition together with the
// profile resolved for its cooking method and its weight.
type Item struct {
	Ingredient    ingredient.Ingredient    `json:"ingredient"`
	Profile       ingredient.Smaakprofiel  `json:"profile"`
	CookingMethod ingredient.CookingMethod `json:"cooking_method"`
	Weight        int                      `json:"weight"`
}

// NewItem builds an item. A non-positive weight falls back to the default
// weight for the ingredient's role.
func NewItem(ing ingredient.Ingredient, profile ingredient.Smaakprofiel, method ingredient.CookingMethod, weight int) Item {
	if weight <= 0 {
		weight = ing.DefaultWeight()
	}
	if method == "" {
		method = ingredient.MethodRaw
	}
	return Item{Ingredient: ing, Profile: profile, CookingMethod: method, Weight: weight}
}

// Composition is the in-progress, user-editable set of ingredients of a dish.
// It lives only in session state and is never persisted.
type Composition struct {
	shared.AggregateRoot

	id        uuid.UUID
	name      string
	items     []Item
	createdAt time.Time
	updatedAt time.Time
	version   int64
}

// NewComposition creates an empty composition
func NewComposition(name string) *Composition {
	now := time.Now()
	c := &Composition{
		id:        uuid.New(),
		name:      name,
		items:     []Item{},
		createdAt: now,
		updatedAt: now,
		version:   1,
	}

	c.AddEvent(CompositionCreatedEvent{
		CompositionID: c.id,
		Name:          name,
		CreatedAt:     now,
	})

	return c
}

// AddIngredient places an item into the composition
func (c *Composition) AddIngredient(item Item) error {
	if item.Weight < 0 {
		return ErrInvalidWeight
	}
	if c.indexOf(item.Ingredient.ID) >= 0 {
		return ErrDuplicateIngredient
	}

	c.items = append(c.items, item)
	c.touch()

	c.AddEvent(IngredientAddedEvent{
		CompositionID: c.id,
		IngredientID:  item.Ingredient.ID,
		Name:          item.Ingredient.Name,
		Weight:        item.Weight,
		AddedAt:       c.updatedAt,
	})

	return nil
}

// RemoveIngredient removes an ingredient by id
func (c *Composition) RemoveIngredient(ingredientID uuid.UUID) error {
	idx := c.indexOf(ingredientID)
	if idx < 0 {
		return ErrIngredientNotInComposition
	}

	c.items = append(c.items[:idx], c.items[idx+1:]...)
	c.touch()

	c.AddEvent(IngredientRemovedEvent{
		CompositionID: c.id,
		IngredientID:  ingredientID,
		RemovedAt:     c.updatedAt,
	})

	return nil
}

// SetCookingMethod records a new cooking method and the profile resolved for it
func (c *Composition) SetCookingMethod(ingredientID uuid.UUID, method ingredient.CookingMethod, profile ingredient.Smaakprofiel) error {
	idx := c.indexOf(ingredientID)
	if idx < 0 {
		return ErrIngredientNotInComposition
	}
	if method == "" {
		method = ingredient.MethodRaw
	}

	previous := c.items[idx].CookingMethod
	c.items[idx].CookingMethod = method
	c.items[idx].Profile = profile
	c.touch()

	c.AddEvent(CookingMethodChangedEvent{
		CompositionID: c.id,
		IngredientID:  ingredientID,
		OldMethod:     previous,
		NewMethod:     method,
		ChangedAt:     c.updatedAt,
	})

	return nil
}

// SetWeight changes the weight of an ingredient already in the composition
func (c *Composition) SetWeight(ingredientID uuid.UUID, weight int) error {
	if weight < 0 {
		return ErrInvalidWeight
	}
	idx := c.indexOf(ingredientID)
	if idx < 0 {
		return ErrIngredientNotInComposition
	}

	previous := c.items[idx].Weight
	c.items[idx].Weight = weight
	c.touch()

	c.AddEvent(WeightChangedEvent{
		CompositionID: c.id,
		IngredientID:  ingredientID,
		OldWeight:     previous,
		NewWeight:     weight,
		ChangedAt:     c.updatedAt,
	})

	return nil
}

// Getters

func (c *Composition) ID() uuid.UUID        { return c.id }
func (c *Composition) Name() string         { return c.name }
func (c *Composition) CreatedAt() time.Time { return c.createdAt }
func (c *Composition) UpdatedAt() time.Time { return c.updatedAt }
func (c *Composition) Version() int64       { return c.version }
func (c *Composition) Len() int             { return len(c.items) }

// Items returns a copy of the composition's items in insertion order
func (c *Composition) Items() []Item {
	out := make([]Item, len(c.items))
	copy(out, c.items)
	return out
}

// Item returns the item for an ingredient id
func (c *Composition) Item(ingredientID uuid.UUID) (Item, bool) {
	idx := c.indexOf(ingredientID)
	if idx < 0 {
		return Item{}, false
	}
	return c.items[idx], true
}

// IngredientIDs returns the set of ingredient ids placed in items
func IngredientIDs(items []Item) map[uuid.UUID]struct{} {
	ids := make(map[uuid.UUID]struct{}, len(items))
	for _, item := range items {
		ids[item.Ingredient.ID] = struct{}{}
	}
	return ids
}

func (c *Composition) indexOf(ingredientID uuid.UUID) int {
	for i, item := range c.items {
		if item.Ingredient.ID == ingredientID {
			return i
		}
	}
	return -1
}

func (c *Composition) touch() {
	c.updatedAt = time.Now()
	c.version++
}
