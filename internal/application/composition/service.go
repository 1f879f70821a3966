// Package composition implements the composition analysis use cases
package composition

import (
	"context"
	stderrors "errors"
	"strings"
	"time"

	"github.com/alchemorsel/composer/internal/application/catalog"
	"github.com/alchemorsel/composer/internal/application/cooking"
	"github.com/alchemorsel/composer/internal/domain/analysis"
	domain "github.com/alchemorsel/composer/internal/domain/composition"
	"github.com/alchemorsel/composer/internal/domain/ingredient"
	"github.com/alchemorsel/composer/internal/ports/inbound"
	"github.com/alchemorsel/composer/internal/ports/outbound"
	"github.com/alchemorsel/composer/pkg/errors"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// Config tunes the analysis pipelines
type Config struct {
	MaxGustatorySuggestions int
	CandidatesPerElement    int
}

// Service implements the CompositionService interface
type Service struct {
	catalog   *catalog.Cache
	resolver  *cooking.Resolver
	store     outbound.CompositionStore
	metrics   outbound.AnalysisMetrics
	gustatory analysis.GustatoryStrategy
	mouthfeel analysis.MouthfeelStrategy
	config    Config
	tracer    trace.Tracer
	logger    *zap.Logger
}

// NewService creates a new composition service. metrics may be nil.
func NewService(
	cache *catalog.Cache,
	resolver *cooking.Resolver,
	store outbound.CompositionStore,
	metrics outbound.AnalysisMetrics,
	config Config,
	logger *zap.Logger,
) inbound.CompositionService {
	if config.CandidatesPerElement <= 0 {
		config.CandidatesPerElement = analysis.DefaultCandidatesPerElement
	}
	return &Service{
		catalog:   cache,
		resolver:  resolver,
		store:     store,
		metrics:   metrics,
		gustatory: analysis.NewGustatoryStrategy(config.MaxGustatorySuggestions),
		mouthfeel: analysis.NewMouthfeelStrategy(),
		config:    config,
		tracer:    otel.Tracer("github.com/alchemorsel/composer/composition"),
		logger:    logger.Named("composition-service"),
	}
}

// AnalyzeComposition runs the gustatory analysis over free-text names. When
// the catalog cannot be loaded it returns an empty, retryable analysis.
func (s *Service) AnalyzeComposition(ctx context.Context, names []string) (*inbound.CompositionAnalysis, error) {
	ctx, span := s.tracer.Start(ctx, "composition.analyze",
		trace.WithAttributes(attribute.Int("composition.names", len(names))))
	defer span.End()
	start := time.Now()

	snap, err := s.catalog.Get(ctx)
	if err != nil {
		s.degraded(ctx, "gustatory", err)
		return emptyAnalysis(), nil
	}

	resolved, items := s.resolveNames(ctx, snap, names)
	outcome := s.gustatory.Analyze(items, snap.Ingredients(), s.config.CandidatesPerElement)

	result := &inbound.CompositionAnalysis{
		Ingredients:     resolved,
		FlavorProfile:   outcome.Profile.Flavor,
		Smaakprofiel:    analysis.AggregateSmaakprofiel(items),
		Carrier:         outcome.Profile.Carrier,
		OverallScore:    outcome.Report.OverallScore,
		MissingElements: outcome.Missing,
		Suggestions:     outcome.Suggestions,
		Unresolved:      unresolved(resolved),
	}

	span.SetAttributes(
		attribute.Int("composition.score", result.OverallScore),
		attribute.Int("composition.unresolved", len(result.Unresolved)),
	)
	if s.metrics != nil {
		s.metrics.ObserveAnalysis("gustatory", time.Since(start), len(result.MissingElements), len(result.Suggestions))
		s.metrics.ObserveGustatoryScore(result.OverallScore)
		s.metrics.ObserveUnresolvedNames(len(result.Unresolved))
	}
	s.logger.Debug("Composition analyzed",
		zap.Int("ingredients", len(names)),
		zap.Int("score", result.OverallScore),
		zap.Int("missing_elements", len(result.MissingElements)),
		zap.Strings("unresolved", result.Unresolved),
	)

	return result, nil
}

// GetSuggestions returns the ranked gustatory suggestions for free-text names
func (s *Service) GetSuggestions(ctx context.Context, names []string) (*inbound.SuggestionList, error) {
	result, err := s.AnalyzeComposition(ctx, names)
	if err != nil {
		return nil, err
	}
	return &inbound.SuggestionList{Suggestions: result.Suggestions, Retryable: result.Retryable}, nil
}

// CreateComposition starts an empty composition in session state
func (s *Service) CreateComposition(ctx context.Context, cmd inbound.CreateCompositionCommand) (*inbound.CompositionDTO, error) {
	c := domain.NewComposition(strings.TrimSpace(cmd.Name))
	s.logEvents(c)
	if err := s.store.Create(ctx, c); err != nil {
		return nil, errors.Wrap(err, "failed to create composition")
	}

	s.logger.Info("Composition created", zap.String("composition_id", c.ID().String()))
	return toDTO(c), nil
}

// GetComposition returns a composition with its current profile
func (s *Service) GetComposition(ctx context.Context, compositionID uuid.UUID) (*inbound.CompositionDTO, error) {
	var dto *inbound.CompositionDTO
	err := s.store.View(ctx, compositionID, func(c *domain.Composition) error {
		dto = toDTO(c)
		return nil
	})
	if err != nil {
		return nil, s.mapError(err, compositionID, uuid.Nil)
	}
	return dto, nil
}

// DeleteComposition discards a composition
func (s *Service) DeleteComposition(ctx context.Context, compositionID uuid.UUID) error {
	if err := s.store.Delete(ctx, compositionID); err != nil {
		return s.mapError(err, compositionID, uuid.Nil)
	}
	s.logger.Info("Composition deleted", zap.String("composition_id", compositionID.String()))
	return nil
}

// AddIngredient places a catalog ingredient, or a placeholder for an unknown
// name, into a composition.
func (s *Service) AddIngredient(ctx context.Context, cmd inbound.AddIngredientCommand) (*inbound.CompositionDTO, error) {
	method, ok := ingredient.ParseCookingMethod(cmd.CookingMethod)
	if !ok {
		return nil, errors.NewInvalidCookingMethodError(cmd.CookingMethod)
	}
	if cmd.Weight != nil && *cmd.Weight < 0 {
		return nil, errors.NewValidationError("weight cannot be negative")
	}

	snap, err := s.catalog.Get(ctx)
	if err != nil {
		return nil, err
	}

	ing, err := s.lookupIngredient(snap, cmd.Ingredient)
	if err != nil {
		return nil, err
	}

	weight := 0
	if cmd.Weight != nil {
		weight = *cmd.Weight
	}
	item := domain.NewItem(ing, s.resolver.Resolve(ctx, ing, method), method, weight)

	var dto *inbound.CompositionDTO
	err = s.store.Update(ctx, cmd.CompositionID, func(c *domain.Composition) error {
		if err := c.AddIngredient(item); err != nil {
			return err
		}
		s.logEvents(c)
		dto = toDTO(c)
		return nil
	})
	if err != nil {
		return nil, s.mapError(err, cmd.CompositionID, ing.ID)
	}
	return dto, nil
}

// RemoveIngredient takes an ingredient out of a composition
func (s *Service) RemoveIngredient(ctx context.Context, compositionID, ingredientID uuid.UUID) (*inbound.CompositionDTO, error) {
	var dto *inbound.CompositionDTO
	err := s.store.Update(ctx, compositionID, func(c *domain.Composition) error {
		if err := c.RemoveIngredient(ingredientID); err != nil {
			return err
		}
		s.logEvents(c)
		dto = toDTO(c)
		return nil
	})
	if err != nil {
		return nil, s.mapError(err, compositionID, ingredientID)
	}
	return dto, nil
}

// SetCookingMethod changes how an ingredient is prepared and re-resolves its profile
func (s *Service) SetCookingMethod(ctx context.Context, cmd inbound.SetCookingMethodCommand) (*inbound.CompositionDTO, error) {
	method, ok := ingredient.ParseCookingMethod(cmd.CookingMethod)
	if !ok {
		return nil, errors.NewInvalidCookingMethodError(cmd.CookingMethod)
	}

	var current domain.Item
	err := s.store.View(ctx, cmd.CompositionID, func(c *domain.Composition) error {
		item, found := c.Item(cmd.IngredientID)
		if !found {
			return domain.ErrIngredientNotInComposition
		}
		current = item
		return nil
	})
	if err != nil {
		return nil, s.mapError(err, cmd.CompositionID, cmd.IngredientID)
	}

	profile := s.resolver.Resolve(ctx, current.Ingredient, method)

	var dto *inbound.CompositionDTO
	err = s.store.Update(ctx, cmd.CompositionID, func(c *domain.Composition) error {
		if err := c.SetCookingMethod(cmd.IngredientID, method, profile); err != nil {
			return err
		}
		s.logEvents(c)
		dto = toDTO(c)
		return nil
	})
	if err != nil {
		return nil, s.mapError(err, cmd.CompositionID, cmd.IngredientID)
	}
	return dto, nil
}

// SetWeight adjusts the weight of an ingredient already in a composition
func (s *Service) SetWeight(ctx context.Context, cmd inbound.SetWeightCommand) (*inbound.CompositionDTO, error) {
	if cmd.Weight < 0 {
		return nil, errors.NewValidationError("weight cannot be negative")
	}

	var dto *inbound.CompositionDTO
	err := s.store.Update(ctx, cmd.CompositionID, func(c *domain.Composition) error {
		weight := cmd.Weight
		if weight == 0 {
			item, found := c.Item(cmd.IngredientID)
			if !found {
				return domain.ErrIngredientNotInComposition
			}
			weight = item.Ingredient.DefaultWeight()
		}
		if err := c.SetWeight(cmd.IngredientID, weight); err != nil {
			return err
		}
		s.logEvents(c)
		dto = toDTO(c)
		return nil
	})
	if err != nil {
		return nil, s.mapError(err, cmd.CompositionID, cmd.IngredientID)
	}
	return dto, nil
}

// ComputeProfile returns the weighted aggregate profile of a composition
func (s *Service) ComputeProfile(ctx context.Context, compositionID uuid.UUID) (*ingredient.Smaakprofiel, error) {
	items, err := s.items(ctx, compositionID)
	if err != nil {
		return nil, err
	}
	profile := analysis.AggregateSmaakprofiel(items)
	return &profile, nil
}

// AnalyzeMouthfeel runs the mouthfeel and richness analysis of a composition.
// Without a catalog the balance is still reported, with no suggestions.
func (s *Service) AnalyzeMouthfeel(ctx context.Context, compositionID uuid.UUID) (*inbound.MouthfeelAnalysis, error) {
	ctx, span := s.tracer.Start(ctx, "composition.analyze_mouthfeel",
		trace.WithAttributes(attribute.String("composition.id", compositionID.String())))
	defer span.End()
	start := time.Now()

	items, err := s.items(ctx, compositionID)
	if err != nil {
		return nil, err
	}

	var (
		catalogIngredients []ingredient.Ingredient
		retryable          bool
	)
	if snap, err := s.catalog.Get(ctx); err != nil {
		s.degraded(ctx, "mouthfeel", err)
		retryable = true
	} else {
		catalogIngredients = snap.Ingredients()
	}

	outcome := s.mouthfeel.Analyze(items, catalogIngredients, s.config.CandidatesPerElement)

	if s.metrics != nil {
		s.metrics.ObserveAnalysis("mouthfeel", time.Since(start), len(outcome.Missing), len(outcome.Suggestions))
	}
	span.SetAttributes(attribute.Bool("composition.balanced", outcome.Report.IsBalanced))

	return &inbound.MouthfeelAnalysis{
		CompositionID: compositionID,
		Profile:       outcome.Profile,
		Balance:       outcome.Report,
		Suggestions:   outcome.Suggestions,
		Retryable:     retryable,
	}, nil
}

func (s *Service) items(ctx context.Context, compositionID uuid.UUID) ([]domain.Item, error) {
	var items []domain.Item
	err := s.store.View(ctx, compositionID, func(c *domain.Composition) error {
		items = c.Items()
		return nil
	})
	if err != nil {
		return nil, s.mapError(err, compositionID, uuid.Nil)
	}
	return items, nil
}

func (s *Service) resolveNames(ctx context.Context, snap *catalog.Snapshot, names []string) ([]inbound.ResolvedName, []domain.Item) {
	resolutions := snap.Resolve(names)
	resolved := make([]inbound.ResolvedName, 0, len(resolutions))
	items := make([]domain.Item, 0, len(resolutions))

	for _, r := range resolutions {
		resolved = append(resolved, inbound.ResolvedName{
			Input:       r.Input,
			Ingredient:  r.Ingredient,
			Match:       string(r.Tier),
			Placeholder: r.Ingredient.Placeholder,
		})
		profile := s.resolver.Resolve(ctx, r.Ingredient, ingredient.MethodRaw)
		items = append(items, domain.NewItem(r.Ingredient, profile, ingredient.MethodRaw, 0))
	}
	return resolved, items
}

// lookupIngredient accepts a catalog id or a typed name
func (s *Service) lookupIngredient(snap *catalog.Snapshot, ref string) (ingredient.Ingredient, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return ingredient.Ingredient{}, errors.NewValidationError("ingredient is required")
	}
	if id, err := uuid.Parse(ref); err == nil {
		ing, ok := snap.ByID(id)
		if !ok {
			return ingredient.Ingredient{}, errors.NewIngredientNotFoundError(ref)
		}
		return ing, nil
	}
	return snap.Resolve([]string{ref})[0].Ingredient, nil
}

func (s *Service) degraded(ctx context.Context, variant string, err error) {
	span := trace.SpanFromContext(ctx)
	span.RecordError(err)
	span.SetAttributes(attribute.Bool("composition.degraded", true))

	if s.metrics != nil {
		s.metrics.ObserveDegradedAnalysis(variant)
	}
	s.logger.Warn("Catalog unavailable, returning degraded analysis",
		zap.String("variant", variant),
		zap.Error(err),
	)
}

func (s *Service) logEvents(c *domain.Composition) {
	if !c.HasEvents() {
		return
	}
	for _, event := range c.Events() {
		s.logger.Debug("Composition event",
			zap.String("event", event.EventName()),
			zap.String("composition_id", event.AggregateID().String()),
			zap.Time("occurred_at", event.OccurredAt()),
		)
	}
}

func (s *Service) mapError(err error, compositionID, ingredientID uuid.UUID) error {
	switch {
	case stderrors.Is(err, domain.ErrCompositionNotFound):
		return errors.NewCompositionNotFoundError(compositionID.String())
	case stderrors.Is(err, domain.ErrDuplicateIngredient):
		return errors.NewDuplicateIngredientError(ingredientID.String())
	case stderrors.Is(err, domain.ErrIngredientNotInComposition):
		return errors.NewIngredientNotFoundError(ingredientID.String()).
			WithMetadata("composition_id", compositionID.String())
	case stderrors.Is(err, domain.ErrInvalidWeight):
		return errors.NewValidationError(err.Error())
	default:
		s.logger.Error("Composition store failure", zap.Error(err))
		return errors.Wrap(err, "composition store failure")
	}
}

func emptyAnalysis() *inbound.CompositionAnalysis {
	return &inbound.CompositionAnalysis{
		Ingredients:     []inbound.ResolvedName{},
		MissingElements: []analysis.MissingElement{},
		Suggestions:     []analysis.Suggestion{},
		Unresolved:      []string{},
		Retryable:       true,
	}
}

func unresolved(resolved []inbound.ResolvedName) []string {
	out := []string{}
	for _, r := range resolved {
		if r.Placeholder {
			out = append(out, r.Input)
		}
	}
	return out
}

func toDTO(c *domain.Composition) *inbound.CompositionDTO {
	items := c.Items()
	dto := &inbound.CompositionDTO{
		ID:        c.ID(),
		Name:      c.Name(),
		Items:     make([]inbound.CompositionItemDTO, 0, len(items)),
		Profile:   analysis.AggregateSmaakprofiel(items),
		Version:   c.Version(),
		CreatedAt: c.CreatedAt(),
		UpdatedAt: c.UpdatedAt(),
	}
	for _, item := range items {
		dto.Items = append(dto.Items, inbound.CompositionItemDTO{
			IngredientID:  item.Ingredient.ID,
			Name:          item.Ingredient.Name,
			Role:          item.Ingredient.Role,
			CookingMethod: item.CookingMethod,
			Weight:        item.Weight,
			Placeholder:   item.Ingredient.Placeholder,
			Profile:       item.Profile,
		})
	}
	return dto
}
