// Package service implements the field workflow on top of the store:
// customers, leads, jobs and settings. Every mutation is a whole-collection
// read-modify-write, so the service serializes writers with a single mutex.
package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"glassquote/internal/models"
	"glassquote/internal/pricing"
	"glassquote/internal/storage"
)

type Service struct {
	store     storage.Store
	jobs      *storage.Collection[models.Job]
	customers *storage.Collection[models.Customer]
	leads     *storage.Collection[models.Lead]

	defaultTaxRate float64
	logger         *zap.Logger

	now   func() time.Time
	newID func() string

	mu sync.Mutex
}

func New(store storage.Store, defaultTaxRate float64, logger *zap.Logger) *Service {
	return &Service{
		store:          store,
		jobs:           storage.NewCollection[models.Job](store, storage.KeyJobs),
		customers:      storage.NewCollection[models.Customer](store, storage.KeyCustomers),
		leads:          storage.NewCollection[models.Lead](store, storage.KeyLeads),
		defaultTaxRate: defaultTaxRate,
		logger:         logger,
		now:            time.Now,
		newID:          uuid.NewString,
	}
}

// Settings returns the stored settings, or defaults when none were saved.
func (s *Service) Settings(ctx context.Context) (models.Settings, error) {
	var settings models.Settings
	err := storage.LoadJSON(ctx, s.store, storage.KeySettings, &settings)
	if errors.Is(err, storage.ErrNotFound) {
		return models.Settings{TaxRate: s.defaultTaxRate}, nil
	}
	if err != nil {
		return models.Settings{}, fmt.Errorf("load settings: %w", err)
	}
	return settings, nil
}

func (s *Service) UpdateSettings(ctx context.Context, in models.Settings) (models.Settings, error) {
	if err := models.Validate(in); err != nil {
		return models.Settings{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	in.UpdatedAt = s.now()
	if err := storage.SaveJSON(ctx, s.store, storage.KeySettings, in); err != nil {
		return models.Settings{}, fmt.Errorf("save settings: %w", err)
	}

	s.logger.Info("Settings updated",
		zap.Float64("tax_rate", in.TaxRate),
		zap.Int("pricing_rules", len(in.PricingRules)))
	return in, nil
}

// SeedPricingRules stores rules as the rate-card override unless the settings
// already carry one. It reports whether the rules were stored.
func (s *Service) SeedPricingRules(ctx context.Context, rules []models.PricingRule) (bool, error) {
	if len(rules) == 0 {
		return false, pricing.ErrEmptyRuleSet
	}
	for i, r := range rules {
		if err := models.Validate(r); err != nil {
			return false, fmt.Errorf("rule %d: %w", i, err)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	settings, err := s.Settings(ctx)
	if err != nil {
		return false, err
	}
	if len(settings.PricingRules) > 0 {
		return false, nil
	}

	settings.PricingRules = rules
	settings.UpdatedAt = s.now()
	if err := storage.SaveJSON(ctx, s.store, storage.KeySettings, settings); err != nil {
		return false, fmt.Errorf("save settings: %w", err)
	}
	return true, nil
}

// Rules returns the active rate card: the settings override if present,
// otherwise the built-in rules.
func (s *Service) Rules(ctx context.Context) (pricing.RuleSet, error) {
	settings, err := s.Settings(ctx)
	if err != nil {
		return nil, err
	}
	return rulesFor(settings), nil
}

func rulesFor(settings models.Settings) pricing.RuleSet {
	if len(settings.PricingRules) > 0 {
		return pricing.RuleSet(settings.PricingRules)
	}
	return pricing.DefaultRules()
}
