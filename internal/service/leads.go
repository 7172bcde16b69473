package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"glassquote/internal/models"
	"glassquote/internal/storage"
)

func (s *Service) ListLeads(ctx context.Context) ([]models.Lead, error) {
	return s.leads.All(ctx)
}

func (s *Service) GetLead(ctx context.Context, id string) (models.Lead, error) {
	l, err := s.leads.Get(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		return models.Lead{}, ErrLeadNotFound
	}
	return l, err
}

func (s *Service) CreateLead(ctx context.Context, in models.Lead) (models.Lead, error) {
	if err := models.Validate(in); err != nil {
		return models.Lead{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	in.ID = s.newID()
	in.Phone = models.NormalizePhoneNumber(in.Phone)
	in.CustomerID = ""
	if in.Status == "" {
		in.Status = models.LeadStatusNew
	}
	in.CreatedAt = now
	in.UpdatedAt = now

	if err := s.leads.Put(ctx, in); err != nil {
		return models.Lead{}, err
	}

	s.logger.Info("Lead created",
		zap.String("lead_id", in.ID),
		zap.String("source", in.Source))
	return in, nil
}

func (s *Service) UpdateLead(ctx context.Context, id string, in models.Lead) (models.Lead, error) {
	if err := models.Validate(in); err != nil {
		return models.Lead{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	existing, err := s.GetLead(ctx, id)
	if err != nil {
		return models.Lead{}, err
	}

	in.ID = existing.ID
	in.Phone = models.NormalizePhoneNumber(in.Phone)
	in.CustomerID = existing.CustomerID
	if in.Status == "" {
		in.Status = existing.Status
	}
	in.CreatedAt = existing.CreatedAt
	in.UpdatedAt = s.now()

	if err := s.leads.Put(ctx, in); err != nil {
		return models.Lead{}, err
	}
	return in, nil
}

func (s *Service) DeleteLead(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.leads.Remove(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		return ErrLeadNotFound
	}
	return err
}

// ConvertLead creates a customer from the lead's contact details and marks
// the lead as won. A lead converts at most once. If the lead cannot be saved
// the new customer is removed again.
func (s *Service) ConvertLead(ctx context.Context, id string) (models.Customer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	lead, err := s.GetLead(ctx, id)
	if err != nil {
		return models.Customer{}, err
	}
	if lead.CustomerID != "" {
		return models.Customer{}, ErrLeadConverted
	}

	now := s.now()
	customer := models.Customer{
		ID:        s.newID(),
		Name:      lead.Name,
		Phone:     lead.Phone,
		Email:     lead.Email,
		Address:   lead.Address,
		Notes:     lead.Notes,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.customers.Put(ctx, customer); err != nil {
		return models.Customer{}, err
	}

	lead.CustomerID = customer.ID
	lead.Status = models.LeadStatusWon
	lead.UpdatedAt = now
	if err := s.leads.Put(ctx, lead); err != nil {
		if rmErr := s.customers.Remove(ctx, customer.ID); rmErr != nil {
			s.logger.Error("Failed to roll back converted customer",
				zap.String("lead_id", lead.ID),
				zap.String("customer_id", customer.ID),
				zap.Error(rmErr))
		}
		return models.Customer{}, err
	}

	s.logger.Info("Lead converted",
		zap.String("lead_id", lead.ID),
		zap.String("customer_id", customer.ID))
	return customer, nil
}
