package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"glassquote/internal/models"
	"glassquote/internal/storage"
)

func (s *Service) ListCustomers(ctx context.Context) ([]models.Customer, error) {
	return s.customers.All(ctx)
}

func (s *Service) GetCustomer(ctx context.Context, id string) (models.Customer, error) {
	c, err := s.customers.Get(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		return models.Customer{}, ErrCustomerNotFound
	}
	return c, err
}

func (s *Service) CreateCustomer(ctx context.Context, in models.Customer) (models.Customer, error) {
	if err := models.Validate(in); err != nil {
		return models.Customer{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	in.ID = s.newID()
	in.Phone = models.NormalizePhoneNumber(in.Phone)
	in.CreatedAt = now
	in.UpdatedAt = now

	if err := s.customers.Put(ctx, in); err != nil {
		return models.Customer{}, err
	}

	s.logger.Info("Customer created", zap.String("customer_id", in.ID))
	return in, nil
}

// UpdateCustomer overwrites the editable fields. Jobs keep the customer
// snapshot taken when they were created.
func (s *Service) UpdateCustomer(ctx context.Context, id string, in models.Customer) (models.Customer, error) {
	if err := models.Validate(in); err != nil {
		return models.Customer{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	existing, err := s.GetCustomer(ctx, id)
	if err != nil {
		return models.Customer{}, err
	}

	in.ID = existing.ID
	in.Phone = models.NormalizePhoneNumber(in.Phone)
	in.CreatedAt = existing.CreatedAt
	in.UpdatedAt = s.now()

	if err := s.customers.Put(ctx, in); err != nil {
		return models.Customer{}, err
	}
	return in, nil
}

// DeleteCustomer refuses to remove a customer that any job still references.
func (s *Service) DeleteCustomer(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	jobs, err := s.jobs.All(ctx)
	if err != nil {
		return err
	}
	for _, j := range jobs {
		if j.CustomerID == id {
			return fmt.Errorf("%w: job %s", ErrCustomerInUse, j.JobNumber)
		}
	}

	err = s.customers.Remove(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		return ErrCustomerNotFound
	}
	if err != nil {
		return err
	}

	s.logger.Info("Customer deleted", zap.String("customer_id", id))
	return nil
}
