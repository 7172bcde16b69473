package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"glassquote/internal/jobnumber"
	"glassquote/internal/models"
	"glassquote/internal/pricing"
	"glassquote/internal/storage"
)

func (s *Service) ListJobs(ctx context.Context) ([]models.Job, error) {
	return s.jobs.All(ctx)
}

func (s *Service) GetJob(ctx context.Context, id string) (models.Job, error) {
	job, err := s.jobs.Get(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		return models.Job{}, ErrJobNotFound
	}
	return job, err
}

// CreateJob prices the measurements against the active rate card, assigns the
// next job number for today and stores the job as a draft.
func (s *Service) CreateJob(ctx context.Context, in models.NewJob) (models.Job, error) {
	if err := models.Validate(in); err != nil {
		return models.Job{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	customer, err := s.customers.Get(ctx, in.CustomerID)
	if errors.Is(err, storage.ErrNotFound) {
		return models.Job{}, ErrCustomerNotFound
	}
	if err != nil {
		return models.Job{}, err
	}

	settings, err := s.Settings(ctx)
	if err != nil {
		return models.Job{}, err
	}
	taxRate := settings.TaxRate
	if in.TaxRate != nil {
		taxRate = *in.TaxRate
	}

	measurements := make([]models.Measurement, 0, len(in.Measurements))
	for _, m := range in.Measurements {
		measurements = append(measurements, s.withID(m))
	}

	jobPricing, err := pricing.ComputeJobPricing(measurements, taxRate, in.Discount, rulesFor(settings))
	if err != nil {
		return models.Job{}, fmt.Errorf("price job: %w", err)
	}

	jobs, err := s.jobs.All(ctx)
	if err != nil {
		return models.Job{}, err
	}
	numbers := make([]string, 0, len(jobs))
	for _, j := range jobs {
		numbers = append(numbers, j.JobNumber)
	}

	now := s.now()
	number, err := jobnumber.Next(numbers, now)
	if err != nil {
		return models.Job{}, err
	}

	job := models.Job{
		ID:            s.newID(),
		JobNumber:     number,
		CustomerID:    customer.ID,
		Customer:      customer,
		Measurements:  measurements,
		Pricing:       jobPricing,
		Status:        models.JobStatusDraft,
		Notes:         in.Notes,
		ScheduledDate: in.ScheduledDate,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.jobs.Replace(ctx, append(jobs, job)); err != nil {
		return models.Job{}, err
	}

	s.logger.Info("Job created",
		zap.String("job_id", job.ID),
		zap.String("job_number", job.JobNumber),
		zap.Int("measurements", len(measurements)),
		zap.Float64("total", jobPricing.Total))
	return job, nil
}

func (s *Service) DeleteJob(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.jobs.Remove(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		return ErrJobNotFound
	}
	if err != nil {
		return err
	}

	s.logger.Info("Job deleted", zap.String("job_id", id))
	return nil
}

func (s *Service) AddMeasurement(ctx context.Context, jobID string, m models.Measurement) (models.Job, error) {
	if err := models.Validate(m); err != nil {
		return models.Job{}, err
	}

	return s.mutateJob(ctx, jobID, func(job *models.Job) error {
		job.Measurements = append(job.Measurements, s.withID(m))
		return nil
	})
}

// UpdateMeasurement replaces the measurement with the given ID, keeping its ID.
func (s *Service) UpdateMeasurement(ctx context.Context, jobID, measurementID string, m models.Measurement) (models.Job, error) {
	if err := models.Validate(m); err != nil {
		return models.Job{}, err
	}

	return s.mutateJob(ctx, jobID, func(job *models.Job) error {
		i := job.MeasurementIndex(measurementID)
		if i < 0 {
			return ErrMeasurementNotFound
		}
		m.ID = measurementID
		job.Measurements[i] = m
		return nil
	})
}

func (s *Service) RemoveMeasurement(ctx context.Context, jobID, measurementID string) (models.Job, error) {
	return s.mutateJob(ctx, jobID, func(job *models.Job) error {
		i := job.MeasurementIndex(measurementID)
		if i < 0 {
			return ErrMeasurementNotFound
		}
		job.Measurements = append(job.Measurements[:i], job.Measurements[i+1:]...)
		return nil
	})
}

// UpdatePricing changes the job's tax rate and discount and reprices it.
func (s *Service) UpdatePricing(ctx context.Context, jobID string, in models.PricingInput) (models.Job, error) {
	if err := models.Validate(in); err != nil {
		return models.Job{}, err
	}

	return s.mutateJob(ctx, jobID, func(job *models.Job) error {
		job.Pricing.TaxRate = in.TaxRate
		job.Pricing.Discount = in.Discount
		return nil
	})
}

func (s *Service) UpdateStatus(ctx context.Context, jobID string, status models.JobStatus) (models.Job, error) {
	if !status.Valid() {
		return models.Job{}, &models.ValidationError{Fields: map[string]string{"status": "enum"}}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	job, err := s.GetJob(ctx, jobID)
	if err != nil {
		return models.Job{}, err
	}
	if !job.Status.CanTransitionTo(status) {
		return models.Job{}, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, job.Status, status)
	}

	from := job.Status
	job.Status = status
	job.UpdatedAt = s.now()
	if err := s.jobs.Put(ctx, job); err != nil {
		return models.Job{}, err
	}

	s.logger.Info("Job status changed",
		zap.String("job_number", job.JobNumber),
		zap.String("from", string(from)),
		zap.String("to", string(status)))
	return job, nil
}

// Quote prices measurements without storing anything. A nil taxRate falls
// back to the settings.
func (s *Service) Quote(ctx context.Context, ms []models.Measurement, taxRate *float64, discount float64) (models.JobPricing, error) {
	if err := models.ValidateMeasurements(ms); err != nil {
		return models.JobPricing{}, err
	}
	if discount < 0 {
		return models.JobPricing{}, &models.ValidationError{Fields: map[string]string{"discount": "gte"}}
	}
	if taxRate != nil && *taxRate < 0 {
		return models.JobPricing{}, &models.ValidationError{Fields: map[string]string{"taxRate": "gte"}}
	}
	if taxRate != nil && *taxRate > 1 {
		return models.JobPricing{}, &models.ValidationError{Fields: map[string]string{"taxRate": "lte"}}
	}

	settings, err := s.Settings(ctx)
	if err != nil {
		return models.JobPricing{}, err
	}
	rate := settings.TaxRate
	if taxRate != nil {
		rate = *taxRate
	}
	return pricing.ComputeJobPricing(ms, rate, discount, rulesFor(settings))
}

// mutateJob applies fn to an open job and reprices it with the job's own tax
// rate and discount. Lines are priced against the current rate card, so a
// rule change reaches every open job on its next edit.
func (s *Service) mutateJob(ctx context.Context, jobID string, fn func(job *models.Job) error) (models.Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	job, err := s.GetJob(ctx, jobID)
	if err != nil {
		return models.Job{}, err
	}
	if job.Status == models.JobStatusCompleted || job.Status == models.JobStatusCancelled {
		return models.Job{}, fmt.Errorf("%w: %s", ErrJobClosed, job.Status)
	}

	if err := fn(&job); err != nil {
		return models.Job{}, err
	}

	settings, err := s.Settings(ctx)
	if err != nil {
		return models.Job{}, err
	}
	job.Pricing, err = pricing.ComputeJobPricing(job.Measurements, job.Pricing.TaxRate, job.Pricing.Discount, rulesFor(settings))
	if err != nil {
		return models.Job{}, fmt.Errorf("price job: %w", err)
	}
	job.UpdatedAt = s.now()

	if err := s.jobs.Put(ctx, job); err != nil {
		return models.Job{}, err
	}

	s.logger.Debug("Job repriced",
		zap.String("job_number", job.JobNumber),
		zap.Float64("total", job.Pricing.Total))
	return job, nil
}

func (s *Service) withID(m models.Measurement) models.Measurement {
	if m.ID == "" {
		m.ID = s.newID()
	}
	return m
}
