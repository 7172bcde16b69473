package httpapi

import (
	"context"

	"glassquote/internal/models"
)

type JobService interface {
	ListJobs(ctx context.Context) ([]models.Job, error)
	GetJob(ctx context.Context, id string) (models.Job, error)
	CreateJob(ctx context.Context, in models.NewJob) (models.Job, error)
	DeleteJob(ctx context.Context, id string) error
	AddMeasurement(ctx context.Context, jobID string, m models.Measurement) (models.Job, error)
	UpdateMeasurement(ctx context.Context, jobID, measurementID string, m models.Measurement) (models.Job, error)
	RemoveMeasurement(ctx context.Context, jobID, measurementID string) (models.Job, error)
	UpdatePricing(ctx context.Context, jobID string, in models.PricingInput) (models.Job, error)
	UpdateStatus(ctx context.Context, jobID string, status models.JobStatus) (models.Job, error)
	Quote(ctx context.Context, ms []models.Measurement, taxRate *float64, discount float64) (models.JobPricing, error)
}

type CustomerService interface {
	ListCustomers(ctx context.Context) ([]models.Customer, error)
	GetCustomer(ctx context.Context, id string) (models.Customer, error)
	CreateCustomer(ctx context.Context, in models.Customer) (models.Customer, error)
	UpdateCustomer(ctx context.Context, id string, in models.Customer) (models.Customer, error)
	DeleteCustomer(ctx context.Context, id string) error
}

type LeadService interface {
	ListLeads(ctx context.Context) ([]models.Lead, error)
	GetLead(ctx context.Context, id string) (models.Lead, error)
	CreateLead(ctx context.Context, in models.Lead) (models.Lead, error)
	UpdateLead(ctx context.Context, id string, in models.Lead) (models.Lead, error)
	DeleteLead(ctx context.Context, id string) error
	ConvertLead(ctx context.Context, id string) (models.Customer, error)
}

type SettingsService interface {
	Settings(ctx context.Context) (models.Settings, error)
	UpdateSettings(ctx context.Context, in models.Settings) (models.Settings, error)
}

// Service is everything the API needs from the workflow layer.
type Service interface {
	JobService
	CustomerService
	LeadService
	SettingsService
}
