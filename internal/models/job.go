package models

import "time"

// Job owns its measurements and its latest pricing snapshot. The customer is
// embedded as it was when the job was created.
type Job struct {
	ID            string        `json:"id"`
	JobNumber     string        `json:"jobNumber"`
	CustomerID    string        `json:"customerId"`
	Customer      Customer      `json:"customer"`
	Measurements  []Measurement `json:"measurements"`
	Pricing       JobPricing    `json:"pricing"`
	Status        JobStatus     `json:"status"`
	Notes         string        `json:"notes,omitempty"`
	ScheduledDate *time.Time    `json:"scheduledDate,omitempty"`
	CreatedAt     time.Time     `json:"createdAt"`
	UpdatedAt     time.Time     `json:"updatedAt"`
}

func (j Job) RecordID() string { return j.ID }

// MeasurementIndex returns the position of the measurement with the given ID,
// or -1.
func (j Job) MeasurementIndex(id string) int {
	for i, m := range j.Measurements {
		if m.ID == id {
			return i
		}
	}
	return -1
}

// NewJob is the input for creating a job.
type NewJob struct {
	CustomerID    string        `json:"customerId" validate:"required"`
	Measurements  []Measurement `json:"measurements" validate:"dive"`
	TaxRate       *float64      `json:"taxRate,omitempty" validate:"omitempty,gte=0,lte=1"`
	Discount      float64       `json:"discount" validate:"gte=0"`
	Notes         string        `json:"notes,omitempty" validate:"max=2000"`
	ScheduledDate *time.Time    `json:"scheduledDate,omitempty"`
}

// PricingInput carries the job-level knobs of a pricing calculation.
type PricingInput struct {
	TaxRate  float64 `json:"taxRate" validate:"gte=0,lte=1"`
	Discount float64 `json:"discount" validate:"gte=0"`
}
