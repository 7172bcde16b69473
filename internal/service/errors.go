package service

import "errors"

var (
	ErrJobNotFound         = errors.New("job not found")
	ErrCustomerNotFound    = errors.New("customer not found")
	ErrLeadNotFound        = errors.New("lead not found")
	ErrMeasurementNotFound = errors.New("measurement not found")

	ErrInvalidTransition = errors.New("invalid status transition")
	ErrJobClosed         = errors.New("job is closed")
	ErrCustomerInUse     = errors.New("customer has jobs")
	ErrLeadConverted     = errors.New("lead already converted")
)
