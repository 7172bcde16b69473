package models

import "time"

type Customer struct {
	ID        string    `json:"id"`
	Name      string    `json:"name" validate:"required,max=200"`
	Phone     string    `json:"phone,omitempty" validate:"omitempty,phone"`
	Email     string    `json:"email,omitempty" validate:"omitempty,email"`
	Address   string    `json:"address,omitempty" validate:"max=500"`
	Notes     string    `json:"notes,omitempty" validate:"max=2000"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (c Customer) RecordID() string { return c.ID }

type Lead struct {
	ID         string     `json:"id"`
	Name       string     `json:"name" validate:"required,max=200"`
	Phone      string     `json:"phone,omitempty" validate:"omitempty,phone"`
	Email      string     `json:"email,omitempty" validate:"omitempty,email"`
	Address    string     `json:"address,omitempty" validate:"max=500"`
	Source     string     `json:"source,omitempty" validate:"max=100"`
	Status     LeadStatus `json:"status" validate:"omitempty,enum"`
	Notes      string     `json:"notes,omitempty" validate:"max=2000"`
	CustomerID string     `json:"customerId,omitempty"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
}

func (l Lead) RecordID() string { return l.ID }
