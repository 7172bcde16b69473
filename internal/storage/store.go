package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// Key names one persisted document. Each key holds a whole JSON value that is
// read, modified and written back as a unit.
type Key string

const (
	KeyJobs      Key = "jobs"
	KeyCustomers Key = "customers"
	KeyLeads     Key = "leads"
	KeySettings  Key = "settings"
)

// ErrNotFound is returned by Load when nothing is stored under the key.
var ErrNotFound = errors.New("storage: key not found")

// Store persists raw JSON documents by key. Writes are last-writer-wins.
type Store interface {
	Load(ctx context.Context, key Key) ([]byte, error)
	Save(ctx context.Context, key Key, data []byte) error
	Delete(ctx context.Context, key Key) error
	Close() error
}

// LoadJSON decodes the document under key into v. It returns ErrNotFound
// when the key is empty.
func LoadJSON(ctx context.Context, s Store, key Key, v any) error {
	data, err := s.Load(ctx, key)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("unmarshal %s: %w", key, err)
	}
	return nil
}

// SaveJSON encodes v and stores it under key.
func SaveJSON(ctx context.Context, s Store, key Key, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}
	return s.Save(ctx, key, data)
}
