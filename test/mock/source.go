// Package mock provides test doubles for the award selection system.
// These mocks are designed for handler and integration testing where we need
// configurable behavior (delays, errors, specific batches).
package mock

import (
	"context"
	"sync"
	"time"

	"github.com/award-alerts/award-fare-selection-system/internal/domain"
)

// AvailabilitySource is a configurable mock implementation of
// domain.AvailabilitySource. It supports configurable delays, errors, and
// record batches for testing timeouts and partial-failure scenarios.
type AvailabilitySource struct {
	records   []domain.RawFareRecord
	err       error
	delay     time.Duration
	callCount int
	lastQuery domain.BulkQuery
	mu        sync.Mutex
}

// NewAvailabilitySource creates a new mock source.
// Configure it using the builder pattern methods.
func NewAvailabilitySource() *AvailabilitySource {
	return &AvailabilitySource{}
}

// WithRecords configures the source to return the given records.
func (s *AvailabilitySource) WithRecords(records []domain.RawFareRecord) *AvailabilitySource {
	s.records = records
	return s
}

// WithError configures the source to return the given error.
func (s *AvailabilitySource) WithError(err error) *AvailabilitySource {
	s.err = err
	return s
}

// WithDelay configures the source to wait before responding.
// This is useful for testing timeout behavior.
func (s *AvailabilitySource) WithDelay(d time.Duration) *AvailabilitySource {
	s.delay = d
	return s
}

// FetchBulkAvailability implements domain.AvailabilitySource.
// It respects context cancellation, applies the configured delay, and
// returns the configured records or error.
func (s *AvailabilitySource) FetchBulkAvailability(ctx context.Context, query domain.BulkQuery) ([]domain.RawFareRecord, error) {
	s.mu.Lock()
	s.callCount++
	s.lastQuery = query
	s.mu.Unlock()

	if s.delay > 0 {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(s.delay):
		}
	}

	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	if s.err != nil {
		return nil, s.err
	}
	return s.records, nil
}

// CallCount returns how many times FetchBulkAvailability was called.
func (s *AvailabilitySource) CallCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.callCount
}

// LastQuery returns the most recent query the source received.
func (s *AvailabilitySource) LastQuery() domain.BulkQuery {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastQuery
}

var _ domain.AvailabilitySource = (*AvailabilitySource)(nil)
