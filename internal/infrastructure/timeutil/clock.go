// Package timeutil abstracts the wall clock so date-window defaulting and
// pass timing stay deterministic under test.
package timeutil

import "time"

// Clock yields the current time. The HTTP layer reads it when a selection
// request leaves its travel-date window open and when timing a pass; tests
// inject a MockClock to pin both.
type Clock interface {
	Now() time.Time
}

// RealClock reads the system time.
type RealClock struct{}

// NewRealClock returns a RealClock.
func NewRealClock() *RealClock {
	return &RealClock{}
}

// Now returns the current system time.
func (RealClock) Now() time.Time {
	return time.Now()
}

// MockClock is a Clock pinned to a settable instant.
type MockClock struct {
	fixedTime time.Time
}

// NewMockClock returns a clock pinned to t.
func NewMockClock(t time.Time) *MockClock {
	return &MockClock{fixedTime: t}
}

// Now returns the pinned instant.
func (m *MockClock) Now() time.Time {
	return m.fixedTime
}

// Set pins the clock to t.
func (m *MockClock) Set(t time.Time) {
	m.fixedTime = t
}

// Advance moves the clock by d. Negative durations move it backwards.
func (m *MockClock) Advance(d time.Duration) {
	m.fixedTime = m.fixedTime.Add(d)
}

// AdvanceDays moves the clock forward whole travel days.
func (m *MockClock) AdvanceDays(days int) {
	m.Advance(time.Duration(days) * 24 * time.Hour)
}

var (
	_ Clock = (*RealClock)(nil)
	_ Clock = (*MockClock)(nil)
)
