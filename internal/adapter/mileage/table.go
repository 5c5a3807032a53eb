// Package mileage maps loyalty programs to the cash value of their miles.
package mileage

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/award-alerts/award-fare-selection-system/internal/domain"
)

// Table is an in-memory map from loyalty program to the value of 1000 of its
// miles, in smallest units of the base currency.
type Table struct {
	values map[domain.Source]int64
}

// NewTable creates a Table from explicit per-program values.
func NewTable(values map[domain.Source]int64) *Table {
	copied := make(map[domain.Source]int64, len(values))
	for source, value := range values {
		copied[source] = value
	}
	return &Table{values: copied}
}

// ParseValues builds a Table from a "program=value" list, e.g.
// "azul=1400,smiles=1650,qantas=2100". Unknown programs and malformed
// entries are rejected.
func ParseValues(list string) (*Table, error) {
	values := make(map[domain.Source]int64)

	for _, entry := range strings.Split(list, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}

		name, raw, found := strings.Cut(entry, "=")
		if !found {
			return nil, fmt.Errorf("invalid mileage value entry %q: want program=value", entry)
		}

		source := domain.Source(strings.TrimSpace(name))
		if !source.IsValid() {
			return nil, fmt.Errorf("%w: %s", domain.ErrUnknownProgram, name)
		}

		value, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid mileage value for %s: %w", name, err)
		}
		if value <= 0 {
			return nil, fmt.Errorf("mileage value for %s must be positive, got %d", name, value)
		}

		values[source] = value
	}

	if len(values) == 0 {
		return nil, fmt.Errorf("no mileage values configured")
	}
	return &Table{values: values}, nil
}

// MileageValue returns the value of 1000 miles for the given program.
func (t *Table) MileageValue(source domain.Source) (int64, error) {
	value, ok := t.values[source]
	if !ok {
		return 0, fmt.Errorf("%w: %s", domain.ErrUnknownProgram, source)
	}
	return value, nil
}

var _ domain.MileageValuer = (*Table)(nil)
