package domain

import "fmt"

// DefaultTopN is the number of results selected per cabin when a request
// does not specify one.
const DefaultTopN = 1

// PassRequest configures one selection pass.
type PassRequest struct {
	// Cabins is the set of cabin classes to include (default: all)
	Cabins []Cabin `json:"cabins,omitempty"`

	// MinReturnDays and MaxReturnDays bound the layover window in whole
	// days, boundaries inclusive. The window is only enforced when both
	// are set (round-trip mode only).
	MinReturnDays *int `json:"min_return_days,omitempty"`
	MaxReturnDays *int `json:"max_return_days,omitempty"`

	// TopN is the number of results to select per cabin (default: 1)
	TopN int `json:"top_n"`

	// Filter optionally restricts which trips are considered
	Filter *FilterCriteria `json:"filter,omitempty"`
}

// Validate checks if the pass request is valid.
// Returns a wrapped ErrInvalidRequest error if validation fails.
func (r *PassRequest) Validate() error {
	for _, cabin := range r.Cabins {
		if !cabin.IsValid() {
			return fmt.Errorf("%w: unknown cabin class %q", ErrInvalidRequest, string(cabin))
		}
	}

	if r.TopN < 0 {
		return fmt.Errorf("%w: top_n must not be negative, got %d", ErrInvalidRequest, r.TopN)
	}

	if r.MinReturnDays != nil && *r.MinReturnDays < 0 {
		return fmt.Errorf("%w: min_return_days must not be negative, got %d", ErrInvalidRequest, *r.MinReturnDays)
	}
	if r.MaxReturnDays != nil && *r.MaxReturnDays < 0 {
		return fmt.Errorf("%w: max_return_days must not be negative, got %d", ErrInvalidRequest, *r.MaxReturnDays)
	}
	if r.MinReturnDays != nil && r.MaxReturnDays != nil && *r.MinReturnDays > *r.MaxReturnDays {
		return fmt.Errorf("%w: min_return_days (%d) exceeds max_return_days (%d)",
			ErrInvalidRequest, *r.MinReturnDays, *r.MaxReturnDays)
	}

	if f := r.Filter; f != nil {
		if f.MaxCost != nil && *f.MaxCost < 0 {
			return fmt.Errorf("%w: max_cost must not be negative", ErrInvalidRequest)
		}
		if f.MinDistanceKm != nil && f.MaxDistanceKm != nil && *f.MinDistanceKm > *f.MaxDistanceKm {
			return fmt.Errorf("%w: min_distance_km exceeds max_distance_km", ErrInvalidRequest)
		}
	}

	return nil
}

// SetDefaults applies default values to empty optional fields.
func (r *PassRequest) SetDefaults() {
	if len(r.Cabins) == 0 {
		r.Cabins = AllCabins()
	}
	if r.TopN == 0 {
		r.TopN = DefaultTopN
	}
}
