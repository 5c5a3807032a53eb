// Package http provides the HTTP handler layer for the award selection API.
// It handles request parsing, validation, response formatting, and error mapping.
package http

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/award-alerts/award-fare-selection-system/internal/domain"
)

// SelectionRequest represents the request body for both round-trip and
// single-trip selections. The return-day window only applies to round trips
// and is rejected on the single-trip endpoint.
type SelectionRequest struct {
	// Sources is the list of loyalty programs to query (e.g., ["smiles"])
	Sources []string `json:"sources"`

	// OriginRegion and DestinationRegion scope the availability fetch
	OriginRegion      string `json:"originRegion"`
	DestinationRegion string `json:"destinationRegion"`

	// StartDate and EndDate bound the travel dates in YYYY-MM-DD format.
	// Both are optional; missing bounds default to a window starting today.
	StartDate string `json:"startDate,omitempty"`
	EndDate   string `json:"endDate,omitempty"`

	// PageDepth caps how many availability pages are walked per source
	PageDepth int `json:"pageDepth,omitempty"`

	// Cabins restricts the cabin classes considered (codes or names);
	// empty means all cabins
	Cabins []string `json:"cabins,omitempty"`

	// MinReturnDays and MaxReturnDays bound the stay length of round trips;
	// the window is only enforced when both are set
	MinReturnDays *int `json:"minReturnDays,omitempty"`
	MaxReturnDays *int `json:"maxReturnDays,omitempty"`

	// TopN is how many pairings (or trips) to keep per cabin (default 1)
	TopN int `json:"topN,omitempty"`

	// Filter contains optional route and cost criteria
	Filter *FilterDTO `json:"filter,omitempty"`
}

// FilterDTO represents optional filtering criteria for selections.
// Example: {"originCountry": "Brazil", "maxCost": 500000, "maxDistanceKm": 12000}
type FilterDTO struct {
	// OriginCountry keeps only trips departing from this country
	OriginCountry *string `json:"originCountry,omitempty"`

	// DestinationCountry keeps only trips arriving in this country
	DestinationCountry *string `json:"destinationCountry,omitempty"`

	// OriginCities and DestinationCities are allow-lists of city names
	OriginCities      []string `json:"originCities,omitempty"`
	DestinationCities []string `json:"destinationCities,omitempty"`

	// ExcludeOriginCities and ExcludeDestinationCities are deny-lists
	ExcludeOriginCities      []string `json:"excludeOriginCities,omitempty"`
	ExcludeDestinationCities []string `json:"excludeDestinationCities,omitempty"`

	// MaxCost caps the total cost in base-currency smallest units; for
	// round trips both legs count
	MaxCost *int64 `json:"maxCost,omitempty"`

	// MinDistanceKm and MaxDistanceKm bound the outbound leg's distance
	MinDistanceKm *float64 `json:"minDistanceKm,omitempty"`
	MaxDistanceKm *float64 `json:"maxDistanceKm,omitempty"`
}

var datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// ValidationError represents a field-level validation error.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrors holds multiple validation errors.
type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

// Error implements the error interface.
func (v *ValidationErrors) Error() string {
	if len(v.Errors) == 0 {
		return "validation failed"
	}
	return v.Errors[0].Message
}

// Add adds a validation error.
func (v *ValidationErrors) Add(field, message string) {
	v.Errors = append(v.Errors, ValidationError{
		Field:   field,
		Message: message,
	})
}

// HasErrors returns true if there are validation errors.
func (v *ValidationErrors) HasErrors() bool {
	return len(v.Errors) > 0
}

// ToMap converts validation errors to a map for API response.
func (v *ValidationErrors) ToMap() map[string]string {
	result := make(map[string]string, len(v.Errors))
	for _, e := range v.Errors {
		result[e.Field] = e.Message
	}
	return result
}

// Validate validates the selection request. roundTrip controls whether the
// return-day window fields are accepted.
func (r *SelectionRequest) Validate(roundTrip bool) error {
	errs := &ValidationErrors{}

	r.validateSources(errs)
	r.validateRegions(errs)
	r.validateDates(errs)
	r.validateCabins(errs)
	r.validateReturnWindow(roundTrip, errs)

	if r.PageDepth < 0 {
		errs.Add("pageDepth", "pageDepth must not be negative")
	}
	if r.TopN < 0 {
		errs.Add("topN", "topN must not be negative")
	}

	r.validateFilter(errs)

	if errs.HasErrors() {
		return errs
	}
	return nil
}

func (r *SelectionRequest) validateSources(errs *ValidationErrors) {
	if len(r.Sources) == 0 {
		errs.Add("sources", "at least one source is required")
		return
	}

	seen := make(map[string]bool, len(r.Sources))
	for i, raw := range r.Sources {
		name := strings.ToLower(strings.TrimSpace(raw))
		if !domain.Source(name).IsValid() {
			errs.Add(fmt.Sprintf("sources[%d]", i),
				fmt.Sprintf("unknown source %q; valid sources: %s", raw, sourceNames()))
			continue
		}
		if seen[name] {
			errs.Add(fmt.Sprintf("sources[%d]", i), fmt.Sprintf("duplicate source %q", raw))
			continue
		}
		seen[name] = true
		r.Sources[i] = name // normalize
	}
}

func (r *SelectionRequest) validateRegions(errs *ValidationErrors) {
	if r.OriginRegion == "" {
		errs.Add("originRegion", "originRegion is required")
	} else if !domain.Region(r.OriginRegion).IsValid() {
		errs.Add("originRegion", fmt.Sprintf("unknown region %q", r.OriginRegion))
	}

	if r.DestinationRegion == "" {
		errs.Add("destinationRegion", "destinationRegion is required")
	} else if !domain.Region(r.DestinationRegion).IsValid() {
		errs.Add("destinationRegion", fmt.Sprintf("unknown region %q", r.DestinationRegion))
	}
}

func (r *SelectionRequest) validateDates(errs *ValidationErrors) {
	start, startOK := r.validateDate("startDate", r.StartDate, errs)
	end, endOK := r.validateDate("endDate", r.EndDate, errs)

	if startOK && endOK && r.StartDate != "" && r.EndDate != "" && end.Before(start) {
		errs.Add("endDate", "endDate must not be before startDate")
	}
}

func (r *SelectionRequest) validateDate(field, value string, errs *ValidationErrors) (time.Time, bool) {
	if value == "" {
		return time.Time{}, true
	}
	if !datePattern.MatchString(value) {
		errs.Add(field, field+" must be in YYYY-MM-DD format")
		return time.Time{}, false
	}
	parsed, err := time.Parse("2006-01-02", value)
	if err != nil {
		errs.Add(field, field+" is not a valid date")
		return time.Time{}, false
	}
	return parsed, true
}

func (r *SelectionRequest) validateCabins(errs *ValidationErrors) {
	for i, raw := range r.Cabins {
		if _, err := domain.ParseCabin(raw); err != nil {
			errs.Add(fmt.Sprintf("cabins[%d]", i),
				fmt.Sprintf("unknown cabin %q; valid cabins: Y, W, J, F", raw))
		}
	}
}

func (r *SelectionRequest) validateReturnWindow(roundTrip bool, errs *ValidationErrors) {
	if !roundTrip {
		if r.MinReturnDays != nil || r.MaxReturnDays != nil {
			errs.Add("minReturnDays", "return-day window does not apply to single trips")
		}
		return
	}

	if r.MinReturnDays != nil && *r.MinReturnDays < 1 {
		errs.Add("minReturnDays", "minReturnDays must be at least 1")
	}
	if r.MaxReturnDays != nil && *r.MaxReturnDays < 1 {
		errs.Add("maxReturnDays", "maxReturnDays must be at least 1")
	}
	if r.MinReturnDays != nil && r.MaxReturnDays != nil && *r.MinReturnDays > *r.MaxReturnDays {
		errs.Add("maxReturnDays", "maxReturnDays must not be less than minReturnDays")
	}
}

func (r *SelectionRequest) validateFilter(errs *ValidationErrors) {
	if r.Filter == nil {
		return
	}

	if r.Filter.MaxCost != nil && *r.Filter.MaxCost <= 0 {
		errs.Add("filter.maxCost", "maxCost must be positive")
	}
	if r.Filter.MinDistanceKm != nil && *r.Filter.MinDistanceKm < 0 {
		errs.Add("filter.minDistanceKm", "minDistanceKm must not be negative")
	}
	if r.Filter.MaxDistanceKm != nil && *r.Filter.MaxDistanceKm < 0 {
		errs.Add("filter.maxDistanceKm", "maxDistanceKm must not be negative")
	}
	if r.Filter.MinDistanceKm != nil && r.Filter.MaxDistanceKm != nil &&
		*r.Filter.MinDistanceKm > *r.Filter.MaxDistanceKm {
		errs.Add("filter.maxDistanceKm", "maxDistanceKm must not be less than minDistanceKm")
	}
}

func sourceNames() string {
	all := domain.AllSources()
	names := make([]string, len(all))
	for i, s := range all {
		names[i] = string(s)
	}
	return strings.Join(names, ", ")
}

// RoundTripSelectionResponse is the response body for round-trip selections.
// Cabin keys are single-letter cabin codes.
type RoundTripSelectionResponse struct {
	Cabins   map[string][]CityPairingDTO `json:"cabins"`
	Metadata SelectionMetadata           `json:"metadata"`
}

// CityPairingDTO flattens a selected city pairing for API output.
type CityPairingDTO struct {
	OriginCity      string                      `json:"origin_city"`
	DestinationCity string                      `json:"destination_city"`
	AverageScore    float64                     `json:"average_score"`
	Stats           domain.PairingStats         `json:"stats"`
	Candidates      []domain.RoundTripCandidate `json:"candidates"`
}

// SingleTripSelectionResponse is the response body for single-trip selections.
type SingleTripSelectionResponse struct {
	Cabins   map[string][]domain.SummaryTrip `json:"cabins"`
	Metadata SelectionMetadata               `json:"metadata"`
}

// SelectionMetadata describes how the selection pass went.
type SelectionMetadata struct {
	SourcesQueried   int   `json:"sources_queried"`
	SourcesSucceeded int   `json:"sources_succeeded"`
	SourcesFailed    int   `json:"sources_failed"`
	RecordsFetched   int   `json:"records_fetched"`
	SelectionTimeMs  int64 `json:"selection_time_ms"`
}
