package domain

// UnknownValue is the sentinel substituted for an absent city or country on
// a record during filter evaluation. It fails allow-list checks but passes
// deny-list checks, so records with missing metadata are never accidentally
// admitted by an allow-list nor excluded by a deny-list they don't name.
const UnknownValue = "Unknown"

// FilterCriteria is the optional predicate applied to trips during pairing
// and summarization. Every field is optional; a nil/empty field means "no
// constraint" and all supplied constraints must pass.
//
// Unless stated otherwise, criteria are evaluated against the outbound leg.
type FilterCriteria struct {
	// OriginCountry requires the outbound origin country to match exactly
	OriginCountry *string `json:"origin_country,omitempty"`

	// DestinationCountry requires the outbound destination country to match exactly
	DestinationCountry *string `json:"destination_country,omitempty"`

	// OriginCities is an allow-list of outbound origin cities
	OriginCities []string `json:"origin_cities,omitempty"`

	// DestinationCities is an allow-list of outbound destination cities
	DestinationCities []string `json:"destination_cities,omitempty"`

	// MaxCost caps the combined cost: outbound plus return when a return
	// leg is present, the outbound cost alone otherwise
	MaxCost *int64 `json:"max_cost,omitempty"`

	// MinDistanceKm and MaxDistanceKm bound the outbound leg distance
	MinDistanceKm *float64 `json:"min_distance_km,omitempty"`
	MaxDistanceKm *float64 `json:"max_distance_km,omitempty"`

	// ExcludeOriginCities is a deny-list of outbound origin cities
	ExcludeOriginCities []string `json:"exclude_origin_cities,omitempty"`

	// ExcludeDestinationCities is a deny-list of outbound destination cities
	ExcludeDestinationCities []string `json:"exclude_destination_cities,omitempty"`
}

// MatchesTrip checks whether the outbound record (and optional return
// record) passes all supplied criteria. A nil receiver matches everything.
func (f *FilterCriteria) MatchesTrip(outbound *CabinFareRecord, ret *CabinFareRecord) bool {
	if f == nil {
		return true
	}

	originCity := orUnknown(outbound.OriginCity)
	destinationCity := orUnknown(outbound.DestinationCity)

	if f.OriginCountry != nil && orUnknown(outbound.OriginCountry) != *f.OriginCountry {
		return false
	}
	if f.DestinationCountry != nil && orUnknown(outbound.DestinationCountry) != *f.DestinationCountry {
		return false
	}

	if len(f.OriginCities) > 0 && !containsString(f.OriginCities, originCity) {
		return false
	}
	if len(f.DestinationCities) > 0 && !containsString(f.DestinationCities, destinationCity) {
		return false
	}

	if f.MaxCost != nil {
		totalCost := outbound.TotalCost
		if ret != nil {
			totalCost += ret.TotalCost
		}
		if totalCost > *f.MaxCost {
			return false
		}
	}

	if f.MinDistanceKm != nil && outbound.DistanceKm < *f.MinDistanceKm {
		return false
	}
	if f.MaxDistanceKm != nil && outbound.DistanceKm > *f.MaxDistanceKm {
		return false
	}

	if containsString(f.ExcludeOriginCities, originCity) {
		return false
	}
	if containsString(f.ExcludeDestinationCities, destinationCity) {
		return false
	}

	return true
}

// orUnknown substitutes the Unknown sentinel for an empty field value.
func orUnknown(s string) string {
	if s == "" {
		return UnknownValue
	}
	return s
}

// containsString reports whether list contains s. List sizes here are small
// (a handful of cities), so a linear scan beats building a set.
func containsString(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
