package domain

import "time"

// CityPair is an ordered (origin city, destination city) tuple used as the
// grouping key for route comparison within a cabin.
type CityPair struct {
	Origin      string
	Destination string
}

// Reverse returns the pair with origin and destination swapped.
func (p CityPair) Reverse() CityPair {
	return CityPair{Origin: p.Destination, Destination: p.Origin}
}

// SummaryTrip is the minimal unit used for comparison: one flight leg reduced
// to its identifier, cities, cost and distance. Mileage and taxes are carried
// along for the aggregate statistics on selected pairings.
type SummaryTrip struct {
	// ID is the originating availability record's identifier
	ID string `json:"id"`

	// OriginCity and DestinationCity are the resolved endpoint cities
	OriginCity      string `json:"origin_city"`
	DestinationCity string `json:"destination_city"`

	// Date is the travel date of the originating record
	Date time.Time `json:"date"`

	// TotalCost is the comparable cost in base-currency smallest units
	TotalCost int64 `json:"total_cost"`

	// MileageCost is the raw points price of the leg
	MileageCost int64 `json:"mileage_cost"`

	// Taxes is the leg's taxes in base-currency smallest units
	Taxes int64 `json:"taxes"`

	// DistanceKm is the leg's great-circle distance in kilometers
	DistanceKm float64 `json:"distance_km"`
}

// RoundTripCandidate pairs an outbound and a return leg into a complete round
// trip between two cities. Invariant: the outbound travel date strictly
// precedes the return travel date. Candidates are ephemeral; they live only
// for the duration of one selection pass.
type RoundTripCandidate struct {
	Outbound SummaryTrip `json:"outbound"`
	Return   SummaryTrip `json:"return"`
}

// CombinedCost is the total cost of both legs.
func (c RoundTripCandidate) CombinedCost() int64 {
	return c.Outbound.TotalCost + c.Return.TotalCost
}

// CityPairing is a selected city pairing within one cabin class: the
// surviving round-trip candidates for that route plus ranking and aggregate
// statistics across them.
type CityPairing struct {
	// Pair is the (origin city, destination city) key
	Pair CityPair `json:"pair"`

	// Candidates are the surviving round trips, cheapest first
	Candidates []RoundTripCandidate `json:"candidates"`

	// AverageScore is the pairing's cost-per-distance efficiency metric,
	// lower is better
	AverageScore float64 `json:"average_score"`

	// Stats aggregates cost, mileage and taxes across the candidates
	Stats PairingStats `json:"stats"`
}

// PairingStats aggregates min/max/average combined cost, mileage and taxes
// across a pairing's surviving candidates. Averages use integer division.
type PairingStats struct {
	MinCost int64 `json:"min_cost"`
	MaxCost int64 `json:"max_cost"`
	AvgCost int64 `json:"avg_cost"`

	MinMileage int64 `json:"min_mileage"`
	MaxMileage int64 `json:"max_mileage"`
	AvgMileage int64 `json:"avg_mileage"`

	MinTaxes int64 `json:"min_taxes"`
	MaxTaxes int64 `json:"max_taxes"`
	AvgTaxes int64 `json:"avg_taxes"`
}

// NewPairingStats computes aggregate statistics over the given candidates.
// Returns a zero value for an empty slice.
func NewPairingStats(candidates []RoundTripCandidate) PairingStats {
	if len(candidates) == 0 {
		return PairingStats{}
	}

	var stats PairingStats
	for i, c := range candidates {
		cost := c.CombinedCost()
		mileage := c.Outbound.MileageCost + c.Return.MileageCost
		taxes := c.Outbound.Taxes + c.Return.Taxes

		if i == 0 {
			stats.MinCost, stats.MaxCost = cost, cost
			stats.MinMileage, stats.MaxMileage = mileage, mileage
			stats.MinTaxes, stats.MaxTaxes = taxes, taxes
		}

		if cost < stats.MinCost {
			stats.MinCost = cost
		}
		if cost > stats.MaxCost {
			stats.MaxCost = cost
		}
		if mileage < stats.MinMileage {
			stats.MinMileage = mileage
		}
		if mileage > stats.MaxMileage {
			stats.MaxMileage = mileage
		}
		if taxes < stats.MinTaxes {
			stats.MinTaxes = taxes
		}
		if taxes > stats.MaxTaxes {
			stats.MaxTaxes = taxes
		}

		stats.AvgCost += cost
		stats.AvgMileage += mileage
		stats.AvgTaxes += taxes
	}

	n := int64(len(candidates))
	stats.AvgCost /= n
	stats.AvgMileage /= n
	stats.AvgTaxes /= n
	return stats
}
