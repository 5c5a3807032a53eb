package engine

import (
	"sort"
	"time"

	"github.com/award-alerts/award-fare-selection-system/internal/domain"
	"github.com/award-alerts/award-fare-selection-system/internal/infrastructure/logger"
)

// pairRoundTrips cross-joins each city pair's fares against the
// reverse-direction fares, keeping pairs where the return departs strictly
// after the outbound, the layover falls inside the requested window, and the
// optional filter accepts the pair. City pairings with no surviving
// candidate are dropped entirely.
//
// The cross-join is O(|G| x |G'|) per pairing, which is fine at the
// per-route record counts seen after cabin partitioning. The reverse group
// is sorted by date so the inner loop can stop once the layover exceeds the
// maximum window.
func pairRoundTrips(fares []domain.CabinFareRecord, req domain.PassRequest, log *logger.Logger) map[domain.CityPair][]domain.RoundTripCandidate {
	groups := make(map[domain.CityPair][]domain.CabinFareRecord)
	for _, fare := range fares {
		pair := fare.CityPair()
		groups[pair] = append(groups[pair], fare)
	}

	// Window enforced only when both bounds are supplied.
	windowed := req.MinReturnDays != nil && req.MaxReturnDays != nil

	for pair := range groups {
		sort.SliceStable(groups[pair], func(i, j int) bool {
			return groups[pair][i].Date.Before(groups[pair][j].Date)
		})
	}

	result := make(map[domain.CityPair][]domain.RoundTripCandidate)
	for pair, outbounds := range groups {
		returns, ok := groups[pair.Reverse()]
		if !ok {
			continue
		}

		var candidates []domain.RoundTripCandidate
		for i := range outbounds {
			outbound := &outbounds[i]
			for j := range returns {
				ret := &returns[j]
				if !ret.Date.After(outbound.Date) {
					continue
				}

				if windowed {
					days := wholeDays(ret.Date.Sub(outbound.Date))
					if days > *req.MaxReturnDays {
						// returns are date-sorted; later ones only get further away
						break
					}
					if days < *req.MinReturnDays {
						continue
					}
				}

				if !req.Filter.MatchesTrip(outbound, ret) {
					continue
				}

				candidates = append(candidates, domain.RoundTripCandidate{
					Outbound: outbound.Summarize(),
					Return:   ret.Summarize(),
				})
			}
		}

		if len(candidates) == 0 {
			log.Debug().
				Str("origin", pair.Origin).
				Str("destination", pair.Destination).
				Msg("No valid round trips for city pairing")
			continue
		}
		result[pair] = candidates
	}

	return result
}

// wholeDays converts a positive duration to a whole-day count, flooring
// partial days the way calendar subtraction does.
func wholeDays(d time.Duration) int {
	return int(d / (24 * time.Hour))
}

// summarizeCheapest reduces a cabin's fares to the single cheapest trip per
// city pair, ties broken by first-seen order. The optional filter is applied
// to each fare before it competes.
func summarizeCheapest(fares []domain.CabinFareRecord, filter *domain.FilterCriteria) []domain.SummaryTrip {
	var order []domain.CityPair
	best := make(map[domain.CityPair]domain.SummaryTrip)

	for i := range fares {
		fare := &fares[i]
		if !filter.MatchesTrip(fare, nil) {
			continue
		}

		pair := fare.CityPair()
		trip := fare.Summarize()

		current, seen := best[pair]
		if seen && trip.TotalCost >= current.TotalCost {
			continue
		}
		if !seen {
			order = append(order, pair)
		}
		best[pair] = trip
	}

	trips := make([]domain.SummaryTrip, 0, len(order))
	for _, pair := range order {
		trips = append(trips, best[pair])
	}
	return trips
}
