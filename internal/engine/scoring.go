package engine

import (
	"fmt"
	"math"

	"github.com/award-alerts/award-fare-selection-system/internal/domain"
)

// distanceScale discounts the summed distance in the efficiency metric.
// The value is load-bearing for ranking parity with historical selections.
const distanceScale = 0.7

// Score computes the cost-per-distance efficiency metric over one or more
// trips:
//
//	score = sum(totalCost) / (sum(distanceKm) * 0.7)
//
// Lower is better. A zero summed distance scores positive infinity so
// degenerate trips never win on efficiency. Any trip with a zero cost or
// zero distance fails with ErrInvalidTrip; upstream stages are expected to
// have filtered those out.
func Score(trips ...domain.SummaryTrip) (float64, error) {
	if len(trips) == 0 {
		return 0, fmt.Errorf("%w: at least one trip must be provided", domain.ErrInvalidTrip)
	}

	var totalCost int64
	var totalDistance float64
	for _, trip := range trips {
		if trip.TotalCost == 0 || trip.DistanceKm == 0 {
			return 0, fmt.Errorf("%w: trip %s has no cost or distance", domain.ErrInvalidTrip, trip.ID)
		}
		totalCost += trip.TotalCost
		totalDistance += trip.DistanceKm
	}

	if totalDistance == 0 {
		return math.Inf(1), nil
	}
	return float64(totalCost) / (totalDistance * distanceScale), nil
}
