package engine

import (
	"fmt"

	"github.com/award-alerts/award-fare-selection-system/internal/domain"
	"github.com/award-alerts/award-fare-selection-system/internal/infrastructure/logger"
)

// costBasis converts a raw points price into the comparable total cost in
// base-currency smallest units:
//
//	totalCost = mileageCost * mileageValue / 1000 + convertedTaxes
//
// All operands are non-negative, so Go's truncating integer division is the
// floor division the contract requires.
func costBasis(mileageCost, mileageValue, convertedTaxes int64) int64 {
	return mileageCost*mileageValue/1000 + convertedTaxes
}

// buildCabinFares restricts a normalized batch to one cabin class, keeping
// only bookable fares (available with seats remaining) whose distance is
// known, and derives each retained record's total cost.
//
// An empty result means "no valid fares in this cabin" and is not an error.
// A currency-conversion failure aborts the cabin: partial results with
// silently zeroed costs are worse than no results.
func buildCabinFares(converter domain.CurrencyConverter, records []domain.NormalizedRecord, cabin domain.Cabin, mileageValue int64, log *logger.Logger) ([]domain.CabinFareRecord, error) {
	fares := make([]domain.CabinFareRecord, 0, len(records))

	for _, rec := range records {
		bucket := rec.Bucket(cabin)
		if !bucket.Bookable() {
			continue
		}
		if !rec.DistanceKnown {
			log.Debug().
				Str("record_id", rec.ID).
				Msg("Dropping record without coordinates for both airports")
			continue
		}

		taxes, err := converter.ToBase(bucket.TotalTaxes, rec.TaxesCurrency)
		if err != nil {
			return nil, fmt.Errorf("cabin %s: convert taxes for record %s: %w", cabin.Name(), rec.ID, err)
		}

		fares = append(fares, domain.CabinFareRecord{
			NormalizedRecord: rec,
			Cabin:            cabin,
			MileageCost:      bucket.MileageCost,
			RemainingSeats:   bucket.RemainingSeats,
			ConvertedTaxes:   taxes,
			TotalCost:        costBasis(bucket.MileageCost, mileageValue, taxes),
		})
	}

	return fares, nil
}
