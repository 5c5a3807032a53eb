package engine

import (
	"github.com/award-alerts/award-fare-selection-system/internal/domain"
	"github.com/award-alerts/award-fare-selection-system/internal/infrastructure/logger"
)

// normalizeBatch enriches raw records with airport metadata and great-circle
// distance. Records whose origin or destination cannot be resolved are
// dropped silently; a record touching an airport without coordinates is kept
// but marked without distance, which excludes it from cost partitioning.
//
// An empty or entirely unresolvable batch yields an empty result, not an
// error.
func normalizeBatch(resolver domain.AirportResolver, records []domain.RawFareRecord, log *logger.Logger) []domain.NormalizedRecord {
	normalized := make([]domain.NormalizedRecord, 0, len(records))

	for _, rec := range records {
		origin, ok := resolver.Resolve(rec.Route.OriginAirport)
		if !ok {
			log.Debug().
				Str("record_id", rec.ID).
				Str("airport", rec.Route.OriginAirport).
				Msg("Dropping record with unresolvable origin airport")
			continue
		}

		destination, ok := resolver.Resolve(rec.Route.DestinationAirport)
		if !ok {
			log.Debug().
				Str("record_id", rec.ID).
				Str("airport", rec.Route.DestinationAirport).
				Msg("Dropping record with unresolvable destination airport")
			continue
		}

		n := domain.NormalizedRecord{
			RawFareRecord:      rec,
			OriginCity:         origin.City,
			DestinationCity:    destination.City,
			OriginCountry:      origin.Country,
			DestinationCountry: destination.Country,
		}

		if origin.Coordinates != nil && destination.Coordinates != nil {
			n.DistanceKm = origin.Coordinates.DistanceKm(*destination.Coordinates)
			n.DistanceKnown = true
		}

		normalized = append(normalized, n)
	}

	log.Info().
		Int("input", len(records)).
		Int("normalized", len(normalized)).
		Msg("Normalized availability batch")

	return normalized
}
