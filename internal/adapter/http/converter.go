package http

import (
	"math"
	"time"

	"github.com/award-alerts/award-fare-selection-system/internal/domain"
)

// defaultDateWindowDays is the travel-date span used when the request leaves
// the window open.
const defaultDateWindowDays = 60

// ToPassRequest converts a validated SelectionRequest to the engine's pass
// request. Validation must have run first; unknown cabins are skipped here.
func ToPassRequest(r *SelectionRequest) domain.PassRequest {
	req := domain.PassRequest{
		MinReturnDays: r.MinReturnDays,
		MaxReturnDays: r.MaxReturnDays,
		TopN:          r.TopN,
		Filter:        toFilterCriteria(r.Filter),
	}

	for _, raw := range r.Cabins {
		cabin, err := domain.ParseCabin(raw)
		if err != nil {
			continue
		}
		req.Cabins = append(req.Cabins, cabin)
	}

	req.SetDefaults()
	return req
}

func toFilterCriteria(f *FilterDTO) *domain.FilterCriteria {
	if f == nil {
		return nil
	}
	return &domain.FilterCriteria{
		OriginCountry:            f.OriginCountry,
		DestinationCountry:       f.DestinationCountry,
		OriginCities:             f.OriginCities,
		DestinationCities:        f.DestinationCities,
		ExcludeOriginCities:      f.ExcludeOriginCities,
		ExcludeDestinationCities: f.ExcludeDestinationCities,
		MaxCost:                  f.MaxCost,
		MinDistanceKm:            f.MinDistanceKm,
		MaxDistanceKm:            f.MaxDistanceKm,
	}
}

// ToBulkQuery builds the upstream fetch scope for one source. Missing date
// bounds default to a window opening at now.
func ToBulkQuery(r *SelectionRequest, source domain.Source, maxDepth int, now time.Time) domain.BulkQuery {
	start := r.StartDate
	if start == "" {
		start = now.Format("2006-01-02")
	}
	end := r.EndDate
	if end == "" {
		startDate, err := time.Parse("2006-01-02", start)
		if err != nil {
			startDate = now
		}
		end = startDate.AddDate(0, 0, defaultDateWindowDays).Format("2006-01-02")
	}

	depth := r.PageDepth
	if depth <= 0 || depth > maxDepth {
		depth = maxDepth
	}

	return domain.BulkQuery{
		Source:            source,
		OriginRegion:      domain.Region(r.OriginRegion),
		DestinationRegion: domain.Region(r.DestinationRegion),
		StartDate:         start,
		EndDate:           end,
		Depth:             depth,
	}
}

// ToRoundTripResponse converts the engine's per-cabin pairings to the API
// response shape.
func ToRoundTripResponse(selected map[domain.Cabin][]domain.CityPairing, meta SelectionMetadata) *RoundTripSelectionResponse {
	resp := &RoundTripSelectionResponse{
		Cabins:   make(map[string][]CityPairingDTO, len(selected)),
		Metadata: meta,
	}

	for cabin, pairings := range selected {
		dtos := make([]CityPairingDTO, len(pairings))
		for i, p := range pairings {
			dtos[i] = CityPairingDTO{
				OriginCity:      p.Pair.Origin,
				DestinationCity: p.Pair.Destination,
				AverageScore:    finiteScore(p.AverageScore),
				Stats:           p.Stats,
				Candidates:      p.Candidates,
			}
		}
		resp.Cabins[string(cabin)] = dtos
	}
	return resp
}

// ToSingleTripResponse converts the engine's per-cabin trips to the API
// response shape.
func ToSingleTripResponse(selected map[domain.Cabin][]domain.SummaryTrip, meta SelectionMetadata) *SingleTripSelectionResponse {
	resp := &SingleTripSelectionResponse{
		Cabins:   make(map[string][]domain.SummaryTrip, len(selected)),
		Metadata: meta,
	}
	for cabin, trips := range selected {
		resp.Cabins[string(cabin)] = trips
	}
	return resp
}

// finiteScore clamps an infinite score so the response stays valid JSON.
// Scores go infinite only for zero-distance routes.
func finiteScore(score float64) float64 {
	if math.IsInf(score, 0) {
		return math.MaxFloat64
	}
	return score
}
