// Package engine implements the award-fare selection pipeline: batch
// normalization, cost computation, round-trip pairing, scoring and top-N
// selection, merged across upstream sources.
package engine

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/award-alerts/award-fare-selection-system/internal/domain"
	"github.com/award-alerts/award-fare-selection-system/internal/infrastructure/logger"
)

// Selector is the engine's entry point: one invocation processes fully
// materialized batches, one per source, and returns the best selections per
// cabin class.
type Selector interface {
	// BestRoundTrips pairs outbound and return fares into round-trip
	// candidates and selects the top N city pairings per cabin across all
	// sources.
	BestRoundTrips(ctx context.Context, batches map[domain.Source][]domain.RawFareRecord, req domain.PassRequest) (map[domain.Cabin][]domain.CityPairing, error)

	// TopSingleTrips selects the top N individual trips per cabin across
	// all sources, one candidate per city pair.
	TopSingleTrips(ctx context.Context, batches map[domain.Source][]domain.RawFareRecord, req domain.PassRequest) (map[domain.Cabin][]domain.SummaryTrip, error)
}

// Deps are the capabilities the engine depends on. Airports, Mileage and
// Converter are required; Logger and Rand fall back to a no-op logger and a
// time-seeded RNG.
type Deps struct {
	Airports  domain.AirportResolver
	Mileage   domain.MileageValuer
	Converter domain.CurrencyConverter

	// Logger receives informational logs about drops and empty stages
	Logger *logger.Logger

	// Rand drives the presentation-order shuffle of selected pairings.
	// Inject a seeded source in tests to make passes reproducible.
	Rand *rand.Rand
}

// Engine implements Selector as a synchronous batch transformation with
// per-source scatter-gather.
type Engine struct {
	airports  domain.AirportResolver
	mileage   domain.MileageValuer
	converter domain.CurrencyConverter
	log       *logger.Logger
	rng       *rand.Rand
}

// New creates an Engine with the given dependencies.
func New(deps Deps) *Engine {
	log := deps.Logger
	if log == nil {
		log = logger.Nop()
	}
	rng := deps.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	return &Engine{
		airports:  deps.Airports,
		mileage:   deps.Mileage,
		converter: deps.Converter,
		log:       log,
		rng:       rng,
	}
}

// sourceRoundTrips holds one source's selected pairings or its failure.
type sourceRoundTrips struct {
	source   domain.Source
	byCabin  map[domain.Cabin][]domain.CityPairing
	err      error
	duration time.Duration
}

// BestRoundTrips implements Selector.BestRoundTrips.
//
// Each source's batch runs through the full pipeline independently and
// concurrently; the per-source selections are unioned by (cabin, city pair)
// and the selector runs once more across the union, so the final N pairings
// are the best across all sources rather than within any single one.
func (e *Engine) BestRoundTrips(ctx context.Context, batches map[domain.Source][]domain.RawFareRecord, req domain.PassRequest) (map[domain.Cabin][]domain.CityPairing, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	req.SetDefaults()

	if len(batches) == 0 {
		e.log.Warn().Msg("No availability batches provided")
		return nil, domain.ErrNoDataFound
	}

	results := make(chan sourceRoundTrips, len(batches))
	var wg sync.WaitGroup

	for source, records := range batches {
		wg.Add(1)
		go func(source domain.Source, records []domain.RawFareRecord) {
			defer wg.Done()
			start := time.Now()
			byCabin, err := e.roundTripsForSource(source, records, req)
			results <- sourceRoundTrips{
				source:   source,
				byCabin:  byCabin,
				err:      err,
				duration: time.Since(start),
			}
		}(source, records)
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	merged := make(map[domain.Cabin]map[domain.CityPair][]domain.RoundTripCandidate)
	var firstErr error
	for result := range results {
		if result.err != nil {
			if firstErr == nil {
				firstErr = result.err
			}
			continue
		}
		e.log.Debug().
			Str("source", string(result.source)).
			Dur("duration", result.duration).
			Msg("Source pass completed")

		for cabin, pairings := range result.byCabin {
			if merged[cabin] == nil {
				merged[cabin] = make(map[domain.CityPair][]domain.RoundTripCandidate)
			}
			for _, p := range pairings {
				merged[cabin][p.Pair] = append(merged[cabin][p.Pair], p.Candidates...)
			}
		}
	}

	if firstErr != nil {
		return nil, firstErr
	}
	if len(merged) == 0 {
		e.log.Warn().Msg("No round trips found in any source")
		return nil, domain.ErrNoDataFound
	}

	selected, err := e.selectTopRoundTrips(merged, req.TopN, true)
	if err != nil {
		return nil, err
	}
	if len(selected) == 0 {
		return nil, domain.ErrNoDataFound
	}
	return selected, nil
}

// roundTripsForSource runs the normalization, partitioning, pairing and
// selection stages over one source's batch. An empty outcome at any stage
// yields a nil map, not an error; valuation and currency failures surface
// as SourceErrors.
func (e *Engine) roundTripsForSource(source domain.Source, records []domain.RawFareRecord, req domain.PassRequest) (map[domain.Cabin][]domain.CityPairing, error) {
	log := e.log.WithSource(string(source))

	if len(records) == 0 {
		log.Warn().Msg("Empty availability batch")
		return nil, nil
	}
	log.Info().Int("records", len(records)).Msg("Processing availability batch")

	normalized := normalizeBatch(e.airports, records, log)
	if len(normalized) == 0 {
		log.Warn().Msg("No records survived normalization")
		return nil, nil
	}

	mileageValue, err := e.mileage.MileageValue(source)
	if err != nil {
		return nil, domain.NewSourceError(source, err)
	}

	byCabin := make(map[domain.Cabin]map[domain.CityPair][]domain.RoundTripCandidate)
	for _, cabin := range req.Cabins {
		cabinLog := log.WithCabin(cabin.Name())

		fares, err := buildCabinFares(e.converter, normalized, cabin, mileageValue, cabinLog)
		if err != nil {
			return nil, domain.NewSourceError(source, err)
		}
		if len(fares) == 0 {
			cabinLog.Debug().Msg("No bookable fares in cabin")
			continue
		}

		pairings := pairRoundTrips(fares, req, cabinLog)
		if len(pairings) > 0 {
			byCabin[cabin] = pairings
		}
	}

	if len(byCabin) == 0 {
		log.Warn().Msg("No round trips found for source")
		return nil, nil
	}

	// No shuffle here: this runs on a per-source goroutine and the order is
	// discarded when the merger unions pairings by city pair.
	return e.selectTopRoundTrips(byCabin, req.TopN, false)
}

// sourceSingleTrips holds one source's selected single trips or its failure.
type sourceSingleTrips struct {
	source  domain.Source
	byCabin map[domain.Cabin][]domain.SummaryTrip
	err     error
}

// TopSingleTrips implements Selector.TopSingleTrips. Structure mirrors
// BestRoundTrips: per-source passes run concurrently, results are unioned
// per cabin and the single-trip selector runs once more over the union.
func (e *Engine) TopSingleTrips(ctx context.Context, batches map[domain.Source][]domain.RawFareRecord, req domain.PassRequest) (map[domain.Cabin][]domain.SummaryTrip, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	req.SetDefaults()

	if len(batches) == 0 {
		e.log.Warn().Msg("No availability batches provided")
		return nil, domain.ErrNoDataFound
	}

	results := make(chan sourceSingleTrips, len(batches))
	var wg sync.WaitGroup

	for source, records := range batches {
		wg.Add(1)
		go func(source domain.Source, records []domain.RawFareRecord) {
			defer wg.Done()
			byCabin, err := e.singleTripsForSource(source, records, req)
			results <- sourceSingleTrips{source: source, byCabin: byCabin, err: err}
		}(source, records)
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	merged := make(map[domain.Cabin][]domain.SummaryTrip)
	var firstErr error
	for result := range results {
		if result.err != nil {
			if firstErr == nil {
				firstErr = result.err
			}
			continue
		}
		for cabin, trips := range result.byCabin {
			merged[cabin] = append(merged[cabin], trips...)
		}
	}

	if firstErr != nil {
		return nil, firstErr
	}
	if len(merged) == 0 {
		e.log.Warn().Msg("No trips found in any source")
		return nil, domain.ErrNoDataFound
	}

	selected, err := selectTopSingleTrips(merged, req.TopN)
	if err != nil {
		return nil, err
	}
	if len(selected) == 0 {
		return nil, domain.ErrNoDataFound
	}
	return selected, nil
}

// singleTripsForSource runs normalization, partitioning, per-route
// summarization and selection over one source's batch.
func (e *Engine) singleTripsForSource(source domain.Source, records []domain.RawFareRecord, req domain.PassRequest) (map[domain.Cabin][]domain.SummaryTrip, error) {
	log := e.log.WithSource(string(source))

	if len(records) == 0 {
		log.Warn().Msg("Empty availability batch")
		return nil, nil
	}

	normalized := normalizeBatch(e.airports, records, log)
	if len(normalized) == 0 {
		log.Warn().Msg("No records survived normalization")
		return nil, nil
	}

	mileageValue, err := e.mileage.MileageValue(source)
	if err != nil {
		return nil, domain.NewSourceError(source, err)
	}

	byCabin := make(map[domain.Cabin][]domain.SummaryTrip)
	for _, cabin := range req.Cabins {
		cabinLog := log.WithCabin(cabin.Name())

		fares, err := buildCabinFares(e.converter, normalized, cabin, mileageValue, cabinLog)
		if err != nil {
			return nil, domain.NewSourceError(source, err)
		}
		if len(fares) == 0 {
			cabinLog.Debug().Msg("No bookable fares in cabin")
			continue
		}

		trips := summarizeCheapest(fares, req.Filter)
		if len(trips) > 0 {
			byCabin[cabin] = trips
		}
	}

	if len(byCabin) == 0 {
		log.Warn().Msg("No trips found for source")
		return nil, nil
	}
	return selectTopSingleTrips(byCabin, req.TopN)
}

// Ensure Engine implements Selector at compile time.
var _ Selector = (*Engine)(nil)
