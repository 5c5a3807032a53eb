package engine

import (
	"bytes"
	"context"
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/award-alerts/award-fare-selection-system/internal/domain"
	"github.com/award-alerts/award-fare-selection-system/internal/infrastructure/logger"
)

// Test fixtures shared by the engine package tests. Airports sit on the
// equator so distances are simple multiples of one degree of longitude
// (about 111.2 km).

type fakeResolver map[string]domain.AirportInfo

func (f fakeResolver) Resolve(code string) (domain.AirportInfo, bool) {
	info, ok := f[code]
	return info, ok
}

type fakeMileage map[domain.Source]int64

func (f fakeMileage) MileageValue(source domain.Source) (int64, error) {
	value, ok := f[source]
	if !ok {
		return 0, fmt.Errorf("%w: %s", domain.ErrUnknownProgram, source)
	}
	return value, nil
}

type fakeConverter struct {
	base  string
	rates map[string]int64 // cents of conversion factor
}

func (f *fakeConverter) BaseCurrency() string { return f.base }

func (f *fakeConverter) ToBase(amount int64, fromCurrency string) (int64, error) {
	if fromCurrency == f.base {
		return amount, nil
	}
	rate, ok := f.rates[fromCurrency]
	if !ok {
		return 0, fmt.Errorf("%w: %s", domain.ErrUnknownCurrency, fromCurrency)
	}
	return amount * rate / 100, nil
}

func testResolver() fakeResolver {
	return fakeResolver{
		"AAA": {City: "Alpha", Country: "Xland", Coordinates: &domain.Coordinates{Latitude: 0, Longitude: 0}},
		"BBB": {City: "Beta", Country: "Yland", Coordinates: &domain.Coordinates{Latitude: 0, Longitude: 10}},
		"CCC": {City: "Gamma", Country: "Zland", Coordinates: &domain.Coordinates{Latitude: 0, Longitude: 30}},
		"NOC": {City: "Nowhere", Country: "Xland"},
	}
}

// testEngine builds an Engine with a fixed seed so selection output is
// reproducible. Mileage value 1000 makes totalCost = mileageCost + taxes.
func testEngine(seed int64) *Engine {
	return New(Deps{
		Airports:  testResolver(),
		Mileage:   fakeMileage{domain.SourceAzul: 1000, domain.SourceSmiles: 2000},
		Converter: &fakeConverter{base: "USD", rates: map[string]int64{"BRL": 20}},
		Rand:      rand.New(rand.NewSource(seed)),
	})
}

var testBase = time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)

func eco(miles, taxes int64, seats int) domain.CabinBucket {
	return domain.CabinBucket{
		Available:      seats > 0,
		RemainingSeats: seats,
		MileageCost:    miles,
		TotalTaxes:     taxes,
	}
}

func rawRecord(id, origin, dest string, day int, economy domain.CabinBucket) domain.RawFareRecord {
	return domain.RawFareRecord{
		ID:            id,
		Route:         domain.Route{OriginAirport: origin, DestinationAirport: dest},
		Date:          testBase.AddDate(0, 0, day),
		TaxesCurrency: "USD",
		Economy:       economy,
	}
}

func economyOnly() []domain.Cabin { return []domain.Cabin{domain.CabinEconomy} }

func TestEngine_BestRoundTrips(t *testing.T) {
	e := testEngine(1)

	batches := map[domain.Source][]domain.RawFareRecord{
		domain.SourceAzul: {
			rawRecord("out-cheap", "AAA", "BBB", 0, eco(50000, 10000, 4)),
			rawRecord("out-dear", "AAA", "BBB", 1, eco(90000, 10000, 4)),
			rawRecord("ret", "BBB", "AAA", 7, eco(40000, 10000, 4)),
		},
	}

	selected, err := e.BestRoundTrips(context.Background(), batches, domain.PassRequest{
		Cabins: economyOnly(),
		TopN:   1,
	})
	require.NoError(t, err)
	require.Len(t, selected, 1)

	pairings := selected[domain.CabinEconomy]
	require.Len(t, pairings, 1)

	pairing := pairings[0]
	assert.Equal(t, domain.CityPair{Origin: "Alpha", Destination: "Beta"}, pairing.Pair)

	// The dear outbound costs 100000 against the cheap one's 60000 and falls
	// outside the 10% quality band, so only one candidate survives.
	require.Len(t, pairing.Candidates, 1)
	candidate := pairing.Candidates[0]
	assert.Equal(t, "out-cheap", candidate.Outbound.ID)
	assert.Equal(t, "ret", candidate.Return.ID)
	assert.Equal(t, int64(60000), candidate.Outbound.TotalCost)
	assert.Equal(t, int64(50000), candidate.Return.TotalCost)

	assert.Equal(t, int64(110000), pairing.Stats.MinCost)
	assert.Equal(t, int64(110000), pairing.Stats.MaxCost)
	assert.Equal(t, int64(90000), pairing.Stats.MinMileage)
	assert.Equal(t, int64(20000), pairing.Stats.MinTaxes)

	// Both legs cover 10 degrees of longitude on the equator.
	legDistance := 6371.0088 * 10 * 3.141592653589793 / 180
	wantScore := 110000 / (2 * legDistance * 0.7)
	assert.InDelta(t, wantScore, pairing.AverageScore, 1e-6)
}

func TestEngine_BestRoundTrips_EmptyInput(t *testing.T) {
	e := testEngine(1)

	_, err := e.BestRoundTrips(context.Background(), nil, domain.PassRequest{})
	assert.ErrorIs(t, err, domain.ErrNoDataFound)

	_, err = e.BestRoundTrips(context.Background(), map[domain.Source][]domain.RawFareRecord{
		domain.SourceAzul:   {},
		domain.SourceSmiles: {},
	}, domain.PassRequest{})
	assert.ErrorIs(t, err, domain.ErrNoDataFound)
}

func TestEngine_BestRoundTrips_InvalidRequest(t *testing.T) {
	e := testEngine(1)

	_, err := e.BestRoundTrips(context.Background(), map[domain.Source][]domain.RawFareRecord{
		domain.SourceAzul: {rawRecord("r1", "AAA", "BBB", 0, eco(1000, 100, 1))},
	}, domain.PassRequest{TopN: -1})
	assert.ErrorIs(t, err, domain.ErrInvalidRequest)
}

func TestEngine_BestRoundTrips_UnknownProgram(t *testing.T) {
	e := testEngine(1)

	_, err := e.BestRoundTrips(context.Background(), map[domain.Source][]domain.RawFareRecord{
		domain.SourceQantas: {
			rawRecord("out", "AAA", "BBB", 0, eco(1000, 100, 1)),
			rawRecord("ret", "BBB", "AAA", 5, eco(1000, 100, 1)),
		},
	}, domain.PassRequest{Cabins: economyOnly()})

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUnknownProgram)

	var sourceErr *domain.SourceError
	require.ErrorAs(t, err, &sourceErr)
	assert.Equal(t, domain.SourceQantas, sourceErr.Source)
}

func TestEngine_BestRoundTrips_UnknownCurrency(t *testing.T) {
	e := testEngine(1)

	out := rawRecord("out", "AAA", "BBB", 0, eco(1000, 100, 1))
	out.TaxesCurrency = "XXX"
	ret := rawRecord("ret", "BBB", "AAA", 5, eco(1000, 100, 1))

	_, err := e.BestRoundTrips(context.Background(), map[domain.Source][]domain.RawFareRecord{
		domain.SourceAzul: {out, ret},
	}, domain.PassRequest{Cabins: economyOnly()})

	assert.ErrorIs(t, err, domain.ErrUnknownCurrency)
}

func TestEngine_BestRoundTrips_ExcludesSoldOutFares(t *testing.T) {
	e := testEngine(1)

	batches := map[domain.Source][]domain.RawFareRecord{
		domain.SourceAzul: {
			rawRecord("out", "AAA", "BBB", 0, eco(50000, 10000, 0)), // no seats left
			rawRecord("ret", "BBB", "AAA", 7, eco(40000, 10000, 4)),
		},
	}

	_, err := e.BestRoundTrips(context.Background(), batches, domain.PassRequest{Cabins: economyOnly()})
	assert.ErrorIs(t, err, domain.ErrNoDataFound)
}

func TestEngine_BestRoundTrips_MergesSources(t *testing.T) {
	e := testEngine(1)

	// Same route in both programs; smiles miles are worth double, so its
	// candidate is dearer and azul's must win the ranking inside the merged
	// pairing.
	batches := map[domain.Source][]domain.RawFareRecord{
		domain.SourceAzul: {
			rawRecord("azul-out", "AAA", "BBB", 0, eco(50000, 10000, 4)),
			rawRecord("azul-ret", "BBB", "AAA", 7, eco(40000, 10000, 4)),
		},
		domain.SourceSmiles: {
			rawRecord("smiles-out", "AAA", "BBB", 0, eco(50000, 10000, 4)),
			rawRecord("smiles-ret", "BBB", "AAA", 7, eco(40000, 10000, 4)),
		},
	}

	selected, err := e.BestRoundTrips(context.Background(), batches, domain.PassRequest{
		Cabins: economyOnly(),
		TopN:   1,
	})
	require.NoError(t, err)

	pairings := selected[domain.CabinEconomy]
	require.Len(t, pairings, 1)

	// The smiles candidate costs 110000+90000=200000 against azul's 110000
	// and falls outside the quality band of the merged pairing.
	require.Len(t, pairings[0].Candidates, 1)
	assert.Equal(t, "azul-out", pairings[0].Candidates[0].Outbound.ID)
}

func TestEngine_BestRoundTrips_DeterministicWithSeed(t *testing.T) {
	batches := map[domain.Source][]domain.RawFareRecord{
		domain.SourceAzul: {
			rawRecord("ab-out", "AAA", "BBB", 0, eco(50000, 10000, 4)),
			rawRecord("ab-ret", "BBB", "AAA", 7, eco(40000, 10000, 4)),
			rawRecord("ac-out", "AAA", "CCC", 0, eco(60000, 10000, 4)),
			rawRecord("ac-ret", "CCC", "AAA", 7, eco(50000, 10000, 4)),
			rawRecord("bc-out", "BBB", "CCC", 0, eco(30000, 10000, 4)),
			rawRecord("bc-ret", "CCC", "BBB", 7, eco(30000, 10000, 4)),
		},
	}
	req := domain.PassRequest{Cabins: economyOnly(), TopN: 2}

	first, err := testEngine(42).BestRoundTrips(context.Background(), batches, req)
	require.NoError(t, err)
	second, err := testEngine(42).BestRoundTrips(context.Background(), batches, req)
	require.NoError(t, err)

	assert.Equal(t, first, second, "same seed and input must reproduce the pass")
	assert.Len(t, first[domain.CabinEconomy], 2)
}

func TestEngine_BestRoundTrips_ConcurrentSourcePasses(t *testing.T) {
	// Every source contributes pairings that reach per-source selection, so
	// the source goroutines all run the selector concurrently. Run enough
	// passes for the race detector to catch any shuffle outside the
	// gathering goroutine.
	batches := map[domain.Source][]domain.RawFareRecord{
		domain.SourceAzul: {
			rawRecord("azul-ab-out", "AAA", "BBB", 0, eco(50000, 10000, 4)),
			rawRecord("azul-ab-ret", "BBB", "AAA", 7, eco(40000, 10000, 4)),
			rawRecord("azul-ac-out", "AAA", "CCC", 0, eco(60000, 10000, 4)),
			rawRecord("azul-ac-ret", "CCC", "AAA", 7, eco(50000, 10000, 4)),
		},
		domain.SourceSmiles: {
			rawRecord("smiles-ab-out", "AAA", "BBB", 0, eco(50000, 10000, 4)),
			rawRecord("smiles-ab-ret", "BBB", "AAA", 7, eco(40000, 10000, 4)),
			rawRecord("smiles-ac-out", "AAA", "CCC", 0, eco(60000, 10000, 4)),
			rawRecord("smiles-ac-ret", "CCC", "AAA", 7, eco(50000, 10000, 4)),
		},
	}
	req := domain.PassRequest{Cabins: economyOnly(), TopN: 2}

	for seed := int64(0); seed < 25; seed++ {
		selected, err := testEngine(seed).BestRoundTrips(context.Background(), batches, req)
		require.NoError(t, err)
		assert.Len(t, selected[domain.CabinEconomy], 2)
	}
}

func TestEngine_LogsCarryCabinContext(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewWithOutput(logger.Config{Level: "debug", Format: "json"}, &buf)

	e := New(Deps{
		Airports:  testResolver(),
		Mileage:   fakeMileage{domain.SourceAzul: 1000},
		Converter: &fakeConverter{base: "USD"},
		Logger:    log,
		Rand:      rand.New(rand.NewSource(1)),
	})

	// Economy records only, so every other cabin logs its empty partition.
	batches := map[domain.Source][]domain.RawFareRecord{
		domain.SourceAzul: {
			rawRecord("out", "AAA", "BBB", 0, eco(50000, 10000, 4)),
			rawRecord("ret", "BBB", "AAA", 7, eco(40000, 10000, 4)),
		},
	}

	_, err := e.BestRoundTrips(context.Background(), batches, domain.PassRequest{})
	require.NoError(t, err)

	logs := buf.String()
	assert.Contains(t, logs, `"cabin":"business"`)
	assert.Contains(t, logs, "No bookable fares in cabin")
}

func TestEngine_TopSingleTrips(t *testing.T) {
	e := testEngine(1)

	batches := map[domain.Source][]domain.RawFareRecord{
		domain.SourceAzul: {
			rawRecord("ab-cheap", "AAA", "BBB", 0, eco(50000, 10000, 4)),
			rawRecord("ab-dear", "AAA", "BBB", 1, eco(90000, 10000, 4)),
			rawRecord("ac", "AAA", "CCC", 0, eco(60000, 10000, 4)),
		},
	}

	selected, err := e.TopSingleTrips(context.Background(), batches, domain.PassRequest{
		Cabins: economyOnly(),
		TopN:   2,
	})
	require.NoError(t, err)

	trips := selected[domain.CabinEconomy]
	require.Len(t, trips, 2)

	// Alpha-Gamma covers three times the distance for barely more cost, so
	// it scores best; the Alpha-Beta slot keeps only the cheapest record.
	assert.Equal(t, "ac", trips[0].ID)
	assert.Equal(t, "ab-cheap", trips[1].ID)
}

func TestEngine_TopSingleTrips_EmptyInput(t *testing.T) {
	e := testEngine(1)

	_, err := e.TopSingleTrips(context.Background(), nil, domain.PassRequest{})
	assert.ErrorIs(t, err, domain.ErrNoDataFound)
}

func TestEngine_TopSingleTrips_FilterApplied(t *testing.T) {
	e := testEngine(1)

	country := "Zland"
	batches := map[domain.Source][]domain.RawFareRecord{
		domain.SourceAzul: {
			rawRecord("ab", "AAA", "BBB", 0, eco(50000, 10000, 4)),
			rawRecord("ac", "AAA", "CCC", 0, eco(60000, 10000, 4)),
		},
	}

	selected, err := e.TopSingleTrips(context.Background(), batches, domain.PassRequest{
		Cabins: economyOnly(),
		TopN:   5,
		Filter: &domain.FilterCriteria{DestinationCountry: &country},
	})
	require.NoError(t, err)

	trips := selected[domain.CabinEconomy]
	require.Len(t, trips, 1)
	assert.Equal(t, "ac", trips[0].ID)
}
