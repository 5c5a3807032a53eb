package engine

import (
	"sort"

	"github.com/award-alerts/award-fare-selection-system/internal/domain"
)

// Selection constants. Both values are load-bearing for parity with
// historical selections; treat changes as product decisions.
const (
	// maxCandidatesPerPairing caps how many of a city pairing's cheapest
	// candidates compete for selection.
	maxCandidatesPerPairing = 5

	// qualityBandRatio is the acceptance window relative to a pairing's
	// cheapest candidate: candidates priced above cheapest*ratio are
	// discarded even if they would rank well on score.
	qualityBandRatio = 1.1
)

// selectTopRoundTrips picks the best n city pairings per cabin.
//
// Per pairing: candidates are sorted by combined cost, truncated to the
// cheapest maxCandidatesPerPairing, and filtered to the quality band around
// the cheapest survivor. The pairing's average score is the score over all
// surviving legs divided by the candidate count. Pairings rank ascending by
// average score and the selected n are shuffled so presentation order
// carries no ranking signal.
//
// shuffle must only be true on the gathering goroutine: e.rng is not safe
// for concurrent use, and per-source passes discard their order at merge
// anyway.
func (e *Engine) selectTopRoundTrips(byCabin map[domain.Cabin]map[domain.CityPair][]domain.RoundTripCandidate, n int, shuffle bool) (map[domain.Cabin][]domain.CityPairing, error) {
	result := make(map[domain.Cabin][]domain.CityPairing, len(byCabin))

	for cabin, byPair := range byCabin {
		if len(byPair) == 0 {
			continue
		}

		// Walk pairs in a stable order so equal-score ties resolve the
		// same way on every run.
		pairs := sortedPairs(byPair)

		pairings := make([]domain.CityPairing, 0, len(byPair))
		for _, pair := range pairs {
			pairing, ok, err := buildPairing(pair, byPair[pair])
			if err != nil {
				return nil, err
			}
			if ok {
				pairings = append(pairings, pairing)
			}
		}
		if len(pairings) == 0 {
			continue
		}

		sort.SliceStable(pairings, func(i, j int) bool {
			return pairings[i].AverageScore < pairings[j].AverageScore
		})
		if len(pairings) > n {
			pairings = pairings[:n]
		}

		if shuffle {
			// Presentation order only; composition is already fixed.
			e.rng.Shuffle(len(pairings), func(i, j int) {
				pairings[i], pairings[j] = pairings[j], pairings[i]
			})
		}

		result[cabin] = pairings
	}

	return result, nil
}

// buildPairing applies the truncation and quality band to one city pairing's
// candidates and computes its score and aggregate statistics. The boolean is
// false when no candidate survives.
func buildPairing(pair domain.CityPair, candidates []domain.RoundTripCandidate) (domain.CityPairing, bool, error) {
	if len(candidates) == 0 {
		return domain.CityPairing{}, false, nil
	}

	sorted := make([]domain.RoundTripCandidate, len(candidates))
	copy(sorted, candidates)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CombinedCost() < sorted[j].CombinedCost()
	})
	if len(sorted) > maxCandidatesPerPairing {
		sorted = sorted[:maxCandidatesPerPairing]
	}

	baseline := sorted[0].CombinedCost()
	kept := make([]domain.RoundTripCandidate, 0, len(sorted))
	for _, c := range sorted {
		if float64(c.CombinedCost()) <= float64(baseline)*qualityBandRatio {
			kept = append(kept, c)
		}
	}
	if len(kept) == 0 {
		return domain.CityPairing{}, false, nil
	}

	legs := make([]domain.SummaryTrip, 0, 2*len(kept))
	for _, c := range kept {
		legs = append(legs, c.Outbound)
	}
	for _, c := range kept {
		legs = append(legs, c.Return)
	}

	score, err := Score(legs...)
	if err != nil {
		return domain.CityPairing{}, false, err
	}

	return domain.CityPairing{
		Pair:         pair,
		Candidates:   kept,
		AverageScore: score / float64(len(kept)),
		Stats:        domain.NewPairingStats(kept),
	}, true, nil
}

// selectTopSingleTrips picks the n best-scoring trips per cabin. No quality
// band or shuffle applies in single-trip mode.
func selectTopSingleTrips(byCabin map[domain.Cabin][]domain.SummaryTrip, n int) (map[domain.Cabin][]domain.SummaryTrip, error) {
	result := make(map[domain.Cabin][]domain.SummaryTrip, len(byCabin))

	for cabin, trips := range byCabin {
		if len(trips) == 0 {
			continue
		}

		type scoredTrip struct {
			trip  domain.SummaryTrip
			score float64
		}

		scored := make([]scoredTrip, 0, len(trips))
		for _, trip := range trips {
			score, err := Score(trip)
			if err != nil {
				return nil, err
			}
			scored = append(scored, scoredTrip{trip: trip, score: score})
		}

		sort.SliceStable(scored, func(i, j int) bool {
			return scored[i].score < scored[j].score
		})
		if len(scored) > n {
			scored = scored[:n]
		}

		selected := make([]domain.SummaryTrip, 0, len(scored))
		for _, s := range scored {
			selected = append(selected, s.trip)
		}
		result[cabin] = selected
	}

	return result, nil
}

// sortedPairs returns the map's keys ordered by origin then destination.
func sortedPairs(byPair map[domain.CityPair][]domain.RoundTripCandidate) []domain.CityPair {
	pairs := make([]domain.CityPair, 0, len(byPair))
	for pair := range byPair {
		pairs = append(pairs, pair)
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].Origin != pairs[j].Origin {
			return pairs[i].Origin < pairs[j].Origin
		}
		return pairs[i].Destination < pairs[j].Destination
	})
	return pairs
}
