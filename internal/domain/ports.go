package domain

import "context"

// AirportInfo is the metadata resolved for an IATA airport code.
type AirportInfo struct {
	// City is the airport's city name
	City string

	// Country is the airport's country code (e.g., "BR")
	Country string

	// Coordinates is the airport's location, nil when unknown. A record
	// touching an airport without coordinates has no defined distance.
	Coordinates *Coordinates
}

// AirportResolver looks up airport metadata by IATA code.
// A miss is reported through the boolean, never as an error; unresolvable
// airports are a silent filter in the normalization stage.
type AirportResolver interface {
	Resolve(code string) (AirportInfo, bool)
}

// MileageValuer returns the assumed monetary worth of 1000 loyalty points
// for a program, in base-currency smallest units.
// Fails with ErrUnknownProgram when no valuation exists for the program.
type MileageValuer interface {
	MileageValue(program Source) (int64, error)
}

// CurrencyConverter converts amounts in smallest currency units to the
// configured base currency. Identity when fromCurrency equals the base
// currency; fails with ErrUnknownCurrency when no rate can be obtained.
//
// Within one selection pass the converter's view of rates must be a
// consistent snapshot: a rate is read once per currency and reused.
type CurrencyConverter interface {
	ToBase(amount int64, fromCurrency string) (int64, error)
	BaseCurrency() string
}

// BulkQuery scopes an upstream availability fetch.
type BulkQuery struct {
	// Source is the loyalty program to fetch availability for
	Source Source

	// OriginRegion and DestinationRegion scope the routes searched
	OriginRegion      Region
	DestinationRegion Region

	// StartDate and EndDate bound the travel dates, YYYY-MM-DD, optional
	StartDate string
	EndDate   string

	// Depth is the maximum number of result pages to walk (default 1)
	Depth int
}

// AvailabilitySource retrieves raw availability batches from an upstream
// provider. Implementations handle pagination and deduplication by record
// ID; the selection engine never re-deduplicates.
type AvailabilitySource interface {
	FetchBulkAvailability(ctx context.Context, query BulkQuery) ([]RawFareRecord, error)
}
