package domain

import "time"

// Route is an ordered pair of IATA airport codes.
type Route struct {
	// OriginAirport is the IATA code of the departure airport (e.g., "GRU")
	OriginAirport string `json:"OriginAirport"`

	// DestinationAirport is the IATA code of the arrival airport (e.g., "LIS")
	DestinationAirport string `json:"DestinationAirport"`
}

// CabinBucket holds the per-cabin slice of a raw availability record.
// Selecting a bucket through RawFareRecord.Bucket replaces the upstream
// convention of composing field names from the cabin code at runtime.
type CabinBucket struct {
	// Available reports whether award seats are bookable in this cabin
	Available bool `json:"Available"`

	// RemainingSeats is the number of award seats left in this cabin
	RemainingSeats int `json:"RemainingSeats"`

	// MileageCost is the raw price in loyalty points for this cabin
	MileageCost int64 `json:"MileageCost"`

	// TotalTaxes is the tax amount for this cabin in the smallest unit of
	// the record's TaxesCurrency
	TotalTaxes int64 `json:"TotalTaxes"`
}

// Bookable reports whether this bucket represents a fare that can actually
// be purchased: flagged available with at least one seat left.
func (b CabinBucket) Bookable() bool {
	return b.Available && b.RemainingSeats > 0
}

// RawFareRecord is one entry from an upstream availability batch, already
// deduplicated by ID by the upstream client. Immutable once ingested.
type RawFareRecord struct {
	// ID uniquely identifies this record within its source
	ID string `json:"ID"`

	// Route is the origin/destination airport pair
	Route Route `json:"Route"`

	// Date is the travel date (time-of-day is not meaningful)
	Date time.Time `json:"Date"`

	// TaxesCurrency is the ISO 4217 code the per-cabin taxes are quoted in
	TaxesCurrency string `json:"TaxesCurrency"`

	// Economy, Premium, Business and First hold the per-cabin availability data
	Economy  CabinBucket `json:"Economy"`
	Premium  CabinBucket `json:"Premium"`
	Business CabinBucket `json:"Business"`
	First    CabinBucket `json:"First"`
}

// Bucket returns the availability data for the given cabin class.
// Unknown cabins yield a zero bucket, which is never bookable.
func (r *RawFareRecord) Bucket(cabin Cabin) CabinBucket {
	switch cabin {
	case CabinEconomy:
		return r.Economy
	case CabinPremium:
		return r.Premium
	case CabinBusiness:
		return r.Business
	case CabinFirst:
		return r.First
	default:
		return CabinBucket{}
	}
}

// NormalizedRecord is a RawFareRecord enriched with airport metadata and the
// great-circle distance between its endpoints. Records whose airports cannot
// be resolved never become NormalizedRecords.
type NormalizedRecord struct {
	RawFareRecord

	// OriginCity and DestinationCity are the resolved city names
	OriginCity      string
	DestinationCity string

	// OriginCountry and DestinationCountry are the resolved country codes
	OriginCountry      string
	DestinationCountry string

	// DistanceKm is the great-circle distance between the two airports.
	// Only meaningful when DistanceKnown is true; records without known
	// coordinates are excluded before any stage that scores on distance.
	DistanceKm    float64
	DistanceKnown bool
}

// CityPair returns the (origin city, destination city) grouping key for
// this record.
func (n *NormalizedRecord) CityPair() CityPair {
	return CityPair{Origin: n.OriginCity, Destination: n.DestinationCity}
}

// CabinFareRecord is a NormalizedRecord restricted to a single cabin class,
// carrying the derived comparable cost in base-currency smallest units.
// Only bookable fares with a known distance become CabinFareRecords.
type CabinFareRecord struct {
	NormalizedRecord

	// Cabin is the cabin class this record was restricted to
	Cabin Cabin

	// MileageCost is the raw points price for this cabin
	MileageCost int64

	// RemainingSeats is the seat count for this cabin
	RemainingSeats int

	// ConvertedTaxes is the cabin's taxes converted to the base currency,
	// smallest unit
	ConvertedTaxes int64

	// TotalCost is mileageCost*mileageValue/1000 + ConvertedTaxes, in
	// base-currency smallest units
	TotalCost int64
}

// Summarize reduces the record to the minimal comparable unit used by
// pairing, scoring and selection.
func (r *CabinFareRecord) Summarize() SummaryTrip {
	return SummaryTrip{
		ID:              r.ID,
		OriginCity:      r.OriginCity,
		DestinationCity: r.DestinationCity,
		Date:            r.Date,
		TotalCost:       r.TotalCost,
		MileageCost:     r.MileageCost,
		Taxes:           r.ConvertedTaxes,
		DistanceKm:      r.DistanceKm,
	}
}
