// Package domain contains the core business entities and rules for the award
// fare selection system. These entities are program-agnostic and form the
// foundation upon which all other components are built.
package domain

import "fmt"

// Cabin identifies a service tier tracked independently in availability data.
// Values are the standard IATA cabin codes.
type Cabin string

// Supported cabin classes.
const (
	// CabinEconomy is economy/coach class.
	CabinEconomy Cabin = "Y"

	// CabinPremium is premium economy class.
	CabinPremium Cabin = "W"

	// CabinBusiness is business class.
	CabinBusiness Cabin = "J"

	// CabinFirst is first class.
	CabinFirst Cabin = "F"
)

// cabinNames maps cabin codes to their human-readable names.
var cabinNames = map[Cabin]string{
	CabinEconomy:  "economy",
	CabinPremium:  "premium",
	CabinBusiness: "business",
	CabinFirst:    "first",
}

// AllCabins returns every supported cabin class in a stable order.
func AllCabins() []Cabin {
	return []Cabin{CabinEconomy, CabinPremium, CabinBusiness, CabinFirst}
}

// IsValid checks if the cabin is a supported value.
func (c Cabin) IsValid() bool {
	_, ok := cabinNames[c]
	return ok
}

// Name returns the human-readable cabin name (e.g., "economy" for Y).
// Returns an empty string for unknown cabins.
func (c Cabin) Name() string {
	return cabinNames[c]
}

// ParseCabin converts a string to a Cabin. It accepts both the IATA code
// ("Y") and the human-readable name ("economy"), case-sensitively for codes.
func ParseCabin(s string) (Cabin, error) {
	c := Cabin(s)
	if c.IsValid() {
		return c, nil
	}
	for cabin, name := range cabinNames {
		if s == name {
			return cabin, nil
		}
	}
	return "", fmt.Errorf("%w: unknown cabin class %q", ErrInvalidRequest, s)
}
