// Package airports resolves IATA airport codes to city, country, and
// coordinates. The default table ships with a built-in set of airports and
// can be extended or replaced from a CSV file.
package airports

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/award-alerts/award-fare-selection-system/internal/domain"
)

// Table is an in-memory IATA lookup table.
type Table struct {
	byCode map[string]domain.AirportInfo
}

// NewTable creates an empty Table.
func NewTable() *Table {
	return &Table{byCode: make(map[string]domain.AirportInfo)}
}

// Builtin returns a Table seeded with the built-in airport set.
func Builtin() *Table {
	t := NewTable()
	for code, info := range builtinAirports {
		t.byCode[code] = info
	}
	return t
}

// Add registers or replaces one airport.
func (t *Table) Add(code string, info domain.AirportInfo) {
	t.byCode[strings.ToUpper(code)] = info
}

// Len reports how many airports the table knows.
func (t *Table) Len() int {
	return len(t.byCode)
}

// Resolve looks up an IATA code. Lookups are case-insensitive.
func (t *Table) Resolve(code string) (domain.AirportInfo, bool) {
	info, ok := t.byCode[strings.ToUpper(code)]
	return info, ok
}

// LoadCSV merges airports from a CSV file into the table. The expected
// columns are iata,city,country[,latitude,longitude]; a header row is
// detected and skipped. Rows without coordinates are kept, the resulting
// airports simply have no distance information.
func (t *Table) LoadCSV(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open airports file: %w", err)
	}
	defer f.Close()

	if err := t.loadCSV(f); err != nil {
		return fmt.Errorf("load airports from %s: %w", path, err)
	}
	return nil
}

func (t *Table) loadCSV(r io.Reader) error {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	line := 0
	for {
		row, err := reader.Read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		line++

		if line == 1 && strings.EqualFold(row[0], "iata") {
			continue
		}
		if len(row) < 3 {
			return fmt.Errorf("row %d: want at least iata,city,country", line)
		}

		code := strings.ToUpper(strings.TrimSpace(row[0]))
		if len(code) != 3 {
			return fmt.Errorf("row %d: invalid IATA code %q", line, row[0])
		}

		info := domain.AirportInfo{
			City:    strings.TrimSpace(row[1]),
			Country: strings.TrimSpace(row[2]),
		}

		if len(row) >= 5 && row[3] != "" && row[4] != "" {
			lat, err := strconv.ParseFloat(strings.TrimSpace(row[3]), 64)
			if err != nil {
				return fmt.Errorf("row %d: invalid latitude: %w", line, err)
			}
			lon, err := strconv.ParseFloat(strings.TrimSpace(row[4]), 64)
			if err != nil {
				return fmt.Errorf("row %d: invalid longitude: %w", line, err)
			}
			info.Coordinates = &domain.Coordinates{Latitude: lat, Longitude: lon}
		}

		t.byCode[code] = info
	}
}

var _ domain.AirportResolver = (*Table)(nil)
