package domain

// Source identifies an upstream loyalty program / booking source whose
// availability batches feed the selection engine.
type Source string

// Supported mileage programs.
const (
	SourceAzul   Source = "azul"
	SourceSmiles Source = "smiles"
	SourceQantas Source = "qantas"
)

// AllSources returns every supported source in a stable order.
func AllSources() []Source {
	return []Source{SourceAzul, SourceSmiles, SourceQantas}
}

// IsValid checks if the source is a supported value.
func (s Source) IsValid() bool {
	switch s {
	case SourceAzul, SourceSmiles, SourceQantas:
		return true
	default:
		return false
	}
}

// Region is a geographical area used to scope upstream availability queries.
type Region string

// Supported regions.
const (
	RegionNorthAmerica Region = "North America"
	RegionSouthAmerica Region = "South America"
	RegionAfrica       Region = "Africa"
	RegionAsia         Region = "Asia"
	RegionEurope       Region = "Europe"
	RegionOceania      Region = "Oceania"
)

// IsValid checks if the region is a supported value.
func (r Region) IsValid() bool {
	switch r {
	case RegionNorthAmerica, RegionSouthAmerica, RegionAfrica, RegionAsia, RegionEurope, RegionOceania:
		return true
	default:
		return false
	}
}
