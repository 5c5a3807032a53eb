package airports

import "github.com/award-alerts/award-fare-selection-system/internal/domain"

func coords(lat, lon float64) *domain.Coordinates {
	return &domain.Coordinates{Latitude: lat, Longitude: lon}
}

// builtinAirports covers the airports the supported loyalty programs most
// commonly publish award space for. A fuller table can be loaded from CSV.
var builtinAirports = map[string]domain.AirportInfo{
	// South America
	"GRU": {City: "Sao Paulo", Country: "Brazil", Coordinates: coords(-23.4356, -46.4731)},
	"CGH": {City: "Sao Paulo", Country: "Brazil", Coordinates: coords(-23.6261, -46.6564)},
	"VCP": {City: "Campinas", Country: "Brazil", Coordinates: coords(-23.0074, -47.1345)},
	"GIG": {City: "Rio de Janeiro", Country: "Brazil", Coordinates: coords(-22.8100, -43.2506)},
	"SDU": {City: "Rio de Janeiro", Country: "Brazil", Coordinates: coords(-22.9105, -43.1631)},
	"BSB": {City: "Brasilia", Country: "Brazil", Coordinates: coords(-15.8692, -47.9208)},
	"CNF": {City: "Belo Horizonte", Country: "Brazil", Coordinates: coords(-19.6244, -43.9719)},
	"POA": {City: "Porto Alegre", Country: "Brazil", Coordinates: coords(-29.9944, -51.1714)},
	"REC": {City: "Recife", Country: "Brazil", Coordinates: coords(-8.1264, -34.9236)},
	"SSA": {City: "Salvador", Country: "Brazil", Coordinates: coords(-12.9086, -38.3225)},
	"FOR": {City: "Fortaleza", Country: "Brazil", Coordinates: coords(-3.7761, -38.5325)},
	"EZE": {City: "Buenos Aires", Country: "Argentina", Coordinates: coords(-34.8222, -58.5358)},
	"AEP": {City: "Buenos Aires", Country: "Argentina", Coordinates: coords(-34.5592, -58.4156)},
	"SCL": {City: "Santiago", Country: "Chile", Coordinates: coords(-33.3930, -70.7858)},
	"MVD": {City: "Montevideo", Country: "Uruguay", Coordinates: coords(-34.8384, -56.0308)},
	"LIM": {City: "Lima", Country: "Peru", Coordinates: coords(-12.0219, -77.1143)},
	"BOG": {City: "Bogota", Country: "Colombia", Coordinates: coords(4.7016, -74.1469)},

	// North America
	"JFK": {City: "New York", Country: "United States", Coordinates: coords(40.6413, -73.7781)},
	"EWR": {City: "Newark", Country: "United States", Coordinates: coords(40.6895, -74.1745)},
	"MIA": {City: "Miami", Country: "United States", Coordinates: coords(25.7959, -80.2870)},
	"MCO": {City: "Orlando", Country: "United States", Coordinates: coords(28.4179, -81.3041)},
	"LAX": {City: "Los Angeles", Country: "United States", Coordinates: coords(33.9416, -118.4085)},
	"SFO": {City: "San Francisco", Country: "United States", Coordinates: coords(37.6213, -122.3790)},
	"DFW": {City: "Dallas", Country: "United States", Coordinates: coords(32.8998, -97.0403)},
	"YYZ": {City: "Toronto", Country: "Canada", Coordinates: coords(43.6777, -79.6248)},
	"MEX": {City: "Mexico City", Country: "Mexico", Coordinates: coords(19.4363, -99.0721)},

	// Europe
	"LIS": {City: "Lisbon", Country: "Portugal", Coordinates: coords(38.7742, -9.1342)},
	"OPO": {City: "Porto", Country: "Portugal", Coordinates: coords(41.2371, -8.6700)},
	"MAD": {City: "Madrid", Country: "Spain", Coordinates: coords(40.4983, -3.5676)},
	"BCN": {City: "Barcelona", Country: "Spain", Coordinates: coords(41.2971, 2.0785)},
	"LHR": {City: "London", Country: "United Kingdom", Coordinates: coords(51.4700, -0.4543)},
	"CDG": {City: "Paris", Country: "France", Coordinates: coords(49.0097, 2.5479)},
	"FCO": {City: "Rome", Country: "Italy", Coordinates: coords(41.8003, 12.2389)},
	"FRA": {City: "Frankfurt", Country: "Germany", Coordinates: coords(50.0379, 8.5622)},
	"AMS": {City: "Amsterdam", Country: "Netherlands", Coordinates: coords(52.3105, 4.7683)},
	"ZRH": {City: "Zurich", Country: "Switzerland", Coordinates: coords(47.4582, 8.5555)},

	// Asia
	"DXB": {City: "Dubai", Country: "United Arab Emirates", Coordinates: coords(25.2532, 55.3657)},
	"DOH": {City: "Doha", Country: "Qatar", Coordinates: coords(25.2731, 51.6081)},
	"SIN": {City: "Singapore", Country: "Singapore", Coordinates: coords(1.3644, 103.9915)},
	"HND": {City: "Tokyo", Country: "Japan", Coordinates: coords(35.5494, 139.7798)},
	"NRT": {City: "Tokyo", Country: "Japan", Coordinates: coords(35.7720, 140.3929)},
	"HKG": {City: "Hong Kong", Country: "Hong Kong", Coordinates: coords(22.3080, 113.9185)},
	"BKK": {City: "Bangkok", Country: "Thailand", Coordinates: coords(13.6900, 100.7501)},

	// Africa
	"JNB": {City: "Johannesburg", Country: "South Africa", Coordinates: coords(-26.1367, 28.2411)},
	"CPT": {City: "Cape Town", Country: "South Africa", Coordinates: coords(-33.9715, 18.6021)},
	"CMN": {City: "Casablanca", Country: "Morocco", Coordinates: coords(33.3675, -7.5900)},

	// Oceania
	"SYD": {City: "Sydney", Country: "Australia", Coordinates: coords(-33.9399, 151.1753)},
	"MEL": {City: "Melbourne", Country: "Australia", Coordinates: coords(-37.6690, 144.8410)},
	"BNE": {City: "Brisbane", Country: "Australia", Coordinates: coords(-27.3842, 153.1175)},
	"AKL": {City: "Auckland", Country: "New Zealand", Coordinates: coords(-37.0082, 174.7850)},
}
