// Package integration provides helpers and integration tests for the award
// selection system. Integration tests run real engine passes behind the HTTP
// handlers, with only the upstream availability sources mocked.
package integration

import (
	"bytes"
	"encoding/json"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/award-alerts/award-fare-selection-system/internal/adapter/airports"
	selectionhttp "github.com/award-alerts/award-fare-selection-system/internal/adapter/http"
	"github.com/award-alerts/award-fare-selection-system/internal/adapter/mileage"
	"github.com/award-alerts/award-fare-selection-system/internal/adapter/rates"
	"github.com/award-alerts/award-fare-selection-system/internal/domain"
	"github.com/award-alerts/award-fare-selection-system/internal/engine"
)

// TestServer wraps an Echo instance over a real selection engine and provides
// helper methods for integration testing.
type TestServer struct {
	Echo    *echo.Echo
	Handler *selectionhttp.SelectionHandler
}

// NewTestServer builds a server around the given availability sources. The
// engine behind it is real: builtin airport table, fixed mileage valuations,
// a converter seeded so no rate API is reached, and a seeded RNG so selection
// output is reproducible.
func NewTestServer(sources map[domain.Source]domain.AvailabilitySource, opts ...selectionhttp.HandlerOption) *TestServer {
	converter := rates.NewConverter(rates.Config{BaseCurrency: "BRL"})
	converter.Seed(map[string]int64{"USD": 533})

	selector := engine.New(engine.Deps{
		Airports: airports.Builtin(),
		Mileage: mileage.NewTable(map[domain.Source]int64{
			domain.SourceAzul:   1400,
			domain.SourceSmiles: 1650,
			domain.SourceQantas: 2100,
		}),
		Converter: converter,
		Rand:      rand.New(rand.NewSource(1)),
	})

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	handler := selectionhttp.NewSelectionHandler(sources, selector, nil, opts...)
	selectionhttp.RegisterRoutes(e, handler)

	return &TestServer{
		Echo:    e,
		Handler: handler,
	}
}

// Request represents a test HTTP request configuration.
type Request struct {
	Method      string
	Path        string
	Body        interface{}
	ContentType string
}

// Response represents a test HTTP response.
type Response struct {
	Code    int
	Body    []byte
	Headers http.Header
}

// Do executes a test request and returns the response.
func (ts *TestServer) Do(req Request) Response {
	var bodyReader *bytes.Reader
	if req.Body != nil {
		bodyBytes, _ := json.Marshal(req.Body)
		bodyReader = bytes.NewReader(bodyBytes)
	} else {
		bodyReader = bytes.NewReader(nil)
	}

	httpReq := httptest.NewRequest(req.Method, req.Path, bodyReader)

	if req.ContentType != "" {
		httpReq.Header.Set(echo.HeaderContentType, req.ContentType)
	} else if req.Body != nil {
		httpReq.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}

	rec := httptest.NewRecorder()
	ts.Echo.ServeHTTP(rec, httpReq)

	return Response{
		Code:    rec.Code,
		Body:    rec.Body.Bytes(),
		Headers: rec.Header(),
	}
}

// RoundTripRequest posts a round-trip selection request.
func (ts *TestServer) RoundTripRequest(body interface{}) Response {
	return ts.Do(Request{
		Method: http.MethodPost,
		Path:   "/api/v1/selections/round-trips",
		Body:   body,
	})
}

// SingleTripRequest posts a single-trip selection request.
func (ts *TestServer) SingleTripRequest(body interface{}) Response {
	return ts.Do(Request{
		Method: http.MethodPost,
		Path:   "/api/v1/selections/single-trips",
		Body:   body,
	})
}

// HealthRequest makes a health check request.
func (ts *TestServer) HealthRequest() Response {
	return ts.Do(Request{
		Method: http.MethodGet,
		Path:   "/health",
	})
}

// ParseRoundTrips parses the response body as a round-trip selection response.
func (r *Response) ParseRoundTrips() (*selectionhttp.RoundTripSelectionResponse, error) {
	var resp selectionhttp.RoundTripSelectionResponse
	if err := json.Unmarshal(r.Body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ParseSingleTrips parses the response body as a single-trip selection response.
func (r *Response) ParseSingleTrips() (*selectionhttp.SingleTripSelectionResponse, error) {
	var resp selectionhttp.SingleTripSelectionResponse
	if err := json.Unmarshal(r.Body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ParseError parses the response body to extract error information.
func (r *Response) ParseError() (map[string]interface{}, error) {
	var errResp map[string]interface{}
	if err := json.Unmarshal(r.Body, &errResp); err != nil {
		return nil, err
	}
	return errResp, nil
}

// DefaultSelectionRequest returns a valid selection request body scoped to
// the sample availability below.
func DefaultSelectionRequest(sources ...string) selectionhttp.SelectionRequest {
	if len(sources) == 0 {
		sources = []string{"azul"}
	}
	return selectionhttp.SelectionRequest{
		Sources:           sources,
		OriginRegion:      "South America",
		DestinationRegion: "Europe",
		StartDate:         "2026-10-01",
		EndDate:           "2026-11-30",
		Cabins:            []string{"Y"},
		TopN:              2,
	}
}

// SampleAvailability builds a batch holding bookable economy round trips on
// two builtin routes (GRU-LIS and GIG-OPO), outbounds on day one and returns
// a week later. IDs are prefixed so records stay unique across sources.
func SampleAvailability(prefix string) []domain.RawFareRecord {
	mk := func(id, origin, destination string, day int, miles int64) domain.RawFareRecord {
		return domain.RawFareRecord{
			ID:            prefix + "-" + id,
			Route:         domain.Route{OriginAirport: origin, DestinationAirport: destination},
			Date:          time.Date(2026, 10, 1+day, 0, 0, 0, 0, time.UTC),
			TaxesCurrency: "BRL",
			Economy: domain.CabinBucket{
				Available:      true,
				RemainingSeats: 4,
				MileageCost:    miles,
				TotalTaxes:     15000,
			},
		}
	}

	return []domain.RawFareRecord{
		mk("gru-lis-out", "GRU", "LIS", 0, 50000),
		mk("gru-lis-ret", "LIS", "GRU", 7, 45000),
		mk("gig-opo-out", "GIG", "OPO", 0, 70000),
		mk("gig-opo-ret", "OPO", "GIG", 7, 65000),
	}
}
