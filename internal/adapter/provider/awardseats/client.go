// Package awardseats fetches bulk award availability from an
// awardseats-style cached search API. The client walks cursor-paginated
// results, deduplicates records by ID across pages, and maps the wire format
// into domain records.
package awardseats

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"github.com/award-alerts/award-fare-selection-system/internal/domain"
	"github.com/award-alerts/award-fare-selection-system/internal/infrastructure/logger"
)

const (
	// DefaultPageSize is how many records one page requests.
	DefaultPageSize = 500

	// DefaultTimeout bounds a single page fetch.
	DefaultTimeout = 30 * time.Second

	dateLayout = "2006-01-02"
)

// Config holds the availability API settings.
type Config struct {
	// BaseURL is the API root, e.g. "https://api.awardseats.example/v1"
	BaseURL string

	// APIKey is sent as the Partner-Authorization header
	APIKey string

	// PageSize is the number of records per page (default: DefaultPageSize)
	PageSize int

	// Timeout bounds a single page fetch (default: DefaultTimeout)
	Timeout time.Duration

	// RequestsPerSecond throttles page fetches; zero disables throttling
	RequestsPerSecond float64

	// Burst is the limiter burst size (default 1 when throttling is on)
	Burst int
}

// Client implements domain.AvailabilitySource against the bulk availability
// endpoint. Failed page fetches are returned to the caller as-is; the
// selection engine already degrades gracefully per source, so the client
// performs no retries of its own.
type Client struct {
	cfg     Config
	client  *http.Client
	limiter *rate.Limiter
	log     *logger.Logger
}

// NewClient creates a Client for the given configuration.
func NewClient(cfg Config, log *logger.Logger) *Client {
	if cfg.PageSize <= 0 {
		cfg.PageSize = DefaultPageSize
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	if log == nil {
		log = logger.Nop()
	}

	var limiter *rate.Limiter
	if cfg.RequestsPerSecond > 0 {
		burst := cfg.Burst
		if burst <= 0 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), burst)
	}

	return &Client{
		cfg:     cfg,
		client:  &http.Client{Timeout: cfg.Timeout},
		limiter: limiter,
		log:     log,
	}
}

// page is the wire shape of one bulk availability response page.
type page struct {
	Data    []wireRecord `json:"data"`
	Count   int          `json:"count"`
	HasMore bool         `json:"hasMore"`
	Cursor  int64        `json:"cursor"`
}

// wireRecord mirrors the upstream cached-availability record. Cabin fields
// are flattened with single-letter prefixes on the wire.
type wireRecord struct {
	ID    string `json:"ID"`
	Route struct {
		OriginAirport      string `json:"OriginAirport"`
		DestinationAirport string `json:"DestinationAirport"`
	} `json:"Route"`
	Date          string `json:"Date"`
	TaxesCurrency string `json:"TaxesCurrency"`

	YAvailable      bool  `json:"YAvailable"`
	YRemainingSeats int   `json:"YRemainingSeats"`
	YMileageCost    int64 `json:"YMileageCostRaw"`
	YTotalTaxes     int64 `json:"YTotalTaxesRaw"`

	WAvailable      bool  `json:"WAvailable"`
	WRemainingSeats int   `json:"WRemainingSeats"`
	WMileageCost    int64 `json:"WMileageCostRaw"`
	WTotalTaxes     int64 `json:"WTotalTaxesRaw"`

	JAvailable      bool  `json:"JAvailable"`
	JRemainingSeats int   `json:"JRemainingSeats"`
	JMileageCost    int64 `json:"JMileageCostRaw"`
	JTotalTaxes     int64 `json:"JTotalTaxesRaw"`

	FAvailable      bool  `json:"FAvailable"`
	FRemainingSeats int   `json:"FRemainingSeats"`
	FMileageCost    int64 `json:"FMileageCostRaw"`
	FTotalTaxes     int64 `json:"FTotalTaxesRaw"`
}

// FetchBulkAvailability walks up to query.Depth pages of availability and
// returns the union of their records, deduplicated by record ID.
func (c *Client) FetchBulkAvailability(ctx context.Context, query domain.BulkQuery) ([]domain.RawFareRecord, error) {
	depth := query.Depth
	if depth <= 0 {
		depth = 1
	}

	log := c.log.WithSource(string(query.Source))

	seen := make(map[string]struct{})
	var records []domain.RawFareRecord

	cursor := int64(0)
	skip := 0
	for pageNum := 0; pageNum < depth; pageNum++ {
		if c.limiter != nil {
			if err := c.limiter.Wait(ctx); err != nil {
				return nil, err
			}
		}

		resp, err := c.fetchPage(ctx, query, cursor, skip)
		if err != nil {
			return nil, fmt.Errorf("fetch availability page %d for %s: %w", pageNum+1, query.Source, err)
		}

		for _, wire := range resp.Data {
			if _, dup := seen[wire.ID]; dup {
				continue
			}
			seen[wire.ID] = struct{}{}

			record, err := wire.toDomain()
			if err != nil {
				log.Warn().Err(err).Str("record_id", wire.ID).Msg("Skipping malformed availability record")
				continue
			}
			records = append(records, record)
		}

		if !resp.HasMore {
			break
		}
		cursor = resp.Cursor
		skip += len(resp.Data)
	}

	log.Info().
		Int("records", len(records)).
		Msg("Fetched bulk availability")
	return records, nil
}

func (c *Client) fetchPage(ctx context.Context, query domain.BulkQuery, cursor int64, skip int) (*page, error) {
	params := url.Values{}
	params.Set("source", string(query.Source))
	params.Set("origin_region", string(query.OriginRegion))
	params.Set("destination_region", string(query.DestinationRegion))
	params.Set("take", strconv.Itoa(c.cfg.PageSize))
	if query.StartDate != "" {
		params.Set("start_date", query.StartDate)
	}
	if query.EndDate != "" {
		params.Set("end_date", query.EndDate)
	}
	if cursor > 0 {
		params.Set("cursor", strconv.FormatInt(cursor, 10))
		params.Set("skip", strconv.Itoa(skip))
	}

	endpoint := c.cfg.BaseURL + "/availability?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Partner-Authorization", c.cfg.APIKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("availability API returned status %d", resp.StatusCode)
	}

	var body page
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode availability response: %w", err)
	}
	return &body, nil
}

func (w *wireRecord) toDomain() (domain.RawFareRecord, error) {
	date, err := time.Parse(dateLayout, w.Date)
	if err != nil {
		return domain.RawFareRecord{}, fmt.Errorf("invalid travel date %q: %w", w.Date, err)
	}

	return domain.RawFareRecord{
		ID: w.ID,
		Route: domain.Route{
			OriginAirport:      w.Route.OriginAirport,
			DestinationAirport: w.Route.DestinationAirport,
		},
		Date:          date,
		TaxesCurrency: w.TaxesCurrency,
		Economy: domain.CabinBucket{
			Available:      w.YAvailable,
			RemainingSeats: w.YRemainingSeats,
			MileageCost:    w.YMileageCost,
			TotalTaxes:     w.YTotalTaxes,
		},
		Premium: domain.CabinBucket{
			Available:      w.WAvailable,
			RemainingSeats: w.WRemainingSeats,
			MileageCost:    w.WMileageCost,
			TotalTaxes:     w.WTotalTaxes,
		},
		Business: domain.CabinBucket{
			Available:      w.JAvailable,
			RemainingSeats: w.JRemainingSeats,
			MileageCost:    w.JMileageCost,
			TotalTaxes:     w.JTotalTaxes,
		},
		First: domain.CabinBucket{
			Available:      w.FAvailable,
			RemainingSeats: w.FRemainingSeats,
			MileageCost:    w.FMileageCost,
			TotalTaxes:     w.FTotalTaxes,
		},
	}, nil
}

var _ domain.AvailabilitySource = (*Client)(nil)
