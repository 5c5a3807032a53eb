package http

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/award-alerts/award-fare-selection-system/internal/adapter/http/response"
	"github.com/award-alerts/award-fare-selection-system/internal/domain"
	"github.com/award-alerts/award-fare-selection-system/internal/engine"
	"github.com/award-alerts/award-fare-selection-system/internal/infrastructure/logger"
	"github.com/award-alerts/award-fare-selection-system/internal/infrastructure/timeutil"
)

// SelectionHandler handles HTTP requests for award selection endpoints.
type SelectionHandler struct {
	sources  map[domain.Source]domain.AvailabilitySource
	selector engine.Selector
	clock    timeutil.Clock
	log      *logger.Logger

	// maxPageDepth caps the per-source page walk regardless of the request
	maxPageDepth int

	// selectionTimeout bounds one full pass, fetch and selection included.
	// Zero means no bound beyond the request's own context.
	selectionTimeout time.Duration
}

// HandlerOption customizes a SelectionHandler.
type HandlerOption func(*SelectionHandler)

// WithClock replaces the clock used for date-window defaults.
func WithClock(clock timeutil.Clock) HandlerOption {
	return func(h *SelectionHandler) { h.clock = clock }
}

// WithMaxPageDepth caps how many availability pages one request may walk.
func WithMaxPageDepth(depth int) HandlerOption {
	return func(h *SelectionHandler) { h.maxPageDepth = depth }
}

// WithSelectionTimeout bounds one full selection pass across all sources.
func WithSelectionTimeout(d time.Duration) HandlerOption {
	return func(h *SelectionHandler) { h.selectionTimeout = d }
}

// NewSelectionHandler creates a SelectionHandler over the given availability
// sources and selection engine.
func NewSelectionHandler(sources map[domain.Source]domain.AvailabilitySource, selector engine.Selector, log *logger.Logger, opts ...HandlerOption) *SelectionHandler {
	if log == nil {
		log = logger.Nop()
	}

	h := &SelectionHandler{
		sources:      sources,
		selector:     selector,
		clock:        timeutil.RealClock{},
		log:          log,
		maxPageDepth: 10,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// SelectRoundTrips handles POST /api/v1/selections/round-trips.
// It fetches availability from every requested source, runs the round-trip
// selection pass, and returns the best city pairings per cabin.
func (h *SelectionHandler) SelectRoundTrips(c echo.Context) error {
	var req SelectionRequest
	if err := c.Bind(&req); err != nil {
		return response.InvalidRequestBody(c)
	}
	if err := req.Validate(true); err != nil {
		return h.handleValidationError(c, err)
	}

	ctx, cancel := h.passContext(c)
	defer cancel()

	batches, meta, err := h.fetchBatches(ctx, &req)
	if err != nil {
		return h.handleError(c, err)
	}

	start := h.clock.Now()
	selected, err := h.selector.BestRoundTrips(ctx, batches, ToPassRequest(&req))
	if err != nil {
		return h.handleError(c, err)
	}
	meta.SelectionTimeMs = h.clock.Now().Sub(start).Milliseconds()

	return response.OK(c, ToRoundTripResponse(selected, meta))
}

// SelectSingleTrips handles POST /api/v1/selections/single-trips.
// It returns the cheapest bookable trip per city pair, ranked and truncated
// per cabin.
func (h *SelectionHandler) SelectSingleTrips(c echo.Context) error {
	var req SelectionRequest
	if err := c.Bind(&req); err != nil {
		return response.InvalidRequestBody(c)
	}
	if err := req.Validate(false); err != nil {
		return h.handleValidationError(c, err)
	}

	ctx, cancel := h.passContext(c)
	defer cancel()

	batches, meta, err := h.fetchBatches(ctx, &req)
	if err != nil {
		return h.handleError(c, err)
	}

	start := h.clock.Now()
	selected, err := h.selector.TopSingleTrips(ctx, batches, ToPassRequest(&req))
	if err != nil {
		return h.handleError(c, err)
	}
	meta.SelectionTimeMs = h.clock.Now().Sub(start).Milliseconds()

	return response.OK(c, ToSingleTripResponse(selected, meta))
}

// passContext derives the context one selection pass runs under, applying
// the configured timeout when there is one.
func (h *SelectionHandler) passContext(c echo.Context) (context.Context, context.CancelFunc) {
	ctx := c.Request().Context()
	if h.selectionTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, h.selectionTimeout)
}

// sourceBatch carries one source's fetch result through the gather channel.
type sourceBatch struct {
	source  domain.Source
	records []domain.RawFareRecord
	err     error
}

// fetchBatches queries every requested source concurrently. A source that
// fails is logged and dropped; the pass continues with whatever succeeded.
// Only when every source fails is the error surfaced.
func (h *SelectionHandler) fetchBatches(ctx context.Context, req *SelectionRequest) (map[domain.Source][]domain.RawFareRecord, SelectionMetadata, error) {
	meta := SelectionMetadata{SourcesQueried: len(req.Sources)}
	now := h.clock.Now()

	results := make(chan sourceBatch, len(req.Sources))
	var wg sync.WaitGroup

	for _, name := range req.Sources {
		source := domain.Source(name)
		client, ok := h.sources[source]
		if !ok {
			results <- sourceBatch{source: source, err: domain.ErrUnknownProgram}
			continue
		}

		wg.Add(1)
		go func() {
			defer wg.Done()
			records, err := client.FetchBulkAvailability(ctx, ToBulkQuery(req, source, h.maxPageDepth, now))
			results <- sourceBatch{source: source, records: records, err: err}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	batches := make(map[domain.Source][]domain.RawFareRecord, len(req.Sources))
	var lastErr error
	for batch := range results {
		if batch.err != nil {
			meta.SourcesFailed++
			lastErr = domain.NewSourceError(batch.source, batch.err)
			h.log.Warn().
				Err(batch.err).
				Str("source", string(batch.source)).
				Msg("Availability fetch failed")
			continue
		}
		meta.SourcesSucceeded++
		meta.RecordsFetched += len(batch.records)
		batches[batch.source] = batch.records
	}

	if meta.SourcesSucceeded == 0 {
		if lastErr == nil {
			lastErr = domain.ErrNoDataFound
		}
		return nil, meta, lastErr
	}
	return batches, meta, nil
}

// handleValidationError handles validation errors and returns a 400 response.
func (h *SelectionHandler) handleValidationError(c echo.Context, err error) error {
	var validationErrs *ValidationErrors
	if errors.As(err, &validationErrs) {
		return response.ValidationError(c, validationErrs.ToMap())
	}
	return response.ValidationErrorWithMessage(c, err.Error())
}

// handleError maps domain errors to appropriate HTTP responses.
func (h *SelectionHandler) handleError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidRequest):
		return response.ValidationErrorWithMessage(c, err.Error())
	case errors.Is(err, domain.ErrNoDataFound):
		return response.NotFound(c)
	case errors.Is(err, context.DeadlineExceeded):
		return response.GatewayTimeout(c)
	case errors.Is(err, context.Canceled):
		return response.RequestCancelled(c)
	}

	var sourceErr *domain.SourceError
	if errors.As(err, &sourceErr) {
		return response.UpstreamFailure(c)
	}

	h.log.Error().Err(err).Msg("Selection failed")
	return response.InternalServerError(c)
}

// Health handles GET /health.
// Simple health check endpoint.
func (h *SelectionHandler) Health(c echo.Context) error {
	return response.Health(c)
}
