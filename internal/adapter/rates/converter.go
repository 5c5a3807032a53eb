// Package rates provides the currency-conversion capability backed by an
// exchange-rate pair API. Rates are fetched once per currency, scaled to an
// integer cents-of-conversion-factor, and cached so every lookup within a
// selection pass sees the same snapshot.
package rates

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/award-alerts/award-fare-selection-system/internal/domain"
	"github.com/award-alerts/award-fare-selection-system/internal/infrastructure/logger"
	"github.com/award-alerts/award-fare-selection-system/internal/infrastructure/retry"
)

// DefaultTimeout bounds a single rate fetch.
const DefaultTimeout = 5 * time.Second

// Config holds the exchange-rate API settings.
type Config struct {
	// BaseCurrency is the currency every amount converts into
	BaseCurrency string

	// BaseURL is the API root, e.g. "https://v6.exchangerate-api.com/v6"
	BaseURL string

	// APIKey authenticates against the rate API
	APIKey string

	// Timeout bounds a single fetch (default: DefaultTimeout)
	Timeout time.Duration
}

// SharedCache is an optional cache shared across processes (e.g. redis).
// Rates are stored pre-scaled to cents of conversion factor.
type SharedCache interface {
	GetRate(ctx context.Context, currency string) (int64, bool)
	SetRate(ctx context.Context, currency string, rate int64) error
}

// Converter implements domain.CurrencyConverter. The in-memory rate map is
// the pass-consistent snapshot: a currency's rate is resolved at most once
// per Converter lifetime and reused for every subsequent conversion.
type Converter struct {
	cfg    Config
	client *http.Client
	shared SharedCache
	log    *logger.Logger

	mu    sync.RWMutex
	rates map[string]int64
}

// Option customizes a Converter.
type Option func(*Converter)

// WithSharedCache attaches a shared rate cache consulted before the API.
func WithSharedCache(cache SharedCache) Option {
	return func(c *Converter) { c.shared = cache }
}

// WithLogger attaches a logger.
func WithLogger(log *logger.Logger) Option {
	return func(c *Converter) { c.log = log }
}

// WithHTTPClient replaces the HTTP client, mainly for tests.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Converter) { c.client = client }
}

// NewConverter creates a Converter for the given configuration.
func NewConverter(cfg Config, opts ...Option) *Converter {
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}

	c := &Converter{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
		log:    logger.Nop(),
		rates:  make(map[string]int64),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseCurrency returns the configured base currency.
func (c *Converter) BaseCurrency() string {
	return c.cfg.BaseCurrency
}

// ToBase converts an amount in smallest currency units to the base currency:
//
//	converted = amount * rate / 100
//
// where rate is the conversion factor pre-scaled to cents. The division is
// integer floor division; that contract is load-bearing and must not become
// a floating-point multiply.
func (c *Converter) ToBase(amount int64, fromCurrency string) (int64, error) {
	if fromCurrency == c.cfg.BaseCurrency {
		return amount, nil
	}

	rate, err := c.rate(fromCurrency)
	if err != nil {
		return 0, err
	}
	return amount * rate / 100, nil
}

// Seed pre-populates the rate snapshot, mainly for tests and fixtures.
// Rates are cents of conversion factor.
func (c *Converter) Seed(rates map[string]int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for currency, rate := range rates {
		c.rates[currency] = rate
	}
}

// rate resolves the cent-scaled conversion factor for a currency: snapshot
// first, then the shared cache, then the API.
func (c *Converter) rate(currency string) (int64, error) {
	c.mu.RLock()
	rate, ok := c.rates[currency]
	c.mu.RUnlock()
	if ok {
		return rate, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	// Another conversion may have resolved it while we waited.
	if rate, ok := c.rates[currency]; ok {
		return rate, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), c.cfg.Timeout)
	defer cancel()

	if c.shared != nil {
		if rate, ok := c.shared.GetRate(ctx, currency); ok {
			c.rates[currency] = rate
			return rate, nil
		}
	}

	rate, err := c.fetchRate(ctx, currency)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %v", domain.ErrUnknownCurrency, currency, err)
	}

	c.rates[currency] = rate
	if c.shared != nil {
		if err := c.shared.SetRate(ctx, currency, rate); err != nil {
			c.log.Warn().Err(err).Str("currency", currency).Msg("Failed to store rate in shared cache")
		}
	}
	return rate, nil
}

// pairResponse is the wire shape of the pair-conversion endpoint.
type pairResponse struct {
	Result         string  `json:"result"`
	ConversionRate float64 `json:"conversion_rate"`
}

// fetchRate retrieves the currency→base rate from the API and scales it to
// cents of conversion factor.
func (c *Converter) fetchRate(ctx context.Context, currency string) (int64, error) {
	endpoint := fmt.Sprintf("%s/%s/pair/%s/%s",
		c.cfg.BaseURL, url.PathEscape(c.cfg.APIKey), url.PathEscape(currency), url.PathEscape(c.cfg.BaseCurrency))

	fetch := func() (float64, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return 0, err
		}

		resp, err := c.client.Do(req)
		if err != nil {
			return 0, err
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return 0, fmt.Errorf("rate API returned status %d", resp.StatusCode)
		}

		var body pairResponse
		if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
			return 0, fmt.Errorf("decode rate response: %w", err)
		}
		if body.ConversionRate <= 0 {
			return 0, retry.NewPermanent(fmt.Errorf("no conversion rate in response"))
		}
		return body.ConversionRate, nil
	}

	realRate, err := retry.DoWithResult(ctx, fetch, retry.RatesConfig)
	if err != nil {
		return 0, err
	}

	rate := int64(math.Round(realRate * 100))
	c.log.Info().
		Str("currency", currency).
		Str("base", c.cfg.BaseCurrency).
		Int64("rate_cents", rate).
		Msg("Fetched exchange rate")
	return rate, nil
}

// Ensure Converter implements the capability at compile time.
var _ domain.CurrencyConverter = (*Converter)(nil)
