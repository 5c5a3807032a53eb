package rates

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/award-alerts/award-fare-selection-system/internal/infrastructure/logger"
)

// DefaultRateTTL is how long a cached rate stays valid. Exchange rates drift
// slowly relative to award inventory, so a day is plenty.
const DefaultRateTTL = 24 * time.Hour

// RedisCache stores cent-scaled exchange rates in redis so multiple selection
// processes share one rate snapshot per day instead of each hitting the API.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
	log    *logger.Logger
}

// RedisConfig holds the redis connection settings.
type RedisConfig struct {
	// Addr is the redis host:port
	Addr string

	// Password is the redis password (empty for none)
	Password string

	// DB is the redis database index
	DB int

	// TTL is how long cached rates stay valid (default: DefaultRateTTL)
	TTL time.Duration
}

// NewRedisCache connects to redis and verifies the connection with a ping.
func NewRedisCache(cfg RedisConfig, log *logger.Logger) (*RedisCache, error) {
	if cfg.TTL == 0 {
		cfg.TTL = DefaultRateTTL
	}
	if log == nil {
		log = logger.Nop()
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connect to redis at %s: %w", cfg.Addr, err)
	}

	log.Info().Str("addr", cfg.Addr).Msg("Connected to redis rate cache")
	return &RedisCache{client: client, ttl: cfg.TTL, log: log}, nil
}

// GetRate looks up a cached rate. A miss or a redis error both report
// not-found so the caller falls through to the API.
func (r *RedisCache) GetRate(ctx context.Context, currency string) (int64, bool) {
	val, err := r.client.Get(ctx, rateKey(currency)).Result()
	if err == redis.Nil {
		return 0, false
	}
	if err != nil {
		r.log.Warn().Err(err).Str("currency", currency).Msg("Redis rate lookup failed")
		return 0, false
	}

	rate, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		r.log.Warn().Err(err).Str("currency", currency).Msg("Corrupt cached rate")
		return 0, false
	}
	return rate, true
}

// SetRate stores a rate with the configured TTL.
func (r *RedisCache) SetRate(ctx context.Context, currency string, rate int64) error {
	return r.client.Set(ctx, rateKey(currency), strconv.FormatInt(rate, 10), r.ttl).Err()
}

// Close releases the redis connection.
func (r *RedisCache) Close() error {
	return r.client.Close()
}

func rateKey(currency string) string {
	return "fxrate:" + currency
}

var _ SharedCache = (*RedisCache)(nil)
