package middleware

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/phonebook/phonebook/internal/pkg/circuitbreaker"
	apperrors "github.com/phonebook/phonebook/internal/pkg/errors"
)

// RateLimitConfig configures the rate limiter
type RateLimitConfig struct {
	// Max requests per window
	Max int
	// Window duration
	Window time.Duration
	// Key generator function
	KeyGenerator func(*fiber.Ctx) string
	// Skip function
	Skip func(*fiber.Ctx) bool
	// Logger receives store failures; requests are allowed when the store is unavailable
	Logger *zap.Logger
}

// DefaultRateLimitConfig returns default rate limit config
func DefaultRateLimitConfig() RateLimitConfig {
	return RateLimitConfig{
		Max:    100,
		Window: time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		Logger: zap.NewNop(),
	}
}

// RateLimitMiddleware creates a rate limiter using Redis.
// Requests are let through without a Redis round trip while the breaker is open.
type RateLimitMiddleware struct {
	redis   redis.Cmdable
	config  RateLimitConfig
	breaker *circuitbreaker.Breaker
}

// NewRateLimitMiddleware creates a new rate limit middleware
func NewRateLimitMiddleware(redisClient redis.Cmdable, config ...RateLimitConfig) *RateLimitMiddleware {
	cfg := DefaultRateLimitConfig()
	if len(config) > 0 {
		cfg = config[0]
	}
	if cfg.KeyGenerator == nil {
		cfg.KeyGenerator = func(c *fiber.Ctx) string { return c.IP() }
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}

	log := cfg.Logger
	return &RateLimitMiddleware{
		redis:  redisClient,
		config: cfg,
		breaker: circuitbreaker.New(circuitbreaker.Config{
			Name:        "ratelimit-redis",
			MaxFailures: 5,
			CoolDown:    30 * time.Second,
			OnStateChange: func(name string, from, to circuitbreaker.State) {
				log.Warn("circuit breaker state changed",
					zap.String("breaker", name),
					zap.String("from", from.String()),
					zap.String("to", to.String()),
				)
			},
		}),
	}
}

// Handler returns the rate limit handler. It keeps a sliding window per key
// in a sorted set scored by request time.
func (m *RateLimitMiddleware) Handler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if m.config.Skip != nil && m.config.Skip(c) {
			return c.Next()
		}

		key := fmt.Sprintf("phonebook:ratelimit:%s", m.config.KeyGenerator(c))
		ctx := c.UserContext()

		now := time.Now()
		windowStart := now.Add(-m.config.Window).UnixNano()
		reset := strconv.FormatInt(now.Add(m.config.Window).Unix(), 10)

		pipe := m.redis.TxPipeline()
		pipe.ZRemRangeByScore(ctx, key, "-inf", strconv.FormatInt(windowStart, 10))
		countCmd := pipe.ZCard(ctx, key)
		err := m.breaker.Do(func() error {
			_, err := pipe.Exec(ctx)
			return err
		})
		if err != nil {
			if !errors.Is(err, circuitbreaker.ErrOpen) {
				m.config.Logger.Warn("rate limiter unavailable", zap.Error(err))
			}
			return c.Next()
		}
		count := countCmd.Val()

		c.Set("X-RateLimit-Limit", strconv.Itoa(m.config.Max))
		c.Set("X-RateLimit-Reset", reset)

		if count >= int64(m.config.Max) {
			c.Set("X-RateLimit-Remaining", "0")
			c.Set("Retry-After", strconv.FormatInt(int64(m.config.Window.Seconds()), 10))
			rateLimitedTotal.Inc()
			return apperrors.RateLimited()
		}

		pipe = m.redis.TxPipeline()
		pipe.ZAdd(ctx, key, redis.Z{
			Score:  float64(now.UnixNano()),
			Member: uuid.NewString(),
		})
		pipe.Expire(ctx, key, m.config.Window*2)
		if err := m.breaker.Do(func() error {
			_, err := pipe.Exec(ctx)
			return err
		}); err != nil && !errors.Is(err, circuitbreaker.ErrOpen) {
			m.config.Logger.Warn("rate limiter unavailable", zap.Error(err))
		}

		c.Set("X-RateLimit-Remaining", strconv.Itoa(m.config.Max-int(count)-1))

		return c.Next()
	}
}
