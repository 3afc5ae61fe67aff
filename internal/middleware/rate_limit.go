package middleware

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"

	"github.com/deppfellow/shoe-rental/internal/config"
	"github.com/deppfellow/shoe-rental/internal/errs"
	"github.com/deppfellow/shoe-rental/internal/server"
)

// RateLimitMiddleware enforces per-client token buckets keyed by real IP.
type RateLimitMiddleware struct {
	server *server.Server
}

func NewRateLimitMiddleware(s *server.Server) *RateLimitMiddleware {
	return &RateLimitMiddleware{
		server: s,
	}
}

// Global limits every route.
func (r *RateLimitMiddleware) Global() echo.MiddlewareFunc {
	cfg := r.server.Config.Server.RateLimit
	return r.limiter("global", cfg.GlobalRPS, cfg.GlobalBurst, cfg)
}

// Rentals limits rental creation, where each request costs an oracle call.
func (r *RateLimitMiddleware) Rentals() echo.MiddlewareFunc {
	cfg := r.server.Config.Server.RateLimit
	return r.limiter("rentals", cfg.RentalsRPS, cfg.RentalsBurst, cfg)
}

func (r *RateLimitMiddleware) limiter(name string, rps float64, burst int, cfg config.RateLimitConfig) echo.MiddlewareFunc {
	store := middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
		Rate:      rate.Limit(rps),
		Burst:     burst,
		ExpiresIn: time.Duration(cfg.ExpiresInSecs) * time.Second,
	})

	return middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Store: store,
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return errs.NewBadRequestError("Could not identify client", false, nil, nil)
		},
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			r.RecordRateLimitHit(name, c.Path())
			GetLogger(c).Warn().
				Str("limiter", name).
				Str("client", identifier).
				Msg("rate limit exceeded")
			return errs.NewTooManyRequestsError("Too many requests, slow down")
		},
	})
}

// RecordRateLimitHit sends a RateLimitHit custom event to New Relic.
func (r *RateLimitMiddleware) RecordRateLimitHit(limiter, endpoint string) {
	if app := r.server.LoggerService.GetApplication(); app != nil {
		app.RecordCustomEvent("RateLimitHit", map[string]any{
			"limiter":  limiter,
			"endpoint": endpoint,
		})
	}
}
