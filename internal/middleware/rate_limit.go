package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/pressroomhq/pressroom/internal/errs"
	"github.com/pressroomhq/pressroom/internal/server"
)

// RateLimitMiddleware enforces a per-client request budget using a Redis
// fixed window counter. The window is one minute; the budget comes from
// Config.Server.RateLimitPerMinute.
type RateLimitMiddleware struct {
	server *server.Server
}

func NewRateLimitMiddleware(s *server.Server) *RateLimitMiddleware {
	return &RateLimitMiddleware{
		server: s,
	}
}

// Limit returns the enforcement middleware.
//
// The counter key is the authenticated user id when present, the client IP
// otherwise. If Redis is unreachable the request is allowed through; rate
// limiting is protection, not a dependency.
func (r *RateLimitMiddleware) Limit() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			limit := r.server.Config.Server.RateLimitPerMinute
			if limit <= 0 {
				return next(c)
			}

			subject := GetUserID(c)
			if subject == "" {
				subject = c.RealIP()
			}

			window := time.Now().Unix() / 60
			key := fmt.Sprintf("ratelimit:%s:%d", subject, window)

			ctx := c.Request().Context()

			count, err := r.server.Redis.Incr(ctx, key).Result()
			if err != nil {
				GetLogger(c).Warn().
					Err(err).
					Msg("rate limiter unavailable, allowing request")
				return next(c)
			}

			if count == 1 {
				r.server.Redis.Expire(ctx, key, time.Minute)
			}

			if count > int64(limit) {
				r.RecordRateLimitHit(c.Path())

				return &errs.HTTPError{
					Code:    "RATE_LIMIT_EXCEEDED",
					Message: "Too many requests, please try again later",
					Status:  http.StatusTooManyRequests,
				}
			}

			return next(c)
		}
	}
}

// RecordRateLimitHit records a custom New Relic event when a client hits
// the limit, so throttling is visible in dashboards.
func (r *RateLimitMiddleware) RecordRateLimitHit(endpoint string) {
	if r.server.LoggerService != nil && r.server.LoggerService.GetApplication() != nil {
		r.server.LoggerService.GetApplication().RecordCustomEvent("RateLimitHit", map[string]interface{}{
			"endpoint": endpoint,
		})
	}
}
