package echoapi

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/httprate"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"

	"github.com/trezcool/videoteca/core"
	"github.com/trezcool/videoteca/services/metrics"
)

func adminMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			claims, err := getContextClaims(ctx)
			if err != nil {
				return errors.Wrap(err, "getting context claims")
			}
			if claims.IsAdmin {
				return next(ctx)
			}
			return errHttpForbidden
		}
	}
}

// adminMiddlewares guards content management routes, unless auth is disabled (local development).
func adminMiddlewares(conf *core.Config) []echo.MiddlewareFunc {
	if !conf.Server.RequireAuth {
		return nil
	}
	return []echo.MiddlewareFunc{middleware.JWTWithConfig(newJWTConfig(conf)), adminMiddleware()}
}

// uploadRateLimit limits the upload requests per client IP with a sliding window.
func uploadRateLimit(conf *core.Config) echo.MiddlewareFunc {
	window := conf.Server.UploadRateWindow
	limiter := httprate.Limit(
		conf.Server.UploadRateLimit,
		window,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			metrics.IncRateLimited()
			w.Header().Set("Content-Type", "application/json")
			w.Header().Set("Retry-After", strconv.Itoa(int(window.Seconds())))
			w.WriteHeader(http.StatusTooManyRequests)
			_, _ = w.Write([]byte(`{"error":"` + errTooManyRequests + `"}`))
		}),
	)
	return echo.WrapMiddleware(limiter)
}

// metricsMiddleware observes the duration of every request by route.
func metricsMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			start := time.Now()
			if err := next(ctx); err != nil {
				ctx.Error(err) // sets the response status
			}
			route := ctx.Path()
			if route == "" {
				route = "unmatched"
			}
			metrics.ObserveRequest(ctx.Request().Method, route, ctx.Response().Status, time.Since(start))
			return nil
		}
	}
}
