// Package app contains the HTTP API for the portfolio site: public content
// reads, session-gated admin writes, and the authentication endpoints.
package app

import (
	"embed"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"github.com/foliohq/folio/internal/config"
	"github.com/foliohq/folio/internal/sec"
	"github.com/foliohq/folio/internal/storage"
)

//go:embed static
var staticFiles embed.FS

// New creates the API server.
func New(
	cfg *config.Config,
	logger *slog.Logger,
	svc *sec.Service,
	store storage.Store,
) *echo.Echo {
	srv := echo.New()

	srv.HideBanner = true
	srv.HidePort = true
	srv.Logger.SetLevel(log.OFF)
	srv.HTTPErrorHandler = errorHandler(logger)

	if cfg.DevMode {
		srv.Debug = true
		srv.Use(logRequests(logger))
	} else {
		srv.Use(middleware.Recover())
	}

	srv.Use(
		middleware.Decompress(),
		middleware.Gzip(),
		middleware.Secure(),
		middleware.RequestID(),
		middleware.BodyLimit("1M"),
	)

	handler{
		logger: logger,
		svc:    svc,
		store:  store,
		valid:  newValidator(),
		secure: !cfg.DevMode,
	}.register(srv)

	staticFS := echo.MustSubFS(staticFiles, "static")
	srv.StaticFS("/", staticFS)
	return srv
}

// errorHandler renders every error as the API's {"error": ...} JSON shape.
// Validation failures carry field detail; everything else collapses to a
// generic message so internals never leak to clients.
func errorHandler(logger *slog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code := http.StatusInternalServerError
		var body any = map[string]string{"error": "Internal server error"}

		var herr *echo.HTTPError
		if errors.As(err, &herr) {
			code = herr.Code
			switch msg := herr.Message.(type) {
			case string:
				body = map[string]string{"error": msg}
			default:
				body = msg
			}
		}

		if code >= http.StatusInternalServerError {
			logger.LogAttrs(c.Request().Context(), slog.LevelError,
				"request failed",
				slog.String("method", c.Request().Method),
				slog.String("route", c.Path()),
				slog.Any("error", err),
			)
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(code)
		} else {
			err = c.JSON(code, body)
		}
		if err != nil {
			logger.LogAttrs(c.Request().Context(), slog.LevelError,
				"failed to write error response", slog.Any("error", err))
		}
	}
}

func logRequests(logger *slog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			latency := time.Since(start)

			if err != nil {
				c.Error(err)
			}

			req := c.Request()
			res := c.Response()

			attrs := []slog.Attr{
				slog.String("method", req.Method),
				slog.String("uri", req.RequestURI),
				slog.String("route", c.Path()),
				slog.Duration("latency", latency),
				slog.Int("status", res.Status),
			}
			if err != nil {
				attrs = append(attrs, slog.Any("error", err))
			}
			logger.LogAttrs(
				req.Context(),
				slog.LevelDebug,
				"request handled",
				attrs...,
			)
			return err
		}
	}
}
