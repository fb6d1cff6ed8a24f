package middleware

import (
	"net/http"

	"github.com/deppfellow/bookboard/internal/errs"
	"github.com/deppfellow/bookboard/internal/server"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// GlobalMiddlewares groups "global" middleware and the global error handler.
//
// They share the application container for config and logging.
type GlobalMiddlewares struct {
	server *server.Server
}

// NewGlobalMiddlewares constructs the middleware bundle.
func NewGlobalMiddlewares(s *server.Server) *GlobalMiddlewares {
	return &GlobalMiddlewares{
		server: s,
	}
}

// CORS returns Echo's CORS middleware configured by the server config.
func (global *GlobalMiddlewares) CORS() echo.MiddlewareFunc {
	return middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:  global.server.Config.Server.CORSAllowedOrigins,
		ExposeHeaders: []string{echo.HeaderLocation, RequestIDHeader},
	})
}

// RequestLogger returns Echo's request logger middleware with a zerolog sink.
//
// It writes one "API" line per request, with severity based on the final status.
func (global *GlobalMiddlewares) RequestLogger() echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:     true,
		LogStatus:  true,
		LogError:   true,
		LogLatency: true,
		LogHost:    true,
		LogMethod:  true,
		LogURIPath: true,

		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			statusCode, _ := outcome(v.Status, v.Error)

			logger := GetLogger(c)

			var e *zerolog.Event
			switch {
			case statusCode >= 500:
				e = logger.Error().Err(v.Error)
			case statusCode >= 400:
				e = logger.Warn()
			default:
				e = logger.Info()
			}

			e.
				Dur("latency", v.Latency).
				Int("status", statusCode).
				Str("uri", v.URI).
				Str("host", v.Host).
				Str("user_agent", c.Request().UserAgent()).
				Msg("API")

			return nil
		},
	})
}

// Recover returns Echo's panic recovery middleware.
//
// A panicking handler becomes a 500 SERVER_ERROR envelope via GlobalErrorHandler.
func (global *GlobalMiddlewares) Recover() echo.MiddlewareFunc {
	return middleware.Recover()
}

// Secure returns Echo's secure headers middleware.
func (global *GlobalMiddlewares) Secure() echo.MiddlewareFunc {
	return middleware.Secure()
}

// GlobalErrorHandler is the final error funnel for the entire HTTP server.
//
// It is the only place that writes failure envelopes:
//   - *errs.HTTPError is rendered as is
//   - Echo's route 404 becomes NOT_FOUND "Route not found"
//   - other Echo errors (405, 413, ...) keep their status, code derived from it
//   - anything else is a 500 SERVER_ERROR; the real error is only logged
func (global *GlobalMiddlewares) GlobalErrorHandler(err error, c echo.Context) {
	originalErr := err

	var httpErr *errs.HTTPError
	if !errors.As(err, &httpErr) {
		var echoErr *echo.HTTPError
		switch {
		case errors.As(err, &echoErr) && echoErr.Code == http.StatusNotFound:
			httpErr = errs.NewNotFoundError("Route not found")
		case errors.As(err, &echoErr):
			message, _ := echoErr.Message.(string)
			httpErr = errs.FromStatus(echoErr.Code, message)
		default:
			httpErr = errs.NewInternalServerError()
		}
	}

	logger := GetLogger(c)

	var e *zerolog.Event
	if httpErr.Status >= http.StatusInternalServerError {
		e = logger.Error().Stack()
	} else {
		e = logger.Warn()
	}
	e.Err(originalErr).
		Int("status", httpErr.Status).
		Str("error_code", httpErr.Code).
		Msg(httpErr.Message)

	if !c.Response().Committed {
		if err := c.JSON(httpErr.Status, httpErr.Envelope()); err != nil {
			logger.Error().Err(err).Msg("failed to write error response")
		}
	}
}

// outcome reports the status and envelope error_code a request will end with.
//
// A handler error is written later by GlobalErrorHandler, so the recorded
// response status may still read 200 while the error is in flight.
// Reference: https://github.com/labstack/echo/issues/2310#issuecomment-1288196898
func outcome(written int, err error) (int, string) {
	if err == nil {
		return written, ""
	}

	var httpErr *errs.HTTPError
	var echoErr *echo.HTTPError
	switch {
	case errors.As(err, &httpErr):
		return httpErr.Status, httpErr.Code
	case errors.As(err, &echoErr):
		return echoErr.Code, errs.FromStatus(echoErr.Code, "").Code
	default:
		return http.StatusInternalServerError, errs.CodeServerError
	}
}
