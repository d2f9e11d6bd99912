package server

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"github.com/rs/zerolog"
)

const (
	defaultRequestTimeout          = 30 * time.Second
	defaultGracefulShutdownTimeout = 10 * time.Second
)

type OnHttpErrorHandler func(c echo.Context, err *echo.HTTPError)

type Options struct {
	Validator      *validator.Validate
	LoggerWriter   io.Writer
	Logger         *zerolog.Logger
	OnHttpError    OnHttpErrorHandler
	RequestTimeout time.Duration
}

func New() *echo.Echo {
	return NewWithOptions(Options{})
}

// NewWithOptions returns an echo instance with request ids, structured request
// logging, panic recovery, request timeouts and JSON errors.
func NewWithOptions(opts Options) *echo.Echo {
	if opts.LoggerWriter == nil {
		opts.LoggerWriter = os.Stdout
	}
	if opts.Logger == nil {
		opts.Logger = newLogger(opts.LoggerWriter)
	}
	if opts.Validator == nil {
		opts.Validator = validator.New()
	}
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = defaultRequestTimeout
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Logger = newGommonLogger(opts.Logger, opts.LoggerWriter)
	e.Logger.SetLevel(log.INFO)
	e.Validator = &structValidator{validate: opts.Validator}
	e.HTTPErrorHandler = newErrorHandler(e, opts.Logger, opts.OnHttpError)
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.RequestID())
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			return next(&Context{Context: c, ServerLoggerWriter: opts.LoggerWriter, ServerLogger: newContextLogger(c, opts.Logger)})
		}
	})
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:       true,
		LogError:        true,
		LogLatency:      true,
		LogRequestID:    true,
		LogResponseSize: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			logger := GetContext(c).ServerLogger
			evt := logger.Info()
			if v.Error != nil {
				evt = logger.Error().Err(v.Error)
			}

			evt = evt.Int("status", v.Status).Str("latency", v.Latency.String())
			if v.RequestID != "" {
				evt = evt.Str("request_id", v.RequestID)
			}
			if v.ResponseSize > 0 {
				evt = evt.Str("size", humanize.Bytes(uint64(v.ResponseSize)))
			}

			evt.Msg("request")
			return nil
		},
	}))
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) (returnErr error) {
			defer func() {
				if r := recover(); r != nil {
					if r == http.ErrAbortHandler {
						panic(r)
					}

					err, ok := r.(error)
					if !ok {
						err = fmt.Errorf("%v", r)
					}

					opts.Logger.Error().Err(err).Msg("recovery handler")
					returnErr = err
				}
			}()
			return next(c)
		}
	})
	e.Use(middleware.TimeoutWithConfig(middleware.TimeoutConfig{
		Skipper: middleware.DefaultSkipper,
		Timeout: opts.RequestTimeout,
	}))

	return e
}

type StartOptions struct {
	GracefulShutdownTimeout time.Duration
}

// Start serves e on port until ctx is done, then shuts down gracefully.
func Start(ctx context.Context, e *echo.Echo, port int) error {
	return StartWithOptions(ctx, e, port, StartOptions{
		GracefulShutdownTimeout: defaultGracefulShutdownTimeout,
	})
}

func StartWithOptions(ctx context.Context, e *echo.Echo, port int, opts StartOptions) error {
	errCh := make(chan error, 1)
	go func() {
		if err := e.Start(fmt.Sprintf(":%d", port)); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), opts.GracefulShutdownTimeout)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}

type structValidator struct {
	validate *validator.Validate
}

func (sv *structValidator) Validate(i any) error {
	if err := sv.validate.Struct(i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error()).SetInternal(err)
	}
	return nil
}
