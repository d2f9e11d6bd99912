package server

import (
	"encoding/json"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// NewHttpError returns an HTTP error whose message is the text of err and
// whose internal error is err.
func NewHttpError(code int, err error) *echo.HTTPError {
	if err == nil {
		return echo.NewHTTPError(code)
	}
	return echo.NewHTTPError(code, err.Error()).SetInternal(err)
}

func NewHttpErrorWithInternal(code int, msg any, internal error) *echo.HTTPError {
	return &echo.HTTPError{Code: code, Message: msg, Internal: internal}
}

func newErrorHandler(e *echo.Echo, logger *zerolog.Logger, onHttpError OnHttpErrorHandler) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var he *echo.HTTPError
		if errors.As(err, &he) {
			if herr, ok := he.Internal.(*echo.HTTPError); ok {
				he = herr
			}
		} else {
			he = echo.NewHTTPError(http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
		}

		if onHttpError != nil {
			onHttpError(c, he)
		}

		message := he.Message
		switch m := message.(type) {
		case string:
			if e.Debug {
				message = echo.Map{"error": m, "description": err.Error()}
			} else {
				message = echo.Map{"error": m}
			}
		case json.Marshaler:
			message = echo.Map{"error": m}
		case error:
			message = echo.Map{"error": m.Error()}
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(he.Code)
		} else {
			err = c.JSON(he.Code, message)
		}

		if err != nil {
			newContextLogger(c, logger).Error().Err(err).Msg("error handler")
		}
	}
}

func newContextLogger(c echo.Context, logger *zerolog.Logger) *zerolog.Logger {
	loggerBuilder := logger.With().Str("method", c.Request().Method).Str("uri", c.Request().RequestURI)
	if requestId := c.Response().Header().Get(echo.HeaderXRequestID); requestId != "" {
		loggerBuilder = loggerBuilder.Str("request_id", requestId)
	}
	loggerStruct := loggerBuilder.Logger()
	return &loggerStruct
}
