package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/gpahal/mtrand/http/server"
	"github.com/gpahal/mtrand/random"
)

var clientErrors = []error{
	random.ErrInvalidRange,
	random.ErrInvalidWeight,
	random.ErrInvalidCharset,
	random.ErrInvalidLength,
	random.ErrLengthMismatch,
}

// toHttpError turns invalid caller input into a 400 response and leaves other
// errors for the server's error handler.
func toHttpError(err error) error {
	if err == nil {
		return nil
	}
	for _, target := range clientErrors {
		if errors.Is(err, target) {
			return server.NewHttpError(http.StatusBadRequest, err)
		}
	}
	return err
}

func badRequest(msg string) *echo.HTTPError {
	return echo.NewHTTPError(http.StatusBadRequest, msg)
}
