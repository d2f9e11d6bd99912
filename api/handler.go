package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/gpahal/mtrand/http/server"
	"github.com/gpahal/mtrand/random"
)

type Options struct {
	// Random defaults to random.Default().
	Random *random.Random
	// DefaultCharset is used by /string when no charset is given. It defaults
	// to random.Alphanumeric.
	DefaultCharset string
}

type handler struct {
	random  *random.Random
	charset string
}

// Register mounts the health check on r and the random endpoints under /v1.
func Register(r server.Router, opts Options) {
	h := &handler{random: opts.Random, charset: opts.DefaultCharset}
	if h.random == nil {
		h.random = random.Default()
	}
	if h.charset == "" {
		h.charset = random.Alphanumeric
	}

	r.GET("/healthz", h.health)
	server.AddSubRouter(r, "/v1", func(r server.Router) {
		r.GET("/float", h.floatValue)
		r.GET("/int", h.intValue)
		r.POST("/index", h.index)
		r.GET("/string", h.stringValue)
		r.POST("/shuffle", h.shuffle)
	})
}

func (h *handler) health(c echo.Context) error {
	return c.JSON(http.StatusOK, HealthResponse{Status: "ok"})
}

func (h *handler) floatValue(c echo.Context) error {
	min, max, err := queryBounds(c, parseFloat64)
	if err != nil {
		return err
	}

	var v float64
	switch {
	case min == nil && max == nil:
		v = h.random.Float64()
	case min == nil:
		v, err = h.random.Float64n(*max)
	default:
		v, err = h.random.Float64Range(*min, *max)
	}
	if err != nil {
		return toHttpError(err)
	}
	return c.JSON(http.StatusOK, ValueResponse[float64]{Value: v})
}

func (h *handler) intValue(c echo.Context) error {
	min, max, err := queryBounds(c, parseInt64)
	if err != nil {
		return err
	}

	var v int64
	switch {
	case min == nil && max == nil:
		v = h.random.Int64()
	case min == nil:
		v, err = h.random.Int64n(*max)
	default:
		v, err = h.random.Int64Range(*min, *max)
	}
	if err != nil {
		return toHttpError(err)
	}
	return c.JSON(http.StatusOK, ValueResponse[int64]{Value: v})
}

func (h *handler) index(c echo.Context) error {
	var req IndexRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	i, err := h.random.SelectIndex(req.Weights)
	if err != nil {
		return toHttpError(err)
	}
	logger(c).Debug().Int("weights", len(req.Weights)).Int("index", i).Msg("selected index")
	return c.JSON(http.StatusOK, IndexResponse{Index: i})
}

func (h *handler) stringValue(c echo.Context) error {
	if !c.QueryParams().Has("length") {
		return badRequest("length is required")
	}

	var req StringRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	if !c.QueryParams().Has("charset") {
		req.Charset = h.charset
	}

	v, err := h.random.String(req.Length, req.Charset)
	if err != nil {
		return toHttpError(err)
	}
	return c.JSON(http.StatusOK, ValueResponse[string]{Value: v})
}

func (h *handler) shuffle(c echo.Context) error {
	var req ShuffleRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	shuffle := random.Shuffle[json.RawMessage]
	if req.Biased {
		shuffle = random.ShuffleBiased[json.RawMessage]
	}
	return c.JSON(http.StatusOK, ShuffleResponse{Items: shuffle(h.random, req.Items)})
}

func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return err
	}
	return c.Validate(req)
}

func logger(c echo.Context) *zerolog.Logger {
	return server.GetContext(c).ServerLogger
}

// queryBounds reads the optional min and max query parameters. A missing
// parameter is nil; zero is an ordinary bound. min without max is rejected.
func queryBounds[T any](c echo.Context, parse func(b *echo.ValueBinder, name string, dest *T) error) (min, max *T, err error) {
	params := c.QueryParams()
	b := echo.QueryParamsBinder(c)
	if params.Has("min") {
		min = new(T)
		if err := parse(b, "min", min); err != nil {
			return nil, nil, err
		}
	}
	if params.Has("max") {
		max = new(T)
		if err := parse(b, "max", max); err != nil {
			return nil, nil, err
		}
	}
	if min != nil && max == nil {
		return nil, nil, badRequest("max is required when min is given")
	}
	return min, max, nil
}

func parseFloat64(b *echo.ValueBinder, name string, dest *float64) error {
	return bindError(b.MustFloat64(name, dest).BindError(), name)
}

func parseInt64(b *echo.ValueBinder, name string, dest *int64) error {
	return bindError(b.MustInt64(name, dest).BindError(), name)
}

func bindError(err error, name string) error {
	if err == nil {
		return nil
	}
	return server.NewHttpErrorWithInternal(http.StatusBadRequest, fmt.Sprintf("%s must be a number", name), err)
}
