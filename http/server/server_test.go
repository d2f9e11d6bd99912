package server_test

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gpahal/mtrand/http/server"
)

// syncBuffer guards writes made from the timeout middleware's goroutine.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func serve(e *echo.Echo, method, path string) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	e.ServeHTTP(rr, httptest.NewRequest(method, path, nil))
	return rr
}

func TestErrors(t *testing.T) {
	var (
		mu    sync.Mutex
		codes []int
	)
	e := server.NewWithOptions(server.Options{
		LoggerWriter: io.Discard,
		OnHttpError: func(c echo.Context, err *echo.HTTPError) {
			mu.Lock()
			defer mu.Unlock()
			codes = append(codes, err.Code)
		},
	})
	e.GET("/bad", func(c echo.Context) error {
		return server.NewHttpError(http.StatusBadRequest, errors.New("bad seed"))
	})
	e.GET("/plain", func(c echo.Context) error {
		return errors.New("leaked detail")
	})
	e.GET("/panic", func(c echo.Context) error {
		panic("boom")
	})

	rr := serve(e, http.MethodGet, "/bad")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.JSONEq(t, `{"error":"bad seed"}`, rr.Body.String())

	rr = serve(e, http.MethodGet, "/plain")
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.NotContains(t, rr.Body.String(), "leaked detail")

	rr = serve(e, http.MethodGet, "/panic")
	assert.Equal(t, http.StatusInternalServerError, rr.Code)

	rr = serve(e, http.MethodGet, "/missing")
	assert.Equal(t, http.StatusNotFound, rr.Code)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []int{http.StatusBadRequest, http.StatusInternalServerError, http.StatusInternalServerError, http.StatusNotFound}, codes)
}

func TestRequestLogging(t *testing.T) {
	var out syncBuffer
	e := server.NewWithOptions(server.Options{LoggerWriter: &out})
	e.GET("/value", func(c echo.Context) error {
		server.GetContext(c).ServerLogger.Info().Str("kind", "float").Msg("drew value")
		return c.JSON(http.StatusOK, map[string]float64{"value": 0.25})
	})

	rr := serve(e, http.MethodGet, "/value")
	require.Equal(t, http.StatusOK, rr.Code)

	requestId := rr.Header().Get(echo.HeaderXRequestID)
	require.NotEmpty(t, requestId)
	assert.Contains(t, out.String(), "drew value")
	assert.Contains(t, out.String(), requestId)
	assert.Contains(t, out.String(), "/value")
}

func TestGetContext_Fallback(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())

	sctx := server.GetContext(c)
	require.NotNil(t, sctx.ServerLogger)
	sctx.ServerLogger.Info().Msg("discarded")
	assert.NotNil(t, sctx.Logger())
}

func TestGommonLogger(t *testing.T) {
	var out syncBuffer
	e := server.NewWithOptions(server.Options{LoggerWriter: &out})

	e.Logger.Infof("listening on %d", 8080)
	e.Logger.Debug("hidden")
	assert.Contains(t, out.String(), "listening on 8080")
	assert.NotContains(t, out.String(), "hidden")
}

func TestStart_ShutsDownWithContext(t *testing.T) {
	e := server.NewWithOptions(server.Options{LoggerWriter: io.Discard})

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	require.NoError(t, server.StartWithOptions(ctx, e, 0, server.StartOptions{GracefulShutdownTimeout: time.Second}))
}
