package server

import (
	"io"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// Context carries a request-scoped logger through handlers.
type Context struct {
	echo.Context
	ServerLoggerWriter io.Writer
	ServerLogger       *zerolog.Logger
}

// GetContext returns the server Context wrapping c. Handlers registered on an
// echo instance built with NewWithOptions always receive one.
func GetContext(c echo.Context) *Context {
	if sctx, ok := c.(*Context); ok {
		return sctx
	}
	logger := zerolog.Nop()
	return &Context{Context: c, ServerLoggerWriter: io.Discard, ServerLogger: &logger}
}

func (c *Context) Logger() echo.Logger {
	return newGommonLogger(c.ServerLogger, c.ServerLoggerWriter)
}
