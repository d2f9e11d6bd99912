package server

import (
	"fmt"
	"io"

	"github.com/labstack/gommon/log"
	"github.com/rs/zerolog"
)

func newLogger(w io.Writer) *zerolog.Logger {
	loggerStruct := zerolog.New(
		zerolog.ConsoleWriter{
			Out:         w,
			TimeFormat:  "02 Jan 06 15:04:05 MST",
			FieldsOrder: []string{"status", "method", "uri", "error", "request_id", "latency", "size"},
		},
	).
		With().
		Timestamp().
		Logger()
	return &loggerStruct
}

// gommonLogger adapts a zerolog logger to echo.Logger.
type gommonLogger struct {
	logger *zerolog.Logger
	w      io.Writer
	level  log.Lvl
	prefix string
}

func newGommonLogger(logger *zerolog.Logger, loggerWriter io.Writer) *gommonLogger {
	return &gommonLogger{
		logger: logger,
		w:      loggerWriter,
		level:  gommonLevel(logger.GetLevel()),
	}
}

func (l *gommonLogger) Output() io.Writer { return l.w }
func (l *gommonLogger) Level() log.Lvl    { return l.level }
func (l *gommonLogger) Prefix() string    { return l.prefix }
func (l *gommonLogger) SetHeader(string)  {}

func (l *gommonLogger) SetOutput(w io.Writer) {
	l.w = w
	logger := l.logger.Output(w)
	l.logger = &logger
}

func (l *gommonLogger) SetLevel(level log.Lvl) {
	l.level = level
	logger := l.logger.Level(zerologLevel(level))
	l.logger = &logger
}

func (l *gommonLogger) SetPrefix(prefix string) {
	l.prefix = prefix
	logger := l.logger.With().Str("prefix", prefix).Logger()
	l.logger = &logger
}

func (l *gommonLogger) event(level zerolog.Level) *zerolog.Event {
	return l.logger.WithLevel(level)
}

func (l *gommonLogger) print(level zerolog.Level, i ...any) {
	l.event(level).Msg(fmt.Sprint(i...))
}

func (l *gommonLogger) printf(level zerolog.Level, format string, i ...any) {
	l.event(level).Msgf(format, i...)
}

func (l *gommonLogger) printj(level zerolog.Level, j log.JSON) {
	logJson(l.event(level), j)
}

func logJson(evt *zerolog.Event, j log.JSON) {
	for k, v := range j {
		evt = evt.Interface(k, v)
	}
	evt.Msg("")
}

func (l *gommonLogger) Print(i ...any)                 { l.print(zerolog.InfoLevel, i...) }
func (l *gommonLogger) Printf(format string, i ...any) { l.printf(zerolog.InfoLevel, format, i...) }
func (l *gommonLogger) Printj(j log.JSON)              { l.printj(zerolog.InfoLevel, j) }
func (l *gommonLogger) Debug(i ...any)                 { l.print(zerolog.DebugLevel, i...) }
func (l *gommonLogger) Debugf(format string, i ...any) { l.printf(zerolog.DebugLevel, format, i...) }
func (l *gommonLogger) Debugj(j log.JSON)              { l.printj(zerolog.DebugLevel, j) }
func (l *gommonLogger) Info(i ...any)                  { l.print(zerolog.InfoLevel, i...) }
func (l *gommonLogger) Infof(format string, i ...any)  { l.printf(zerolog.InfoLevel, format, i...) }
func (l *gommonLogger) Infoj(j log.JSON)               { l.printj(zerolog.InfoLevel, j) }
func (l *gommonLogger) Warn(i ...any)                  { l.print(zerolog.WarnLevel, i...) }
func (l *gommonLogger) Warnf(format string, i ...any)  { l.printf(zerolog.WarnLevel, format, i...) }
func (l *gommonLogger) Warnj(j log.JSON)               { l.printj(zerolog.WarnLevel, j) }
func (l *gommonLogger) Error(i ...any)                 { l.print(zerolog.ErrorLevel, i...) }
func (l *gommonLogger) Errorf(format string, i ...any) { l.printf(zerolog.ErrorLevel, format, i...) }
func (l *gommonLogger) Errorj(j log.JSON)              { l.printj(zerolog.ErrorLevel, j) }

// Fatal and Panic go through zerolog's own events so that they still exit or
// panic after logging.
func (l *gommonLogger) Fatal(i ...any)                 { l.logger.Fatal().Msg(fmt.Sprint(i...)) }
func (l *gommonLogger) Fatalf(format string, i ...any) { l.logger.Fatal().Msgf(format, i...) }
func (l *gommonLogger) Fatalj(j log.JSON)              { logJson(l.logger.Fatal(), j) }
func (l *gommonLogger) Panic(i ...any)                 { l.logger.Panic().Msg(fmt.Sprint(i...)) }
func (l *gommonLogger) Panicf(format string, i ...any) { l.logger.Panic().Msgf(format, i...) }
func (l *gommonLogger) Panicj(j log.JSON)              { logJson(l.logger.Panic(), j) }

func gommonLevel(level zerolog.Level) log.Lvl {
	switch level {
	case zerolog.NoLevel, zerolog.Disabled:
		return log.OFF
	case zerolog.TraceLevel, zerolog.DebugLevel:
		return log.DEBUG
	case zerolog.InfoLevel:
		return log.INFO
	case zerolog.WarnLevel:
		return log.WARN
	case zerolog.ErrorLevel, zerolog.FatalLevel, zerolog.PanicLevel:
		return log.ERROR
	default:
		return log.DEBUG
	}
}

func zerologLevel(level log.Lvl) zerolog.Level {
	switch level {
	case log.OFF:
		return zerolog.Disabled
	case log.DEBUG:
		return zerolog.DebugLevel
	case log.INFO:
		return zerolog.InfoLevel
	case log.WARN:
		return zerolog.WarnLevel
	case log.ERROR:
		return zerolog.ErrorLevel
	default:
		return zerolog.TraceLevel
	}
}
