package log

import (
	"context"
	"fmt"
	"io"

	"github.com/rs/zerolog"
)

// NewZerologLogger returns a Logger writing JSON lines through zerolog.
//
// Values implementing zerolog.LogObjectMarshaler (the structured error and
// warning types in pkg/errors) are emitted as nested objects.
func NewZerologLogger(w io.Writer, level Level) Logger {
	zl := zerolog.New(w).Level(toZerologLevel(level)).With().Timestamp().Logger()
	return &zerologLogger{zl: zl}
}

type zerologLogger struct {
	zl zerolog.Logger
}

func (z *zerologLogger) Debug(msg string, fields ...any) { emit(z.zl.Debug(), msg, fields) }
func (z *zerologLogger) Info(msg string, fields ...any)  { emit(z.zl.Info(), msg, fields) }
func (z *zerologLogger) Warn(msg string, fields ...any)  { emit(z.zl.Warn(), msg, fields) }
func (z *zerologLogger) Error(msg string, fields ...any) { emit(z.zl.Error(), msg, fields) }

func (z *zerologLogger) With(fields ...any) Logger {
	ctx := z.zl.With()
	for i := 0; i+1 < len(fields); i += 2 {
		ctx = ctx.Interface(fmt.Sprint(fields[i]), fields[i+1])
	}
	return &zerologLogger{zl: ctx.Logger()}
}

func (z *zerologLogger) Enabled(_ context.Context, level Level) bool {
	return toZerologLevel(level) >= z.zl.GetLevel()
}

func emit(e *zerolog.Event, msg string, fields []any) {
	if e == nil {
		return
	}
	present := make(map[string]bool, len(fields)/2)
	var leading error
	// A leading bare error is logged under ErrAttrKey.
	if len(fields)%2 == 1 {
		if err, ok := fields[0].(error); ok {
			leading = err
			fields = fields[1:]
			present[ErrAttrKey] = true
		}
	}
	for i := 0; i+1 < len(fields); i += 2 {
		present[fmt.Sprint(fields[i])] = true
	}

	for i := 0; i+1 < len(fields); i += 2 {
		key := fmt.Sprint(fields[i])
		switch v := fields[i+1].(type) {
		case zerolog.LogObjectMarshaler:
			e.Object(key, v)
		case error:
			e.Str(key, v.Error())
		case float64:
			e.Float64(key, v)
		case int:
			e.Int(key, v)
		case uint64:
			e.Uint64(key, v)
		case string:
			e.Str(key, v)
		case bool:
			e.Bool(key, v)
		case []float64:
			e.Floats64(key, v)
		default:
			e.Interface(key, v)
		}
	}
	if leading != nil {
		addErr(e, leading, present)
	}
	e.Msg(msg)
}

// addErr writes err under ErrAttrKey together with the attributes
// ErrFmtHandler derives for the slog backend.
func addErr(e *zerolog.Event, err error, present map[string]bool) {
	e.Str(ErrAttrKey, err.Error())
	for _, attr := range errorAttrs(err) {
		if present[attr.Key] {
			continue
		}
		e.Interface(attr.Key, attr.Value.Any())
	}
}

func toZerologLevel(level Level) zerolog.Level {
	switch {
	case level <= LevelDebug:
		return zerolog.DebugLevel
	case level <= LevelInfo:
		return zerolog.InfoLevel
	case level <= LevelWarn:
		return zerolog.WarnLevel
	default:
		return zerolog.ErrorLevel
	}
}
