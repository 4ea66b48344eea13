package log

import (
	"context"
	"log/slog"

	"github.com/YuminosukeSato/scistat/pkg/errors"
	crdb "github.com/cockroachdb/errors"
)

// ErrFmtHandler is a slog handler that expands the error attribute of a record.
//
// The error stored under ErrAttrKey contributes its cockroachdb/errors stack
// trace and, for the scistat error types, the failing operation, the
// optimizer iteration and an error code. Keys already present on the record
// are left alone.
type ErrFmtHandler struct {
	handler slog.Handler
}

// WrapByErrFmtHandler wraps handler with an ErrFmtHandler.
func WrapByErrFmtHandler(handler slog.Handler) slog.Handler {
	return &ErrFmtHandler{
		handler: handler,
	}
}

func (eh *ErrFmtHandler) Enabled(ctx context.Context, l slog.Level) bool {
	return eh.handler.Enabled(ctx, l)
}

func (eh *ErrFmtHandler) Handle(ctx context.Context, r slog.Record) error {
	var err error
	present := make(map[string]bool, r.NumAttrs())
	r.Attrs(func(attr slog.Attr) bool {
		present[attr.Key] = true
		if e, ok := attr.Value.Any().(error); ok && attr.Key == ErrAttrKey && err == nil {
			err = e
		}
		return true
	})
	if err != nil {
		for _, attr := range errorAttrs(err) {
			if !present[attr.Key] {
				r.AddAttrs(attr)
			}
		}
	}
	return eh.handler.Handle(ctx, r)
}

func (eh *ErrFmtHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &ErrFmtHandler{handler: eh.handler.WithAttrs(attrs)}
}

func (eh *ErrFmtHandler) WithGroup(g string) slog.Handler {
	return &ErrFmtHandler{handler: eh.handler.WithGroup(g)}
}

// errorAttrs lists the attributes derived from err. Both the slog and the
// zerolog backends emit them.
func errorAttrs(err error) []slog.Attr {
	var attrs []slog.Attr
	if st := extractStacktrace(err); st != "" {
		attrs = append(attrs, slog.String(StacktraceAttrKey, st))
	}

	var (
		panicErr *errors.PanicError
		numErr   *errors.NumericalInstabilityError
		dimErr   *errors.DimensionError
		valErr   *errors.ValidationError
	)
	switch {
	case errors.As(err, &panicErr):
		attrs = append(attrs,
			slog.String(ErrorCodeKey, ErrorPanic),
			slog.String(ErrorOperationKey, panicErr.Operation),
		)
	case errors.As(err, &numErr):
		attrs = append(attrs,
			slog.String(ErrorCodeKey, ErrorNumericalInstability),
			slog.String(ErrorOperationKey, numErr.Operation),
			slog.Int(IterationKey, numErr.Iteration),
		)
	case errors.As(err, &dimErr):
		attrs = append(attrs,
			slog.String(ErrorCodeKey, ErrorShapeMismatch),
			slog.String(ErrorOperationKey, dimErr.Op),
		)
	case errors.As(err, &valErr):
		attrs = append(attrs,
			slog.String(ErrorCodeKey, ErrorInvalidParameter),
			slog.String(ErrorParamKey, valErr.ParamName),
		)
	}
	return attrs
}

func extractStacktrace(err error) string {
	safeDetails := crdb.GetSafeDetails(err).SafeDetails
	if len(safeDetails) > 0 {
		return safeDetails[0]
	}
	return ""
}
