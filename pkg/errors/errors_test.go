package errors

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestNewModelError(t *testing.T) {
	tests := []struct {
		name     string
		op       string
		kind     string
		err      error
		wantMsg  string
		hasStack bool
	}{
		{
			name:     "with original error",
			op:       "Fit",
			kind:     "invalid input",
			err:      fmt.Errorf("test error"),
			wantMsg:  "scistat: Fit: invalid input: test error",
			hasStack: true,
		},
		{
			name:     "without original error",
			op:       "Predict",
			kind:     "not fitted",
			err:      nil,
			wantMsg:  "scistat: Predict: not fitted",
			hasStack: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewModelError(tt.op, tt.kind, tt.err)

			if err.Error() != tt.wantMsg {
				t.Errorf("Error() = %v, want %v", err.Error(), tt.wantMsg)
			}

			// スタックトレースの存在確認
			if tt.hasStack {
				formatted := fmt.Sprintf("%+v", err)
				if !strings.Contains(formatted, "errors_test.go") {
					t.Error("Expected stack trace to contain test file name")
				}
			}

			var modelErr *ModelError
			if !As(err, &modelErr) {
				t.Error("Error should be castable to *ModelError")
			}
		})
	}
}

func TestNewDimensionError(t *testing.T) {
	err := NewDimensionError("linalg.Add", 3, 2, 0)

	want := "scistat: linalg.Add: dimension mismatch on axis 0 (rows). Expected 3, got 2"
	if err.Error() != want {
		t.Errorf("Error() = %v, want %v", err.Error(), want)
	}

	var dimErr *DimensionError
	if !As(err, &dimErr) {
		t.Fatal("Error should be castable to *DimensionError")
	}
	if dimErr.Expected != 3 || dimErr.Got != 2 {
		t.Errorf("unexpected fields: %+v", dimErr)
	}
}

func TestNewValidationError(t *testing.T) {
	err := NewValidationError("sigma", "must be positive", -1.0)

	want := "scistat: validation failed for parameter 'sigma': must be positive (got: -1)"
	if err.Error() != want {
		t.Errorf("Error() = %v, want %v", err.Error(), want)
	}

	var valErr *ValidationError
	if !As(err, &valErr) {
		t.Error("Error should be castable to *ValidationError")
	}
}

func TestNewNotFittedError(t *testing.T) {
	err := NewNotFittedError("MultipleRegression", "Predict")

	want := "scistat: MultipleRegression: this model is not fitted yet. Call Fit() before using Predict()"
	if err.Error() != want {
		t.Errorf("Error() = %v, want %v", err.Error(), want)
	}

	var notFittedErr *NotFittedError
	if !As(err, &notFittedErr) {
		t.Error("Error should be castable to *NotFittedError")
	}
}

func TestNewValueError(t *testing.T) {
	err := NewValueError("linalg.Direction", "zero vector has no direction")

	want := "scistat: linalg.Direction: zero vector has no direction"
	if err.Error() != want {
		t.Errorf("Error() = %v, want %v", err.Error(), want)
	}

	var valErr *ValueError
	if !As(err, &valErr) {
		t.Error("Error should be castable to *ValueError")
	}
}

func TestNewConvergenceWarning(t *testing.T) {
	tests := []struct {
		name string
		msg  string
		want string
	}{
		{
			name: "with message",
			msg:  "objective still decreasing",
			want: "MinimizeBatch failed to converge after 1000 iterations: objective still decreasing",
		},
		{
			name: "default message",
			want: "MinimizeBatch failed to converge after 1000 iterations. Consider increasing the iteration cap or the tolerance.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			warn := NewConvergenceWarning("MinimizeBatch", 1000, tt.msg)
			if warn.Error() != tt.want {
				t.Errorf("Error() = %v, want %v", warn.Error(), tt.want)
			}
		})
	}
}

func TestNumericalInstabilityErrorMessage(t *testing.T) {
	err := NewNumericalInstabilityError("gradient", []float64{1, 2, 3, 4, 5, 6, 7}, 12)

	msg := err.Error()
	if !strings.Contains(msg, "gradient") || !strings.Contains(msg, "iteration 12") {
		t.Errorf("unexpected message: %s", msg)
	}
	if !strings.Contains(msg, "...") {
		t.Errorf("expected values to be truncated: %s", msg)
	}
}

func TestMarshalZerologObject(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	dimErr := &DimensionError{Op: "Dot", Expected: 3, Got: 4, Axis: 0}
	logger.Error().Object("err", dimErr).Msg("shape mismatch")

	out := buf.String()
	for _, want := range []string{`"operation":"Dot"`, `"expected":3`, `"got":4`, `"type":"DimensionError"`} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %s in %s", want, out)
		}
	}

	buf.Reset()
	logger.Warn().Object("warning", NewConvergenceWarning("MinimizeStochastic", 50, "")).Msg("no convergence")
	if !strings.Contains(buf.String(), `"algorithm":"MinimizeStochastic"`) {
		t.Errorf("expected algorithm field in %s", buf.String())
	}
}

func TestWrapAndIs(t *testing.T) {
	wrapped := Wrap(ErrEmptyData, "in stats.Mean")

	if !Is(wrapped, ErrEmptyData) {
		t.Error("Expected Is(wrapped, ErrEmptyData) to be true")
	}

	if !strings.Contains(wrapped.Error(), "in stats.Mean") {
		t.Error("Expected wrapped error to contain wrapping message")
	}
}

func TestWrapf(t *testing.T) {
	wrapped := Wrapf(ErrZeroVariance, "in %s: column %d", "StandardScaler.Fit", 2)

	if !Is(wrapped, ErrZeroVariance) {
		t.Error("Expected Is(wrapped, ErrZeroVariance) to be true")
	}

	expectedMsg := "in StandardScaler.Fit: column 2"
	if !strings.Contains(wrapped.Error(), expectedMsg) {
		t.Errorf("Expected wrapped error to contain %q", expectedMsg)
	}
}

func TestErrorChaining(t *testing.T) {
	err1 := fmt.Errorf("base error")
	err2 := Wrap(err1, "wrapped once")
	err3 := NewModelError("Operation", "failed", err2)

	if !strings.Contains(err3.Error(), "base error") {
		t.Error("Expected error chain to contain base error")
	}

	formatted := fmt.Sprintf("%+v", err3)
	if !strings.Contains(formatted, "errors_test.go") {
		t.Error("Expected detailed error to contain stack trace")
	}
}
