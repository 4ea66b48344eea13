package model

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/YuminosukeSato/scistat/pkg/errors"
)

func TestBaseEstimatorLifecycle(t *testing.T) {
	var e BaseEstimator

	assert.False(t, e.IsFitted())
	assert.Equal(t, "not_fitted", e.State().String())

	err := e.RequireFitted("MultipleRegression", "Predict")
	var notFitted *errors.NotFittedError
	assert.True(t, errors.As(err, &notFitted))

	e.SetFitted()
	assert.True(t, e.IsFitted())
	assert.NoError(t, e.RequireFitted("MultipleRegression", "Predict"))
	assert.Equal(t, "fitted", e.State().String())

	e.Reset()
	assert.False(t, e.IsFitted())
}
