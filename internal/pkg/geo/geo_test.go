package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateHaversineDistance(t *testing.T) {
	t.Parallel()

	t.Run("same point is zero", func(t *testing.T) {
		t.Parallel()
		assert.Zero(t, CalculateHaversineDistance(-33.8688, 151.2093, -33.8688, 151.2093))
	})

	t.Run("known short distance", func(t *testing.T) {
		t.Parallel()
		// 0.001 degrees of latitude is roughly 111.2m.
		distance := CalculateHaversineDistance(0, 0, 0.001, 0)
		assert.InDelta(t, 111.19, distance, 0.5)
	})

	t.Run("symmetric", func(t *testing.T) {
		t.Parallel()
		a := CalculateHaversineDistance(-33.8688, 151.2093, -33.8700, 151.2100)
		b := CalculateHaversineDistance(-33.8700, 151.2100, -33.8688, 151.2093)
		assert.InDelta(t, a, b, 0.0001)
	})
}

func TestEvaluate(t *testing.T) {
	t.Parallel()

	expLat, expLon := 0.0, 0.0

	t.Run("inside radius is valid", func(t *testing.T) {
		t.Parallel()
		// ~55.6m out against a 100m radius.
		eval := Evaluate(0.0005, 0, &expLat, &expLon, 100)
		require.True(t, eval.Evaluated)
		assert.Equal(t, StatusValid, eval.Status)
		assert.True(t, eval.Compliant())
	})

	t.Run("inside warning band", func(t *testing.T) {
		t.Parallel()
		// ~90m out: past 80% of the 100m radius but still inside it.
		eval := Evaluate(0.00081, 0, &expLat, &expLon, 100)
		require.True(t, eval.Evaluated)
		assert.Equal(t, StatusWarning, eval.Status)
		assert.True(t, eval.Compliant())
	})

	t.Run("outside radius is a violation", func(t *testing.T) {
		t.Parallel()
		// ~111m out against a 100m radius.
		eval := Evaluate(0.001, 0, &expLat, &expLon, 100)
		require.True(t, eval.Evaluated)
		assert.Equal(t, StatusViolation, eval.Status)
		assert.False(t, eval.Compliant())
	})

	t.Run("wider radius turns the same distance valid", func(t *testing.T) {
		t.Parallel()
		eval := Evaluate(0.001, 0, &expLat, &expLon, 200)
		assert.Equal(t, StatusValid, eval.Status)
	})

	t.Run("nil expected location skips evaluation", func(t *testing.T) {
		t.Parallel()
		eval := Evaluate(12.34, 56.78, nil, nil, 100)
		assert.False(t, eval.Evaluated)
		assert.Equal(t, StatusValid, eval.Status)
		assert.True(t, eval.Compliant())
	})
}
