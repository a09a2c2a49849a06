package util

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeltaU64(t *testing.T) {
	t.Run("normal_increase", func(t *testing.T) {
		assert.Equal(t, uint64(10), DeltaU64(110, 100))
	})
	t.Run("no_change", func(t *testing.T) {
		assert.Equal(t, uint64(0), DeltaU64(100, 100))
	})
	t.Run("wrap_or_prev_unset", func(t *testing.T) {
		// now < prev → treated as wrap/reset → 0
		assert.Equal(t, uint64(0), DeltaU64(99, 100))
	})
	t.Run("large_values", func(t *testing.T) {
		const hi = ^uint64(0) - 5
		assert.Equal(t, uint64(5), DeltaU64(hi, hi-5))
	})
}

func TestSafeDiv(t *testing.T) {
	const eps = 1e-12

	t.Run("regular_positive", func(t *testing.T) {
		require.InDelta(t, 2.5, SafeDiv(5, 2), 1e-12)
	})
	t.Run("regular_negative", func(t *testing.T) {
		require.InDelta(t, -2.5, SafeDiv(-5, 2), 1e-12)
		require.InDelta(t, -2.5, SafeDiv(5, -2), 1e-12)
	})
	t.Run("zero_denominator", func(t *testing.T) {
		assert.Equal(t, 0.0, SafeDiv(123, 0))
	})
	t.Run("tiny_denominator_below_eps", func(t *testing.T) {
		d := eps / 10
		assert.Equal(t, 0.0, SafeDiv(1, d))
		assert.Equal(t, 0.0, SafeDiv(1, -d))
	})
}

func TestClamp01(t *testing.T) {
	t.Run("below_zero", func(t *testing.T) {
		assert.Equal(t, 0.0, Clamp01(-1e9))
	})
	t.Run("zero_and_one", func(t *testing.T) {
		assert.Equal(t, 0.0, Clamp01(0))
		assert.Equal(t, 1.0, Clamp01(1))
	})
	t.Run("within_range", func(t *testing.T) {
		assert.InDelta(t, 0.123, Clamp01(0.123), 0)
	})
	t.Run("above_one", func(t *testing.T) {
		assert.Equal(t, 1.0, Clamp01(42))
		assert.Equal(t, 1.0, Clamp01(math.MaxFloat64))
	})
	t.Run("NaN_becomes_zero", func(t *testing.T) {
		assert.Equal(t, 0.0, Clamp01(math.NaN()))
	})
	t.Run("infinities", func(t *testing.T) {
		assert.Equal(t, 1.0, Clamp01(math.Inf(1)))
		assert.Equal(t, 0.0, Clamp01(math.Inf(-1)))
	})
}

func TestEMA(t *testing.T) {
	t.Run("first_sample_passes_through", func(t *testing.T) {
		e := NewEMA(0.5)
		assert.Equal(t, 10.0, e.Next(10))
	})
	t.Run("alpha_point_five_sequence", func(t *testing.T) {
		e := NewEMA(0.5)
		e.Next(10)
		require.InDelta(t, 15.0, e.Next(20), 1e-12)
		require.InDelta(t, 17.5, e.Next(20), 1e-12)
	})
	t.Run("alpha_one_no_smoothing", func(t *testing.T) {
		e := NewEMA(1.0)
		e.Next(1)
		assert.Equal(t, 42.0, e.Next(42))
	})
	t.Run("alpha_zero_holds_initial", func(t *testing.T) {
		e := NewEMA(0.0)
		e.Next(7)
		assert.Equal(t, 7.0, e.Next(100))
	})
	t.Run("converges_to_constant_input", func(t *testing.T) {
		e := NewEMA(0.3)
		e.Next(0)
		var v float64
		for i := 0; i < 200; i++ {
			v = e.Next(50)
		}
		require.InDelta(t, 50.0, v, 1e-6)
	})
}
