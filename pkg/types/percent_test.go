package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPercentString(t *testing.T) {
	assert.Equal(t, "0.00%", Percent(0).String())
	assert.Equal(t, "12.34%", Percent(12.3449).String())
	assert.Equal(t, "100.00%", Percent(100).String())
}

func TestPercentCores(t *testing.T) {
	assert.InDelta(t, 2.0, Percent(25).Cores(8), 1e-12)
	assert.InDelta(t, 0.5, Percent(50).Cores(1), 1e-12)
	assert.InDelta(t, 0.0, Percent(0).Cores(64), 1e-12)
}

func TestPercentOfAllCores(t *testing.T) {
	assert.InDelta(t, 200.0, Percent(25).OfAllCores(8), 1e-12)
	assert.InDelta(t, 50.0, Percent(50).OfAllCores(1), 1e-12)
}
