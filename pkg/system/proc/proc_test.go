//go:build linux

package proc

import (
	"os"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSystemTicks(t *testing.T) {
	t0, err := SystemTicks()
	require.NoError(t, err)
	assert.Greater(t, t0, uint64(0))

	time.Sleep(10 * time.Millisecond)
	t1, err := SystemTicks()
	require.NoError(t, err)
	assert.GreaterOrEqual(t, t1, t0, "system tick counter must not go backwards")
}

func TestProcessTicks_Self(t *testing.T) {
	me := os.Getpid()
	j0, err := ProcessTicks(me)
	require.NoError(t, err)

	// Burn a little CPU so the counter has a chance to advance, then
	// verify monotonicity rather than an exact value.
	deadline := time.Now().Add(20 * time.Millisecond)
	for time.Now().Before(deadline) {
	}
	j1, err := ProcessTicks(me)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, j1, j0)
}

func TestProcessTicks_NoSuchPid(t *testing.T) {
	_, err := ProcessTicks(999999999)
	require.Error(t, err)
}

func TestOwnerUID_Self(t *testing.T) {
	uid, err := OwnerUID(os.Getpid())
	require.NoError(t, err)
	assert.Equal(t, uint32(os.Getuid()), uid)
}

func TestOwnerUID_NoSuchPid(t *testing.T) {
	_, err := OwnerUID(999999999)
	require.Error(t, err)
}

func TestListPIDs_ContainsSelf(t *testing.T) {
	pids, err := ListPIDs()
	require.NoError(t, err)
	assert.Contains(t, pids, os.Getpid())
	for _, pid := range pids {
		assert.Greater(t, pid, 0)
	}
}

func TestLoadAvg1(t *testing.T) {
	load, err := LoadAvg1()
	require.NoError(t, err)
	assert.GreaterOrEqual(t, load, 0.0)
	// Sanity bound: load should never be astronomically larger than the
	// CPU count on a test runner.
	assert.Less(t, load, float64(runtime.NumCPU())*1000)
}

func TestExists(t *testing.T) {
	assert.True(t, Exists(os.Getpid()))
	assert.False(t, Exists(999999999))
}
