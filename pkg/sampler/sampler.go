// Package sampler turns two consecutive generations of cumulative CPU tick
// counters into per-user interval utilization. It owns the sliding
// two-generation snapshot store; everything downstream of it is pure
// computation over the deltas it produces.
package sampler

import (
	"fmt"
	"sort"

	"github.com/ja7ad/fairshare/pkg/system/util"
	"github.com/ja7ad/fairshare/pkg/types"
)

// SystemSample is the machine-wide cumulative jiffy budget at one instant,
// summed over all logical CPUs.
type SystemSample struct {
	TotalTicks uint64
}

// ProcessSample is one process's accounting snapshot at one instant.
// PIDs are unique at a given instant but may be recycled by the kernel, so
// identity only holds between two adjacent generations.
type ProcessSample struct {
	PID   int
	UID   uint32
	Ticks uint64 // cumulative utime+stime jiffies since process start
}

// Usage is one user's share of total machine capacity over one interval.
type Usage struct {
	UID     uint32
	Percent types.Percent
}

// Reader supplies one generation of raw counters. The production
// implementation reads /proc; tests substitute fixed snapshots.
type Reader interface {
	// System returns the machine-wide tick counter. Failure here is fatal
	// for the pass: no diff is computed and the stored baseline is kept.
	System() (SystemSample, error)

	// Processes returns a snapshot of every readable process. Processes
	// whose accounting is unreadable (permissions, exited mid-read) are
	// skipped, not reported as errors.
	Processes() ([]ProcessSample, error)
}

// Sampler holds the previous generation of counters and diffs each new
// generation against it. It is exclusively owned by a single sampling
// goroutine; there is no internal locking.
type Sampler struct {
	reader Reader

	primed     bool
	prevSystem uint64
	prev       map[int]ProcessSample
}

func New(r Reader) *Sampler {
	return &Sampler{reader: r, prev: make(map[int]ProcessSample)}
}

// Pass reads one generation of counters, diffs it against the previous
// generation, and aggregates per-pid tick deltas by owning uid.
//
// ready is false when there is nothing meaningful to report: the priming
// pass (no baseline yet) and degenerate intervals (capacity delta <= 0,
// e.g. counter reset). In both cases the new snapshot still becomes the
// baseline for the next pass. A read error abandons the pass entirely and
// leaves the stored baseline untouched.
//
// Only pids present in both generations contribute: exited processes are
// dropped silently, newly started ones have no baseline and join the
// accounting next pass. Users whose summed delta is zero are omitted.
// Output is ordered by ascending uid, so identical snapshots always yield
// identical results.
func (s *Sampler) Pass() (usages []Usage, ready bool, err error) {
	sys, err := s.reader.System()
	if err != nil {
		return nil, false, fmt.Errorf("sampler: system counters: %w", err)
	}
	procs, err := s.reader.Processes()
	if err != nil {
		return nil, false, fmt.Errorf("sampler: process counters: %w", err)
	}

	cur := make(map[int]ProcessSample, len(procs))
	for _, p := range procs {
		cur[p.PID] = p
	}

	if !s.primed {
		s.primed = true
		s.prevSystem = sys.TotalTicks
		s.prev = cur
		return nil, false, nil
	}

	capacity := util.DeltaU64(sys.TotalTicks, s.prevSystem)

	byUID := make(map[uint32]uint64)
	if capacity > 0 {
		for pid, now := range cur {
			before, ok := s.prev[pid]
			if !ok {
				continue
			}
			byUID[now.UID] += util.DeltaU64(now.Ticks, before.Ticks)
		}
	}

	// Slide the window regardless of outcome so a degenerate interval
	// (or counter reset) re-baselines instead of poisoning the next diff.
	s.prevSystem = sys.TotalTicks
	s.prev = cur

	if capacity == 0 {
		return nil, false, nil
	}

	usages = make([]Usage, 0, len(byUID))
	for uid, ticks := range byUID {
		if ticks == 0 {
			continue
		}
		usages = append(usages, Usage{
			UID:     uid,
			Percent: types.Percent(100 * util.SafeDiv(float64(ticks), float64(capacity))),
		})
	}
	sort.Slice(usages, func(i, j int) bool { return usages[i].UID < usages[j].UID })
	return usages, true, nil
}
