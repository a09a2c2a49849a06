//go:build linux

package sampler

import (
	"fmt"

	"github.com/ja7ad/fairshare/pkg/system/proc"
)

// ProcReader is the production Reader backed by /proc.
type ProcReader struct{}

func NewProcReader() ProcReader { return ProcReader{} }

func (ProcReader) System() (SystemSample, error) {
	total, err := proc.SystemTicks()
	if err != nil {
		return SystemSample{}, err
	}
	return SystemSample{TotalTicks: total}, nil
}

// Processes snapshots every pid visible in /proc. Per-pid failures mean the
// process exited between the directory listing and the read, or its
// accounting is unreadable across a privilege boundary; either way it is
// skipped and the snapshot stays usable.
func (ProcReader) Processes() ([]ProcessSample, error) {
	pids, err := proc.ListPIDs()
	if err != nil {
		return nil, fmt.Errorf("list pids: %w", err)
	}
	samples := make([]ProcessSample, 0, len(pids))
	for _, pid := range pids {
		ticks, err := proc.ProcessTicks(pid)
		if err != nil {
			continue
		}
		uid, err := proc.OwnerUID(pid)
		if err != nil {
			continue
		}
		samples = append(samples, ProcessSample{PID: pid, UID: uid, Ticks: ticks})
	}
	return samples, nil
}
