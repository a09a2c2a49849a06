//go:build linux

package proc

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"syscall"
)

// SystemTicks parses /proc/stat and returns the cumulative jiffy count of
// the aggregate "cpu" line, summed over every column (user, nice, system,
// idle, iowait, irq, softirq, steal, guest, ...). The sum is the machine's
// total tick budget across all logical CPUs since boot; take deltas between
// two reads to get the capacity of an interval.
func SystemTicks() (uint64, error) {
	f, err := os.Open("/proc/stat")
	if err != nil {
		return 0, fmt.Errorf("proc: open stat: %w", err)
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	for sc.Scan() {
		fs := strings.Fields(sc.Text())
		if len(fs) == 0 || fs[0] != "cpu" {
			continue
		}
		if len(fs) < 5 {
			return 0, ErrNoCPU
		}
		var total uint64
		for _, s := range fs[1:] {
			v, _ := strconv.ParseUint(s, 10, 64)
			total += v
		}
		return total, nil
	}
	return 0, ErrNoCPU
}

// ProcessTicks parses /proc/<pid>/stat and returns utime+stime, the
// cumulative CPU jiffies the process has consumed since it started.
//
// Field order is fixed, but comm (2nd field) is in parens and may contain
// spaces; everything before the closing ") " is stripped before splitting.
func ProcessTicks(pid int) (uint64, error) {
	f, err := os.Open(fmt.Sprintf("/proc/%d/stat", pid))
	if err != nil {
		return 0, err
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	if !sc.Scan() {
		return 0, ErrNoStat
	}
	line := sc.Text()

	i := strings.LastIndex(line, ") ")
	if i < 0 {
		return 0, ErrNoStat
	}
	fields := strings.Fields(line[i+2:])

	// Relative to the post-comm fields:
	// utime is the 14th overall field => fields[11]
	// stime is the 15th overall field => fields[12]
	if len(fields) < 13 {
		return 0, ErrShortStat
	}
	utime, err := strconv.ParseUint(fields[11], 10, 64)
	if err != nil {
		return 0, ErrShortStat
	}
	stime, err := strconv.ParseUint(fields[12], 10, 64)
	if err != nil {
		return 0, ErrShortStat
	}
	return utime + stime, nil
}

// OwnerUID returns the uid owning a process, taken from the ownership of
// its /proc/<pid> directory.
func OwnerUID(pid int) (uint32, error) {
	info, err := os.Stat(fmt.Sprintf("/proc/%d", pid))
	if err != nil {
		return 0, err
	}
	st, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return 0, ErrNoOwner
	}
	return st.Uid, nil
}

// ListPIDs enumerates the numeric entries of /proc, i.e. every live pid
// visible to the caller at the moment of the read.
func ListPIDs() ([]int, error) {
	entries, err := os.ReadDir("/proc")
	if err != nil {
		return nil, fmt.Errorf("proc: read dir: %w", err)
	}
	pids := make([]int, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		pid, err := strconv.Atoi(e.Name())
		if err != nil || pid <= 0 {
			continue
		}
		pids = append(pids, pid)
	}
	return pids, nil
}

// LoadAvg1 returns the one-minute load average from /proc/loadavg.
func LoadAvg1() (float64, error) {
	b, err := os.ReadFile("/proc/loadavg")
	if err != nil {
		return 0, fmt.Errorf("proc: read loadavg: %w", err)
	}
	fs := strings.Fields(string(b))
	if len(fs) < 1 {
		return 0, ErrNoLoad
	}
	v, err := strconv.ParseFloat(fs[0], 64)
	if err != nil {
		return 0, ErrNoLoad
	}
	return v, nil
}

// Exists reports whether a given PID currently exists in /proc.
func Exists(pid int) bool {
	_, err := os.Stat(fmt.Sprintf("/proc/%d", pid))
	return err == nil
}
