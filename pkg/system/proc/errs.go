package proc

import "errors"

var (
	// ErrNoCPU indicates that /proc/stat had no aggregate CPU line.
	ErrNoCPU = errors.New("proc: no cpu line")

	// ErrNoStat indicates that /proc/<pid>/stat was empty or malformed.
	ErrNoStat = errors.New("proc: malformed or empty stat")

	// ErrShortStat indicates that /proc/<pid>/stat had fewer fields than expected.
	ErrShortStat = errors.New("proc: short stat")

	// ErrNoOwner indicates that the owning uid of a process could not be
	// determined from /proc/<pid> metadata.
	ErrNoOwner = errors.New("proc: no owner")

	// ErrNoLoad indicates that /proc/loadavg was empty or malformed.
	ErrNoLoad = errors.New("proc: malformed loadavg")
)
