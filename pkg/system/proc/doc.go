// Package proc provides lightweight, read-only accessors over the Linux
// /proc interface for the counters fairshare samples: the system-wide
// cumulative CPU jiffy budget (/proc/stat), per-process cumulative CPU
// jiffies (/proc/<pid>/stat utime+stime), process ownership (uid of the
// /proc/<pid> directory), pid enumeration, and the one-minute load average.
//
// All counters are cumulative since boot (or process start); callers take
// deltas between two reads to derive interval utilization. Nothing here
// caches or mutates state, and no read is atomic with respect to any other:
// a process may exit between ListPIDs and a per-pid read, in which case the
// per-pid call simply fails and the caller skips that process.
//
// Package import path: github.com/ja7ad/fairshare/pkg/system/proc
package proc
