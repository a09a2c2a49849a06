//go:build linux

package main

import (
	"bytes"
	"fmt"
	"io"
	"sort"
	"text/tabwriter"
	"time"

	"golang.org/x/sys/unix"

	"github.com/ja7ad/fairshare/pkg/fairshare"
	"github.com/ja7ad/fairshare/pkg/system/users"
)

const (
	reset  = "\033[0m"
	bold   = "\033[1m"
	red    = "\033[31m"
	yellow = "\033[33m"
	green  = "\033[32m"

	clearScreen = "\033[H\033[2J"
)

type renderer struct {
	out      io.Writer
	resolver users.Resolver
	color    bool
	live     bool
	showAll  bool
}

func (r *renderer) paint(color, s string) string {
	if !r.color {
		return s
	}
	return color + s + reset
}

// verdictColor mirrors the severity ramp of the report table: red over
// fair share, yellow past half of it, green otherwise.
func verdictColor(v fairshare.Verdict) string {
	switch {
	case v.Over:
		return red
	case float64(v.Percent) > float64(v.FairShare)*0.5:
		return yellow
	default:
		return green
	}
}

func (r *renderer) renderCollecting(interval time.Duration) {
	var buf bytes.Buffer
	if r.live {
		buf.WriteString(clearScreen)
	}
	buf.WriteString(hostHeader())
	fmt.Fprintf(&buf, "Collecting baseline sample, first report in %s...\n", interval)
	fmt.Fprint(r.out, buf.String())
}

func (r *renderer) render(rep fairshare.Report, ncpu int, cfg *fairshare.Config) {
	var buf bytes.Buffer
	if r.live {
		buf.WriteString(clearScreen)
	}
	buf.WriteString(hostHeader())

	buf.WriteString("Fair Share Calculation:\n")
	if rep.FixedShare {
		fmt.Fprintf(&buf, "Using user-specified fair share: %s\n\n", rep.FairShare)
	} else {
		buf.WriteString("Using active users calculation:\n")
		fmt.Fprintf(&buf, "  Active users (usage > %.2f%%): %d\n", cfg.ActiveThreshold, rep.ActiveUsers)
		fmt.Fprintf(&buf, "  Fair share = 100%% / %d = %s\n\n", max(rep.ActiveUsers, 1), rep.FairShare)
	}

	verdicts := append([]fairshare.Verdict(nil), rep.Verdicts...)
	sort.Slice(verdicts, func(i, j int) bool { return verdicts[i].Percent > verdicts[j].Percent })

	tw := tabwriter.NewWriter(&buf, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "USERNAME\tTOTAL CPU (%)\tCORES USED\tSYSTEM SHARE (%)")
	for _, v := range verdicts {
		c := verdictColor(v)
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
			r.paint(c, r.resolver.Name(v.UID)),
			r.paint(c, fmt.Sprintf("%.2f", v.Percent.OfAllCores(ncpu))),
			r.paint(c, fmt.Sprintf("%.2f", v.Percent.Cores(ncpu))),
			r.paint(c, fmt.Sprintf("%.2f", float64(v.Percent))),
		)
	}
	tw.Flush()

	fmt.Fprintf(&buf, "\nTotal cores: %d\n", ncpu)
	fmt.Fprintf(&buf, "1 minute load average: %.2f (%s of capacity)\n", rep.Load1, rep.LoadPercent)

	if rep.ExcessLoad {
		fmt.Fprintf(&buf, "\n%s\n", r.paint(bold+red, "Excessive load detected!"))
		violators := rep.OverShare()
		if r.showAll {
			violators = rep.Verdicts
		}
		if len(violators) == 0 {
			fmt.Fprintf(&buf, "No user exceeds the fair share (%s).\n", rep.FairShare)
		} else {
			fmt.Fprintf(&buf, "Users exceeding fair share (%s):\n", rep.FairShare)
			tw := tabwriter.NewWriter(&buf, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "USERNAME\tSYSTEM SHARE (%)\tEXCESS (%)")
			for _, v := range violators {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", r.resolver.Name(v.UID), v.Percent, v.Excess())
			}
			tw.Flush()
		}
	}

	if r.live {
		buf.WriteString("\nPress Ctrl-C to exit.\n")
	}
	fmt.Fprint(r.out, buf.String())
}

// hostHeader returns a one-line host identification banner.
func hostHeader() string {
	var uts unix.Utsname
	if err := unix.Uname(&uts); err != nil {
		return "fairshare\n\n"
	}
	return fmt.Sprintf("fairshare on %s (%s %s)\n\n",
		cstr(uts.Nodename[:]), cstr(uts.Sysname[:]), cstr(uts.Release[:]))
}

func cstr(b []byte) string {
	for i, c := range b {
		if c == 0 {
			return string(b[:i])
		}
	}
	return string(b)
}
