//go:build linux

package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/ja7ad/fairshare/pkg/fairshare"
	"github.com/ja7ad/fairshare/pkg/sampler"
	"github.com/ja7ad/fairshare/pkg/system/proc"
	"github.com/ja7ad/fairshare/pkg/system/users"
	"github.com/ja7ad/fairshare/pkg/system/util"
	"github.com/ja7ad/fairshare/pkg/types"
)

type opts struct {
	threshold       float64
	activeThreshold float64
	fairShare       float64
	interval        time.Duration
	live            bool
	ema             float64

	configPath string
	showAll    bool
	noColor    bool
}

func main() {
	var o opts

	root := &cobra.Command{
		Use:   "fairshare",
		Short: "Per-user CPU fair-share monitor for shared Linux hosts",
		Long: `fairshare samples /proc CPU accounting counters and reports, per user,
what share of total machine capacity is being consumed. Under excessive
load it flags the users exceeding their fair share: either a fixed
percentage, or total capacity split evenly across the active users.

Examples:
  fairshare                         one-shot report over one 5s interval
  fairshare --live -i 2s            refresh every 2 seconds until Ctrl-C
  fairshare -f 20 -t 90             fixed 20% fair share, warn at 90% load
  fairshare --config /etc/fairshare.yaml --live`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := buildConfig(cmd, o)
			if err != nil {
				return err
			}
			return run(cmd.Context(), cfg, o)
		},
	}

	root.Flags().Float64VarP(&o.threshold, "threshold", "t", 80.0, "excess-load warning threshold, 1-min load as percent of CPUs")
	root.Flags().Float64VarP(&o.activeThreshold, "active-threshold", "a", 1.0, "percent of capacity above which a user counts as active")
	root.Flags().Float64VarP(&o.fairShare, "fair-share", "f", 0, "fixed fair-share percent (default: 100 / active users)")
	root.Flags().DurationVarP(&o.interval, "interval", "i", 5*time.Second, "sampling interval")
	root.Flags().BoolVarP(&o.live, "live", "l", false, "refresh continuously until interrupted")
	root.Flags().Float64Var(&o.ema, "ema", 0, "EMA alpha for smoothing displayed shares in live mode [0..1]")
	root.Flags().StringVar(&o.configPath, "config", "", "YAML policy file; flags set on the command line win")
	root.Flags().BoolVar(&o.showAll, "all", false, "always list every user, not only violators under excess load")
	root.Flags().BoolVar(&o.noColor, "no-color", false, "disable ANSI colors")

	if err := root.Execute(); err != nil {
		slog.Error(err.Error())
		os.Exit(1)
	}
}

// buildConfig layers the optional YAML file over defaults, then any flag
// the user actually set over that.
func buildConfig(cmd *cobra.Command, o opts) (*fairshare.Config, error) {
	cfg := fairshare.Default()
	if o.configPath != "" {
		loaded, err := fairshare.Load(o.configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	fs := cmd.Flags()
	if fs.Changed("threshold") {
		cfg.WarnThreshold = o.threshold
	}
	if fs.Changed("active-threshold") {
		cfg.ActiveThreshold = o.activeThreshold
	}
	if fs.Changed("fair-share") {
		v := o.fairShare
		cfg.FairShare = &v
	}
	if fs.Changed("interval") {
		cfg.Interval = o.interval
	}
	if fs.Changed("live") {
		cfg.Live = o.live
	}
	if fs.Changed("ema") {
		cfg.EMA = o.ema
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func run(ctx context.Context, cfg *fairshare.Config, o opts) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	r := &renderer{
		out:      os.Stdout,
		resolver: users.NewPasswd(),
		color:    !o.noColor && term.IsTerminal(int(os.Stdout.Fd())),
		live:     cfg.Live,
		showAll:  o.showAll,
	}

	s := sampler.New(sampler.NewProcReader())
	ncpu := runtime.NumCPU()

	// Priming pass establishes the baseline generation. Failing to read
	// the counters at all on startup is a hard error.
	if _, _, err := s.Pass(); err != nil {
		return err
	}
	r.renderCollecting(cfg.Interval)

	// Per-uid smoothing of displayed shares across refreshes.
	var smoothers map[uint32]*util.EMA
	if cfg.EMA > 0 {
		smoothers = make(map[uint32]*util.EMA)
	}

	ticker := time.NewTicker(cfg.Interval)
	defer ticker.Stop()

	warned := false
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			usages, ready, err := s.Pass()
			if err != nil {
				if !cfg.Live {
					return err
				}
				// One notice per failure streak; the previous output
				// stays on screen and the loop keeps going.
				if !warned {
					slog.Warn("sampling pass failed, keeping last report", "err", err)
					warned = true
				}
				continue
			}
			warned = false

			if !ready {
				// Degenerate interval: nothing to report this tick.
				continue
			}

			if smoothers != nil {
				usages = smooth(smoothers, usages, cfg.EMA)
			}

			load1, err := proc.LoadAvg1()
			if err != nil {
				slog.Warn("load average unavailable", "err", err)
				load1 = 0
			}

			rep := fairshare.Classify(usages, load1, ncpu, cfg)
			r.render(rep, ncpu, cfg)

			if !cfg.Live {
				return nil
			}
		}
	}
}

func smooth(smoothers map[uint32]*util.EMA, usages []sampler.Usage, alpha float64) []sampler.Usage {
	out := make([]sampler.Usage, len(usages))
	for i, u := range usages {
		e, ok := smoothers[u.UID]
		if !ok {
			e = util.NewEMA(alpha)
			smoothers[u.UID] = e
		}
		u.Percent = types.Percent(e.Next(float64(u.Percent)))
		out[i] = u
	}
	return out
}
