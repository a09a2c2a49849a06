package fairshare

import (
	"errors"
	"fmt"
	"time"

	"github.com/ja7ad/fairshare/pkg/types"
)

// Config holds classification policy. All percentages are shares of total
// machine capacity (100 = every logical CPU busy).
//   - ActiveThreshold: a user counts as active when their share exceeds this.
//   - FairShare: fixed fair-share percent; nil derives 100/active-users.
//   - WarnThreshold: one-minute load, as percent of logical CPUs, above
//     which the excess-load warning fires. May exceed 100 to mean "later
//     than full saturation"; values far above effectively disable it.
//   - Interval/Live/EMA: live-loop pacing and display smoothing, consumed
//     by the CLI rather than the classifier.
type Config struct {
	ActiveThreshold float64       `yaml:"active_threshold"`
	FairShare       *float64      `yaml:"fair_share"`
	WarnThreshold   float64       `yaml:"warn_threshold"`
	Interval        time.Duration `yaml:"interval"`
	Live            bool          `yaml:"live"`
	EMA             float64       `yaml:"ema"`
}

// Default returns the stock policy: 1% activity threshold, derived fair
// share, warning at 80% load, 5s refresh, no smoothing.
func Default() *Config {
	return &Config{
		ActiveThreshold: 1.0,
		WarnThreshold:   80.0,
		Interval:        5 * time.Second,
	}
}

var (
	// ErrBadThreshold indicates a percentage outside its allowed range.
	ErrBadThreshold = errors.New("fairshare: threshold out of range")

	// ErrBadInterval indicates a non-positive refresh interval.
	ErrBadInterval = errors.New("fairshare: interval must be positive")
)

// Validate rejects malformed policy before it reaches the classifier.
// The classifier itself never re-checks these.
func (c *Config) Validate() error {
	if c.ActiveThreshold < 0 || c.ActiveThreshold > 100 {
		return fmt.Errorf("%w: active threshold %.2f not in [0,100]", ErrBadThreshold, c.ActiveThreshold)
	}
	if c.FairShare != nil && (*c.FairShare <= 0 || *c.FairShare > 100) {
		return fmt.Errorf("%w: fair share %.2f not in (0,100]", ErrBadThreshold, *c.FairShare)
	}
	if c.WarnThreshold < 0 {
		return fmt.Errorf("%w: warn threshold %.2f is negative", ErrBadThreshold, c.WarnThreshold)
	}
	if c.Interval <= 0 {
		return ErrBadInterval
	}
	if c.EMA < 0 || c.EMA > 1 {
		return fmt.Errorf("%w: ema %.2f not in [0,1]", ErrBadThreshold, c.EMA)
	}
	return nil
}

// Verdict is one user's classification for one interval.
type Verdict struct {
	UID       uint32
	Percent   types.Percent // share of total machine capacity
	FairShare types.Percent // denominator the user was judged against
	Over      bool          // strictly above fair share; equality is within
}

// Excess returns how far above fair share the user sits (zero when within).
func (v Verdict) Excess() types.Percent {
	if !v.Over {
		return 0
	}
	return v.Percent - v.FairShare
}

// Report is the full classification of one interval. Verdicts cover every
// reported user; rendering decides whether to show all of them or only
// violators.
type Report struct {
	Verdicts    []Verdict
	FairShare   types.Percent
	ActiveUsers int
	FixedShare  bool          // fair share came from config, not active-user count
	Load1       float64       // raw one-minute load average
	LoadPercent types.Percent // load expressed as percent of logical CPUs
	ExcessLoad  bool
}

// OverShare returns only the verdicts exceeding fair share, in input order.
func (r Report) OverShare() []Verdict {
	var out []Verdict
	for _, v := range r.Verdicts {
		if v.Over {
			out = append(out, v)
		}
	}
	return out
}
