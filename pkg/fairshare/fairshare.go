// Package fairshare classifies per-user CPU utilization against a fair-share
// threshold: a fixed percentage, or total capacity split evenly across the
// users active this interval. Pure computation over already-validated
// inputs; it has no failure paths.
package fairshare

import (
	"github.com/ja7ad/fairshare/pkg/sampler"
	"github.com/ja7ad/fairshare/pkg/system/util"
	"github.com/ja7ad/fairshare/pkg/types"
)

// Classify judges one interval's per-user utilizations against cfg.
//
// load1 is the raw one-minute load average and ncpu the logical CPU count;
// both come from the system collaborator alongside the counter read. The
// excess-load condition compares load as a percent of ncpu against
// cfg.WarnThreshold.
//
// With no fixed share configured and no active users, fair share defaults
// to 100%, so nobody can be over share on an idle machine. Equality with
// the fair share is never over share.
func Classify(usages []sampler.Usage, load1 float64, ncpu int, cfg *Config) Report {
	active := 0
	for _, u := range usages {
		if float64(u.Percent) > cfg.ActiveThreshold {
			active++
		}
	}

	fixed := cfg.FairShare != nil
	var fair float64
	if fixed {
		fair = *cfg.FairShare
	} else {
		fair = 100.0 / float64(max(active, 1))
	}

	verdicts := make([]Verdict, 0, len(usages))
	for _, u := range usages {
		verdicts = append(verdicts, Verdict{
			UID:       u.UID,
			Percent:   u.Percent,
			FairShare: types.Percent(fair),
			Over:      float64(u.Percent) > fair,
		})
	}

	loadPercent := 100 * util.SafeDiv(load1, float64(ncpu))
	return Report{
		Verdicts:    verdicts,
		FairShare:   types.Percent(fair),
		ActiveUsers: active,
		FixedShare:  fixed,
		Load1:       load1,
		LoadPercent: types.Percent(loadPercent),
		ExcessLoad:  loadPercent > cfg.WarnThreshold,
	}
}
