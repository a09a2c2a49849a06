package types

import "fmt"

// Percent is a float64 wrapper representing a share of total machine CPU
// capacity, where 100 means every logical CPU fully busy.
type Percent float64

// String renders the value with two decimals and a percent sign.
func (p Percent) String() string { return fmt.Sprintf("%.2f%%", float64(p)) }

// Cores converts a capacity share into the equivalent number of fully
// busy logical CPUs on a machine with ncpu of them.
func (p Percent) Cores(ncpu int) float64 {
	return float64(p) / 100 * float64(ncpu)
}

// OfAllCores expresses the share on the per-CPU scale used by top(1),
// where a machine with n CPUs tops out at n*100.
func (p Percent) OfAllCores(ncpu int) float64 {
	return float64(p) * float64(ncpu)
}
