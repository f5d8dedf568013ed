package models

import "math"

// Round2 rounds a monetary amount half-up to two decimal places. All derived
// amounts (line totals, advance payments) go through it.
func Round2(v float64) float64 {
	return math.Floor(v*100+0.5) / 100
}
