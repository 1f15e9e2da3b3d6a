package engine

import "math"

// roundUnits rounds a quantity to the nearest whole unit, never below 0.
func roundUnits(v float64) int {
	if v <= 0 {
		return 0
	}
	return int(math.Round(v))
}
