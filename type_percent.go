package solarroi

import (
	"fmt"
	"math"
)

// Percent is a value already expressed in percent (12.5 means 12.5%).
type Percent float64

func (p Percent) String() string {
	if math.IsNaN(float64(p)) || math.IsInf(float64(p), 0) {
		return "n/a"
	}
	return fmt.Sprintf("%.1f%%", float64(p))
}

// Years is a duration in (fractional) years, like a payback period.
type Years float64

func (y Years) String() string {
	if math.IsNaN(float64(y)) || math.IsInf(float64(y), 0) {
		return "n/a"
	}
	return fmt.Sprintf("%.1f yrs", float64(y))
}
