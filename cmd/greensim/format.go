package main

import (
	"fmt"
	"math"
)

// fmtStat renders a statistic for console output, mapping the NaN sentinel
// (zero-device offset ratio) to "n/a".
func fmtStat(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "n/a"
	}
	return fmt.Sprintf("%.3f", v)
}
