package photonwalk

import (
	"fmt"
	"math"
)

// Stats summarizes a finished walk.
type Stats struct {
	Duration      Real   `json:"duration"` // wall-clock seconds
	TotalSteps    int    `json:"totalSteps"`
	EscapeYears   int64  `json:"escapeTimeYears"`
	FinalPosition Point3 `json:"finalPosition"`
	FinalDistance Real   `json:"finalDistance"`
}

// escapeYears converts a step count into the physical escape time.
// l and r are the unscaled step length and star radius.
func escapeYears(steps int, l, r Real) int64 {
	return int64(math.Round(YearsFactor * Real(steps) * l / (r * r)))
}

// DurationString formats Duration with two decimals.
func (s Stats) DurationString() string { return fmt.Sprintf("%.2fs", s.Duration) }

func (s Stats) String() string {
	return fmt.Sprintf("Duration: %s\nTotal Steps: %d\nEscape Time: %d Years", s.DurationString(), s.TotalSteps, s.EscapeYears)
}
