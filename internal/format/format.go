// Package format renders elapsed seconds for display.
package format

import (
	"fmt"
	"math"
)

// HourThreshold is the elapsed time from which the hour field is shown.
const HourThreshold = 3600

// Formatter converts elapsed seconds to display text.
type Formatter interface {
	Format(seconds float64) string
}

// Standard renders MM:SS below one hour and HH:MM:SS from one hour on.
type Standard struct{}

// Format implements Formatter.
func (Standard) Format(seconds float64) string {
	return Elapsed(seconds)
}

// Elapsed formats seconds with the Standard layout. Fractions are truncated
// and negative values are shown as zero.
func Elapsed(seconds float64) string {
	if seconds < 0 || math.IsNaN(seconds) {
		seconds = 0
	}
	total := int64(seconds)
	hours := total / 3600
	minutes := (total % 3600) / 60
	secs := total % 60

	if total >= HourThreshold {
		return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, secs)
	}
	return fmt.Sprintf("%02d:%02d", minutes, secs)
}
