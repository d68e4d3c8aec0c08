// Package util provides common helpers for formkit.
//
// This package contains:
//   - Slider ratio math shared by the numeric entry widgets
//   - Percentage/time formatting for progress displays
//   - Cryptographically secure password generation for the password entry
//
// All utilities are stateless and thread-safe.
package util

import (
	"fmt"
	"math"
)

// Clamp01 clamps v into [0, 1].
func Clamp01(v float64) float64 {
	return math.Min(math.Max(v, 0), 1)
}

// Ratio maps value into [0, 1] relative to [min, max]. A degenerate range
// yields 0. Sliders over bounded numeric fields use it.
func Ratio(value, min, max float64) float64 {
	if max <= min {
		return 0
	}
	return Clamp01((value - min) / (max - min))
}

// Lerp maps a [0, 1] ratio back into [min, max].
func Lerp(ratio, min, max float64) float64 {
	return min + Clamp01(ratio)*(max-min)
}

// RoundTo rounds v to the given number of decimal places. Float entries
// use it so slider drags produce displayable values.
func RoundTo(v float64, precision int) float64 {
	scale := math.Pow10(precision)
	return math.Round(v*scale) / scale
}

// Percentify formats a 0-100 progress value for display.
func Percentify(percent float64) string {
	return fmt.Sprintf("%.0f%%", Clamp01(percent/100)*100)
}

// Timeify converts seconds to "HH:MM:SS" format.
func Timeify(seconds int) string {
	hours := seconds / 3600
	seconds %= 3600
	minutes := seconds / 60
	seconds %= 60
	hours = int(math.Max(float64(hours), 0))
	minutes = int(math.Max(float64(minutes), 0))
	seconds = int(math.Max(float64(seconds), 0))
	return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
}
