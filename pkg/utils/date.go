package utils

import (
	"math"
	"time"
)

// CalendarDays returns the number of whole calendar days between two timestamps.
func CalendarDays(start, end time.Time) int {
	if end.Before(start) {
		return 0
	}
	return int(end.Sub(start).Hours() / 24)
}

// RoundPrice rounds a price to currency precision (2 decimal places).
func RoundPrice(p float64) float64 {
	return math.Round(p*100) / 100
}
