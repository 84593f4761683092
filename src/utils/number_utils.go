package utils

import (
	"math"
	"strconv"
	"strings"
)

// ParseNumber parses a user-supplied numeric string defensively: thousands
// separators are stripped and anything unparseable becomes 0.
func ParseNumber(val string) float64 {
	s := strings.TrimSpace(strings.ReplaceAll(val, ",", ""))
	if s == "" {
		return 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// FloorInt64 truncates a float toward negative infinity into whole currency units.
func FloorInt64(v float64) int64 {
	return int64(math.Floor(v))
}

// MinInt64 returns the smaller of two int64 values.
func MinInt64(a, b int64) int64 {
	if a < b {
		return a
	}
	return b
}

// MaxInt64 returns the larger of two int64 values.
func MaxInt64(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}
