// Package helpers holds small formatting and rounding utilities shared by the loader and emitter.
package helpers

import (
	"math"
	"strconv"
)

// SafeRound rounds v to the given number of decimals.
// It is total: nil, NaN and ±Inf all map to nil, so a bad source value
// never reaches the payload.
func SafeRound(v *float64, decimals int) *float64 {
	if v == nil {
		return nil
	}
	r, ok := Round(*v, decimals)
	if !ok {
		return nil
	}
	return &r
}

// Round rounds the exact binary value of v to the given number of decimals,
// sending exact ties to the even digit (1.125 -> 1.12, 2.675 -> 2.67).
// ok is false when v is not finite.
func Round(v float64, decimals int) (float64, bool) {
	if !IsFinite(v) {
		return 0, false
	}
	r, err := strconv.ParseFloat(strconv.FormatFloat(v, 'f', decimals, 64), 64)
	if err != nil {
		return 0, false
	}
	return r, true
}

// Finite returns v unchanged when it is a finite number, nil otherwise
func Finite(v *float64) *float64 {
	if v == nil || !IsFinite(*v) {
		return nil
	}
	out := *v
	return &out
}

// IsFinite reports whether v is neither NaN nor ±Inf
func IsFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
