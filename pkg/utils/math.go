package utils

import "math"

// RoundDecimal rounds value half away from zero to the given number of
// decimal places. RoundDecimal(7.25, 1) returns 7.3.
func RoundDecimal(value float64, decimals int) float64 {
	pow := math.Pow10(decimals)
	return math.Round(value*pow) / pow
}
