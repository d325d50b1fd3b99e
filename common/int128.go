package common

import "github.com/nspcc-dev/neo-go/pkg/interop/math"

// IsInt128 returns true if x fits signed 128-bit integer.
func IsInt128(x int) bool {
	bound := math.Pow(2, 127)
	return math.Within(x, -bound, bound)
}

// CheckInt128 panics with the given message if x does not fit signed 128-bit
// integer.
func CheckInt128(x int, msg string) {
	if !IsInt128(x) {
		panic(msg)
	}
}
