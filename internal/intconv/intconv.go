// Package intconv provides safe integer conversion helpers. No other
// package in this module imports it at present.
//
// These functions perform bounds checking before narrowing integer
// conversions to prevent silent overflow. They panic on overflow since
// this indicates a programming error (e.g. more states or tags than the
// chosen index width can hold).
package intconv

import "math"

// IntToUint32 safely converts an int to uint32.
// Panics if n < 0 or n > math.MaxUint32.
func IntToUint32(n int) uint32 {
	if n < 0 || uint(n) > math.MaxUint32 {
		panic("intconv: int value out of uint32 range")
	}
	return uint32(n)
}

// IntToUint16 safely converts an int to uint16.
// Panics if n < 0 or n > math.MaxUint16.
func IntToUint16(n int) uint16 {
	if n < 0 || n > math.MaxUint16 {
		panic("intconv: int value out of uint16 range")
	}
	return uint16(n)
}

// Uint64ToUint32 safely converts a uint64 to uint32.
// Panics if n > math.MaxUint32.
func Uint64ToUint32(n uint64) uint32 {
	if n > math.MaxUint32 {
		panic("intconv: uint64 value out of uint32 range")
	}
	return uint32(n)
}
