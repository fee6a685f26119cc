package common

import (
	"math"
	"unsafe"

	"github.com/chewxy/math32"
)

// SliceToBytes converts any slice to a byte slice for GPU buffer uploads.
// Uses unsafe pointer operations to create a view into the original data.
// WARNING: The returned slice shares memory with the input - do not modify.
//
// Parameters:
//   - data: source slice of any type
//
// Returns:
//   - []byte: byte slice view of the input data, or nil if input is empty
func SliceToBytes[T any](data []T) []byte {
	if len(data) == 0 {
		return nil
	}
	var zero T
	size := unsafe.Sizeof(zero)
	totalBytes := int(size) * len(data)
	return unsafe.Slice((*byte)(unsafe.Pointer(&data[0])), totalBytes)
}

// Factorial returns n! as a float64. Negative inputs return 1.
//
// Parameters:
//   - n: the non-negative integer argument
//
// Returns:
//   - float64: n factorial
func Factorial(n int) float64 {
	f := 1.0
	for i := 2; i <= n; i++ {
		f *= float64(i)
	}
	return f
}

// Round rounds v to the given number of decimal places, half away from zero.
//
// Parameters:
//   - v: value to round
//   - decimals: number of digits kept after the decimal point
//
// Returns:
//   - float32: the rounded value
func Round(v float32, decimals int) float32 {
	if decimals <= 0 {
		return math32.Round(v)
	}
	scale := math.Pow(10, float64(decimals))
	return float32(math.Round(float64(v)*scale) / scale)
}

// RoundInt rounds a float slider value to the nearest integer.
func RoundInt(v float32) int {
	return int(math32.Round(v))
}
