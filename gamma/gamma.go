// Package gamma generates power-law brightness correction tables for 5-bit
// and 6-bit color channels.
package gamma

import (
	"errors"
	"math"
)

// Exponent is the power applied to the normalized channel value.
const Exponent = 2.7

const (
	// Length5 is the number of entries in a table for a 5-bit channel
	Length5 = 1 << 5
	// Length6 is the number of entries in a table for a 6-bit channel
	Length6 = 1 << 6

	maxLength = 1 << 8
)

// ErrLength is returned for a table length that cannot map onto 8-bit values.
var ErrLength = errors.New("gamma: length must be between 2 and 256")

// Table returns length 8-bit values where element i is
// 255 * (i / (length-1)) ^ Exponent, rounded to the nearest integer.
func Table(length int) ([]uint8, error) {
	if length < 2 || length > maxLength {
		return nil, ErrLength
	}

	t := make([]uint8, length)
	for i := range t {
		t[i] = uint8(math.Pow(float64(i)/float64(length-1), Exponent)*255.0 + 0.5)
	}
	return t, nil
}

// Table5 returns the table for a 5-bit channel.
func Table5() []uint8 {
	t, _ := Table(Length5)
	return t
}

// Table6 returns the table for a 6-bit channel.
func Table6() []uint8 {
	t, _ := Table(Length6)
	return t
}
