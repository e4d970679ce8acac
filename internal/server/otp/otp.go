// Package otp generates one-time numeric codes for password recovery.
package otp

import (
	"crypto/rand"
	"fmt"
)

// Generator produces one-time codes. Implementations must be safe for
// concurrent use.
type Generator interface {
	Generate() (string, error)
}

// NumericGenerator produces numeric codes of a fixed length using
// crypto/rand, so codes are not guessable from previous output.
type NumericGenerator struct {
	length int
}

// NewNumericGenerator returns a generator producing codes of the given
// number of digits. Lengths below 4 are raised to 4.
func NewNumericGenerator(length int) *NumericGenerator {
	if length < 4 {
		length = 4
	}
	return &NumericGenerator{length: length}
}

// Generate returns a random numeric code, e.g. "493028".
func (g *NumericGenerator) Generate() (string, error) {
	b := make([]byte, g.length)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("otp generation error: %w", err)
	}
	code := make([]byte, g.length)
	for i := range b {
		code[i] = '0' + b[i]%10
	}
	return string(code), nil
}
