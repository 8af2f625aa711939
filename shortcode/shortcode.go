// Package shortcode generates random short-link identifiers.
package shortcode

import (
	"crypto/rand"
	"math/big"
)

// Alphabet is URL-safe: letters, digits, underscore and hyphen.
const (
	Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789_-"
	Length   = 7
)

// Generate returns a fresh random code. Collisions are vanishingly unlikely
// (64^7 values) but not impossible; callers enforce uniqueness against the
// store and retry.
func Generate() (string, error) {
	code := make([]byte, Length)
	alphabetLen := big.NewInt(int64(len(Alphabet)))

	for i := 0; i < Length; i++ {
		n, err := rand.Int(rand.Reader, alphabetLen)
		if err != nil {
			return "", err
		}
		code[i] = Alphabet[n.Int64()]
	}

	return string(code), nil
}
