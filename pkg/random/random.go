package random

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// Alphabet is the symbol set used for generated short identifiers.
// 62 symbols, so a 6-character identifier has 62^6 (~56.8 billion) values.
const Alphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// NewRandomString generates a cryptographically random string of the given
// length drawn from Alphabet.
func NewRandomString(length int) (string, error) {
	if length <= 0 {
		return "", fmt.Errorf("invalid length: %d", length)
	}

	max := big.NewInt(int64(len(Alphabet)))
	result := make([]byte, length)

	for i := range result {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("failed to read random bytes: %w", err)
		}
		result[i] = Alphabet[n.Int64()]
	}

	return string(result), nil
}
