package idgen

import (
	"crypto/rand"
	"errors"
	"math/big"
)

const alphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// GenerateSecureID returns "<prefix>_<random>" where random is length
// characters drawn from [a-z0-9] using crypto/rand.
func GenerateSecureID(prefix string, length int) (string, error) {
	if prefix == "" {
		return "", errors.New("prefix cannot be empty")
	}
	if length <= 0 {
		return "", errors.New("length must be positive")
	}

	buf := make([]byte, length)
	max := big.NewInt(int64(len(alphabet)))
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		buf[i] = alphabet[n.Int64()]
	}
	return prefix + "_" + string(buf), nil
}
