package utils

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// GenerateCode returns a random hex string built from n bytes.
func GenerateCode(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate code: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
