package utils

import (
	gonanoid "github.com/matoous/go-nanoid/v2"
)

// 64 symbols from the url-safe nanoid alphabet carry 384 bits.
const secretKeyLength = 64

// GenerateSecretKey returns a process-local signing key for session tokens
// when none is configured.
func GenerateSecretKey() (string, error) {
	return gonanoid.New(secretKeyLength)
}
