package utils

import (
	"crypto/rand"
	"fmt"

	"github.com/flowfam/family-api/internal/constants"
)

const joinCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GenerateJoinCode generates a random 6-character uppercase alphanumeric
// family join code. Uniqueness is the caller's problem; collisions are
// handled by retrying against the store.
func GenerateJoinCode() (string, error) {
	bytes := make([]byte, constants.JoinCodeLength)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}

	code := make([]byte, constants.JoinCodeLength)
	for i, b := range bytes {
		code[i] = joinCodeAlphabet[int(b)%len(joinCodeAlphabet)]
	}
	return string(code), nil
}
