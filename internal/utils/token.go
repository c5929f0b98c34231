package utils

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"github.com/taskmgr/taskmanager-api/internal/constants"
)

// GenerateTokenKey generates a random hex token key for bearer authentication.
func GenerateTokenKey() (string, error) {
	bytes := make([]byte, constants.TokenKeyBytes)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}

	return hex.EncodeToString(bytes), nil
}
