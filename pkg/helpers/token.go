package helpers

import (
	"crypto/rand"
	"encoding/hex"
)

// GenerateResetToken returns a cryptographically random 256-bit token in
// hex, used for single-use password-reset links.
func GenerateResetToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
