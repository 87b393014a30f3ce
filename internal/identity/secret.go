package identity

import (
	"crypto/rand"
	"encoding/hex"
)

// GenerateSessionSecret returns a hex-encoded 32-byte random secret,
// suitable for both the session and CSRF keys.
func GenerateSessionSecret() (string, error) {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}
