package security

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"io"
)

const sessionIDBytes = 32

// NewSessionID generates a new high-entropy, URL-safe session token
func NewSessionID() (string, error) {
	buf := make([]byte, sessionIDBytes)
	if _, err := io.ReadFull(rand.Reader, buf); err != nil {
		return "", fmt.Errorf("failed to generate session id: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// SessionFingerprint returns a short one-way hash of a session ID for
// privacy-safe log correlation. Never used for lookup or access control;
// truncation collisions only degrade log readability.
func SessionFingerprint(sessionID string) string {
	sum := sha256.Sum256([]byte(sessionID))
	return hex.EncodeToString(sum[:])[:8]
}
