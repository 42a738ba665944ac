// Package sha256 derives content addresses for archived statistics payloads.
package sha256

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"path"
	"strings"
)

// Hasher names archive objects after the SHA-256 digest of their payload.
type Hasher struct{}

// New returns a SHA-256 hasher.
func New() *Hasher {
	return &Hasher{}
}

// Digest returns the hex SHA-256 of data.
func (h *Hasher) Digest(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// ObjectName returns prefix/code/<digest>.json. Identical payloads for the
// same code map to the same object, so re-archiving overwrites in place.
func (h *Hasher) ObjectName(prefix, code string, payload []byte) (string, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return "", errors.New("sha256: code is required")
	}
	if len(payload) == 0 {
		return "", errors.New("sha256: empty payload")
	}
	return path.Join(strings.Trim(prefix, "/"), code, h.Digest(payload)+".json"), nil
}
