package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// Fingerprint returns the hex-encoded SHA-256 digest of the given parts.
// It is deterministic and collision-resistant, and is used wherever an
// opaque, non-reversible key is needed: dedup keys (email only, so repeat
// signups collide), throttle keys (email + ip + time bucket, so they
// expire with the bucket), and log-safe email hashes.
func Fingerprint(parts ...string) string {
	h := sha256.New()
	h.Write([]byte(strings.Join(parts, "|")))
	return hex.EncodeToString(h.Sum(nil))
}

// ShortFingerprint is Fingerprint truncated to 32 hex characters,
// used for row keys where readability matters more than full width.
func ShortFingerprint(parts ...string) string {
	return Fingerprint(parts...)[:32]
}
