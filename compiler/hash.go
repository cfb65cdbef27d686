package compiler

import (
	"crypto/sha256"
	"encoding/hex"
)

// HashModule computes the hex-encoded SHA-256 digest of module bytes. The
// digest doubles as the content-addressed storage key for the artifact.
func HashModule(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// VerifyHash reports whether expected matches the digest of data. This is
// the single source of truth for artifact tamper checks.
func VerifyHash(data []byte, expected string) bool {
	return HashModule(data) == expected
}
