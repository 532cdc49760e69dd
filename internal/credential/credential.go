// Package credential holds the pure functions for password salting, hashing
// and comparison. It never persists anything; the account directory passes
// values in and stores the results.
package credential

import (
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"

	"github.com/mverner/teambook/internal/common"
)

// SaltBytes is the entropy of a fresh salt before digesting.
const SaltBytes = 16

// NewSalt returns a random 128-bit value rendered as a fixed-length SHA-512
// hex digest (128 characters).
func NewSalt() (string, error) {
	raw, err := common.MakeRandHexString(SaltBytes)
	if err != nil {
		return "", err
	}
	sum := sha512.Sum512([]byte(raw))
	return hex.EncodeToString(sum[:]), nil
}

// HashPassword computes the storable digest for a password:
// SHA-512 over the concatenation salt||password, hex encoded.
func HashPassword(password, salt string) string {
	sum := sha512.Sum512([]byte(salt + password))
	return hex.EncodeToString(sum[:])
}

// CheckLength validates the password against the configured minimum length.
// Returns common.ErrWeakPassword when it is too short.
func CheckLength(password string, minLength int) error {
	if len(password) < minLength {
		return common.ErrWeakPassword
	}
	return nil
}

// Compare reports whether candidate hashes to expectedHash under salt.
// The comparison runs over the full digests so it does not short-circuit on
// the first differing byte.
func Compare(expectedHash, candidate, salt string) bool {
	computed := HashPassword(candidate, salt)
	return subtle.ConstantTimeCompare([]byte(computed), []byte(expectedHash)) == 1
}
