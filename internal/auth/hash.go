// Package auth implements credential verification and role-based session
// identities for the dashboard.
package auth

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"

	"golang.org/x/crypto/pbkdf2"

	"github.com/webdevreplits/azure-01/internal/common"
)

// Key-stretching parameters. Changing any of these invalidates every stored
// hash, so they are fixed.
const (
	hashIterations = 100000
	hashKeyLen     = 32
	saltBytes      = 16
)

// HashPassword derives the stored password hash from a plaintext password
// and a hex salt. The same (password, salt) pair always yields the same
// hash.
func HashPassword(password, salt string) string {
	key := pbkdf2.Key([]byte(password), []byte(salt), hashIterations, hashKeyLen, sha256.New)
	return hex.EncodeToString(key)
}

// NewSalt returns a fresh random salt. A new salt is generated for every
// account creation and password change.
func NewSalt() (string, error) {
	return common.MakeRandHexString(saltBytes)
}

// hashEqual compares two hex-encoded hashes without early exit.
func hashEqual(a, b string) bool {
	ab, err := hex.DecodeString(a)
	if err != nil {
		return false
	}
	bb, err := hex.DecodeString(b)
	if err != nil {
		return false
	}
	return subtle.ConstantTimeCompare(ab, bb) == 1
}
