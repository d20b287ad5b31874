package sec

import (
	"crypto/rand"
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/pbkdf2"
)

// Key-derivation parameters. The iteration count must be high enough to
// resist offline brute force against a leaked hash.
const (
	saltBytes      = 16
	hashIterations = 10_000
	hashKeyLength  = 64
)

// GenerateSalt returns a fresh cryptographically random salt, hex encoded.
// Salts are generated once per account creation or password change and never
// reused.
func GenerateSalt() (string, error) {
	salt := make([]byte, saltBytes)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}
	return hex.EncodeToString(salt), nil
}

// HashPassword derives a hex-encoded key from the password and salt using
// PBKDF2-HMAC-SHA512. The derivation is deterministic: identical inputs
// always produce identical output.
func HashPassword(password, salt string) string {
	key := pbkdf2.Key([]byte(password), []byte(salt), hashIterations, hashKeyLength, sha512.New)
	return hex.EncodeToString(key)
}

// VerifyPassword recomputes the hash for the password and salt and compares
// it against expectedHash in constant time.
func VerifyPassword(password, expectedHash, salt string) bool {
	computed := HashPassword(password, salt)
	return subtle.ConstantTimeCompare([]byte(computed), []byte(expectedHash)) == 1
}
