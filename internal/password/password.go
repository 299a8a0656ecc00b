package password

import (
	"crypto/rand"
	"crypto/sha1"
	"encoding/base64"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/pbkdf2"
)

// Derivation parameters are frozen: records written by earlier deployments
// must keep verifying against the same (salt, hash) pairs. SHA-1 is the PBKDF2
// PRF those records were created with, not a tunable.
const (
	iterations = 4096
	keyLen     = 128
	saltLen    = 128
	tokenLen   = 128
)

// ComputeHash derives the stored hash for a clear-text password and a base64
// salt. Deterministic: the same inputs always yield the same output, which is
// what makes login verification possible.
func ComputeHash(clearPassword, salt string) string {
	key := pbkdf2.Key([]byte(clearPassword), []byte(salt), iterations, keyLen, sha1.New)
	return base64.StdEncoding.EncodeToString(key)
}

// NewHash generates a fresh random salt and derives the hash for it.
func NewHash(clearPassword string) (salt, hash string, err error) {
	raw := make([]byte, saltLen)
	if _, err := rand.Read(raw); err != nil {
		return "", "", fmt.Errorf("generate salt: %w", err)
	}
	salt = base64.StdEncoding.EncodeToString(raw)
	return salt, ComputeHash(clearPassword, salt), nil
}

// NewVerifyToken generates the hex token embedded in verification links.
func NewVerifyToken() (string, error) {
	raw := make([]byte, tokenLen)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("generate verify token: %w", err)
	}
	return hex.EncodeToString(raw), nil
}
