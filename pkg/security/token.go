package security

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// tokenBytes is the entropy of a generated bearer secret.
const tokenBytes = 40

// HashToken returns the lowercase hex sha256 digest stored for a bearer secret.
func HashToken(plain string) string {
	sum := sha256.Sum256([]byte(plain))
	return hex.EncodeToString(sum[:])
}

// GenerateToken returns a new random bearer secret and its stored hash.
func GenerateToken() (plain string, hash string, err error) {
	buf := make([]byte, tokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", "", fmt.Errorf("generate token: %w", err)
	}
	plain = hex.EncodeToString(buf)
	return plain, HashToken(plain), nil
}
