package auth

import (
	"crypto/rand"
	"encoding/hex"
)

// TokenKeyLen is the length of an encoded token key.
const TokenKeyLen = 40

// NewTokenKey returns a random opaque token key of TokenKeyLen hex characters.
func NewTokenKey() (string, error) {
	b := make([]byte, TokenKeyLen/2)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
