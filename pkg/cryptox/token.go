// Package cryptox mints the single-use codes shown as QR images and derives
// the fingerprints the token stores are keyed by.
package cryptox

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
)

// TokenBytes is the entropy of a check-in code. 128 bits keep the QR image
// at a low version that phone cameras read from across a counter.
const TokenBytes = 16

// TokenLength is the encoded length of every code NewToken returns.
var TokenLength = base64.RawURLEncoding.EncodedLen(TokenBytes)

// NewToken returns a fresh random code, base64url without padding.
func NewToken() (string, error) {
	var buf [TokenBytes]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return "", fmt.Errorf("cryptox: read random: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf[:]), nil
}

// MustNewToken is NewToken for tests and fixtures.
func MustNewToken() string {
	tok, err := NewToken()
	if err != nil {
		panic(err)
	}
	return tok
}

// WellFormed reports whether s has the shape of a NewToken code. Anything
// else is rejected before a store lookup.
func WellFormed(s string) bool {
	if len(s) != TokenLength {
		return false
	}
	_, err := base64.RawURLEncoding.DecodeString(s)
	return err == nil
}

// Fingerprint is the SHA-256 of a code, base64url encoded. Stores only ever
// see fingerprints, so a dumped table or keyspace cannot be replayed at
// the door.
func Fingerprint(token string) string {
	sum := sha256.Sum256([]byte(token))
	return base64.RawURLEncoding.EncodeToString(sum[:])
}
