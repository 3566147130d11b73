package secret

import (
	"crypto/rand"
	"crypto/sha512"
	"encoding/base64"
)

var encoding = base64.RawURLEncoding

// New generates a new cryptographically secure token of length random bytes and returns its base64 representation
// together with its SHA512 hash
func New(length int) (string, [64]byte, error) {
	bytes := make([]byte, length)
	if _, err := rand.Read(bytes); err != nil {
		return "", [64]byte{}, err
	}
	return encoding.EncodeToString(bytes), sha512.Sum512(bytes), nil
}

// Hash decodes the given base64 token and returns its SHA512 hash
func Hash(raw string) ([64]byte, error) {
	bytes, err := encoding.DecodeString(raw)
	if err != nil {
		return [64]byte{}, err
	}
	return sha512.Sum512(bytes), nil
}
