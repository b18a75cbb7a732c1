// Package cryptox derives login credentials on the client. The server only
// ever sees the salt and the verifier, never the password.
package cryptox

import (
	"crypto/sha256"
	"crypto/subtle"

	"github.com/dmitrijs2005/readdaily/internal/common"
	"golang.org/x/crypto/argon2"
)

const (
	saltSize = 32
	keySize  = 32
)

// DeriveKey stretches password with argon2id.
func DeriveKey(password []byte, salt []byte) []byte {
	return argon2.IDKey(password, salt, 1, 64*1024, 4, keySize)
}

// MakeVerifier hashes a derived key into the value stored by the server.
func MakeVerifier(key []byte) []byte {
	hash := sha256.Sum256(key)
	return hash[:]
}

// NewCredentials generates a random salt and the verifier for password.
func NewCredentials(password []byte) (salt, verifier []byte) {
	salt = common.GenerateRandByteArray(saltSize)
	key := DeriveKey(password, salt)
	defer common.WipeByteArray(key)
	return salt, MakeVerifier(key)
}

// VerifierFor recomputes the verifier for password and salt.
func VerifierFor(password, salt []byte) []byte {
	key := DeriveKey(password, salt)
	defer common.WipeByteArray(key)
	return MakeVerifier(key)
}

// Equal compares two verifiers in constant time.
func Equal(a, b []byte) bool {
	return subtle.ConstantTimeCompare(a, b) == 1
}
