package auth

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"

	"github.com/JeonHyeonsu/gaongill/internal/util"

	"golang.org/x/crypto/pbkdf2"
)

// PBKDF2 parameters for password hashing. Changing these invalidates every
// stored credential, so they are fixed.
const (
	hashIterations = 10000
	hashKeyLength  = 50
	saltLength     = 32
)

// HashPassword derives a one-way salted hash from a plaintext password.
// The salt is randomly generated per call; the plaintext is never stored.
func HashPassword(password string) (hash, salt string, err error) {
	salt, err = util.CryptoRandomString(saltLength)
	if err != nil {
		return "", "", err
	}
	return derive(password, salt), salt, nil
}

// VerifyPassword re-derives the hash from the supplied password and stored
// salt and compares it to the stored hash in constant time.
func VerifyPassword(password, salt, hash string) bool {
	derived := derive(password, salt)
	return subtle.ConstantTimeCompare([]byte(derived), []byte(hash)) == 1
}

func derive(password, salt string) string {
	key := pbkdf2.Key([]byte(password), []byte(salt), hashIterations, hashKeyLength, sha256.New)
	return hex.EncodeToString(key)
}
