package services

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// prehash folds any password into 44 ASCII bytes. bcrypt rejects inputs over
// 72 bytes, which a 30-character multibyte password can exceed.
func prehash(password string) []byte {
	sum := sha256.Sum256([]byte(password))
	out := make([]byte, base64.StdEncoding.EncodedLen(len(sum)))
	base64.StdEncoding.Encode(out, sum[:])
	return out
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword(prehash(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func isBcryptHash(stored string) bool {
	_, err := bcrypt.Cost([]byte(stored))
	return err == nil
}

// verifyPassword checks plain against stored. Rows written before hashing was
// introduced hold plaintext; those match with a constant-time compare and
// report legacy so the caller can re-hash them.
func verifyPassword(stored, plain string) (ok, legacy bool) {
	stored = strings.TrimRight(stored, " ")
	if isBcryptHash(stored) {
		return bcrypt.CompareHashAndPassword([]byte(stored), prehash(plain)) == nil, false
	}
	return subtle.ConstantTimeCompare([]byte(stored), []byte(plain)) == 1, true
}
