package security

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

var ErrUnknownKey = errors.New("unknown API key")

// APIKeyVerifier checks machine-to-machine keys against a set of
// bcrypt hashes. Plaintext keys are never stored.
type APIKeyVerifier struct {
	hashes []string
}

func NewAPIKeyVerifier(hashes []string) *APIKeyVerifier {
	return &APIKeyVerifier{hashes: hashes}
}

// Verify returns nil when the key matches any configured hash.
func (v *APIKeyVerifier) Verify(key string) error {
	for _, h := range v.hashes {
		if bcrypt.CompareHashAndPassword([]byte(h), []byte(key)) == nil {
			return nil
		}
	}
	return ErrUnknownKey
}

// HashKey produces a bcrypt hash suitable for the verifier config.
func HashKey(key string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(key), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
