package services

import "golang.org/x/crypto/bcrypt"

// Hasher is the password-hashing capability used by AccountService. The
// algorithm choice is opaque to callers.
type Hasher interface {
	// Hash derives a salted hash from the plaintext password.
	Hash(password string) (string, error)

	// Compare returns nil when password matches hashed.
	Compare(hashed, password string) error
}

// BcryptHasher implements Hasher with bcrypt at a configurable cost.
type BcryptHasher struct {
	Cost int
}

func (h BcryptHasher) Hash(password string) (string, error) {
	out, err := bcrypt.GenerateFromPassword([]byte(password), h.Cost)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

func (h BcryptHasher) Compare(hashed, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(password))
}
