package auth

import "golang.org/x/crypto/bcrypt"

// PasswordVerifier checks a plaintext password against a stored hash.
// The user service depends on this interface rather than bcrypt directly
// so tests can swap in a cheap implementation.
type PasswordVerifier interface {
	// Compare returns nil when the plaintext password matches the hash,
	// and a non-nil error otherwise.
	Compare(hashedPassword, password string) error
}

// BcryptVerifier is the production PasswordVerifier backed by bcrypt.
// Hashing happens in the user store at write time; this side only verifies.
type BcryptVerifier struct{}

// NewBcryptVerifier creates a new BcryptVerifier.
func NewBcryptVerifier() *BcryptVerifier {
	return &BcryptVerifier{}
}

// Compare implements PasswordVerifier.
func (v *BcryptVerifier) Compare(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}
