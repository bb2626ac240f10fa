package helpers

import "golang.org/x/crypto/bcrypt"

// PasswordHasher is the one-way hashing capability the auth flows depend on.
// Kept as an interface so services can be tested without paying bcrypt cost.
type PasswordHasher interface {
	Hash(plain string) (string, error)
	Matches(plain, hash string) bool
}

// BcryptHasher hashes with bcrypt at the default cost.
type BcryptHasher struct{}

func (BcryptHasher) Hash(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (BcryptHasher) Matches(plain, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

var _ PasswordHasher = BcryptHasher{}
