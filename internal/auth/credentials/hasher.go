package credentials

import (
	"golang.org/x/crypto/bcrypt"
)

// Hasher is the one-way password hashing capability. The stored hash
// is opaque to everything outside this package.
type Hasher struct {
	cost int
}

func NewHasher() *Hasher {
	return &Hasher{cost: bcrypt.DefaultCost}
}

// Hash hashes a plaintext password using bcrypt.
func (h *Hasher) Hash(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", err
	}

	return string(bytes), nil
}

// Verify compares a plaintext password with a stored hash. bcrypt's
// comparison is constant-time over the derived key.
func (h *Hasher) Verify(hash string, password string) error {
	return bcrypt.CompareHashAndPassword(
		[]byte(hash),
		[]byte(password),
	)
}
