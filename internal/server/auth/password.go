package auth

import "golang.org/x/crypto/bcrypt"

// PasswordHasher produces salted one-way digests with a configurable work
// factor. The same hasher serves account passwords and the secrets
// protecting anonymous posts and comments; the digests themselves must not
// be conflated across resource types.
type PasswordHasher struct {
	cost int
}

func NewPasswordHasher(cost int) *PasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &PasswordHasher{cost: cost}
}

// Hash returns the bcrypt digest of plaintext. Never reversible.
func (h *PasswordHasher) Hash(plaintext string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

// Verify reports whether plaintext matches digest. Comparison is
// constant-time inside bcrypt.
func (h *PasswordHasher) Verify(plaintext, digest string) bool {
	return VerifyPassword(plaintext, digest)
}

// VerifyPassword is the stateless form of Verify, usable without a
// configured work factor.
func VerifyPassword(plaintext, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext)) == nil
}
