package auth

import "golang.org/x/crypto/bcrypt"

// CodeHasher defines behavior for hashing and comparing verification codes.
type CodeHasher interface {
	Hash(plain string) (string, error)
	Compare(hash, plain string) error
}

// BcryptCodeHasher is a CodeHasher implementation using bcrypt.
type BcryptCodeHasher struct {
	cost int
}

// NewBcryptCodeHasher creates a new BcryptCodeHasher with default cost.
func NewBcryptCodeHasher() *BcryptCodeHasher {
	return &BcryptCodeHasher{
		cost: bcrypt.DefaultCost,
	}
}

// NewBcryptCodeHasherWithCost allows you to specify a custom bcrypt cost.
func NewBcryptCodeHasherWithCost(cost int) *BcryptCodeHasher {
	return &BcryptCodeHasher{
		cost: cost,
	}
}

// Hash hashes the given plain code using bcrypt.
func (h *BcryptCodeHasher) Hash(plain string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(plain), h.cost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// Compare compares a bcrypt hashed code with its possible plaintext equivalent.
// Returns nil on success, or an error on failure.
func (h *BcryptCodeHasher) Compare(hash, plain string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain))
}
