// Package lock implements the password check behind the simulated door lock.
//
// The secret is held only as a bcrypt hash. Comparison is exact and
// case-sensitive.
package lock

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// DefaultSecret is the factory password of the simulated lock.
const DefaultSecret = "1234"

// MaxAttempts is the number of tries before the lock engages.
const MaxAttempts = 3

// Lock verifies password attempts against a stored hash.
type Lock struct {
	hash []byte
}

// New hashes secret and returns a lock that accepts it.
func New(secret string) (*Lock, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.MinCost)
	if err != nil {
		return nil, fmt.Errorf("hash secret: %w", err)
	}
	return &Lock{hash: hash}, nil
}

// NewFromHash returns a lock for an existing bcrypt hash.
func NewFromHash(hash string) (*Lock, error) {
	if _, err := bcrypt.Cost([]byte(hash)); err != nil {
		return nil, fmt.Errorf("invalid password hash: %w", err)
	}
	return &Lock{hash: []byte(hash)}, nil
}

// Default returns a lock for DefaultSecret.
func Default() *Lock {
	l, err := New(DefaultSecret)
	if err != nil {
		panic(fmt.Sprintf("failed to hash default secret: %v", err))
	}
	return l
}

// Check reports whether attempt matches the secret.
func (l *Lock) Check(attempt string) bool {
	err := bcrypt.CompareHashAndPassword(l.hash, []byte(attempt))
	return err == nil
}
