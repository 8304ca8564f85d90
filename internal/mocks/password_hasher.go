package mocks

import (
	"errors"
	"strings"
)

const plainPrefix = "plain:"

// MockPasswordHasher implements auth.PasswordHasher for testing.
// By default it "hashes" by prefixing, which keeps tests fast and readable.
type MockPasswordHasher struct {
	HashFn   func(password string) (string, error)
	VerifyFn func(hash, password string) bool

	// VerifyCallCount tracks how many times Verify was called
	VerifyCallCount int
}

// Hash implements auth.PasswordHasher
func (m *MockPasswordHasher) Hash(password string) (string, error) {
	if m.HashFn != nil {
		return m.HashFn(password)
	}
	if password == "" {
		return "", errors.New("empty password")
	}
	return plainPrefix + password, nil
}

// Verify implements auth.PasswordHasher
func (m *MockPasswordHasher) Verify(hash, password string) bool {
	m.VerifyCallCount++
	if m.VerifyFn != nil {
		return m.VerifyFn(hash, password)
	}
	return strings.HasPrefix(hash, plainPrefix) && hash == plainPrefix+password
}
