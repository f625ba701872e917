// Package service defines interfaces for domain capabilities backed by infrastructure.
package service

// PasswordHasher hashes and verifies the operator password.
type PasswordHasher interface {
	// Hash generates a salted hash from a plaintext password.
	Hash(password string) (string, error)

	// Check reports whether password matches hash.
	Check(password, hash string) bool
}
