// Package service provides technical services for identity operations.
package service

// TokenService defines operations for API token generation and hashing.
// Implementations must use cryptographically secure random generation and a
// fast hash suitable for lookup of short-lived credentials (e.g. SHA-256).
type TokenService interface {
	// GenerateToken creates a new cryptographically secure random token.
	// Returns both the plain text token (shared with the caller once) and the
	// hashed version (stored in the database).
	GenerateToken() (plainToken string, tokenHash string, error error)

	// HashToken hashes a plain text token. Used for token validation by
	// comparing hashes.
	HashToken(plainToken string) string
}
