package security

// PasswordHasher abstracts one-way password hashing
type PasswordHasher interface {
	// Hash computes a one-way hash of the plaintext password
	Hash(password string) (string, error)
	// Verify reports whether the plaintext password matches the stored hash
	Verify(hash, password string) bool
}

// TokenService issues and verifies signed bearer tokens carrying the caller's
// public user identifier.
type TokenService interface {
	// Generate issues a signed token for the given user identifier
	Generate(userID string) (string, error)
	// Verify checks the token signature and returns the embedded user
	// identifier. Returns ErrInvalidToken on any verification failure.
	Verify(token string) (string, error)
}
