package interfaces

// PasswordHasher is what the repository's prepare-for-write step needs to
// turn a staged plaintext password into a stored digest.
type PasswordHasher interface {
	HashPassword(plain string) (string, error)
}
