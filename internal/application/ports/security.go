package ports

// PasswordHasher hashes and verifies passwords with an adaptive, salted
// algorithm. Digests are self-describing so the work factor can change per
// deployment without invalidating stored credentials.
type PasswordHasher interface {
	Hash(password string) (string, error)
	// Verify returns (true, nil) on match and (false, nil) on mismatch.
	// An error means the digest is malformed or unsupported.
	Verify(password, digest string) (bool, error)
}
