package interfaces

// IPasswordService hashes and verifies user passwords.
type IPasswordService interface {
	Hash(password string) (string, error)
	Verify(hash, password string) bool
}
