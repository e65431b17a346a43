package auth

import (
	"printhub/internal/usecase/interfaces"

	"golang.org/x/crypto/bcrypt"
)

// BcryptPasswordService implements interfaces.IPasswordService.
type BcryptPasswordService struct {
	cost int
}

var _ interfaces.IPasswordService = (*BcryptPasswordService)(nil)

func NewPasswordService() *BcryptPasswordService {
	return &BcryptPasswordService{cost: bcrypt.DefaultCost}
}

func (s *BcryptPasswordService) Hash(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (s *BcryptPasswordService) Verify(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
