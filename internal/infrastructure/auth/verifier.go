package auth

import (
	"crypto/subtle"

	"github.com/DRSN-tech/recommender-backend/internal/cfg"
	"github.com/DRSN-tech/recommender-backend/pkg/e"
)

// SharedSecretVerifier проверяет пароль демо-стенда: у всех
// пользователей один общий пароль из конфигурации.
type SharedSecretVerifier struct {
	secret string
}

func NewSharedSecretVerifier(cfg *cfg.SessionCfg) *SharedSecretVerifier {
	return &SharedSecretVerifier{secret: cfg.SharedSecret}
}

func (v *SharedSecretVerifier) Verify(userID, password string) error {
	if subtle.ConstantTimeCompare([]byte(password), []byte(v.secret)) != 1 {
		return e.ErrInvalidCredentials
	}

	return nil
}
