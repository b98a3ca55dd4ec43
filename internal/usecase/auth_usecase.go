package usecase

import (
	"context"
	"strings"

	"github.com/DRSN-tech/recommender-backend/internal/domain"
	"github.com/DRSN-tech/recommender-backend/internal/recommender"
	"github.com/DRSN-tech/recommender-backend/pkg/e"
	"github.com/DRSN-tech/recommender-backend/pkg/logger"
	"github.com/google/uuid"
)

// AuthUseCase управляет сессиями пользователей. Текущий пользователь
// хранится не в процессе, а в Redis по bearer-токену: сервис безопасно
// обслуживает нескольких пользователей одновременно.
type AuthUseCase struct {
	engine   *recommender.Engine
	sessions SessionRepository
	verifier CredentialVerifier
	logger   logger.Logger
}

func NewAuthUC(
	engine *recommender.Engine,
	sessions SessionRepository,
	verifier CredentialVerifier,
	logger logger.Logger,
) *AuthUseCase {
	return &AuthUseCase{
		engine:   engine,
		sessions: sessions,
		verifier: verifier,
		logger:   logger,
	}
}

// Login проверяет учетные данные и создает сессию с новым токеном.
func (a *AuthUseCase) Login(ctx context.Context, req *LoginReq) (*domain.Session, error) {
	const op = "AuthUseCase.Login"

	userID := strings.TrimSpace(req.UserID)
	if userID == "" || req.Password == "" {
		return nil, e.ErrMissingFields
	}

	if !a.engine.HasUser(userID) {
		return nil, e.ErrInvalidCredentials
	}

	if err := a.verifier.Verify(userID, req.Password); err != nil {
		return nil, e.Wrap(op, err)
	}

	session := domain.NewSession(uuid.NewString(), userID)
	if err := a.sessions.Create(ctx, session); err != nil {
		return nil, e.Wrap(op, err)
	}

	return session, nil
}

// Logout удаляет сессию и сбрасывает историю рекомендаций пользователя.
func (a *AuthUseCase) Logout(ctx context.Context, token string) error {
	const op = "AuthUseCase.Logout"

	session, err := a.sessions.Get(ctx, token)
	if err != nil {
		return e.Wrap(op, err)
	}

	if err := a.sessions.Delete(ctx, token); err != nil {
		return e.Wrap(op, err)
	}

	// история принадлежит сессии: новая сессия начинает выдачу заново
	a.engine.History().Reset(session.UserID)

	return nil
}

// Check возвращает сессию по токену или e.ErrSessionNotFound.
func (a *AuthUseCase) Check(ctx context.Context, token string) (*domain.Session, error) {
	if token == "" {
		return nil, e.ErrNotLoggedIn
	}

	return a.sessions.Get(ctx, token)
}
