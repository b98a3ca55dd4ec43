package usecase

import (
	"context"

	"github.com/DRSN-tech/recommender-backend/internal/domain"
)

// EventProducer публикует события аналитики о выданных рекомендациях.
type EventProducer interface {
	PublishRecommendation(ctx context.Context, event *domain.RecommendationEvent) error
}

// CredentialVerifier проверяет учетные данные пользователя.
// Вынесен из пути рекомендаций в отдельного коллаборатора.
type CredentialVerifier interface {
	Verify(userID, password string) error
}
