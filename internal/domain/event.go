package domain

import "time"

// Источники рекомендаций в событиях аналитики.
const (
	SourceProfile  = "profile"
	SourceItem     = "item"
	SourceSeason   = "season"
	SourceFallback = "fallback" // деградированный результат при нулевой схожести
)

// RecommendationEvent — событие аналитики о выданной рекомендации.
type RecommendationEvent struct {
	EventID    string    `json:"event_id"`
	UserID     string    `json:"user_id,omitempty"`
	Source     string    `json:"source"`
	ProductIDs []string  `json:"product_ids"`
	OccurredAt time.Time `json:"occurred_at"`
}

func NewRecommendationEvent(eventID, userID, source string, productIDs []string) *RecommendationEvent {
	return &RecommendationEvent{
		EventID:    eventID,
		UserID:     userID,
		Source:     source,
		ProductIDs: productIDs,
		OccurredAt: time.Now().UTC(),
	}
}
