package domain

import "time"

// Session описывает авторизованную сессию пользователя.
type Session struct {
	Token     string // uuid
	UserID    string
	CreatedAt time.Time
}

func NewSession(token, userID string) *Session {
	return &Session{
		Token:     token,
		UserID:    userID,
		CreatedAt: time.Now().UTC(),
	}
}
