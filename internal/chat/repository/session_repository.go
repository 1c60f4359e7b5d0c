package repository

import (
	"context"
	"errors"

	"realtime_chat_service/internal/chat/domain"
	"realtime_chat_service/pkg/database"
)

// ErrSessionNotFound no session for the member
var ErrSessionNotFound = errors.New("session not found")

// SessionRepository member sessions written by the member service, keyed by member id
type SessionRepository interface {
	FindSession(ctx context.Context, memberID string) (*domain.MemberSession, error)
}

type redisSessionRepository struct {
	repo database.RedisRepository[domain.MemberSession]
}

// NewRedisSessionRepository read sessions from the member service redis db
func NewRedisSessionRepository(repo database.RedisRepository[domain.MemberSession]) SessionRepository {
	return &redisSessionRepository{repo: repo}
}

func (r *redisSessionRepository) FindSession(ctx context.Context, memberID string) (*domain.MemberSession, error) {
	s, err := r.repo.Get(ctx, memberID)
	if errors.Is(err, database.ErrRedisNil) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}
