package repository

import (
	"context"
	"errors"
	"time"

	"realtime_chat_service/internal/chat/domain"
	"realtime_chat_service/internal/chat/hub"
	"realtime_chat_service/pkg/database"
)

// LastSeenKeyPrefix redis key prefix of last seen records
const LastSeenKeyPrefix = "presence:last_seen:"

type redisLastSeenRepository struct {
	repo database.RedisRepository[domain.LastSeen]
	ttl  time.Duration
}

// NewRedisLastSeenRepository last seen store on redis, ttl 0 keeps records forever
func NewRedisLastSeenRepository(repo database.RedisRepository[domain.LastSeen], ttl time.Duration) hub.LastSeenStore {
	return &redisLastSeenRepository{repo: repo, ttl: ttl}
}

func (r *redisLastSeenRepository) SaveLastSeen(ctx context.Context, userID string, at time.Time) error {
	return r.repo.Set(ctx, userID, domain.LastSeen{UserID: userID, At: at.UTC()}, r.ttl)
}

func (r *redisLastSeenRepository) ClearLastSeen(ctx context.Context, userID string) error {
	return r.repo.Del(ctx, userID)
}

func (r *redisLastSeenRepository) LastSeen(ctx context.Context, userID string) (time.Time, error) {
	rec, err := r.repo.Get(ctx, userID)
	if errors.Is(err, database.ErrRedisNil) {
		return time.Time{}, hub.ErrNoLastSeen
	}
	if err != nil {
		return time.Time{}, err
	}
	return rec.At, nil
}
