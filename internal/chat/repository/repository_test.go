package repository

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"realtime_chat_service/internal/chat/domain"
	"realtime_chat_service/internal/chat/hub"
	"realtime_chat_service/pkg/database"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memRedis in memory database.RedisRepository
type memRedis[T any] struct {
	data map[string]T
	ttl  map[string]time.Duration
	err  error
}

func newMemRedis[T any]() *memRedis[T] {
	return &memRedis[T]{data: map[string]T{}, ttl: map[string]time.Duration{}}
}

func (m *memRedis[T]) Set(_ context.Context, key string, value T, ttl time.Duration) error {
	if m.err != nil {
		return m.err
	}
	m.data[key] = value
	m.ttl[key] = ttl
	return nil
}

func (m *memRedis[T]) Get(_ context.Context, key string) (T, error) {
	var zero T
	if m.err != nil {
		return zero, m.err
	}
	v, ok := m.data[key]
	if !ok {
		return zero, database.ErrRedisNil
	}
	return v, nil
}

func (m *memRedis[T]) Del(_ context.Context, key string) error {
	delete(m.data, key)
	return nil
}

func TestRedisLastSeenRepository(t *testing.T) {
	ctx := context.Background()
	store := newMemRedis[domain.LastSeen]()
	repo := NewRedisLastSeenRepository(store, time.Hour)

	_, err := repo.LastSeen(ctx, "alice")
	assert.ErrorIs(t, err, hub.ErrNoLastSeen)

	at := time.Date(2025, 3, 1, 12, 0, 0, 0, time.FixedZone("CST", 8*3600))
	require.NoError(t, repo.SaveLastSeen(ctx, "alice", at))
	assert.Equal(t, time.Hour, store.ttl["alice"])

	got, err := repo.LastSeen(ctx, "alice")
	require.NoError(t, err)
	assert.True(t, got.Equal(at))

	require.NoError(t, repo.ClearLastSeen(ctx, "alice"))
	_, err = repo.LastSeen(ctx, "alice")
	assert.ErrorIs(t, err, hub.ErrNoLastSeen)

	require.NoError(t, repo.SaveLastSeen(ctx, "alice", at))
	store.err = errors.New("connection refused")
	_, err = repo.LastSeen(ctx, "alice")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, hub.ErrNoLastSeen)
}

func TestRedisSessionRepository(t *testing.T) {
	ctx := context.Background()
	store := newMemRedis[domain.MemberSession]()
	repo := NewRedisSessionRepository(store)

	_, err := repo.FindSession(ctx, "alice")
	assert.ErrorIs(t, err, ErrSessionNotFound)

	store.data["alice"] = domain.MemberSession{Token: "tk", MemberID: "alice", ExpiredAt: time.Now().Add(time.Hour)}
	s, err := repo.FindSession(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "tk", s.Token)
	assert.False(t, s.IsExpired())
}

type fakeKafkaWriter struct {
	msgs   []kafka.Message
	closed bool
}

func (f *fakeKafkaWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	f.msgs = append(f.msgs, msgs...)
	return nil
}

func (f *fakeKafkaWriter) Close() error {
	f.closed = true
	return nil
}

func TestKafkaEventPublisher(t *testing.T) {
	w := &fakeKafkaWriter{}
	pub := NewKafkaEventPublisher(w)

	msg := &domain.Message{ID: "m1", ConversationID: "a:b", SenderID: "a", Content: "hi", CreatedAt: 1}
	at := time.Unix(10, 0).UTC()
	require.NoError(t, pub.Publish(context.Background(), MessageEvent{
		Type:           EventMessageCreated,
		ConversationID: msg.ConversationID,
		Message:        msg,
		At:             at,
	}))

	require.Len(t, w.msgs, 1)
	assert.Equal(t, []byte("a:b"), w.msgs[0].Key)
	assert.Equal(t, at, w.msgs[0].Time)
	require.Len(t, w.msgs[0].Headers, 1)
	assert.Equal(t, "message_created", string(w.msgs[0].Headers[0].Value))

	var decoded MessageEvent
	require.NoError(t, json.Unmarshal(w.msgs[0].Value, &decoded))
	assert.Equal(t, EventMessageCreated, decoded.Type)
	assert.Equal(t, "hi", decoded.Message.Content)

	require.NoError(t, pub.Close())
	assert.True(t, w.closed)
}
