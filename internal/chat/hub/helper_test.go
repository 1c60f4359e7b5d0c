package hub

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"realtime_chat_service/internal/chat/domain"

	"github.com/stretchr/testify/require"
)

// tokenAuth credential "token-<user>" belongs to <user>
type tokenAuth struct{}

func (tokenAuth) Authenticate(_ context.Context, credential string) (string, error) {
	const prefix = "token-"
	if len(credential) <= len(prefix) || credential[:len(prefix)] != prefix {
		return "", errors.New("invalid token")
	}
	return credential[len(prefix):], nil
}

func cred(user string) string { return "token-" + user }

func openStanding(t *testing.T, r *Registry, user string) *Connection {
	t.Helper()
	c := NewStandingConnection(user, 16)
	require.NoError(t, r.Register(context.Background(), cred(user), c))
	return c
}

func openConversation(t *testing.T, r *Registry, user, peer string) *Connection {
	t.Helper()
	id, err := domain.NewConversationID(user, peer)
	require.NoError(t, err)
	c, err := NewConversationConnection(user, id, 16)
	require.NoError(t, err)
	require.NoError(t, r.Register(context.Background(), cred(user), c))
	return c
}

// drain read every queued frame without blocking
func drain(c *Connection) []map[string]interface{} {
	var out []map[string]interface{}
	for {
		select {
		case b := <-c.Egress():
			var m map[string]interface{}
			_ = json.Unmarshal(b, &m)
			out = append(out, m)
		default:
			return out
		}
	}
}

type memLastSeen struct {
	mu   sync.Mutex
	data map[string]time.Time
}

func newMemLastSeen() *memLastSeen {
	return &memLastSeen{data: map[string]time.Time{}}
}

func (m *memLastSeen) SaveLastSeen(_ context.Context, userID string, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[userID] = at
	return nil
}

func (m *memLastSeen) ClearLastSeen(_ context.Context, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, userID)
	return nil
}

func (m *memLastSeen) LastSeen(_ context.Context, userID string) (time.Time, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	at, ok := m.data[userID]
	if !ok {
		return time.Time{}, ErrNoLastSeen
	}
	return at, nil
}
