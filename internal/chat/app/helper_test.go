package app

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"realtime_chat_service/internal/chat/domain"
	"realtime_chat_service/internal/chat/hub"
	"realtime_chat_service/pkg/config"

	"github.com/stretchr/testify/require"
)

// memoryMessageRepository in memory MessageRepository
type memoryMessageRepository struct {
	mu   sync.Mutex
	msgs []domain.Message
}

func newMemoryMessageRepository() *memoryMessageRepository {
	return &memoryMessageRepository{}
}

func (r *memoryMessageRepository) Insert(_ context.Context, msg *domain.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.msgs = append(r.msgs, *msg)
	return nil
}

func (r *memoryMessageRepository) History(_ context.Context, id domain.ConversationID) ([]domain.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []domain.Message{}
	for _, m := range r.msgs {
		if m.ConversationID == id {
			out = append(out, m)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].CreatedAt != out[j].CreatedAt {
			return out[i].CreatedAt < out[j].CreatedAt
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *memoryMessageRepository) MarkSeen(_ context.Context, id domain.ConversationID, viewerID string, seenAt int64) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for i := range r.msgs {
		m := &r.msgs[i]
		if m.ConversationID == id && m.SenderID != viewerID && m.SeenAt == nil {
			at := seenAt
			m.SeenAt = &at
			n++
		}
	}
	return n, nil
}

func (r *memoryMessageRepository) UnseenByConversation(_ context.Context, viewerID string) ([]domain.ConversationUnseen, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	counts := map[domain.ConversationID]int{}
	for _, m := range r.msgs {
		if m.ConversationID.Has(viewerID) && m.SenderID != viewerID && m.SeenAt == nil {
			counts[m.ConversationID]++
		}
	}
	var out []domain.ConversationUnseen
	for id, n := range counts {
		peer, _ := id.Peer(viewerID)
		out = append(out, domain.ConversationUnseen{ConversationID: id, PeerID: peer, Count: n})
	}
	return out, nil
}

func (r *memoryMessageRepository) LastMessages(_ context.Context, userID string) ([]domain.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	last := map[domain.ConversationID]domain.Message{}
	for _, m := range r.msgs {
		if !m.ConversationID.Has(userID) {
			continue
		}
		if cur, ok := last[m.ConversationID]; !ok || m.CreatedAt > cur.CreatedAt {
			last[m.ConversationID] = m
		}
	}
	out := make([]domain.Message, 0, len(last))
	for _, m := range last {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt > out[j].CreatedAt })
	return out, nil
}

// staticDirectory knows a fixed set of users
type staticDirectory map[string]string

func (d staticDirectory) FindUser(_ context.Context, userID string) (*domain.UserProfile, error) {
	name, ok := d[userID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &domain.UserProfile{ID: userID, DisplayName: name}, nil
}

// tokenAuth credential "token-<user>" belongs to <user>
type tokenAuth struct{}

func (tokenAuth) Authenticate(_ context.Context, credential string) (string, error) {
	user, ok := strings.CutPrefix(credential, "token-")
	if !ok || user == "" {
		return "", errors.New("invalid token")
	}
	return user, nil
}

func cred(user string) string { return "token-" + user }

type testEnv struct {
	registry *hub.Registry
	fanout   *hub.Fanout
	tracker  *hub.Tracker
	store    *memoryMessageRepository
	uc       *ConversationUseCase
}

func testRealtime() config.RealtimeConfig {
	return config.RealtimeConfig{
		TypingExpiry:      80 * time.Millisecond,
		PingInterval:      time.Second,
		SendBuffer:        64,
		MaxMessageLength:  20,
		MaxProtocolErrors: 3,
		FrameTimeout:      2 * time.Second,
	}
}

func newTestEnv() *testEnv {
	registry := hub.NewRegistry(tokenAuth{})
	fanout := hub.NewFanout(registry)
	store := newMemoryMessageRepository()
	dir := staticDirectory{"alice": "Alice", "bob": "Bob", "carol": "Carol"}
	return &testEnv{
		registry: registry,
		fanout:   fanout,
		tracker:  hub.NewTracker(registry, fanout, nil),
		store:    store,
		uc:       NewConversationUseCase(store, dir, nil, registry, fanout, testRealtime()),
	}
}

func (e *testEnv) standing(t *testing.T, user string) *hub.Connection {
	t.Helper()
	c := hub.NewStandingConnection(user, 64)
	require.NoError(t, e.registry.Register(context.Background(), cred(user), c))
	return c
}

func (e *testEnv) chat(t *testing.T, user, peer string) *hub.Connection {
	t.Helper()
	id, err := domain.NewConversationID(user, peer)
	require.NoError(t, err)
	c, err := hub.NewConversationConnection(user, id, 64)
	require.NoError(t, err)
	require.NoError(t, e.registry.Register(context.Background(), cred(user), c))
	return c
}

func conv(a, b string) domain.ConversationID {
	id, _ := domain.NewConversationID(a, b)
	return id
}

// drain every queued frame without blocking
func drain(c *hub.Connection) []map[string]interface{} {
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

// ofType frames with the given "type"
func ofType(frames []map[string]interface{}, typ string) []map[string]interface{} {
	var out []map[string]interface{}
	for _, f := range frames {
		if f["type"] == typ {
			out = append(out, f)
		}
	}
	return out
}

// waitFrame block until a frame arrives or timeout
func waitFrame(t *testing.T, c *hub.Connection, timeout time.Duration) map[string]interface{} {
	t.Helper()
	select {
	case b := <-c.Egress():
		var m map[string]interface{}
		require.NoError(t, json.Unmarshal(b, &m))
		return m
	case <-time.After(timeout):
		t.Fatalf("no frame within %s", timeout)
		return nil
	}
}
