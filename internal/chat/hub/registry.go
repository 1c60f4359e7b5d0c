package hub

import (
	"context"
	"fmt"
	"hash/fnv"
	"sync"
	"time"

	"realtime_chat_service/internal/chat/domain"
	"realtime_chat_service/pkg/logger"

	"go.uber.org/zap"
)

const shardCount = 64

// Authenticator resolve a bearer credential to a user id
type Authenticator interface {
	Authenticate(ctx context.Context, credential string) (string, error)
}

// PresenceChange emitted on every register / unregister
type PresenceChange struct {
	UserID string
	// Online at least one connection remains open
	Online bool
	// Changed the user crossed offline<->online
	Changed bool
	At      time.Time
	Conn    *Connection
}

// PresenceListener called with the user's lifecycle lock held, must not call Register/Unregister
type PresenceListener func(PresenceChange)

type connBucket struct {
	sync.RWMutex
	// user id -> connection id -> connection
	users map[string]map[string]*Connection
}

func newBucket() *connBucket {
	return &connBucket{users: make(map[string]map[string]*Connection)}
}

func (b *connBucket) add(key string, c *Connection) int {
	b.Lock()
	defer b.Unlock()
	set, ok := b.users[key]
	if !ok {
		set = make(map[string]*Connection)
		b.users[key] = set
	}
	set[c.ID] = c
	return len(set)
}

func (b *connBucket) remove(key string, c *Connection) int {
	b.Lock()
	defer b.Unlock()
	set, ok := b.users[key]
	if !ok {
		return 0
	}
	delete(set, c.ID)
	if len(set) == 0 {
		delete(b.users, key)
	}
	return len(set)
}

func (b *connBucket) snapshot(key string) []*Connection {
	b.RLock()
	defer b.RUnlock()
	set := b.users[key]
	out := make([]*Connection, 0, len(set))
	for _, c := range set {
		out = append(out, c)
	}
	return out
}

func (b *connBucket) count(key string) int {
	b.RLock()
	defer b.RUnlock()
	return len(b.users[key])
}

// Registry user id <-> open connections, the only owner of connection lifecycle
type Registry struct {
	auth Authenticator

	conns   [shardCount]*connBucket // by owner
	viewers [shardCount]*connBucket // conversation connections by peer

	// serializes register/unregister + presence emission per user
	lifecycle [shardCount]sync.Mutex

	listenerMu sync.RWMutex
	listeners  []PresenceListener

	now func() time.Time
}

// NewRegistry create a registry validating credentials with auth
func NewRegistry(auth Authenticator) *Registry {
	r := &Registry{auth: auth, now: time.Now}
	for i := 0; i < shardCount; i++ {
		r.conns[i] = newBucket()
		r.viewers[i] = newBucket()
	}
	return r
}

func shardOf(key string) uint32 {
	h := fnv.New32a()
	h.Write([]byte(key))
	return h.Sum32() % shardCount
}

// Subscribe add a presence listener
func (r *Registry) Subscribe(l PresenceListener) {
	r.listenerMu.Lock()
	r.listeners = append(r.listeners, l)
	r.listenerMu.Unlock()
}

func (r *Registry) emit(ch PresenceChange) {
	r.listenerMu.RLock()
	listeners := r.listeners
	r.listenerMu.RUnlock()
	for _, l := range listeners {
		l(ch)
	}
}

// Resolve validate a credential, returns the user id it belongs to
func (r *Registry) Resolve(ctx context.Context, credential string) (string, error) {
	if credential == "" {
		return "", fmt.Errorf("%w: missing credential", domain.ErrAuth)
	}
	userID, err := r.auth.Authenticate(ctx, credential)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrAuth, err)
	}
	return userID, nil
}

// Register validate the credential against conn.UserID and open the connection
func (r *Registry) Register(ctx context.Context, credential string, conn *Connection) error {
	if conn == nil || conn.State() != StateConnecting {
		return fmt.Errorf("%w: connection is not connecting", domain.ErrProtocol)
	}
	userID, err := r.Resolve(ctx, credential)
	if err != nil {
		conn.markClosed()
		return err
	}
	if userID != conn.UserID {
		conn.markClosed()
		return fmt.Errorf("%w: credential does not belong to %s", domain.ErrAuth, conn.UserID)
	}

	shard := shardOf(conn.UserID)
	r.lifecycle[shard].Lock()
	defer r.lifecycle[shard].Unlock()

	if !conn.transition(StateConnecting, StateOpen) {
		return fmt.Errorf("%w: connection closed before register", domain.ErrProtocol)
	}
	total := r.conns[shard].add(conn.UserID, conn)
	if conn.Kind == domain.KindConversation {
		r.viewers[shardOf(conn.PeerID)].add(conn.PeerID, conn)
	}

	logger.Log.Debug("connection registered",
		zap.String("user_id", conn.UserID),
		zap.String("conn_id", conn.ID),
		zap.String("kind", string(conn.Kind)),
		zap.Int("open", total))

	r.emit(PresenceChange{UserID: conn.UserID, Online: true, Changed: total == 1, At: r.now(), Conn: conn})
	return nil
}

// Unregister close and remove the connection, calling it again is a no-op
func (r *Registry) Unregister(conn *Connection) {
	if conn == nil {
		return
	}
	if !conn.transition(StateOpen, StateClosing) {
		if conn.transition(StateConnecting, StateClosed) {
			conn.markClosed()
		}
		return
	}

	shard := shardOf(conn.UserID)
	r.lifecycle[shard].Lock()
	defer r.lifecycle[shard].Unlock()

	remaining := r.conns[shard].remove(conn.UserID, conn)
	if conn.Kind == domain.KindConversation {
		r.viewers[shardOf(conn.PeerID)].remove(conn.PeerID, conn)
	}
	conn.markClosed()

	logger.Log.Debug("connection unregistered",
		zap.String("user_id", conn.UserID),
		zap.String("conn_id", conn.ID),
		zap.Int("open", remaining))

	r.emit(PresenceChange{UserID: conn.UserID, Online: remaining > 0, Changed: remaining == 0, At: r.now(), Conn: conn})
}

// Deliver enqueue payload to every open connection of kind, no connection is a no-op
func (r *Registry) Deliver(userID string, kind domain.ConnectionKind, payload []byte) int {
	return r.deliver(userID, payload, func(c *Connection) bool { return c.Kind == kind })
}

// DeliverConversation enqueue payload to the user's connections bound to conversationID
func (r *Registry) DeliverConversation(userID string, conversationID domain.ConversationID, payload []byte) int {
	return r.deliver(userID, payload, func(c *Connection) bool {
		return c.Kind == domain.KindConversation && c.ConversationID == conversationID
	})
}

func (r *Registry) deliver(userID string, payload []byte, match func(*Connection) bool) int {
	delivered := 0
	for _, c := range r.conns[shardOf(userID)].snapshot(userID) {
		if !match(c) {
			continue
		}
		if c.Send(payload) {
			delivered++
			continue
		}
		logger.Log.Warn("drop frame", zap.String("user_id", userID), zap.String("conn_id", c.ID), zap.String("state", c.State().String()))
	}
	return delivered
}

// IsOnline at least one open connection of any kind
func (r *Registry) IsOnline(userID string) bool {
	return r.conns[shardOf(userID)].count(userID) > 0
}

// Connections open connections of a user
func (r *Registry) Connections(userID string) []*Connection {
	return r.conns[shardOf(userID)].snapshot(userID)
}

// Viewers conversation connections whose peer is userID
func (r *Registry) Viewers(userID string) []*Connection {
	return r.viewers[shardOf(userID)].snapshot(userID)
}

// Shutdown unregister every connection
func (r *Registry) Shutdown() {
	for i := 0; i < shardCount; i++ {
		b := r.conns[i]
		b.RLock()
		var all []*Connection
		for _, set := range b.users {
			for _, c := range set {
				all = append(all, c)
			}
		}
		b.RUnlock()
		for _, c := range all {
			r.Unregister(c)
		}
	}
}
