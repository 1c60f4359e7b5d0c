package hub

import (
	"sync"
	"sync/atomic"
	"time"

	"realtime_chat_service/internal/chat/domain"

	"github.com/google/uuid"
)

// ConnState connection lifecycle, only Open accepts frames
type ConnState int32

const (
	// StateConnecting created, credential not yet validated
	StateConnecting ConnState = iota
	// StateOpen registered
	StateOpen
	// StateClosing unregister in progress
	StateClosing
	// StateClosed removed from the registry
	StateClosed
)

func (s ConnState) String() string {
	switch s {
	case StateConnecting:
		return "connecting"
	case StateOpen:
		return "open"
	case StateClosing:
		return "closing"
	case StateClosed:
		return "closed"
	}
	return "unknown"
}

// Connection one live transport session of a user
type Connection struct {
	ID       string
	UserID   string
	Kind     domain.ConnectionKind
	OpenedAt time.Time

	// conversation connections only
	ConversationID domain.ConversationID
	PeerID         string

	state     atomic.Int32
	egress    chan []byte
	done      chan struct{}
	closeOnce sync.Once
}

// NewStandingConnection create a notification connection
func NewStandingConnection(userID string, buffer int) *Connection {
	return newConnection(userID, domain.KindStanding, "", "", buffer)
}

// NewConversationConnection create a connection bound to one conversation, userID must be a participant
func NewConversationConnection(userID string, conversationID domain.ConversationID, buffer int) (*Connection, error) {
	peer, ok := conversationID.Peer(userID)
	if !ok {
		return nil, domain.ErrAuthorization
	}
	return newConnection(userID, domain.KindConversation, conversationID, peer, buffer), nil
}

func newConnection(userID string, kind domain.ConnectionKind, conversationID domain.ConversationID, peerID string, buffer int) *Connection {
	if buffer <= 0 {
		buffer = 1
	}
	c := &Connection{
		ID:             uuid.NewString(),
		UserID:         userID,
		Kind:           kind,
		OpenedAt:       time.Now(),
		ConversationID: conversationID,
		PeerID:         peerID,
		egress:         make(chan []byte, buffer),
		done:           make(chan struct{}),
	}
	c.state.Store(int32(StateConnecting))
	return c
}

// State current lifecycle state
func (c *Connection) State() ConnState {
	return ConnState(c.state.Load())
}

// Egress frames waiting for the write pump
func (c *Connection) Egress() <-chan []byte {
	return c.egress
}

// Done closed once the connection reaches Closed
func (c *Connection) Done() <-chan struct{} {
	return c.done
}

// Send non blocking enqueue, false when not Open or the buffer is full
func (c *Connection) Send(payload []byte) bool {
	if c.State() != StateOpen {
		return false
	}
	select {
	case c.egress <- payload:
		return true
	default:
		return false
	}
}

func (c *Connection) transition(from, to ConnState) bool {
	return c.state.CompareAndSwap(int32(from), int32(to))
}

func (c *Connection) markClosed() {
	c.state.Store(int32(StateClosed))
	c.closeOnce.Do(func() { close(c.done) })
}
