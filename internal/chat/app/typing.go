package app

import (
	"encoding/json"
	"sync"
	"time"

	"realtime_chat_service/internal/chat/domain"
	"realtime_chat_service/internal/chat/hub"
	"realtime_chat_service/pkg/logger"

	"go.uber.org/zap"
)

type typingKey struct {
	conversationID domain.ConversationID
	senderID       string
}

type typingState struct {
	timer *time.Timer
	gen   uint64
}

// TypingRelay relays typing signals to the peer and expires a typing:true that is never cleared
type TypingRelay struct {
	registry *hub.Registry
	expiry   time.Duration

	// relays happen under mu so an expiry never overtakes a newer signal
	mu     sync.Mutex
	active map[typingKey]*typingState
	gen    uint64
}

// NewTypingRelay create TypingRelay
func NewTypingRelay(registry *hub.Registry, expiry time.Duration) *TypingRelay {
	return &TypingRelay{
		registry: registry,
		expiry:   expiry,
		active:   make(map[typingKey]*typingState),
	}
}

// Set latest call wins, typing:true is followed by an explicit false after the expiry window
func (t *TypingRelay) Set(conversationID domain.ConversationID, senderID string, typing bool) error {
	peer, ok := conversationID.Peer(senderID)
	if !ok {
		return domain.ErrAuthorization
	}
	key := typingKey{conversationID: conversationID, senderID: senderID}

	t.mu.Lock()
	defer t.mu.Unlock()

	if st, ok := t.active[key]; ok {
		st.timer.Stop()
		delete(t.active, key)
	}
	if typing {
		t.gen++
		gen := t.gen
		t.active[key] = &typingState{
			gen:   gen,
			timer: time.AfterFunc(t.expiry, func() { t.expire(key, peer, gen) }),
		}
	}
	t.relay(key, peer, typing)
	return nil
}

// Stop clear a pending typing:true, the peer gets an explicit false
func (t *TypingRelay) Stop(conversationID domain.ConversationID, senderID string) {
	peer, ok := conversationID.Peer(senderID)
	if !ok {
		return
	}
	key := typingKey{conversationID: conversationID, senderID: senderID}

	t.mu.Lock()
	defer t.mu.Unlock()
	st, ok := t.active[key]
	if !ok {
		return
	}
	st.timer.Stop()
	delete(t.active, key)
	t.relay(key, peer, false)
}

// IsTyping pending typing:true
func (t *TypingRelay) IsTyping(conversationID domain.ConversationID, senderID string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, ok := t.active[typingKey{conversationID: conversationID, senderID: senderID}]
	return ok
}

func (t *TypingRelay) expire(key typingKey, peer string, gen uint64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	st, ok := t.active[key]
	if !ok || st.gen != gen {
		return
	}
	delete(t.active, key)
	logger.Log.Debug("typing expired", zap.String("conversation_id", key.conversationID.String()), zap.String("sender_id", key.senderID))
	t.relay(key, peer, false)
}

// relay conversation connections of the peer only, caller holds mu
func (t *TypingRelay) relay(key typingKey, peer string, typing bool) {
	payload, err := json.Marshal(domain.TypingFrame{
		Type:           domain.FrameTyping,
		ConversationID: key.conversationID,
		SenderID:       key.senderID,
		Typing:         typing,
	})
	if err != nil {
		logger.Log.Error("marshal typing frame", zap.Error(err))
		return
	}
	t.registry.DeliverConversation(peer, key.conversationID, payload)
}
