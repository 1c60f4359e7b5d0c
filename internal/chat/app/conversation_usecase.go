package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"realtime_chat_service/internal/chat/domain"
	"realtime_chat_service/internal/chat/hub"
	"realtime_chat_service/internal/chat/repository"
	"realtime_chat_service/pkg/config"
	errprocess "realtime_chat_service/pkg/err"
	"realtime_chat_service/pkg/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ConversationUseCase 1 對 1 對話: 傳訊, typing, 已讀, 歷史
type ConversationUseCase struct {
	msgRepo   repository.MessageRepository
	directory repository.UserDirectory
	publisher repository.EventPublisher
	registry  *hub.Registry
	fanout    *hub.Fanout
	typing    *TypingRelay

	locks     *keyedMutex
	clock     *monotonicClock
	maxLength int

	publishTimeout time.Duration
}

// NewConversationUseCase directory and publisher may be nil
func NewConversationUseCase(
	msgRepo repository.MessageRepository,
	directory repository.UserDirectory,
	publisher repository.EventPublisher,
	registry *hub.Registry,
	fanout *hub.Fanout,
	cfg config.RealtimeConfig,
) *ConversationUseCase {
	cfg = cfg.WithDefaults()
	if publisher == nil {
		publisher = repository.NewNopEventPublisher()
	}
	return &ConversationUseCase{
		msgRepo:        msgRepo,
		directory:      directory,
		publisher:      publisher,
		registry:       registry,
		fanout:         fanout,
		typing:         NewTypingRelay(registry, cfg.TypingExpiry),
		locks:          newKeyedMutex(),
		clock:          newMonotonicClock(),
		maxLength:      cfg.MaxMessageLength,
		publishTimeout: 2 * time.Second,
	}
}

// OpenConversation conversation between user and peer, the peer must resolve in the user directory
func (uc *ConversationUseCase) OpenConversation(ctx context.Context, userID, peerID string) (domain.ConversationID, error) {
	id, err := domain.NewConversationID(userID, peerID)
	if err != nil {
		return "", err
	}
	if err := uc.checkPeer(ctx, peerID); err != nil {
		return "", err
	}
	return id, nil
}

// CheckParticipant user is in the conversation and the peer exists
func (uc *ConversationUseCase) CheckParticipant(ctx context.Context, conversationID domain.ConversationID, userID string) error {
	peer, ok := conversationID.Peer(userID)
	if !ok {
		return errprocess.Warn(domain.ErrAuthorization, "not a participant",
			zap.String("conversation_id", conversationID.String()), zap.String("user_id", userID))
	}
	return uc.checkPeer(ctx, peer)
}

func (uc *ConversationUseCase) checkPeer(ctx context.Context, peerID string) error {
	if uc.directory == nil {
		return nil
	}
	if _, err := uc.directory.FindUser(ctx, peerID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return err
		}
		return fmt.Errorf("user directory: %w", err)
	}
	return nil
}

// Send persist then deliver, a failed write delivers nothing
func (uc *ConversationUseCase) Send(ctx context.Context, conversationID domain.ConversationID, senderID, content string) (*domain.Message, error) {
	if strings.TrimSpace(content) == "" {
		return nil, errprocess.Warn(domain.ErrValidation, "empty message", zap.String("sender_id", senderID))
	}
	if utf8.RuneCountInString(content) > uc.maxLength {
		return nil, errprocess.Warn(domain.ErrValidation, fmt.Sprintf("message longer than %d characters", uc.maxLength), zap.String("sender_id", senderID))
	}
	peer, ok := conversationID.Peer(senderID)
	if !ok {
		return nil, errprocess.Warn(domain.ErrAuthorization, "not a participant",
			zap.String("conversation_id", conversationID.String()), zap.String("sender_id", senderID))
	}
	senderName := uc.displayName(ctx, senderID)

	// 同一對話的寫入依序進行: persisted order = delivery order
	unlock := uc.locks.Lock(string(conversationID))
	defer unlock()

	msg := &domain.Message{
		ID:             newMessageID(),
		ConversationID: conversationID,
		SenderID:       senderID,
		Content:        content,
		CreatedAt:      uc.clock.Next(),
	}
	if err := uc.msgRepo.Insert(ctx, msg); err != nil {
		return nil, errprocess.Set(err, "persist message", zap.String("conversation_id", conversationID.String()))
	}

	frame, err := json.Marshal(domain.NewChatFrame(msg, peer, senderName))
	if err == nil {
		uc.registry.DeliverConversation(peer, conversationID, frame)
		// sender's own tabs on this conversation
		uc.registry.DeliverConversation(senderID, conversationID, frame)
	}
	if err := uc.fanout.Notify(peer, domain.Notification{
		Type:           domain.EventNewMessage,
		SenderID:       senderID,
		SenderName:     senderName,
		Message:        content,
		ConversationID: conversationID,
	}); err != nil {
		logger.Log.Warn("notify new message", zap.String("peer", peer), zap.Error(err))
	}
	uc.typing.Stop(conversationID, senderID)

	uc.publish(repository.MessageEvent{
		Type:           repository.EventMessageCreated,
		ConversationID: conversationID,
		Message:        msg,
		At:             time.Unix(0, msg.CreatedAt),
	})
	return msg, nil
}

// SetTyping relay to the peer's conversation connections, nothing is stored
func (uc *ConversationUseCase) SetTyping(conversationID domain.ConversationID, senderID string, typing bool) error {
	if err := uc.typing.Set(conversationID, senderID, typing); err != nil {
		return errprocess.Warn(err, "typing from non participant", zap.String("sender_id", senderID))
	}
	return nil
}

// MarkSeen set seen_at on every unseen peer message, returns how many changed
func (uc *ConversationUseCase) MarkSeen(ctx context.Context, conversationID domain.ConversationID, viewerID string) (int64, error) {
	peer, ok := conversationID.Peer(viewerID)
	if !ok {
		return 0, errprocess.Warn(domain.ErrAuthorization, "not a participant",
			zap.String("conversation_id", conversationID.String()), zap.String("viewer_id", viewerID))
	}

	unlock := uc.locks.Lock(string(conversationID))
	seenAt := uc.clock.Next()
	n, err := uc.msgRepo.MarkSeen(ctx, conversationID, viewerID, seenAt)
	unlock()
	if err != nil {
		return 0, errprocess.Set(err, "mark seen", zap.String("conversation_id", conversationID.String()))
	}
	if n == 0 {
		return 0, nil
	}

	// badge sync for the viewer's other tabs, nothing goes to the peer
	event := domain.Notification{Type: domain.EventSeen, ConversationID: conversationID, PeerID: peer}
	if total, err := uc.UnseenTotal(ctx, viewerID); err == nil {
		event.TotalUnseen = &total
	} else {
		logger.Log.Warn("unseen total", zap.String("viewer_id", viewerID), zap.Error(err))
	}
	if err := uc.fanout.Notify(viewerID, event); err != nil {
		logger.Log.Warn("notify seen", zap.String("viewer_id", viewerID), zap.Error(err))
	}

	uc.publish(repository.MessageEvent{
		Type:           repository.EventMessagesSeen,
		ConversationID: conversationID,
		ViewerID:       viewerID,
		SeenCount:      n,
		At:             time.Unix(0, seenAt),
	})
	return n, nil
}

// FetchHistory all messages oldest first, requester must be a participant
func (uc *ConversationUseCase) FetchHistory(ctx context.Context, conversationID domain.ConversationID, requesterID string) ([]domain.Message, error) {
	if !conversationID.Has(requesterID) {
		return nil, errprocess.Warn(domain.ErrAuthorization, "not a participant",
			zap.String("conversation_id", conversationID.String()), zap.String("requester_id", requesterID))
	}
	msgs, err := uc.msgRepo.History(ctx, conversationID)
	if err != nil {
		return nil, errprocess.Set(err, "fetch history", zap.String("conversation_id", conversationID.String()))
	}
	if msgs == nil {
		msgs = []domain.Message{}
	}
	return msgs, nil
}

// UnseenTotal badge total of a user
func (uc *ConversationUseCase) UnseenTotal(ctx context.Context, userID string) (int, error) {
	unseen, err := uc.msgRepo.UnseenByConversation(ctx, userID)
	if err != nil {
		return 0, err
	}
	total := 0
	for _, u := range unseen {
		total += u.Count
	}
	return total, nil
}

// RecentChats last message + unseen count per peer, newest first
func (uc *ConversationUseCase) RecentChats(ctx context.Context, userID string) (*domain.RecentChats, error) {
	last, err := uc.msgRepo.LastMessages(ctx, userID)
	if err != nil {
		return nil, errprocess.Set(err, "last messages", zap.String("user_id", userID))
	}
	unseen, err := uc.msgRepo.UnseenByConversation(ctx, userID)
	if err != nil {
		return nil, errprocess.Set(err, "unseen by conversation", zap.String("user_id", userID))
	}
	counts := make(map[domain.ConversationID]int, len(unseen))
	for _, u := range unseen {
		counts[u.ConversationID] = u.Count
	}

	out := &domain.RecentChats{Chats: make([]domain.ConversationSummary, 0, len(last))}
	for i := range last {
		m := last[i]
		peer, ok := m.ConversationID.Peer(userID)
		if !ok {
			continue
		}
		out.Chats = append(out.Chats, domain.ConversationSummary{
			ConversationID: m.ConversationID,
			PeerID:         peer,
			PeerName:       uc.displayName(ctx, peer),
			LastMessage:    &m,
			UnseenCount:    counts[m.ConversationID],
		})
		out.TotalUnseen += counts[m.ConversationID]
	}
	sort.SliceStable(out.Chats, func(i, j int) bool {
		return out.Chats[i].LastMessage.CreatedAt > out.Chats[j].LastMessage.CreatedAt
	})
	return out, nil
}

// ConnectionClosed the user's last conversation connection on that chat disappearing mid-type stops typing now
func (uc *ConversationUseCase) ConnectionClosed(conn *hub.Connection) {
	if conn == nil || conn.Kind != domain.KindConversation {
		return
	}
	for _, other := range uc.registry.Connections(conn.UserID) {
		if other.ID != conn.ID && other.Kind == domain.KindConversation && other.ConversationID == conn.ConversationID {
			return
		}
	}
	uc.typing.Stop(conn.ConversationID, conn.UserID)
}

func (uc *ConversationUseCase) displayName(ctx context.Context, userID string) string {
	if uc.directory == nil {
		return userID
	}
	profile, err := uc.directory.FindUser(ctx, userID)
	if err != nil || profile.DisplayName == "" {
		if err != nil {
			logger.Log.Warn("display name", zap.String("user_id", userID), zap.Error(err))
		}
		return userID
	}
	return profile.DisplayName
}

// publish best effort, the kafka writer is async so this never waits on the broker
func (uc *ConversationUseCase) publish(event repository.MessageEvent) {
	ctx, cancel := context.WithTimeout(context.Background(), uc.publishTimeout)
	defer cancel()
	if err := uc.publisher.Publish(ctx, event); err != nil {
		logger.Log.Warn("publish message event", zap.String("type", string(event.Type)), zap.Error(err))
	}
}

func newMessageID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
