package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

// FrameType outbound frame "type" field
type FrameType string

const (
	// FrameChat new message on a conversation connection
	FrameChat FrameType = "chat"
	// FrameTyping typing signal
	FrameTyping FrameType = "typing"
	// FrameStatus presence status
	FrameStatus FrameType = "status"
	// FrameError rejected inbound frame
	FrameError FrameType = "error"
)

// InboundFrame conversation connection inbound frame, {message} or {typing}
type InboundFrame struct {
	Message *string `json:"message,omitempty"`
	Typing  *bool   `json:"typing,omitempty"`
}

// ParseInboundFrame decode one text frame, typing wins when both keys exist
func ParseInboundFrame(data []byte) (InboundFrame, error) {
	var f InboundFrame
	if err := json.Unmarshal(data, &f); err != nil {
		return InboundFrame{}, fmt.Errorf("%w: %v", ErrProtocol, err)
	}
	if f.Typing != nil {
		f.Message = nil
		return f, nil
	}
	if f.Message == nil {
		return InboundFrame{}, fmt.Errorf("%w: frame has neither message nor typing", ErrProtocol)
	}
	return f, nil
}

// ChatFrame new message delivered to conversation connections
type ChatFrame struct {
	Type           FrameType      `json:"type"`
	ID             string         `json:"id"`
	ConversationID ConversationID `json:"conversation_id"`
	SenderID       string         `json:"sender_id"`
	ReceiverID     string         `json:"receiver_id"`
	Sender         string         `json:"sender"`
	Message        string         `json:"message"`
	Timestamp      string         `json:"timestamp"`
}

// NewChatFrame build the chat frame of a persisted message
func NewChatFrame(m *Message, receiverID, senderName string) ChatFrame {
	return ChatFrame{
		Type:           FrameChat,
		ID:             m.ID,
		ConversationID: m.ConversationID,
		SenderID:       m.SenderID,
		ReceiverID:     receiverID,
		Sender:         senderName,
		Message:        m.Content,
		Timestamp:      time.Unix(0, m.CreatedAt).UTC().Format(time.RFC3339Nano),
	}
}

// TypingFrame typing relay
type TypingFrame struct {
	Type           FrameType      `json:"type"`
	ConversationID ConversationID `json:"conversation_id"`
	SenderID       string         `json:"sender_id"`
	Typing         bool           `json:"typing"`
}

// StatusFrame presence status, Status is "online" or "last_seen:<RFC3339Nano>"
type StatusFrame struct {
	Type     FrameType `json:"type"`
	UserID   string    `json:"user_id"`
	Status   string    `json:"status"`
	LastSeen *string   `json:"last_seen"`
}

// NewStatusFrame build a status frame from a presence record
func NewStatusFrame(p PresenceRecord) StatusFrame {
	f := StatusFrame{Type: FrameStatus, UserID: p.UserID, Status: p.StatusText()}
	if p.State != PresenceOnline && p.LastSeenAt != nil {
		s := p.LastSeenAt.UTC().Format(time.RFC3339Nano)
		f.LastSeen = &s
	}
	return f
}

// ErrorFrame rejected inbound frame, connection stays open
type ErrorFrame struct {
	Type  FrameType `json:"type"`
	Error string    `json:"error"`
}

// EventKind standing connection event kind
type EventKind string

const (
	// EventNewMessage a message arrived
	EventNewMessage EventKind = "new_message"
	// EventFollow someone followed the user
	EventFollow EventKind = "follow"
	// EventStatus presence change of a peer
	EventStatus EventKind = "status"
	// EventSeen unseen badge changed (another tab marked a conversation seen)
	EventSeen EventKind = "seen"
)

// Valid known event kind
func (k EventKind) Valid() bool {
	switch k {
	case EventNewMessage, EventFollow, EventStatus, EventSeen:
		return true
	}
	return false
}

// Notification standing connection event, only the fields of its kind are set
type Notification struct {
	Type EventKind `json:"type"`

	// new_message
	SenderID   string `json:"sender_id,omitempty"`
	SenderName string `json:"sender_name,omitempty"`
	Message    string `json:"message,omitempty"`

	// new_message, seen
	ConversationID ConversationID `json:"conversation_id,omitempty"`

	// status
	UserID   string  `json:"user_id,omitempty"`
	Status   string  `json:"status,omitempty"`
	LastSeen *string `json:"last_seen,omitempty"`

	// seen
	PeerID      string `json:"peer_id,omitempty"`
	TotalUnseen *int   `json:"total_unseen,omitempty"`

	// follow
	FollowerID   string `json:"follower_id,omitempty"`
	FollowerName string `json:"follower_name,omitempty"`
}

// StatusNotification status frame as a standing connection event
func StatusNotification(f StatusFrame) Notification {
	return Notification{Type: EventStatus, UserID: f.UserID, Status: f.Status, LastSeen: f.LastSeen}
}

// FollowEvent follow event published by the follow graph service
type FollowEvent struct {
	FollowerID   string `json:"follower_id"`
	FollowerName string `json:"follower_name"`
	FolloweeID   string `json:"followee_id"`
}
