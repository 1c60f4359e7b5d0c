package domain

import "time"

// ConnectionKind websocket connection kind
type ConnectionKind string

const (
	// KindConversation connection opened on a chat screen, bound to one conversation
	KindConversation ConnectionKind = "conversation"
	// KindStanding notification connection opened at session start
	KindStanding ConnectionKind = "standing"
)

// PresenceState online / offline
type PresenceState string

const (
	// PresenceOnline at least one open connection
	PresenceOnline PresenceState = "online"
	// PresenceOffline no open connection
	PresenceOffline PresenceState = "offline"
)

// PresenceRecord current presence of a user
type PresenceRecord struct {
	UserID     string        `json:"user_id"`
	State      PresenceState `json:"state"`
	LastSeenAt *time.Time    `json:"last_seen_at"`
}

// StatusText wire status, "online" or "last_seen:<RFC3339Nano>"
func (p PresenceRecord) StatusText() string {
	if p.State == PresenceOnline {
		return string(PresenceOnline)
	}
	if p.LastSeenAt == nil {
		return string(PresenceOffline)
	}
	return LastSeenStatus(*p.LastSeenAt)
}

// LastSeenStatus format an offline status
func LastSeenStatus(t time.Time) string {
	return "last_seen:" + t.UTC().Format(time.RFC3339Nano)
}

// LastSeen stored last seen record
type LastSeen struct {
	UserID string    `json:"user_id"`
	At     time.Time `json:"at"`
}

// MemberSession session written by the member service (read only here)
type MemberSession struct {
	Token        string    `json:"Token"`
	MemberID     string    `json:"MemberID"`
	CreatedAt    time.Time `json:"CreatedAt"`
	LastActivity time.Time `json:"LastActivity"`
	ExpiredAt    time.Time `json:"ExpiredAt"`
}

// IsExpired 檢查 Session 是否已過期
func (s *MemberSession) IsExpired() bool {
	return time.Now().After(s.ExpiredAt)
}
