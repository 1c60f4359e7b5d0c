package domain

import (
	"fmt"
	"strings"
)

const conversationSep = ":"

// ConversationID canonical "<min>:<max>" of the two participants
type ConversationID string

// NewConversationID build the canonical id of a 1 on 1 conversation
func NewConversationID(a, b string) (ConversationID, error) {
	if a == "" || b == "" {
		return "", fmt.Errorf("%w: empty participant", ErrValidation)
	}
	if strings.Contains(a, conversationSep) || strings.Contains(b, conversationSep) {
		return "", fmt.Errorf("%w: participant id contains %q", ErrValidation, conversationSep)
	}
	if a == b {
		return "", fmt.Errorf("%w: conversation with oneself", ErrValidation)
	}
	if a > b {
		a, b = b, a
	}
	return ConversationID(a + conversationSep + b), nil
}

// ParseConversationID parse an id from the wire, non canonical order is accepted and normalized
func ParseConversationID(raw string) (ConversationID, error) {
	parts := strings.Split(raw, conversationSep)
	if len(parts) != 2 {
		return "", fmt.Errorf("%w: malformed conversation id %q", ErrProtocol, raw)
	}
	id, err := NewConversationID(parts[0], parts[1])
	if err != nil {
		return "", fmt.Errorf("%w: malformed conversation id %q", ErrProtocol, raw)
	}
	return id, nil
}

// Participants both user ids, ordered
func (c ConversationID) Participants() (string, string) {
	a, b, _ := strings.Cut(string(c), conversationSep)
	return a, b
}

// Has user is one of the participants
func (c ConversationID) Has(user string) bool {
	a, b := c.Participants()
	return user != "" && (user == a || user == b)
}

// Peer the other participant, false when user is not in the conversation
func (c ConversationID) Peer(user string) (string, bool) {
	a, b := c.Participants()
	switch user {
	case a:
		return b, true
	case b:
		return a, true
	}
	return "", false
}

func (c ConversationID) String() string {
	return string(c)
}
