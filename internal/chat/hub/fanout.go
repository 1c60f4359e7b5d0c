package hub

import (
	"encoding/json"
	"fmt"

	"realtime_chat_service/internal/chat/domain"
)

// Fanout routes events to a user's standing connections, it keeps no state
type Fanout struct {
	registry *Registry
}

// NewFanout create Fanout
func NewFanout(registry *Registry) *Fanout {
	return &Fanout{registry: registry}
}

// Notify deliver event to the user's standing connections, unknown kinds are rejected
func (f *Fanout) Notify(userID string, event domain.Notification) error {
	if !event.Type.Valid() {
		return fmt.Errorf("%w: unknown event kind %q", domain.ErrProtocol, event.Type)
	}
	if userID == "" {
		return fmt.Errorf("%w: empty user id", domain.ErrValidation)
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal %s event: %w", event.Type, err)
	}
	f.registry.Deliver(userID, domain.KindStanding, payload)
	return nil
}
