package hub

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"realtime_chat_service/internal/chat/domain"
	"realtime_chat_service/pkg/logger"

	"go.uber.org/zap"
)

// ErrNoLastSeen no last seen record for the user
var ErrNoLastSeen = errors.New("no last seen record")

// LastSeenStore keeps the most recent last seen of a user
type LastSeenStore interface {
	SaveLastSeen(ctx context.Context, userID string, at time.Time) error
	// ClearLastSeen drops the record once the user is back online
	ClearLastSeen(ctx context.Context, userID string) error
	// LastSeen returns ErrNoLastSeen when nothing is stored
	LastSeen(ctx context.Context, userID string) (time.Time, error)
}

// Tracker presence state derived from registry connect / disconnect
type Tracker struct {
	registry *Registry
	fanout   *Fanout
	store    LastSeenStore

	mu       sync.RWMutex
	lastSeen map[string]time.Time

	persistTimeout time.Duration
	wg             sync.WaitGroup
}

// NewTracker create Tracker and subscribe it to the registry, store may be nil
func NewTracker(registry *Registry, fanout *Fanout, store LastSeenStore) *Tracker {
	t := &Tracker{
		registry:       registry,
		fanout:         fanout,
		store:          store,
		lastSeen:       make(map[string]time.Time),
		persistTimeout: 3 * time.Second,
	}
	registry.Subscribe(t.onChange)
	return t
}

func (t *Tracker) onChange(ch PresenceChange) {
	if !ch.Changed {
		return
	}

	rec := domain.PresenceRecord{UserID: ch.UserID, State: domain.PresenceOnline}
	if ch.Online {
		t.mu.Lock()
		delete(t.lastSeen, ch.UserID)
		t.mu.Unlock()
		t.persist(ch.UserID, "clear last seen", func(ctx context.Context) error {
			return t.store.ClearLastSeen(ctx, ch.UserID)
		})
	} else {
		at := ch.At
		rec.State = domain.PresenceOffline
		rec.LastSeenAt = &at

		t.mu.Lock()
		t.lastSeen[ch.UserID] = at
		t.mu.Unlock()
		t.persist(ch.UserID, "save last seen", func(ctx context.Context) error {
			return t.store.SaveLastSeen(ctx, ch.UserID, at)
		})
	}

	logger.Log.Info("presence changed", zap.String("user_id", ch.UserID), zap.String("status", rec.StatusText()))
	t.broadcast(rec)
}

// persist runs off the lifecycle lock
func (t *Tracker) persist(userID, op string, fn func(ctx context.Context) error) {
	if t.store == nil {
		return
	}
	t.wg.Add(1)
	go func() {
		defer t.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), t.persistTimeout)
		defer cancel()
		if err := fn(ctx); err != nil {
			logger.Log.Warn(op, zap.String("user_id", userID), zap.Error(err))
		}
	}()
}

// broadcast to users currently viewing rec.UserID's chat: their conversation connection and standing connections
func (t *Tracker) broadcast(rec domain.PresenceRecord) {
	viewers := t.registry.Viewers(rec.UserID)
	if len(viewers) == 0 {
		return
	}

	frame := domain.NewStatusFrame(rec)
	payload, err := json.Marshal(frame)
	if err != nil {
		logger.Log.Error("marshal status frame", zap.Error(err))
		return
	}

	notified := make(map[string]struct{}, len(viewers))
	for _, v := range viewers {
		v.Send(payload)
		if _, ok := notified[v.UserID]; ok {
			continue
		}
		notified[v.UserID] = struct{}{}
		if err := t.fanout.Notify(v.UserID, domain.StatusNotification(frame)); err != nil {
			logger.Log.Warn("notify status", zap.String("viewer", v.UserID), zap.Error(err))
		}
	}
}

// Status current presence of a user
func (t *Tracker) Status(ctx context.Context, userID string) (domain.PresenceRecord, error) {
	rec := domain.PresenceRecord{UserID: userID, State: domain.PresenceOnline}
	if t.registry.IsOnline(userID) {
		return rec, nil
	}
	rec.State = domain.PresenceOffline

	t.mu.RLock()
	at, ok := t.lastSeen[userID]
	t.mu.RUnlock()
	if ok {
		rec.LastSeenAt = &at
		return rec, nil
	}

	if t.store == nil {
		return rec, nil
	}
	at, err := t.store.LastSeen(ctx, userID)
	if errors.Is(err, ErrNoLastSeen) {
		return rec, nil
	}
	if err != nil {
		return rec, err
	}
	rec.LastSeenAt = &at
	return rec, nil
}

// SendStatus push the current status of conn's peer to conn, used right after a conversation connection opens
func (t *Tracker) SendStatus(ctx context.Context, conn *Connection) {
	if conn.Kind != domain.KindConversation {
		return
	}
	rec, err := t.Status(ctx, conn.PeerID)
	if err != nil {
		logger.Log.Warn("peer status", zap.String("peer", conn.PeerID), zap.Error(err))
	}
	payload, err := json.Marshal(domain.NewStatusFrame(rec))
	if err != nil {
		return
	}
	conn.Send(payload)
}

// Wait pending last seen writes
func (t *Tracker) Wait() {
	t.wg.Wait()
}
