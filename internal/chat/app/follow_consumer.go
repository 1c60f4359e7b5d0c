package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"realtime_chat_service/internal/chat/domain"
	"realtime_chat_service/internal/chat/hub"
	"realtime_chat_service/pkg/logger"

	"github.com/streadway/amqp"
	"go.uber.org/zap"
)

// FollowConsumer ingests follow events from the follow graph service and notifies the followee
type FollowConsumer struct {
	channel *amqp.Channel
	queue   string
	fanout  *hub.Fanout
}

// NewFollowConsumer channel from database.OpenQueue
func NewFollowConsumer(channel *amqp.Channel, queue string, fanout *hub.Fanout) *FollowConsumer {
	return &FollowConsumer{channel: channel, queue: queue, fanout: fanout}
}

// Run consume until ctx is done or the channel closes
func (f *FollowConsumer) Run(ctx context.Context) error {
	deliveries, err := f.channel.Consume(f.queue, "chat_service", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("consume %s: %w", f.queue, err)
	}
	logger.Log.Info("follow consumer started", zap.String("queue", f.queue))

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case d, ok := <-deliveries:
			if !ok {
				return errors.New("follow event channel closed")
			}
			f.handle(d)
		}
	}
}

func (f *FollowConsumer) handle(d amqp.Delivery) {
	err := f.HandleFollowEvent(d.Body)
	if err == nil {
		_ = d.Ack(false)
		return
	}
	logger.Log.Warn("drop follow event", zap.ByteString("body", d.Body), zap.Error(err))
	// malformed events never become valid, do not requeue
	_ = d.Nack(false, false)
}

// HandleFollowEvent decode one event and route it to the followee's standing connections
func (f *FollowConsumer) HandleFollowEvent(body []byte) error {
	var ev domain.FollowEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return fmt.Errorf("%w: follow event: %v", domain.ErrProtocol, err)
	}
	if ev.FollowerID == "" || ev.FolloweeID == "" {
		return fmt.Errorf("%w: follow event without follower or followee", domain.ErrValidation)
	}
	return f.fanout.Notify(ev.FolloweeID, domain.Notification{
		Type:         domain.EventFollow,
		FollowerID:   ev.FollowerID,
		FollowerName: ev.FollowerName,
	})
}
