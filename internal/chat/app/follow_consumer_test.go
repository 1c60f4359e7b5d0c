package app

import (
	"testing"

	"realtime_chat_service/internal/chat/domain"

	"github.com/streadway/amqp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAcknowledger records ack / nack of a delivery
type fakeAcknowledger struct {
	acked   int
	nacked  int
	requeue bool
}

func (f *fakeAcknowledger) Ack(uint64, bool) error { f.acked++; return nil }

func (f *fakeAcknowledger) Nack(_ uint64, _ bool, requeue bool) error {
	f.nacked++
	f.requeue = requeue
	return nil
}

func (f *fakeAcknowledger) Reject(_ uint64, requeue bool) error {
	f.nacked++
	f.requeue = requeue
	return nil
}

func TestHandleFollowEvent(t *testing.T) {
	env := newTestEnv()
	bobStanding := env.standing(t, "bob")
	bobChat := env.chat(t, "bob", "alice")
	drain(bobStanding)
	drain(bobChat)

	consumer := NewFollowConsumer(nil, "follow_events", env.fanout)

	require.NoError(t, consumer.HandleFollowEvent([]byte(`{"follower_id":"alice","follower_name":"Alice","followee_id":"bob"}`)))

	got := drain(bobStanding)
	require.Len(t, got, 1)
	assert.Equal(t, "follow", got[0]["type"])
	assert.Equal(t, "alice", got[0]["follower_id"])
	assert.Equal(t, "Alice", got[0]["follower_name"])
	assert.Empty(t, drain(bobChat))

	// followee offline: dropped, not an error
	assert.NoError(t, consumer.HandleFollowEvent([]byte(`{"follower_id":"alice","followee_id":"carol"}`)))

	assert.ErrorIs(t, consumer.HandleFollowEvent([]byte(`{not json`)), domain.ErrProtocol)
	assert.ErrorIs(t, consumer.HandleFollowEvent([]byte(`{"follower_id":"alice"}`)), domain.ErrValidation)
}

func TestFollowConsumer_AckNack(t *testing.T) {
	env := newTestEnv()
	consumer := NewFollowConsumer(nil, "follow_events", env.fanout)

	ok := &fakeAcknowledger{}
	consumer.handle(amqp.Delivery{Acknowledger: ok, Body: []byte(`{"follower_id":"alice","followee_id":"bob"}`)})
	assert.Equal(t, 1, ok.acked)
	assert.Zero(t, ok.nacked)

	bad := &fakeAcknowledger{}
	consumer.handle(amqp.Delivery{Acknowledger: bad, Body: []byte(`[]`)})
	assert.Zero(t, bad.acked)
	assert.Equal(t, 1, bad.nacked)
	assert.False(t, bad.requeue)
}
