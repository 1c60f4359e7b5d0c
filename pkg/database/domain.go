package database

import (
	"context"
	"fmt"
	"time"

	"realtime_chat_service/pkg/logger"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Connection 連線字串 + 重試設定, RetryInterval 以秒計
type Connection struct {
	ConnectStr string

	RetryCount    int
	RetryInterval time.Duration
}

func (c Connection) attempts() int {
	if c.RetryCount < 1 {
		return 1
	}
	return c.RetryCount
}

func (c Connection) interval() time.Duration {
	return c.RetryInterval * time.Second
}

// MongoDB client + selected database
type MongoDB struct {
	Client   *mongo.Client
	Database *mongo.Database
}

// KafkaConnection brokers + topic of the message event stream
type KafkaConnection struct {
	Brokers []string
	Topic   string
}

// withRetry call dial until it succeeds, the attempts run out or ctx is done
func withRetry(ctx context.Context, name string, c Connection, dial func(ctx context.Context) error) error {
	var err error
	for attempt := 1; attempt <= c.attempts(); attempt++ {
		if err = dial(ctx); err == nil {
			logger.Log.Info(name+" connected", zap.Int("attempt", attempt))
			return nil
		}
		logger.Log.Warn(name+" connect failed, retrying...",
			zap.Int("attempt", attempt), zap.Int("max", c.attempts()), zap.Error(err))

		if attempt == c.attempts() {
			break
		}
		select {
		case <-ctx.Done():
			return fmt.Errorf("connect %s: %w", name, ctx.Err())
		case <-time.After(c.interval()):
		}
	}
	return fmt.Errorf("connect %s failed after %d attempts: %w", name, c.attempts(), err)
}
