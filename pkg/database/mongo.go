package database

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const mongoPingTimeout = 5 * time.Second

// NewMongoDB connect and ping the primary, retried per Connection
func NewMongoDB(ctx context.Context, c Connection, dbName string) (*MongoDB, error) {
	clientOpts := options.Client().
		ApplyURI(c.ConnectStr).
		SetServerSelectionTimeout(mongoPingTimeout)

	var client *mongo.Client
	err := withRetry(ctx, "MongoDB", c, func(ctx context.Context) error {
		cli, err := mongo.Connect(ctx, clientOpts)
		if err != nil {
			return err
		}
		pingCtx, cancel := context.WithTimeout(ctx, mongoPingTimeout)
		defer cancel()
		if err := cli.Ping(pingCtx, readpref.Primary()); err != nil {
			_ = cli.Disconnect(ctx)
			return err
		}
		client = cli
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &MongoDB{
		Client:   client,
		Database: client.Database(dbName),
	}, nil
}

// Close disconnect the client
func (m *MongoDB) Close(ctx context.Context) error {
	return m.Client.Disconnect(ctx)
}
