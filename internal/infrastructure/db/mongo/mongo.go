// Package mongo wires the job board's persistence layer: connection setup
// plus the user, job and payment-claim repositories.
package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// connectTimeout bounds the initial dial and ping when the config does not
// set one. Registration and job posting are interactive flows, so failing
// fast at startup beats hanging on an unreachable cluster.
const connectTimeout = 10 * time.Second

// defaultTimeout bounds individual repository operations.
const defaultTimeout = 10 * time.Second

// Config carries the connection settings read from the environment.
type Config struct {
	URI      string
	Database string
	Timeout  time.Duration
}

// Connect dials the cluster, pings it to surface bad credentials or an
// unreachable host immediately, and hands back the client together with the
// database the repositories operate on.
func Connect(ctx context.Context, cfg Config) (*mongo.Client, *mongo.Database, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = connectTimeout
	}

	dialCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	opts := options.Client().
		ApplyURI(cfg.URI).
		SetAppName("job-board-api")

	client, err := mongo.Connect(dialCtx, opts)
	if err != nil {
		return nil, nil, fmt.Errorf("mongo connect: %w", err)
	}

	if err := client.Ping(dialCtx, nil); err != nil {
		_ = client.Disconnect(dialCtx)
		return nil, nil, fmt.Errorf("mongo ping: %w", err)
	}

	return client, client.Database(cfg.Database), nil
}
