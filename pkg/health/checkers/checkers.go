package checkers

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	goredis "github.com/redis/go-redis/v9"
)

const defaultTimeout = time.Second

// PingFunc reports whether a dependency answers.
type PingFunc func(ctx context.Context) error

// Ping is a health.Checker backed by a single round trip with a deadline.
type Ping struct {
	name    string
	timeout time.Duration
	ping    PingFunc
}

func NewPing(name string, timeout time.Duration, ping PingFunc) *Ping {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Ping{name: name, timeout: timeout, ping: ping}
}

// NewPostgresChecker pings the pgx pool.
func NewPostgresChecker(pool *pgxpool.Pool) *Ping {
	return NewPing("postgres", defaultTimeout, pool.Ping)
}

// NewRedisChecker pings the cache server.
func NewRedisChecker(client goredis.UniversalClient) *Ping {
	return NewPing("redis", defaultTimeout, func(ctx context.Context) error {
		return client.Ping(ctx).Err()
	})
}

func (c *Ping) Name() string { return c.name }

func (c *Ping) Check(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	return c.ping(ctx)
}
