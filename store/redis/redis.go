// Package redis implements store.Store on top of go-redis.
package redis

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	st "github.com/softcache/softcache/store"
)

type Config struct {
	Host          string
	Port          int
	DB            int
	Password      string
	TLS           bool
	SocketTimeout time.Duration
}

type Redis struct {
	rdb goredis.UniversalClient
}

var _ st.Store = (*Redis)(nil)

// New builds a client from cfg. The connection itself is established
// lazily; call Ping to verify reachability.
func New(cfg Config) *Redis {
	opts := &goredis.Options{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  cfg.SocketTimeout,
		ReadTimeout:  cfg.SocketTimeout,
		WriteTimeout: cfg.SocketTimeout,
	}
	if cfg.TLS {
		opts.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}
	return &Redis{rdb: goredis.NewClient(opts)}
}

// NewWithClient wraps an existing client. The store still owns it:
// Close closes the client.
func NewWithClient(client goredis.UniversalClient) *Redis {
	return &Redis{rdb: client}
}

func (s *Redis) Ping(ctx context.Context) error {
	return s.rdb.Ping(ctx).Err()
}

func (s *Redis) Get(ctx context.Context, key string) (string, bool, error) {
	v, err := s.rdb.Get(ctx, key).Result()
	if err == goredis.Nil {
		return "", false, nil // miss
	}
	if err != nil {
		return "", false, err // transport/server error
	}
	return v, true, nil
}

// Set issues SETEX, so the server rejects non-positive TTLs rather
// than this store silencing them.
func (s *Redis) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return s.rdb.SetEx(ctx, key, value, ttl).Err()
}

func (s *Redis) Del(ctx context.Context, keys ...string) (int64, error) {
	if len(keys) == 0 {
		return 0, nil
	}
	return s.rdb.Del(ctx, keys...).Result()
}

func (s *Redis) Scan(ctx context.Context, cursor uint64, match string, count int64) ([]string, uint64, error) {
	return s.rdb.Scan(ctx, cursor, match, count).Result()
}

// Close releases the underlying client. Safe to call multiple times;
// repeated calls become no-ops.
func (s *Redis) Close(context.Context) error {
	if err := s.rdb.Close(); err != nil && !errors.Is(err, goredis.ErrClosed) {
		return err
	}
	return nil
}
