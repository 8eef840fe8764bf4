package storage

import (
	"context"
	stderrors "errors"
	"fmt"
	"net"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis stores values as plain Redis strings.
type Redis struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
	retry  RetryPolicy
}

// RedisOptions configures [NewRedis].
type RedisOptions struct {
	Addr     string
	Password string
	DB       int
	Prefix   string        // prepended to every key, e.g. "orgdot:"
	TTL      time.Duration // zero keeps values forever
}

// NewRedis connects to Redis and pings it once.
func NewRedis(ctx context.Context, opts RedisOptions) (*Redis, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("connect redis %s: %w", opts.Addr, err)
	}
	return NewRedisClient(client, opts.Prefix, opts.TTL), nil
}

// NewRedisClient wraps an existing client. The store owns the client and
// closes it on Close.
func NewRedisClient(client *redis.Client, prefix string, ttl time.Duration) *Redis {
	return &Redis{client: client, prefix: prefix, ttl: ttl, retry: DefaultRetry}
}

func (r *Redis) key(key string) (string, error) {
	if err := ValidateKey(key); err != nil {
		return "", err
	}
	return r.prefix + key, nil
}

func (r *Redis) Save(ctx context.Context, key string, data []byte) error {
	k, err := r.key(key)
	if err != nil {
		return err
	}
	return r.retry.Do(ctx, func() error {
		return redisErr(r.client.Set(ctx, k, data, r.ttl).Err())
	})
}

func (r *Redis) Load(ctx context.Context, key string) ([]byte, error) {
	k, err := r.key(key)
	if err != nil {
		return nil, err
	}
	var data []byte
	err = r.retry.Do(ctx, func() error {
		b, err := r.client.Get(ctx, k).Bytes()
		if stderrors.Is(err, redis.Nil) {
			return fmt.Errorf("load %s: %w", key, ErrNotFound)
		}
		if err != nil {
			return redisErr(err)
		}
		data = b
		return nil
	})
	return data, err
}

func (r *Redis) Delete(ctx context.Context, key string) error {
	k, err := r.key(key)
	if err != nil {
		return err
	}
	return r.retry.Do(ctx, func() error {
		return redisErr(r.client.Del(ctx, k).Err())
	})
}

func (r *Redis) Exists(ctx context.Context, key string) (bool, error) {
	k, err := r.key(key)
	if err != nil {
		return false, err
	}
	var n int64
	err = r.retry.Do(ctx, func() error {
		v, err := r.client.Exists(ctx, k).Result()
		n = v
		return redisErr(err)
	})
	return n > 0, err
}

func (r *Redis) Close() error { return r.client.Close() }

// redisErr marks connection-level failures as retryable.
func redisErr(err error) error {
	if err == nil {
		return nil
	}
	var netErr net.Error
	if stderrors.As(err, &netErr) {
		return Retryable(fmt.Errorf("redis: %w", err))
	}
	return fmt.Errorf("redis: %w", err)
}

var _ Store = (*Redis)(nil)
