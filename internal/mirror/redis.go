package mirror

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// Redis keeps each client scope in one hash: <namespace>:<scope>.
type Redis struct {
	client    *redis.Client
	namespace string
	ttl       time.Duration
}

type RedisOptions struct {
	URL       string
	Namespace string
	// TTL refreshes on every write; zero keeps scopes forever.
	TTL time.Duration
}

func NewRedis(opts RedisOptions) (*Redis, error) {
	o, err := redis.ParseURL(opts.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	client := redis.NewClient(o)
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return NewRedisFromClient(client, opts.Namespace, opts.TTL), nil
}

func NewRedisFromClient(client *redis.Client, namespace string, ttl time.Duration) *Redis {
	if namespace == "" {
		namespace = "itsolutions:mirror"
	}
	return &Redis{client: client, namespace: namespace, ttl: ttl}
}

func (r *Redis) key(scope string) string { return r.namespace + ":" + scope }

func (r *Redis) Get(ctx context.Context, scope, key string) (string, bool, error) {
	v, err := r.client.HGet(ctx, r.key(scope), key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

func (r *Redis) Set(ctx context.Context, scope, key, value string) error {
	pipe := r.client.TxPipeline()
	pipe.HSet(ctx, r.key(scope), key, value)
	if r.ttl > 0 {
		pipe.Expire(ctx, r.key(scope), r.ttl)
	}
	_, err := pipe.Exec(ctx)
	return err
}

func (r *Redis) Delete(ctx context.Context, scope, key string) error {
	return r.client.HDel(ctx, r.key(scope), key).Err()
}

func (r *Redis) Close() error { return r.client.Close() }
