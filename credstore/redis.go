package credstore

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis stores credentials under a key prefix, for server-composed fronts
// that keep per-device session state out of process. All three slots are
// written in one MULTI/EXEC so a reader sees the pair together.
type Redis struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedis creates a Redis-backed store. prefix scopes the keys (typically
// per device or per browser session). ttl bounds credential lifetime; zero
// means no expiry.
func NewRedis(client *redis.Client, prefix string, ttl time.Duration) *Redis {
	return &Redis{client: client, prefix: prefix, ttl: ttl}
}

func (r *Redis) accessKey() string   { return r.prefix + ":access" }
func (r *Redis) refreshKey() string  { return r.prefix + ":refresh" }
func (r *Redis) identityKey() string { return r.prefix + ":user" }

// Save implements Store.
func (r *Redis) Save(ctx context.Context, pair Pair, identity []byte) error {
	pipe := r.client.TxPipeline()
	pipe.Set(ctx, r.accessKey(), pair.Access, r.ttl)
	pipe.Set(ctx, r.refreshKey(), pair.Refresh, r.ttl)
	pipe.Set(ctx, r.identityKey(), identity, r.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("credstore: redis save: %w", err)
	}
	return nil
}

// Load implements Store. Missing keys come back as absence; a partial pair
// (possible if a key expired independently) is reported as-is.
func (r *Redis) Load(ctx context.Context) (Pair, []byte, error) {
	vals, err := r.client.MGet(ctx, r.accessKey(), r.refreshKey(), r.identityKey()).Result()
	if err != nil {
		return Pair{}, nil, fmt.Errorf("credstore: redis load: %w", err)
	}

	pair := Pair{
		Access:  stringAt(vals, 0),
		Refresh: stringAt(vals, 1),
	}
	var identity []byte
	if s := stringAt(vals, 2); s != "" {
		identity = []byte(s)
	}
	return pair, identity, nil
}

// Clear implements Store. DEL on absent keys is a no-op.
func (r *Redis) Clear(ctx context.Context) error {
	if err := r.client.Del(ctx, r.accessKey(), r.refreshKey(), r.identityKey()).Err(); err != nil {
		return fmt.Errorf("credstore: redis clear: %w", err)
	}
	return nil
}

func stringAt(vals []any, i int) string {
	if i >= len(vals) || vals[i] == nil {
		return ""
	}
	s, ok := vals[i].(string)
	if !ok {
		return ""
	}
	return s
}
