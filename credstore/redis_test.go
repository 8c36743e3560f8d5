package credstore

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newRedisStore(t *testing.T, ttl time.Duration) (*Redis, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis run failed: %v", err)
	}
	t.Cleanup(mr.Close)

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	return NewRedis(rdb, "nv:session", ttl), mr
}

func TestRedisRoundTrip(t *testing.T) {
	store, _ := newRedisStore(t, 0)
	runStoreRoundTrip(t, store)
}

func TestRedisTTL(t *testing.T) {
	store, mr := newRedisStore(t, time.Minute)
	ctx := context.Background()

	if err := store.Save(ctx, Pair{Access: "a", Refresh: "r"}, []byte(`{}`)); err != nil {
		t.Fatalf("save: %v", err)
	}
	if ttl := mr.TTL("nv:session:access"); ttl != time.Minute {
		t.Fatalf("access ttl = %v", ttl)
	}

	mr.FastForward(2 * time.Minute)

	pair, identity, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !pair.Empty() || identity != nil {
		t.Fatalf("expired credentials still present: %+v %s", pair, identity)
	}
}

func TestRedisPartialPairReportedAsIs(t *testing.T) {
	store, mr := newRedisStore(t, 0)
	ctx := context.Background()

	// Simulate one slot disappearing independently.
	if err := mr.Set("nv:session:access", "only-a"); err != nil {
		t.Fatalf("seed: %v", err)
	}

	pair, _, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if pair.Access != "only-a" || pair.Refresh != "" {
		t.Fatalf("pair = %+v", pair)
	}
	if pair.Complete() {
		t.Fatal("partial pair must not report complete")
	}
}
