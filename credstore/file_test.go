package credstore

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "creds.json")
	runStoreRoundTrip(t, NewFile(path))
}

func TestFileSurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "creds.json")

	first := NewFile(path)
	want := Pair{Access: "tok-A", Refresh: "tok-R"}
	if err := first.Save(ctx, want, []byte(`{"id":1}`)); err != nil {
		t.Fatalf("save: %v", err)
	}

	// A new store over the same path sees the session, like a reload.
	second := NewFile(path)
	pair, identity, err := second.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if pair != want || string(identity) != `{"id":1}` {
		t.Fatalf("reloaded %+v %s", pair, identity)
	}
}

func TestFilePermissions(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "creds.json")

	if err := NewFile(path).Save(ctx, Pair{Access: "a", Refresh: "r"}, nil); err != nil {
		t.Fatalf("save: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Fatalf("perm = %o, want 600", perm)
	}
}

func TestFileCorruptReported(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "creds.json")
	if err := os.WriteFile(path, []byte("{truncated"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	if _, _, err := NewFile(path).Load(ctx); err == nil {
		t.Fatal("corrupt file should be reported, not silently dropped")
	}

	// Clear recovers the slot.
	store := NewFile(path)
	if err := store.Clear(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if pair, identity, err := store.Load(ctx); err != nil || !pair.Empty() || identity != nil {
		t.Fatalf("after clear: %+v %s %v", pair, identity, err)
	}
}
