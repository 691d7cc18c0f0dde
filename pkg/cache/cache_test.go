package cache

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"
)

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	// Get always returns miss
	data, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if hit {
		t.Error("NullCache.Get should always return miss")
	}
	if data != nil {
		t.Error("NullCache.Get should return nil data")
	}

	// Set does nothing (no error)
	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set error: %v", err)
	}

	// Still a miss after Set
	_, hit, _ = c.Get(ctx, "key")
	if hit {
		t.Error("NullCache should not store data")
	}

	// Delete does nothing (no error)
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
}

func TestFileCache(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()

	// Miss before Set
	if _, hit, _ := c.Get(ctx, "stats:abc"); hit {
		t.Error("Get before Set should miss")
	}

	// Round trip
	if err := c.Set(ctx, "stats:abc", []byte(`{"extensions":2}`), 0); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	data, hit, err := c.Get(ctx, "stats:abc")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if !hit {
		t.Fatal("Get after Set should hit")
	}
	if !bytes.Equal(data, []byte(`{"extensions":2}`)) {
		t.Errorf("Get returned %q", data)
	}

	// Expired entries are treated as misses
	if err := c.Set(ctx, "stats:old", []byte("x"), -time.Hour); err != nil {
		t.Fatal(err)
	}
	if _, hit, _ := c.Get(ctx, "stats:old"); hit {
		t.Error("expired entry should miss")
	}

	// Delete removes the entry; deleting again is not an error
	if err := c.Delete(ctx, "stats:abc"); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "stats:abc"); hit {
		t.Error("Get after Delete should miss")
	}
	if err := c.Delete(ctx, "stats:abc"); err != nil {
		t.Errorf("second Delete error: %v", err)
	}
}

func TestHash(t *testing.T) {
	// Test determinism
	h1 := Hash([]byte("hello"))
	h2 := Hash([]byte("hello"))
	if h1 != h2 {
		t.Error("Hash should be deterministic")
	}

	// Test different inputs produce different hashes
	h3 := Hash([]byte("world"))
	if h1 == h3 {
		t.Error("Different inputs should produce different hashes")
	}

	// Test hash length (SHA-256 produces 64 hex chars)
	if len(h1) != 64 {
		t.Errorf("Hash length should be 64, got %d", len(h1))
	}
}

func TestDefaultKeyer(t *testing.T) {
	k := NewDefaultKeyer()

	// RelationKey should distinguish derivations
	rk1 := k.RelationKey("hash123", "neighborhood")
	rk2 := k.RelationKey("hash123", "distance")
	if rk1 == rk2 {
		t.Error("Different derivations should produce different keys")
	}
	if !strings.HasPrefix(rk1, "relation:") {
		t.Errorf("RelationKey should carry the relation prefix: %s", rk1)
	}

	// StatsKey should include limits in the hash
	sk1 := k.StatsKey("hash123", StatsKeyOpts{MaxElements: 15})
	sk2 := k.StatsKey("hash123", StatsKeyOpts{MaxElements: 20})
	if sk1 == sk2 {
		t.Error("Different StatsKeyOpts should produce different keys")
	}

	// Same inputs must produce the same key across calls
	if k.StatsKey("hash123", StatsKeyOpts{MaxElements: 15}) != sk1 {
		t.Error("StatsKey should be deterministic")
	}
}

func TestScopedKeyer(t *testing.T) {
	inner := NewDefaultKeyer()
	scoped := NewScopedKeyer(inner, "proj:123:")

	// All keys should be prefixed
	rk := scoped.RelationKey("hash", "neighborhood")
	if !strings.HasPrefix(rk, "proj:123:relation:") {
		t.Errorf("ScopedKeyer RelationKey should be prefixed: %s", rk)
	}

	sk := scoped.StatsKey("hash", StatsKeyOpts{})
	if !strings.HasPrefix(sk, "proj:123:stats:") {
		t.Errorf("ScopedKeyer StatsKey should be prefixed: %s", sk)
	}
}

func TestScopedKeyerNilInner(t *testing.T) {
	// Should use DefaultKeyer when inner is nil
	scoped := NewScopedKeyer(nil, "prefix:")
	key := scoped.RelationKey("h", "d")
	if !strings.HasPrefix(key, "prefix:relation:") {
		t.Errorf("Unexpected key with nil inner: %s", key)
	}
}
