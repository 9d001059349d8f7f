package cache

import (
	"strings"
	"testing"
	"time"
)

func TestKey(t *testing.T) {
	if Key("evidence", "clipforge") != Key("evidence", "clipforge") {
		t.Error("same parts must produce the same key")
	}
	if Key("evidence", "clipforge") == Key("evidence", "vidmaker") {
		t.Error("different parts must produce different keys")
	}
	if Key("a", "bc") == Key("ab", "c") {
		t.Error("part boundaries must matter")
	}
	if !strings.HasPrefix(Key("x"), "pricelens:v1:") {
		t.Errorf("key missing namespace prefix: %q", Key("x"))
	}
}

func TestMemoryCache(t *testing.T) {
	c := NewMemoryCache(time.Minute, 0)
	key := Key("test", "memory")

	if _, found := c.Get(key); found {
		t.Error("empty cache should miss")
	}
	if err := c.Set(key, []byte("value"), time.Minute); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if val, found := c.Get(key); !found || string(val) != "value" {
		t.Errorf("Get = %q, %v", val, found)
	}
	if err := c.Delete(key); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, found := c.Get(key); found {
		t.Error("deleted key should miss")
	}
}

func TestDiskCache(t *testing.T) {
	c := NewDiskCache(t.TempDir(), time.Minute)
	key := Key("test", "disk")

	if err := c.Set(key, []byte("value"), time.Minute); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if val, found := c.Get(key); !found || string(val) != "value" {
		t.Errorf("Get = %q, %v", val, found)
	}
	if err := c.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if _, found := c.Get(key); found {
		t.Error("cleared cache should miss")
	}
}

func TestDiskCache_Expiry(t *testing.T) {
	c := NewDiskCache(t.TempDir(), time.Minute)
	key := Key("test", "expired")

	if err := c.Set(key, []byte("value"), -time.Second); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if _, found := c.Get(key); found {
		t.Error("expired entry should miss")
	}
}
