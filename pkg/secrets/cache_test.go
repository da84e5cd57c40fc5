package secrets

import (
	"sync"
	"testing"
	"time"
)

func TestCache_PutAndGet(t *testing.T) {
	cache := NewCache[string](2 * time.Second)
	key := "kaiko/market-api-key"

	// should miss initially
	if _, ok := cache.Get(key); ok {
		t.Fatal("expected miss on empty cache")
	}

	cache.Put(key, "abc123")

	// immediate hit
	if v, ok := cache.Get(key); !ok {
		t.Fatal("expected cache hit")
	} else if v != "abc123" {
		t.Errorf("expected abc123, got %s", v)
	}
}

func TestCache_Expiration(t *testing.T) {
	cache := NewCache[string](500 * time.Millisecond)
	key := "kaiko/market-api-key"
	cache.Put(key, "abc123")

	time.Sleep(600 * time.Millisecond)

	if _, ok := cache.Get(key); ok {
		t.Fatal("expected expired cache entry")
	}
}

func TestCache_Bust(t *testing.T) {
	cache := NewCache[string](5 * time.Second)
	key := "kaiko/market-api-key"
	cache.Put(key, "abc123")

	cache.Bust(key)
	if _, ok := cache.Get(key); ok {
		t.Fatal("expected cache miss after bust")
	}
}

func TestCache_StructValues(t *testing.T) {
	type creds struct {
		Key, Secret string
	}
	cache := NewCache[creds](2 * time.Second)
	cache.Put("pair", creds{Key: "k", Secret: "s"})

	got, ok := cache.Get("pair")
	if !ok {
		t.Fatal("expected cache hit")
	}
	if got.Key != "k" || got.Secret != "s" {
		t.Errorf("unexpected value: %+v", got)
	}
}

func TestCache_ConcurrentAccess(t *testing.T) {
	cache := NewCache[string](2 * time.Second)
	key := "kaiko/market-api-key"

	var wg sync.WaitGroup
	wg.Add(2)

	// Writer
	go func() {
		defer wg.Done()
		for i := 0; i < 100; i++ {
			cache.Put(key, "abc123")
			time.Sleep(time.Millisecond * 5)
		}
	}()

	// Reader
	go func() {
		defer wg.Done()
		for i := 0; i < 100; i++ {
			cache.Get(key)
			time.Sleep(time.Millisecond * 5)
		}
	}()

	wg.Wait()
}
