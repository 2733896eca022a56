package secrets

import (
	"sync"
	"testing"
	"time"
)

// helper: creates a sample secret map
func sampleSecret() map[string]string {
	return map[string]string{
		"client_id":     "abc123",
		"client_secret": "def456",
	}
}

func TestCache_PutAndGet(t *testing.T) {
	cache := NewCache[map[string]string](2 * time.Second)
	key := "dev/tradingview/oauth"

	// should miss initially
	if _, ok := cache.Get(key); ok {
		t.Fatal("expected miss on empty cache")
	}

	cache.Put(key, sampleSecret())

	// immediate hit
	if m, ok := cache.Get(key); !ok {
		t.Fatal("expected cache hit")
	} else if m["client_id"] != "abc123" {
		t.Errorf("expected client_id=abc123, got %s", m["client_id"])
	}
}

func TestCache_Expiration(t *testing.T) {
	cache := NewCache[map[string]string](500 * time.Millisecond)
	key := "dev/tradingview/oauth"
	cache.Put(key, sampleSecret())

	time.Sleep(600 * time.Millisecond)

	if _, ok := cache.Get(key); ok {
		t.Fatal("expected expired cache entry")
	}
}

func TestCache_Bust(t *testing.T) {
	cache := NewCache[map[string]string](5 * time.Second)
	key := "dev/tradingview/oauth"
	cache.Put(key, sampleSecret())

	cache.Bust(key)
	if _, ok := cache.Get(key); ok {
		t.Fatal("expected cache miss after bust")
	}
}

func TestCache_ConcurrentAccess(t *testing.T) {
	cache := NewCache[map[string]string](2 * time.Second)
	key := "dev/tradingview/oauth"

	var wg sync.WaitGroup
	wg.Add(2)

	// Writer
	go func() {
		defer wg.Done()
		for i := 0; i < 100; i++ {
			cache.Put(key, sampleSecret())
		}
	}()

	// Reader
	go func() {
		defer wg.Done()
		for i := 0; i < 100; i++ {
			cache.Get(key)
		}
	}()

	wg.Wait()
}
