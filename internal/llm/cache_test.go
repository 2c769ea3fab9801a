package llm

import (
	"testing"
	"time"
)

func TestProviderCache_BuildsOnce(t *testing.T) {
	builds := 0
	cache := NewProviderCache(time.Minute, func(lang string) (Provider, error) {
		builds++
		return NewOllamaProvider(Config{Model: "model-" + lang})
	})

	p1, err := cache.Get("bg")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	p2, err := cache.Get("bg")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}

	if builds != 1 {
		t.Errorf("Expected one build for repeated language, got %d", builds)
	}
	if p1 != p2 {
		t.Error("Repeated Get should return the cached handle")
	}
}

func TestProviderCache_PerLanguage(t *testing.T) {
	builds := 0
	cache := NewProviderCache(time.Minute, func(lang string) (Provider, error) {
		builds++
		return NewOllamaProvider(Config{Model: "model-" + lang})
	})

	if _, err := cache.Get("bg"); err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if _, err := cache.Get("it"); err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if builds != 2 {
		t.Errorf("Expected one build per language, got %d", builds)
	}
}

func TestProviderCache_FlushRebuilds(t *testing.T) {
	builds := 0
	cache := NewProviderCache(time.Minute, func(lang string) (Provider, error) {
		builds++
		return NewOllamaProvider(Config{Model: "m"})
	})

	_, _ = cache.Get("bg")
	cache.Flush()
	_, _ = cache.Get("bg")

	if builds != 2 {
		t.Errorf("Flush should drop handles, got %d builds", builds)
	}
}
