package config

import (
	"sync"
	"testing"
)

func TestNewResolver(t *testing.T) {
	cfg := &Config{Upstream: UpstreamConfig{BaseURL: "http://api:8080"}}
	r := NewResolver(cfg)

	if got := r.ResolveAPIBase(); got != "http://api:8080" {
		t.Errorf("ResolveAPIBase() = %q, want %q", got, "http://api:8080")
	}

	// The resolver captures the value; later config edits do not leak in.
	cfg.Upstream.BaseURL = "http://other:9090"
	if got := r.ResolveAPIBase(); got != "http://api:8080" {
		t.Errorf("ResolveAPIBase() after config change = %q, want %q", got, "http://api:8080")
	}
}

func TestResolver_Unset(t *testing.T) {
	r := NewResolver(&Config{})
	if got := r.ResolveAPIBase(); got != "" {
		t.Errorf("ResolveAPIBase() = %q, want empty", got)
	}
}

func TestResolver_ConcurrentReads(t *testing.T) {
	r := StaticResolver("http://api:8080")

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if got := r.ResolveAPIBase(); got != "http://api:8080" {
				t.Errorf("ResolveAPIBase() = %q, want %q", got, "http://api:8080")
			}
		}()
	}
	wg.Wait()
}
