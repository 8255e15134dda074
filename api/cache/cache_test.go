package cache

import (
	"errors"
	"testing"
	"time"
)

func TestNormalizeKey(t *testing.T) {
	tests := []struct {
		name string
		key  string
		want string
	}{
		{
			name: "plain key",
			key:  "vk-api",
			want: "vk-api",
		},
		{
			name: "scoped npm package",
			key:  "@upstash/context7-mcp",
			want: "_upstash_context7-mcp",
		},
		{
			name: "url key",
			key:  "https://api.context7.com/v1/docs",
			want: "https___api.context7.com_v1_docs",
		},
		{
			name: "parent traversal collapsed",
			key:  "a..b....c",
			want: "a.b.c",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := normalizeKey(tt.key); got != tt.want {
				t.Errorf("normalizeKey(%q) = %q, want %q", tt.key, got, tt.want)
			}
		})
	}
}

func TestGetOrSet(t *testing.T) {
	c := New[string]("test")
	if err := c.SetDir(t.TempDir()); err != nil {
		t.Fatal(err)
	}

	calls := 0
	gen := func() (string, error) {
		calls++
		return "value", nil
	}

	got, err := c.GetOrSet("key", gen, false)
	if err != nil {
		t.Fatal(err)
	}
	if got != "value" || calls != 1 {
		t.Errorf("first GetOrSet: got %q, calls=%d", got, calls)
	}

	// Second call should hit the cache
	got, err = c.GetOrSet("key", gen, false)
	if err != nil {
		t.Fatal(err)
	}
	if got != "value" || calls != 1 {
		t.Errorf("cached GetOrSet: got %q, calls=%d", got, calls)
	}

	// forceUpdate regenerates
	_, err = c.GetOrSet("key", gen, true)
	if err != nil {
		t.Fatal(err)
	}
	if calls != 2 {
		t.Errorf("forced GetOrSet: calls=%d, want 2", calls)
	}
}

func TestGetOrSetExpiry(t *testing.T) {
	c := New[int]("test")
	if err := c.SetDir(t.TempDir()); err != nil {
		t.Fatal(err)
	}
	c.SetTTL(-time.Second)

	calls := 0
	gen := func() (int, error) {
		calls++
		return calls, nil
	}

	for i := 1; i <= 2; i++ {
		got, err := c.GetOrSet("n", gen, false)
		if err != nil {
			t.Fatal(err)
		}
		if got != i {
			t.Errorf("GetOrSet with expired TTL: got %d, want %d", got, i)
		}
	}
}

func TestGetOrSetGeneratorError(t *testing.T) {
	c := New[string]("test")
	if err := c.SetDir(t.TempDir()); err != nil {
		t.Fatal(err)
	}

	wantErr := errors.New("fetch failed")
	_, err := c.GetOrSet("key", func() (string, error) {
		return "", wantErr
	}, false)
	if !errors.Is(err, wantErr) {
		t.Errorf("GetOrSet error = %v, want %v", err, wantErr)
	}

	if _, ok := c.Get("key"); ok {
		t.Error("failed generation must not be cached")
	}
}
