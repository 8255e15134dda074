package docstore

import (
	"context"
	"testing"
	"time"

	"github.com/yomek/c7ctl/api/config"
)

func TestRefreshLibraryKeepsPreviousContentWhenUnavailable(t *testing.T) {
	r := NewRefresher(&config.Config{})

	fetched := time.Date(2025, 9, 20, 0, 0, 0, 0, time.UTC)
	prev := &Snapshot{
		Libraries: map[string]LibraryEntry{
			"vk-api": {
				Name:      "vk-api",
				LibraryID: "/vk-com/vk-api",
				Content:   "cached docs",
				FetchedAt: fetched,
			},
		},
	}

	entry := r.refreshLibrary(context.Background(), config.Library{Name: "vk-api"}, false, prev, false)

	if entry.Content != "cached docs" {
		t.Errorf("Content = %q, want previous content kept", entry.Content)
	}
	if entry.LibraryID != "/vk-com/vk-api" {
		t.Errorf("LibraryID = %q", entry.LibraryID)
	}
	if !entry.FetchedAt.Equal(fetched) {
		t.Errorf("FetchedAt = %v, want original fetch time", entry.FetchedAt)
	}
}

func TestRefreshLibraryWithoutPreviousContent(t *testing.T) {
	r := NewRefresher(&config.Config{})

	prev := &Snapshot{Libraries: map[string]LibraryEntry{}}
	entry := r.refreshLibrary(context.Background(), config.Library{Name: "aiohttp"}, false, prev, false)

	if entry.Name != "aiohttp" {
		t.Errorf("Name = %q", entry.Name)
	}
	if entry.Content != "" {
		t.Errorf("Content = %q, want empty when Context7 is unavailable", entry.Content)
	}
}
