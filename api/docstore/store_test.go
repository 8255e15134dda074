package docstore

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestLoadMissingFile(t *testing.T) {
	snap, err := Load(filepath.Join(t.TempDir(), "absent.json"))
	if err != nil {
		t.Fatal(err)
	}
	if !snap.IsEmpty() {
		t.Error("missing snapshot file should load as empty")
	}
}

func TestLoadCorruptedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), SnapshotFileName)
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("Load() with corrupted snapshot should fail")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), SnapshotFileName)

	want := &Snapshot{
		LastRefresh: time.Date(2025, 9, 21, 12, 0, 0, 0, time.UTC),
		Available:   true,
		ServerTools: []string{"resolve-library-id", "get-library-docs"},
		Libraries: map[string]LibraryEntry{
			"vk-api": {
				Name:      "vk-api",
				LibraryID: "/vk-com/vk-api",
				Content:   "# VK API\n\nmessages.send parameters...",
				FetchedAt: time.Date(2025, 9, 21, 12, 0, 0, 0, time.UTC),
				Sources: []SourceEntry{
					{URL: "https://dev.vk.com/en/reference", Title: "VK API Reference"},
				},
			},
		},
	}

	if err := want.Save(path); err != nil {
		t.Fatal(err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("snapshot round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestSummaryEmpty(t *testing.T) {
	snap := &Snapshot{Libraries: map[string]LibraryEntry{}}
	got := snap.Summary()
	if !strings.Contains(got, "c7ctl refresh") {
		t.Errorf("empty summary should point at the refresh command, got:\n%s", got)
	}
}

func TestSummary(t *testing.T) {
	snap := &Snapshot{
		LastRefresh: time.Date(2025, 9, 21, 12, 0, 0, 0, time.UTC),
		Available:   true,
		Libraries: map[string]LibraryEntry{
			"aiohttp": {
				Name:       "aiohttp",
				FetchError: "Context7 documentation fetch failed",
			},
			"vk-api": {
				Name:      "vk-api",
				LibraryID: "/vk-com/vk-api",
				Content:   "docs body",
				FetchedAt: time.Date(2025, 9, 21, 12, 0, 0, 0, time.UTC),
			},
		},
	}

	got := snap.Summary()

	for _, want := range []string{
		"Context7: available",
		"## aiohttp",
		"## vk-api",
		"`/vk-com/vk-api`",
		"Last fetch error: Context7 documentation fetch failed",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("Summary() missing %q in:\n%s", want, got)
		}
	}

	// Libraries are listed alphabetically
	if strings.Index(got, "## aiohttp") > strings.Index(got, "## vk-api") {
		t.Error("Summary() libraries not sorted")
	}
}
