package autouse

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/yomek/c7ctl/api/docstore"
)

func testRules() Rules {
	return DefaultRules([]string{"vk api", "latest documentation", "use context7"})
}

func TestMatches(t *testing.T) {
	rules := testRules()

	tests := []struct {
		name  string
		query string
		want  bool
	}{
		{
			name:  "keyword in the middle",
			query: "show me the latest VK API methods",
			want:  true,
		},
		{
			name:  "case insensitive",
			query: "USE CONTEXT7 please",
			want:  true,
		},
		{
			name:  "no keyword",
			query: "how do I write a for loop",
			want:  false,
		},
		{
			name:  "empty query",
			query: "",
			want:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := rules.Matches(tt.query); got != tt.want {
				t.Errorf("Matches(%q) = %v, want %v", tt.query, got, tt.want)
			}
		})
	}
}

func TestMatchesDisabled(t *testing.T) {
	rules := testRules()
	rules.Enabled = false
	if rules.Matches("latest documentation please") {
		t.Error("disabled rules must never match")
	}
}

func testSnapshot() *docstore.Snapshot {
	return &docstore.Snapshot{
		LastRefresh: time.Date(2025, 9, 21, 0, 0, 0, 0, time.UTC),
		Available:   true,
		Libraries: map[string]docstore.LibraryEntry{
			"vk-api": {
				Name:    "vk-api",
				Content: "# VK API\n\nmessages.send(peer_id, message, random_id)",
			},
			"aiohttp": {
				Name:    "aiohttp",
				Content: "# aiohttp\n\nasync HTTP client/server",
			},
			"empty-lib": {
				Name: "empty-lib",
			},
		},
	}
}

func TestEnhancePassThrough(t *testing.T) {
	rules := testRules()
	got := rules.Enhance("how do I write a for loop", "base answer", testSnapshot())
	if got != "base answer" {
		t.Errorf("Enhance() on unmatched query = %q, want pass-through", got)
	}
}

func TestEnhanceNamedLibrary(t *testing.T) {
	rules := testRules()
	got := rules.Enhance("show latest documentation for vk-api", "base answer", testSnapshot())

	if !strings.HasPrefix(got, "base answer") {
		t.Error("Enhance() must keep the original response first")
	}
	if !strings.Contains(got, "## vk-api") {
		t.Error("Enhance() missing the named library section")
	}
	if strings.Contains(got, "## aiohttp") {
		t.Error("Enhance() should only include the library named in the query")
	}
	if !strings.Contains(got, "2025-09-21") {
		t.Error("Enhance() missing the refresh date")
	}
}

func TestEnhanceFallsBackToAllLibraries(t *testing.T) {
	rules := testRules()
	got := rules.Enhance("use context7", "base answer", testSnapshot())

	if !strings.Contains(got, "## aiohttp") || !strings.Contains(got, "## vk-api") {
		t.Error("Enhance() without a named library should include all cached libraries")
	}
	if strings.Contains(got, "## empty-lib") {
		t.Error("Enhance() must skip libraries without any cached content")
	}
	// Alphabetical section order
	if strings.Index(got, "## aiohttp") > strings.Index(got, "## vk-api") {
		t.Error("Enhance() sections not sorted")
	}
}

func TestExcerptTruncation(t *testing.T) {
	long := strings.Repeat("0123456789\n", 300)
	got := excerpt(long)
	if len(got) > excerptLimit+100 {
		t.Errorf("excerpt() length = %d, want at most ~%d", len(got), excerptLimit)
	}
	if !strings.Contains(got, "truncated") {
		t.Error("excerpt() should mark truncation")
	}

	short := "short content"
	if excerpt(short) != short {
		t.Error("excerpt() must not touch short content")
	}
}

func TestRulesRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), RulesFileName)

	want := DefaultRules([]string{"vk api", "vk api", "latest documentation"})
	if err := SaveRules(path, want); err != nil {
		t.Fatal(err)
	}

	got, err := LoadRules(path)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("rules round trip mismatch (-want +got):\n%s", diff)
	}
	// Duplicate keywords deduplicated by DefaultRules
	if len(got.Keywords) != 2 {
		t.Errorf("Keywords = %v, want deduplicated", got.Keywords)
	}
}

func TestLoadRulesMissingFile(t *testing.T) {
	rules, err := LoadRules(filepath.Join(t.TempDir(), "absent.json"))
	if err != nil {
		t.Fatal(err)
	}
	if rules.Enabled {
		t.Error("missing rules file should load as disabled")
	}
}
