package registry

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestFetchNPM(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/vk-io":
			w.Write([]byte(`{
				"dist-tags": {"latest": "4.9.1", "next": "5.0.0-rc.1"},
				"homepage": "https://negezor.github.io/vk-io/"
			}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	orig := npmRegistryBaseURL
	npmRegistryBaseURL = srv.URL
	defer func() { npmRegistryBaseURL = orig }()

	got, err := fetchNPM("vk-io")
	if err != nil {
		t.Fatal(err)
	}

	want := PackageInfo{
		Name:     "vk-io",
		Latest:   "4.9.1",
		Homepage: "https://negezor.github.io/vk-io/",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("fetchNPM() mismatch (-want +got):\n%s", diff)
	}

	if _, err := fetchNPM("no-such-package"); err == nil {
		t.Error("fetchNPM() with unknown package should fail")
	}
}
