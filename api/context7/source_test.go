package context7

import "testing"

func TestExtractTitle(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{
			name: "simple title",
			body: "<html><head><title>aiohttp docs</title></head><body></body></html>",
			want: "aiohttp docs",
		},
		{
			name: "whitespace trimmed",
			body: "<html><head><title>\n  VK API Reference\n</title></head></html>",
			want: "VK API Reference",
		},
		{
			name: "no title element",
			body: "<html><body><h1>heading</h1></body></html>",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := extractTitle(tt.body); got != tt.want {
				t.Errorf("extractTitle() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExtractLibraryID(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{
			name: "listing with marker",
			text: "Available Libraries:\n- Title: VK API\n- Context7-compatible library ID: /vk-com/vk-api\n- Description: ...",
			want: "/vk-com/vk-api",
		},
		{
			name: "bare id",
			text: "/upstash/context7",
			want: "/upstash/context7",
		},
		{
			name: "marker with versioned id",
			text: "Context7-compatible library ID: /aio-libs/aiohttp/v3.12.15",
			want: "/aio-libs/aiohttp/v3.12.15",
		},
		{
			name: "no id present",
			text: "No libraries matched your query.",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := extractLibraryID(tt.text); got != tt.want {
				t.Errorf("extractLibraryID() = %q, want %q", got, tt.want)
			}
		})
	}
}
