package docstore

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Summary renders the snapshot as markdown for the status command
func (s *Snapshot) Summary() string {
	var b strings.Builder

	b.WriteString("# Documentation cache\n\n")

	if s.IsEmpty() {
		b.WriteString("No documentation cached yet. Run `c7ctl refresh` to build the cache.\n")
		return b.String()
	}

	status := "unavailable"
	if s.Available {
		status = "available"
	}
	fmt.Fprintf(&b, "- Last refresh: %s\n", s.LastRefresh.Format(time.RFC3339))
	fmt.Fprintf(&b, "- Context7: %s\n", status)
	if len(s.ServerTools) > 0 {
		fmt.Fprintf(&b, "- Server tools: %s\n", strings.Join(s.ServerTools, ", "))
	}
	fmt.Fprintf(&b, "- Libraries: %d\n\n", len(s.Libraries))

	names := make([]string, 0, len(s.Libraries))
	for name := range s.Libraries {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		entry := s.Libraries[name]

		fmt.Fprintf(&b, "## %s\n\n", name)
		if entry.LibraryID != "" {
			fmt.Fprintf(&b, "- ID: `%s`\n", entry.LibraryID)
		}
		if entry.Topic != "" {
			fmt.Fprintf(&b, "- Topic: %s\n", entry.Topic)
		}
		if entry.Content != "" {
			fmt.Fprintf(&b, "- Docs: %d characters, fetched %s\n",
				len(entry.Content), entry.FetchedAt.Format(time.RFC3339))
		} else {
			b.WriteString("- Docs: none cached\n")
		}
		for _, src := range entry.Sources {
			title := src.Title
			if title == "" {
				title = src.URL
			}
			fmt.Fprintf(&b, "- Source: [%s](%s)\n", title, src.URL)
		}
		if entry.FetchError != "" {
			fmt.Fprintf(&b, "- Last fetch error: %s\n", entry.FetchError)
		}
		b.WriteString("\n")
	}

	return b.String()
}
