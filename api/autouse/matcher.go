package autouse

import (
	"fmt"
	"sort"
	"strings"

	"github.com/yomek/c7ctl/api/docstore"
)

// excerptLimit bounds how much of a library's documentation is appended to a
// single response
const excerptLimit = 2000

// Matches reports whether the query should trigger automatic documentation
// use under these rules
func (r Rules) Matches(query string) bool {
	if !r.Enabled || query == "" {
		return false
	}

	q := strings.ToLower(query)
	for _, kw := range r.Keywords {
		if kw != "" && strings.Contains(q, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}

// Enhance appends cached documentation excerpts to a response when the query
// matches the rules. Unmatched queries return the response unchanged.
func (r Rules) Enhance(query, response string, snap *docstore.Snapshot) string {
	if !r.AutoEnhance || !r.Matches(query) {
		return response
	}

	entries := relevantEntries(query, snap)
	if len(entries) == 0 {
		return response
	}

	var b strings.Builder
	b.WriteString(response)
	b.WriteString("\n\n---\n")
	b.WriteString("**Up-to-date documentation (Context7)**\n\n")

	for _, entry := range entries {
		fmt.Fprintf(&b, "## %s\n\n", entry.Name)
		b.WriteString(excerpt(entry.Content))
		b.WriteString("\n")
		for _, src := range entry.Sources {
			title := src.Title
			if title == "" {
				title = src.URL
			}
			fmt.Fprintf(&b, "- [%s](%s)\n", title, src.URL)
		}
		b.WriteString("\n")
	}

	b.WriteString("---\n")
	b.WriteString("*Documentation retrieved through Context7, refreshed ")
	b.WriteString(snap.LastRefresh.Format("2006-01-02"))
	b.WriteString("*\n")

	return b.String()
}

// relevantEntries selects cached libraries mentioned in the query, falling
// back to every library with content when none is named explicitly
func relevantEntries(query string, snap *docstore.Snapshot) []docstore.LibraryEntry {
	if snap == nil {
		return nil
	}

	q := strings.ToLower(query)

	var named, all []docstore.LibraryEntry
	for _, entry := range snap.Libraries {
		if entry.Content == "" && len(entry.Sources) == 0 {
			continue
		}
		all = append(all, entry)
		if strings.Contains(q, strings.ToLower(entry.Name)) {
			named = append(named, entry)
		}
	}

	result := named
	if len(result) == 0 {
		result = all
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result
}

// excerpt truncates documentation content at a line boundary
func excerpt(content string) string {
	if len(content) <= excerptLimit {
		return content
	}

	cut := content[:excerptLimit]
	if idx := strings.LastIndexByte(cut, '\n'); idx > 0 {
		cut = cut[:idx]
	}
	return cut + "\n\n…(truncated, run `c7ctl docs <library>` for the full text)"
}
