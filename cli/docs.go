package cli

import (
	"fmt"
	"strings"

	"github.com/morikuni/failure/v2"
	"github.com/pkg/browser"
	"github.com/spf13/cobra"

	"github.com/yomek/c7ctl/api/docstore"
)

var (
	docsBrowserFlag bool

	docsCmd = &cobra.Command{
		Use:   "docs <library>",
		Short: "Show cached documentation for a library",
		Long: `Displays the cached Context7 documentation for one tracked library,
including its configured docs sources. With --browser the library page on
context7.com is opened instead.`,
		Args: cobra.ExactArgs(1),
		RunE: runDocs,
	}
)

func init() {
	docsCmd.Flags().BoolVarP(&docsBrowserFlag, "browser", "b", false, "Open the library page on context7.com")
	rootCmd.AddCommand(docsCmd)
}

func runDocs(cmd *cobra.Command, args []string) error {
	name := args[0]

	snap, err := docstore.Load("")
	if err != nil {
		return failure.Wrap(err)
	}

	entry, ok := snap.Entry(name)
	if !ok || (entry.Content == "" && len(entry.Sources) == 0) {
		return failure.New(DocsNotCached,
			failure.Message(fmt.Sprintf("No cached documentation for %q, run `c7ctl refresh` first", name)),
			failure.Context{"library": name},
		)
	}

	if docsBrowserFlag {
		url := "https://context7.com" + entry.LibraryID
		if entry.LibraryID == "" {
			url = "https://context7.com/?q=" + name
		}
		fmt.Printf("Opening documentation in browser: %s\n", url)
		return browser.OpenURL(url)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", entry.Name)
	if entry.Content != "" {
		b.WriteString(entry.Content)
		b.WriteString("\n")
	}
	for _, src := range entry.Sources {
		title := src.Title
		if title == "" {
			title = src.URL
		}
		fmt.Fprintf(&b, "\n---\n\n## %s\n\n", title)
		b.WriteString(src.Content)
		b.WriteString("\n")
	}

	return showMarkdown(b.String())
}
