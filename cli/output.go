package cli

import (
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/mattn/go-isatty"
	"github.com/morikuni/failure/v2"
)

// showMarkdown renders markdown for the terminal and pages it when stdout is
// a TTY. Non-interactive output gets the plain rendered text.
func showMarkdown(content string) error {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return failure.Wrap(err)
	}

	out, err := renderer.Render(content)
	if err != nil {
		return failure.Wrap(err)
	}

	if !isatty.IsTerminal(os.Stdout.Fd()) {
		fmt.Print(out)
		return nil
	}

	return RunPager(out)
}
