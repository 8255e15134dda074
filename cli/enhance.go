package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/morikuni/failure/v2"
	"github.com/spf13/cobra"

	"github.com/yomek/c7ctl/api/autouse"
	"github.com/yomek/c7ctl/api/docstore"
)

var enhanceCmd = &cobra.Command{
	Use:   "enhance <query>",
	Short: "Enhance a response with cached documentation when the query matches",
	Long: `Applies the automatic-use rules to the query. When a keyword matches,
cached documentation excerpts are appended to the response; otherwise the
response passes through unchanged.

The response text is read from stdin when piped, e.g.:

  echo "the draft answer" | c7ctl enhance "latest vk api methods"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runEnhance,
}

func init() {
	rootCmd.AddCommand(enhanceCmd)
}

func runEnhance(cmd *cobra.Command, args []string) error {
	query := strings.Join(args, " ")
	if strings.TrimSpace(query) == "" {
		return failure.New(NoQuerySpecified,
			failure.Message("A query is required"),
		)
	}

	rules, err := loadRules()
	if err != nil {
		return err
	}

	snap, err := docstore.Load("")
	if err != nil {
		return failure.Wrap(err)
	}

	var response string
	if !isatty.IsTerminal(os.Stdin.Fd()) {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return failure.Wrap(err)
		}
		response = strings.TrimRight(string(data), "\n")
	}

	fmt.Println(rules.Enhance(query, response, snap))
	return nil
}

// loadRules reads the automatic-use rules, falling back to defaults built
// from the project configuration when setup has not run yet
func loadRules() (autouse.Rules, error) {
	path, err := autouse.DefaultPath()
	if err != nil {
		return autouse.Rules{}, failure.Wrap(err)
	}

	rules, err := autouse.LoadRules(path)
	if err != nil {
		return autouse.Rules{}, err
	}
	if len(rules.Keywords) > 0 {
		return rules, nil
	}

	cfg, err := loadConfig()
	if err != nil {
		return autouse.Rules{}, err
	}
	return autouse.DefaultRules(cfg.EffectiveKeywords()), nil
}
