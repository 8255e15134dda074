package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/morikuni/failure/v2"
	"github.com/spf13/cobra"

	"github.com/yomek/c7ctl/api/context7"
	"github.com/yomek/c7ctl/api/docstore"
)

var (
	refreshForce bool

	refreshCmd = &cobra.Command{
		Use:   "refresh",
		Short: "Refresh the local documentation cache",
		Long: `Probes the Context7 MCP server, pulls documentation for every library
tracked in c7ctl.yaml plus their configured docs sources, and persists the
cache. When Context7 is unreachable the previously cached documentation is
kept and only the availability status changes.`,
		RunE: runRefresh,
	}

	statusCmd = &cobra.Command{
		Use:   "status",
		Short: "Show a summary of the cached documentation",
		RunE:  runStatus,
	}

	checkCmd = &cobra.Command{
		Use:   "check",
		Short: "Check that the Context7 MCP server can be reached",
		RunE:  runCheck,
	}
)

func init() {
	refreshCmd.Flags().BoolVarP(&refreshForce, "force", "f", false, "Ignore cached docs source pages and re-fetch everything")
	rootCmd.AddCommand(refreshCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(checkCmd)
}

func runRefresh(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if len(cfg.Libraries) == 0 {
		fmt.Println("No libraries tracked in c7ctl.yaml, recording availability only.")
	}

	refresher := docstore.NewRefresher(cfg)
	snap, err := refresher.Refresh(cmd.Context(), refreshForce)
	if err != nil {
		return failure.Wrap(err)
	}

	fmt.Printf("Documentation cache refreshed at %s\n", snap.LastRefresh.Format(time.RFC3339))
	if !snap.Available {
		fmt.Println("Context7 was unreachable, cached documentation was kept as-is.")
	}
	for name, entry := range snap.Libraries {
		if entry.FetchError != "" {
			fmt.Printf("  %s: %s\n", name, entry.FetchError)
		}
	}

	return nil
}

func runStatus(cmd *cobra.Command, args []string) error {
	snap, err := docstore.Load("")
	if err != nil {
		return failure.Wrap(err)
	}

	return showMarkdown(snap.Summary())
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	client := context7.NewClient(serverEnvFor(cfg))
	info, err := client.Probe(cmd.Context())
	if err != nil {
		return failure.Wrap(err)
	}

	fmt.Println("Context7 is available")
	if len(info.Tools) > 0 {
		fmt.Printf("  tools: %s\n", strings.Join(info.Tools, ", "))
	}
	return nil
}
