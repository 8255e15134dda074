package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/yomek/c7ctl/api/registry"
	"github.com/yomek/c7ctl/log"
)

var (
	versionsForce bool

	versionsCmd = &cobra.Command{
		Use:   "versions",
		Short: "Report latest published versions of tracked libraries",
		Long: `Looks up the latest published version of every tracked library on the
npm registry and compares it against the pinned version from c7ctl.yaml.
The Context7 server package itself is always included.`,
		RunE: runVersions,
	}
)

func init() {
	versionsCmd.Flags().BoolVarP(&versionsForce, "force", "f", false, "Ignore cached registry responses")
	rootCmd.AddCommand(versionsCmd)
}

func runVersions(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	type row struct {
		name, pinned string
	}
	rows := []row{{name: "@upstash/context7-mcp"}}
	for _, lib := range cfg.Libraries {
		rows = append(rows, row{name: lib.Name, pinned: lib.Version})
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "LIBRARY\tPINNED\tLATEST\tSTATUS")

	for _, r := range rows {
		info, err := registry.LatestNPM(r.name, versionsForce)
		if err != nil {
			log.Debug("Version lookup failed", "library", r.name, "error", err)
			fmt.Fprintf(w, "%s\t%s\t-\tnot on npm\n", r.name, orDash(r.pinned))
			continue
		}

		status := "-"
		switch {
		case r.pinned == "":
			status = "untracked"
		case r.pinned == info.Latest:
			status = "up to date"
		default:
			status = "outdated"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", r.name, orDash(r.pinned), orDash(info.Latest), status)
	}

	return w.Flush()
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
