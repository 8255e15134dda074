package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/morikuni/failure/v2"
	"github.com/spf13/cobra"

	"github.com/yomek/c7ctl/api/autouse"
	"github.com/yomek/c7ctl/api/config"
	"github.com/yomek/c7ctl/editor"
)

var (
	setupConfigPath string

	setupCmd = &cobra.Command{
		Use:   "setup",
		Short: "Install the Context7 server into the editor and enable automatic use",
		Long: `Configures everything needed for automatic Context7 usage:

  - Checks required tools (node, npm, npx) and shows install instructions
  - Writes the mcpServers.context7 entry into the editor MCP configuration
  - Writes the automatic-use rules file with the configured keywords

Restart the editor afterwards so it picks up the new MCP server.`,
		RunE: runSetup,
	}
)

func init() {
	setupCmd.Flags().StringVar(&setupConfigPath, "mcp-config", "", "Editor MCP configuration file (default: ~/.cursor/mcp.json)")
	rootCmd.AddCommand(setupCmd)
}

// prereqCheckerFn is the type for the prerequisite check function
type prereqCheckerFn func([]editor.Prerequisite) []editor.CheckResult

func runSetup(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	mcpPath := setupConfigPath
	if mcpPath == "" {
		mcpPath, err = editor.DefaultConfigPath()
		if err != nil {
			return failure.Wrap(err)
		}
	}

	rulesPath, err := autouse.DefaultPath()
	if err != nil {
		return failure.Wrap(err)
	}

	return runSetupWithIO(os.Stdout, editor.CheckAll, cfg, mcpPath, rulesPath)
}

func runSetupWithIO(output io.Writer, checker prereqCheckerFn, cfg *config.Config, mcpPath, rulesPath string) error {
	fmt.Fprintln(output, "=== c7ctl setup ===")
	fmt.Fprintln(output)
	fmt.Fprintln(output, "Checking prerequisites...")

	results := checker(editor.DefaultPrerequisites())
	for _, r := range results {
		var status string
		switch {
		case r.Found:
			status = "✓"
		case r.Prerequisite.Required:
			status = "✗"
		default:
			status = "○"
		}

		line := fmt.Sprintf("  %s %s", status, r.Prerequisite.Name)
		if r.Found && r.Version != "" {
			line += fmt.Sprintf(" (%s)", r.Version)
		} else if !r.Found {
			line += " [not found]"
		}
		fmt.Fprintln(output, line)
	}
	fmt.Fprintln(output)

	if !editor.AllRequiredFound(results) {
		for _, r := range results {
			if !r.Found && r.Prerequisite.Required {
				fmt.Fprintf(output, "  %s — %s\n", r.Prerequisite.Name, r.Prerequisite.Description)
				fmt.Fprintf(output, "    Install: %s\n", r.Prerequisite.InstallURL)
			}
		}
		return failure.New(SetupIncomplete,
			failure.Message("Required tools are missing, install them and run setup again"),
		)
	}

	server := editor.Context7Server(cfg.ServerEnv())
	if err := editor.Install(mcpPath, editor.ServerName, server); err != nil {
		return failure.Wrap(err)
	}
	fmt.Fprintf(output, "Editor MCP configuration written: %s\n", mcpPath)

	rules := autouse.DefaultRules(cfg.EffectiveKeywords())
	if err := autouse.SaveRules(rulesPath, rules); err != nil {
		return failure.Wrap(err)
	}
	fmt.Fprintf(output, "Automatic-use rules written: %s\n", rulesPath)

	fmt.Fprintln(output)
	fmt.Fprintln(output, "Setup complete. Next steps:")
	fmt.Fprintln(output, "  1. Restart the editor so it loads the context7 MCP server")
	fmt.Fprintln(output, "  2. Run `c7ctl refresh` to build the documentation cache")
	fmt.Fprintln(output, "  3. Run `c7ctl check` if the server does not show up")
	if cfg.APIKey == "" {
		fmt.Fprintln(output)
		fmt.Fprintln(output, "No API key configured. Higher rate limits: https://context7.com")
	}

	return nil
}
