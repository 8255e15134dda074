package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/yomek/c7ctl/api"
	"github.com/yomek/c7ctl/api/cache"
	"github.com/yomek/c7ctl/api/config"
	"github.com/yomek/c7ctl/mcp"
)

var (
	// Command line flags
	configFlag string

	// Root command
	rootCmd = &cobra.Command{
		Use:           "c7ctl",
		Short:         "Manage the Context7 MCP server integration",
		SilenceErrors: true,
		SilenceUsage:  true,
		Long: `c7ctl manages the Context7 MCP server integration for your editor:
it installs the mcpServers entry, keeps a local documentation cache fresh,
and enhances responses with up-to-date library documentation.

Typical flow:
  c7ctl setup      # install the editor configuration
  c7ctl refresh    # build the documentation cache
  c7ctl status     # inspect what is cached`,
	}

	// Version command
	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  "Print detailed version information about c7ctl",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("c7ctl version %s\n", api.Version)
			if api.VersionCommit != "" {
				fmt.Printf("  commit: %s\n", api.VersionCommit)
			}
		},
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "Path to c7ctl.yaml (default: working directory, then user config dir)")
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(mcp.Command())
}

// Run executes the main CLI functionality
func Run() error {
	return rootCmd.Execute()
}

// loadConfig loads the project configuration honoring the --config flag
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configFlag)
	if err != nil {
		return nil, err
	}
	if ttl := time.Duration(cfg.CacheTTL); ttl > 0 {
		cache.DefaultTTL = ttl
	}
	return cfg, nil
}

// serverEnvFor builds the CONTEXT7_* environment for launching the server
// process locally
func serverEnvFor(cfg *config.Config) map[string]string {
	env := map[string]string{}
	if cfg.APIKey != "" {
		env["CONTEXT7_API_KEY"] = cfg.APIKey
	}
	if cfg.BaseURL != "" && cfg.BaseURL != config.DefaultBaseURL {
		env["CONTEXT7_BASE_URL"] = cfg.BaseURL
	}
	return env
}
