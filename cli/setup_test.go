package cli

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/yomek/c7ctl/api/autouse"
	"github.com/yomek/c7ctl/api/config"
	"github.com/yomek/c7ctl/editor"
)

func fakeChecker(found bool) prereqCheckerFn {
	return func(prereqs []editor.Prerequisite) []editor.CheckResult {
		results := make([]editor.CheckResult, 0, len(prereqs))
		for _, p := range prereqs {
			results = append(results, editor.CheckResult{
				Prerequisite: p,
				Found:        found,
				Version:      "v22.0.0",
			})
		}
		return results
	}
}

func TestRunSetupWithIO(t *testing.T) {
	dir := t.TempDir()
	mcpPath := filepath.Join(dir, "mcp.json")
	rulesPath := filepath.Join(dir, autouse.RulesFileName)

	cfg := &config.Config{
		APIKey: "k-123",
		Libraries: []config.Library{
			{Name: "vk-api"},
		},
	}

	var out bytes.Buffer
	if err := runSetupWithIO(&out, fakeChecker(true), cfg, mcpPath, rulesPath); err != nil {
		t.Fatal(err)
	}

	server, err := editor.Installed(mcpPath, editor.ServerName)
	if err != nil {
		t.Fatal(err)
	}
	if server == nil {
		t.Fatal("setup did not install the context7 server entry")
	}
	if server.Command != "npx" {
		t.Errorf("server.Command = %q", server.Command)
	}
	if server.Env["CONTEXT7_API_KEY"] != "k-123" {
		t.Errorf("server.Env = %v", server.Env)
	}

	rules, err := autouse.LoadRules(rulesPath)
	if err != nil {
		t.Fatal(err)
	}
	if !rules.Enabled || len(rules.Keywords) == 0 {
		t.Errorf("rules = %+v, want enabled with keywords", rules)
	}

	if !strings.Contains(out.String(), "Restart the editor") {
		t.Errorf("setup output missing restart hint:\n%s", out.String())
	}
}

func TestRunSetupWithIOMissingPrerequisites(t *testing.T) {
	dir := t.TempDir()
	mcpPath := filepath.Join(dir, "mcp.json")
	rulesPath := filepath.Join(dir, autouse.RulesFileName)

	var out bytes.Buffer
	err := runSetupWithIO(&out, fakeChecker(false), &config.Config{}, mcpPath, rulesPath)
	if err == nil {
		t.Fatal("setup with missing prerequisites should fail")
	}

	if !strings.Contains(out.String(), "nodejs.org") {
		t.Errorf("setup output missing install instructions:\n%s", out.String())
	}

	// Nothing must be written when prerequisites are missing
	if server, _ := editor.Installed(mcpPath, editor.ServerName); server != nil {
		t.Error("setup wrote editor configuration despite missing prerequisites")
	}
}
