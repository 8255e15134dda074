package editor

import (
	"os/exec"
	"strings"
)

// Prerequisite is a tool the Context7 integration depends on
type Prerequisite struct {
	Name        string
	Required    bool
	Description string
	InstallURL  string
}

// CheckResult is the outcome of looking for one prerequisite
type CheckResult struct {
	Prerequisite Prerequisite
	Found        bool
	Version      string
}

// DefaultPrerequisites lists the tools needed to run the Context7 server
func DefaultPrerequisites() []Prerequisite {
	return []Prerequisite{
		{
			Name:        "node",
			Required:    true,
			Description: "Node.js runtime, runs the Context7 MCP server",
			InstallURL:  "https://nodejs.org/",
		},
		{
			Name:        "npm",
			Required:    true,
			Description: "Node package manager",
			InstallURL:  "https://nodejs.org/",
		},
		{
			Name:        "npx",
			Required:    true,
			Description: "Node package runner, launches @upstash/context7-mcp",
			InstallURL:  "https://nodejs.org/",
		},
	}
}

// CheckAll looks up each prerequisite on PATH and records its version
func CheckAll(prereqs []Prerequisite) []CheckResult {
	results := make([]CheckResult, 0, len(prereqs))
	for _, p := range prereqs {
		results = append(results, check(p))
	}
	return results
}

func check(p Prerequisite) CheckResult {
	result := CheckResult{Prerequisite: p}

	if _, err := exec.LookPath(p.Name); err != nil {
		return result
	}
	result.Found = true

	out, err := exec.Command(p.Name, "--version").Output()
	if err == nil {
		result.Version = strings.TrimSpace(string(out))
	}

	return result
}

// AllRequiredFound reports whether every required prerequisite is present
func AllRequiredFound(results []CheckResult) bool {
	for _, r := range results {
		if r.Prerequisite.Required && !r.Found {
			return false
		}
	}
	return true
}
