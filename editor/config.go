// Package editor installs the Context7 entry into the editor's MCP server
// configuration.
package editor

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/morikuni/failure/v2"
)

// ErrorCode defines error types for editor configuration operations
type ErrorCode string

const (
	ErrConfigParse ErrorCode = "EditorConfigParse"
	ErrConfigWrite ErrorCode = "EditorConfigWrite"
)

func (c ErrorCode) ErrorCode() string {
	return string(c)
}

// ServerConfig is one entry in the editor's mcpServers map
type ServerConfig struct {
	Command string            `json:"command"`
	Args    []string          `json:"args,omitempty"`
	Env     map[string]string `json:"env,omitempty"`
}

// ServerName is the key under which the Context7 server is registered
const ServerName = "context7"

// Context7Server builds the standard Context7 server entry
func Context7Server(env map[string]string) ServerConfig {
	cfg := ServerConfig{
		Command: "npx",
		Args:    []string{"-y", "@upstash/context7-mcp"},
	}
	if len(env) > 0 {
		cfg.Env = env
	}
	return cfg
}

// DefaultConfigPath returns the Cursor MCP configuration file location
func DefaultConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", failure.Wrap(err)
	}
	return filepath.Join(home, ".cursor", "mcp.json"), nil
}

// Install merges a server entry into the editor configuration at path,
// creating the file when missing. Existing servers and unknown top-level
// keys are preserved.
func Install(path, name string, server ServerConfig) error {
	// The file may carry keys other than mcpServers, keep them intact
	top := map[string]json.RawMessage{}

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return failure.Wrap(err, failure.Context{"path": path})
		}
	} else if len(data) > 0 {
		if err := json.Unmarshal(data, &top); err != nil {
			return failure.New(ErrConfigParse,
				failure.Message("Editor MCP configuration is not valid JSON, fix it before running setup"),
				failure.Context{"path": path, "cause": err.Error()},
			)
		}
	}

	servers := map[string]json.RawMessage{}
	if raw, ok := top["mcpServers"]; ok {
		if err := json.Unmarshal(raw, &servers); err != nil {
			return failure.New(ErrConfigParse,
				failure.Message("Editor MCP configuration has an unexpected mcpServers shape"),
				failure.Context{"path": path, "cause": err.Error()},
			)
		}
	}

	entry, err := json.Marshal(server)
	if err != nil {
		return failure.Wrap(err)
	}
	servers[name] = entry

	rawServers, err := json.Marshal(servers)
	if err != nil {
		return failure.Wrap(err)
	}
	top["mcpServers"] = rawServers

	out, err := json.MarshalIndent(top, "", "  ")
	if err != nil {
		return failure.Wrap(err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return failure.New(ErrConfigWrite,
			failure.Message("Editor configuration directory could not be created"),
			failure.Context{"path": path, "cause": err.Error()},
		)
	}
	if err := os.WriteFile(path, append(out, '\n'), 0644); err != nil {
		return failure.New(ErrConfigWrite,
			failure.Message("Editor MCP configuration could not be written"),
			failure.Context{"path": path, "cause": err.Error()},
		)
	}

	return nil
}

// Installed reads back the server entry with the given name, if present
func Installed(path, name string) (*ServerConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, failure.Wrap(err, failure.Context{"path": path})
	}

	var top struct {
		MCPServers map[string]ServerConfig `json:"mcpServers"`
	}
	if err := json.Unmarshal(data, &top); err != nil {
		return nil, failure.New(ErrConfigParse,
			failure.Message("Editor MCP configuration is not valid JSON"),
			failure.Context{"path": path, "cause": err.Error()},
		)
	}

	server, ok := top.MCPServers[name]
	if !ok {
		return nil, nil
	}
	return &server, nil
}
