// Package context7 talks to the Context7 MCP server over stdio.
//
// The server is launched the same way the editor launches it
// (npx -y @upstash/context7-mcp), so a successful handshake here means the
// editor integration can work too.
package context7

import (
	"context"
	"fmt"
	"strings"
	"time"

	mcpclient "github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/morikuni/failure/v2"
	"github.com/yomek/c7ctl/api"
	"github.com/yomek/c7ctl/log"
)

const (
	// DefaultCommand launches the Context7 MCP server
	DefaultCommand = "npx"

	// DefaultTimeout bounds a single server interaction
	DefaultTimeout = 30 * time.Second
)

// DefaultArgs are the arguments for DefaultCommand
var DefaultArgs = []string{"-y", "@upstash/context7-mcp"}

// Client launches and queries the Context7 MCP server
type Client struct {
	// Command and Args override how the server process is started
	Command string
	Args    []string

	// Env holds CONTEXT7_* variables passed to the server process
	Env map[string]string

	// Timeout bounds each server interaction, DefaultTimeout when zero
	Timeout time.Duration
}

// ServerInfo describes the Context7 server reached during a probe
type ServerInfo struct {
	Name    string
	Version string
	Tools   []string
}

// LibraryDocs is documentation returned by Context7 for one library
type LibraryDocs struct {
	// LibraryID is the Context7-compatible library ID (e.g. "/vk-com/vk-api")
	LibraryID string

	// Content is the documentation text, markdown
	Content string
}

// NewClient creates a client with the default launch command
func NewClient(env map[string]string) *Client {
	return &Client{
		Command: DefaultCommand,
		Args:    DefaultArgs,
		Env:     env,
		Timeout: DefaultTimeout,
	}
}

func (c *Client) timeout() time.Duration {
	if c.Timeout > 0 {
		return c.Timeout
	}
	return DefaultTimeout
}

func (c *Client) envSlice() []string {
	var env []string
	for k, v := range c.Env {
		env = append(env, k+"="+v)
	}
	return env
}

// connect starts the server process and performs the MCP handshake
func (c *Client) connect(ctx context.Context) (*mcpclient.StdioMCPClient, *mcp.InitializeResult, error) {
	command := c.Command
	if command == "" {
		command = DefaultCommand
	}
	args := c.Args
	if args == nil {
		args = DefaultArgs
	}

	log.Debug("Starting Context7 server", "command", command, "args", args)

	cli, err := mcpclient.NewStdioMCPClient(command, c.envSlice(), args...)
	if err != nil {
		return nil, nil, failure.New(ErrUnavailable,
			failure.Message("Context7 server could not be started. Is Node.js installed?"),
			failure.Context{"command": command, "cause": err.Error()},
		)
	}

	initReq := mcp.InitializeRequest{}
	initReq.Params.ProtocolVersion = mcp.LATEST_PROTOCOL_VERSION
	initReq.Params.ClientInfo = mcp.Implementation{
		Name:    "c7ctl",
		Version: api.Version,
	}

	initRes, err := cli.Initialize(ctx, initReq)
	if err != nil {
		cli.Close()
		return nil, nil, failure.New(ErrUnavailable,
			failure.Message("Context7 server did not answer the MCP handshake"),
			failure.Context{"command": command, "cause": err.Error()},
		)
	}

	return cli, initRes, nil
}

// Probe checks that the Context7 server can be launched and lists its tools
func (c *Client) Probe(ctx context.Context) (*ServerInfo, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout())
	defer cancel()

	cli, initRes, err := c.connect(ctx)
	if err != nil {
		return nil, err
	}
	defer cli.Close()

	info := &ServerInfo{
		Name:    initRes.ServerInfo.Name,
		Version: initRes.ServerInfo.Version,
	}

	tools, err := cli.ListTools(ctx, mcp.ListToolsRequest{})
	if err != nil {
		// The handshake succeeded, the server is reachable even if tool
		// listing is not supported
		log.Warn("Context7 tool listing failed", "error", err)
		return info, nil
	}
	for _, t := range tools.Tools {
		info.Tools = append(info.Tools, t.Name)
	}

	return info, nil
}

// ResolveLibraryID resolves a library name to a Context7-compatible ID
func (c *Client) ResolveLibraryID(ctx context.Context, name string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout())
	defer cancel()

	cli, _, err := c.connect(ctx)
	if err != nil {
		return "", err
	}
	defer cli.Close()

	return c.resolveLibraryID(ctx, cli, name)
}

func (c *Client) resolveLibraryID(ctx context.Context, cli *mcpclient.StdioMCPClient, name string) (string, error) {
	req := mcp.CallToolRequest{}
	req.Params.Name = "resolve-library-id"
	req.Params.Arguments = map[string]interface{}{
		"libraryName": name,
	}

	res, err := cli.CallTool(ctx, req)
	if err != nil {
		return "", failure.New(ErrToolFailed,
			failure.Message("Context7 library resolution failed"),
			failure.Context{"library": name, "cause": err.Error()},
		)
	}

	text := textFromResult(res)
	id := extractLibraryID(text)
	if id == "" {
		return "", failure.New(ErrLibraryNotFound,
			failure.Message(fmt.Sprintf("Context7 does not know the library %q", name)),
			failure.Context{"library": name},
		)
	}
	return id, nil
}

// FetchDocs retrieves documentation for the named library. The topic narrows
// the returned sections when non-empty.
func (c *Client) FetchDocs(ctx context.Context, name, topic string) (*LibraryDocs, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout())
	defer cancel()

	cli, _, err := c.connect(ctx)
	if err != nil {
		return nil, err
	}
	defer cli.Close()

	id := name
	if !strings.HasPrefix(name, "/") {
		// Plain names need resolving first, IDs like /org/project are
		// passed through
		id, err = c.resolveLibraryID(ctx, cli, name)
		if err != nil {
			return nil, err
		}
	}

	req := mcp.CallToolRequest{}
	req.Params.Name = "get-library-docs"
	args := map[string]interface{}{
		"context7CompatibleLibraryID": id,
	}
	if topic != "" {
		args["topic"] = topic
	}
	req.Params.Arguments = args

	res, err := cli.CallTool(ctx, req)
	if err != nil {
		return nil, failure.New(ErrToolFailed,
			failure.Message("Context7 documentation fetch failed"),
			failure.Context{"library": name, "id": id, "cause": err.Error()},
		)
	}
	if res.IsError {
		return nil, failure.New(ErrToolFailed,
			failure.Message("Context7 reported an error for the documentation fetch"),
			failure.Context{"library": name, "id": id, "detail": textFromResult(res)},
		)
	}

	return &LibraryDocs{
		LibraryID: id,
		Content:   textFromResult(res),
	}, nil
}

// textFromResult concatenates the text content blocks of a tool result
func textFromResult(res *mcp.CallToolResult) string {
	if res == nil {
		return ""
	}
	var parts []string
	for _, content := range res.Content {
		if tc, ok := content.(mcp.TextContent); ok {
			parts = append(parts, tc.Text)
		}
	}
	return strings.Join(parts, "\n")
}

// extractLibraryID picks the first Context7-compatible library ID out of a
// resolve-library-id response. The response is a text listing where IDs look
// like /org/project or /org/project/version.
func extractLibraryID(text string) string {
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		line = strings.TrimPrefix(line, "- ")

		const marker = "Context7-compatible library ID:"
		if idx := strings.Index(line, marker); idx != -1 {
			id := strings.TrimSpace(line[idx+len(marker):])
			if strings.HasPrefix(id, "/") {
				return id
			}
		}
	}
	// Some responses are just the ID itself
	trimmed := strings.TrimSpace(text)
	if strings.HasPrefix(trimmed, "/") && !strings.ContainsAny(trimmed, " \n") {
		return trimmed
	}
	return ""
}
