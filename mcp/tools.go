package mcp

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/mitchellh/mapstructure"

	"github.com/yomek/c7ctl/api/autouse"
	"github.com/yomek/c7ctl/api/config"
	"github.com/yomek/c7ctl/api/docstore"
)

var validate = validator.New()

func InitTools() []server.ServerTool {
	tools := []server.ServerTool{}

	tools = append(tools, newServerTool(RefreshDocs()))
	tools = append(tools, newServerTool(DocsStatus()))
	tools = append(tools, newServerTool(GetLibraryDocs()))
	tools = append(tools, newServerTool(EnhanceResponse()))

	return tools
}

func RefreshDocs() (tool mcp.Tool, handler server.ToolHandlerFunc) {
	return mcp.NewTool(
			"refresh_docs",
			mcp.WithDescription("Refresh the local documentation cache from Context7"),
			mcp.WithBoolean("force", mcp.Description("Ignore cached docs source pages and re-fetch everything")),
		), func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			type ToolArguments struct {
				Force bool `json:"force"`
			}
			var args ToolArguments
			if err := mapstructure.Decode(req.Params.Arguments, &args); err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			cfg, err := config.Load("")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			snap, err := docstore.NewRefresher(cfg).Refresh(ctx, args.Force)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			type RefreshInfo struct {
				LastRefresh        time.Time `json:"last_refresh"`
				Context7Available  bool      `json:"context7_available"`
				Libraries          int       `json:"libraries"`
				LibrariesWithError []string  `json:"libraries_with_error,omitempty"`
			}

			info := RefreshInfo{
				LastRefresh:       snap.LastRefresh,
				Context7Available: snap.Available,
				Libraries:         len(snap.Libraries),
			}
			for name, entry := range snap.Libraries {
				if entry.FetchError != "" {
					info.LibrariesWithError = append(info.LibrariesWithError, name)
				}
			}

			b, err := json.Marshal(info)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			return mcp.NewToolResultText(string(b)), nil
		}
}

func DocsStatus() (tool mcp.Tool, handler server.ToolHandlerFunc) {
	return mcp.NewTool(
			"docs_status",
			mcp.WithDescription("Summarize the local documentation cache as markdown"),
		), func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			snap, err := docstore.Load("")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			return mcp.NewToolResultText(snap.Summary()), nil
		}
}

func GetLibraryDocs() (tool mcp.Tool, handler server.ToolHandlerFunc) {
	return mcp.NewTool(
			"get_library_docs",
			mcp.WithDescription("Return cached documentation for one tracked library"),
			mcp.WithString("library", mcp.Required(), mcp.Description("Library name as tracked in c7ctl.yaml")),
		), func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			type ToolArguments struct {
				Library string `json:"library" validate:"required"`
			}
			var args ToolArguments
			if err := mapstructure.Decode(req.Params.Arguments, &args); err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			if err := validate.StructCtx(ctx, args); err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			snap, err := docstore.Load("")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			entry, ok := snap.Entry(args.Library)
			if !ok {
				return mcp.NewToolResultError("no cached documentation, run refresh_docs first"), nil
			}

			b, err := json.Marshal(entry)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			return mcp.NewToolResultText(string(b)), nil
		}
}

func EnhanceResponse() (tool mcp.Tool, handler server.ToolHandlerFunc) {
	return mcp.NewTool(
			"enhance_response",
			mcp.WithDescription("Append cached documentation to a response when the query matches the automatic-use rules"),
			mcp.WithString("query", mcp.Required(), mcp.Description("The user query")),
			mcp.WithString("response", mcp.Description("The draft response to enhance")),
		), func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			type ToolArguments struct {
				Query    string `json:"query" validate:"required"`
				Response string `json:"response"`
			}
			var args ToolArguments
			if err := mapstructure.Decode(req.Params.Arguments, &args); err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			if err := validate.StructCtx(ctx, args); err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			rules, err := loadRules()
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			snap, err := docstore.Load("")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			return mcp.NewToolResultText(rules.Enhance(args.Query, args.Response, snap)), nil
		}
}

// loadRules reads the automatic-use rules, building defaults from the
// project configuration when setup has not run yet
func loadRules() (autouse.Rules, error) {
	path, err := autouse.DefaultPath()
	if err != nil {
		return autouse.Rules{}, err
	}

	rules, err := autouse.LoadRules(path)
	if err != nil {
		return autouse.Rules{}, err
	}
	if len(rules.Keywords) > 0 {
		return rules, nil
	}

	cfg, err := config.Load("")
	if err != nil {
		return autouse.Rules{}, err
	}
	return autouse.DefaultRules(cfg.EffectiveKeywords()), nil
}
