// Package mcp implements the Model Context Protocol server for c7ctl.
//
// The mcp package provides:
// - MCP server exposing the documentation cache to editors
// - Tools for refreshing, inspecting and querying cached documentation
// - Response enhancement through the automatic-use rules
package mcp
