// Package mcpserver implements an MCP (Model Context Protocol) server
// that exposes apidef capabilities as MCP tools over stdio.
package mcpserver

import (
	"context"
	"regexp"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/apidef"
)

const serverInstructions = `apidef MCP server — loads OpenAPI and AsyncAPI definitions, resolves every $ref across files and URLs, and reports the specification family, version and referenced documents.

Configuration: All defaults are configurable via APIDEF_* environment variables set in your MCP client config.

Key settings:
- APIDEF_CACHE_FILE_TTL (default: 15m) — cache TTL for local file definitions
- APIDEF_CACHE_URL_TTL (default: 5m) — cache TTL for URL-fetched definitions
- APIDEF_CACHE_ENABLED (default: true) — disable definition caching entirely
- APIDEF_CACHE_MAX_SIZE (default: 10) — cached definitions per source kind (files, URLs)
- APIDEF_FETCH_TIMEOUT (default: 30s) — per-request timeout for URL documents
- APIDEF_MAX_DOCUMENTS (default: 100) — maximum documents per definition, root included
- APIDEF_ALLOW_PRIVATE_IPS (default: false) — allow URLs that resolve to private or loopback addresses

Caching: Loaded definitions are cached per session. File entries use path+mtime of the root document as key. URL entries are cached with a shorter TTL. Concurrent loads of the same definition share one fetch.`

// Run starts the MCP server over stdio and blocks until the client disconnects
// or the context is cancelled.
func Run(ctx context.Context) error {
	return newServer().Run(ctx, &mcp.StdioTransport{})
}

func newServer() *mcp.Server {
	server := mcp.NewServer(
		&mcp.Implementation{Name: "apidef", Version: apidef.Version()},
		&mcp.ServerOptions{
			Instructions: serverInstructions,
		},
	)
	registerAllTools(server)
	return server
}

func registerAllTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "load_definition",
		Description: "Load an OpenAPI or AsyncAPI definition from a file or URL, following every $ref across files and URLs. Returns the specification family, declared version, matched schema key and the referenced documents in discovery order with the $ref paths that reached them. Set include_content=true to also return the root and referenced documents as JSON; leave it off for large definitions.",
	}, handleLoadDefinition)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "supported_versions",
		Description: "List the OpenAPI and AsyncAPI versions that load_definition accepts. OpenAPI versions match by major.minor (3.0.3 matches 3.0.x); AsyncAPI versions match exactly.",
	}, handleSupportedVersions)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "build_payload",
		Description: "Build the request body a comparison service expects: the definition and every referenced document serialized as JSON text. Provide previous to build a body comparing two definitions; each is loaded independently.",
	}, handleBuildPayload)
}

// sanitizeError strips absolute filesystem paths from error messages
// to prevent leaking internal directory structure to MCP clients.
var pathPattern = regexp.MustCompile(`(?:/(?:home|tmp|var|Users|etc|opt|usr|private|root|mnt|srv|run|snap|nix)[a-zA-Z0-9._/-]*)`)

func sanitizeError(err error) string {
	if err == nil {
		return ""
	}
	return pathPattern.ReplaceAllString(err.Error(), "<path>")
}

// errResult creates an MCP error result from an error.
func errResult(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: sanitizeError(err)}},
	}
}
