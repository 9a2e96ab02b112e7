package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/apidef/definition"
)

type versionsInput struct{}

type familyVersions struct {
	Family   string   `json:"family"`
	Versions []string `json:"versions"`
}

type versionsOutput struct {
	Families []familyVersions `json:"families"`
}

func handleSupportedVersions(_ context.Context, _ *mcp.CallToolRequest, _ versionsInput) (*mcp.CallToolResult, versionsOutput, error) {
	reg := definition.DefaultRegistry()
	var output versionsOutput
	for _, family := range reg.Families() {
		output.Families = append(output.Families, familyVersions{
			Family:   string(family),
			Versions: reg.Keys(family),
		})
	}
	return nil, output, nil
}
