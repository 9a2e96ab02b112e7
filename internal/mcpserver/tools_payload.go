package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/apidef/definition"
)

type payloadInput struct {
	Spec     definitionInput  `json:"spec"               jsonschema:"The definition to serialize"`
	Previous *definitionInput `json:"previous,omitempty" jsonschema:"An older definition to compare against"`
}

type payloadOutput struct {
	Definition *definition.Payload `json:"definition"`
	Previous   *definition.Payload `json:"previous,omitempty"`
}

func handleBuildPayload(ctx context.Context, _ *mcp.CallToolRequest, input payloadInput) (*mcp.CallToolResult, payloadOutput, error) {
	def, err := input.Spec.load(ctx)
	if err != nil {
		return errResult(err), payloadOutput{}, nil
	}

	if input.Previous == nil {
		p, err := definition.NewPayload(def)
		if err != nil {
			return errResult(err), payloadOutput{}, nil
		}
		return nil, payloadOutput{Definition: p}, nil
	}

	previous, err := input.Previous.load(ctx)
	if err != nil {
		return errResult(err), payloadOutput{}, nil
	}
	c, err := definition.NewComparison(def, previous)
	if err != nil {
		return errResult(err), payloadOutput{}, nil
	}
	return nil, payloadOutput{Definition: c.Definition, Previous: c.Previous}, nil
}
