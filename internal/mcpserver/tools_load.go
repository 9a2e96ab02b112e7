package mcpserver

import (
	"context"
	"encoding/json"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/apidef/definition"
)

type loadInput struct {
	Spec           definitionInput `json:"spec"                      jsonschema:"The definition to load"`
	IncludeContent bool            `json:"include_content,omitempty" jsonschema:"Return the root and referenced documents as JSON"`
}

type referenceOutput struct {
	Location string   `json:"location"`
	Ref      string   `json:"ref"`
	Aliases  []string `json:"aliases,omitempty"`
	Content  any      `json:"content,omitempty"`
}

type loadOutput struct {
	Family         string            `json:"family"`
	Version        string            `json:"version"`
	SchemaKey      string            `json:"schema_key"`
	Title          string            `json:"title,omitempty"`
	ReferenceCount int               `json:"reference_count"`
	References     []referenceOutput `json:"references,omitempty"`
	Content        any               `json:"content,omitempty"`
}

func handleLoadDefinition(ctx context.Context, _ *mcp.CallToolRequest, input loadInput) (*mcp.CallToolResult, loadOutput, error) {
	def, err := input.Spec.load(ctx)
	if err != nil {
		return errResult(err), loadOutput{}, nil
	}

	output := loadOutput{
		Family:         string(def.Family),
		Version:        def.Version,
		SchemaKey:      def.Schema.Key,
		ReferenceCount: len(def.References),
	}
	if info, ok := def.Content.Get("info"); ok {
		if title, ok, _ := info.StringField("title"); ok {
			output.Title = title
		}
	}

	for _, ref := range def.References {
		r := referenceOutput{
			Location: displayLocation(ref),
			Ref:      ref.Ref,
			Aliases:  ref.Aliases,
		}
		if input.IncludeContent {
			data, err := ref.Content.MarshalJSON()
			if err != nil {
				return errResult(err), loadOutput{}, nil
			}
			r.Content = json.RawMessage(data)
		}
		output.References = append(output.References, r)
	}

	if input.IncludeContent {
		data, err := def.Content.MarshalJSON()
		if err != nil {
			return errResult(err), loadOutput{}, nil
		}
		output.Content = json.RawMessage(data)
	}
	return nil, output, nil
}

// displayLocation keeps URLs as they are and hides local directory layout
// behind the $ref path that reached the file.
func displayLocation(ref definition.Reference) string {
	if ref.Location.IsURL() {
		return ref.Location.String()
	}
	return ref.Ref
}
