package mcpserver

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleBuildPayload(t *testing.T) {
	defCache.reset()
	input := payloadInput{Spec: definitionInput{File: writeStreetlights(t)}}

	result, output, err := handleBuildPayload(context.Background(), &mcp.CallToolRequest{}, input)
	require.NoError(t, err)
	assert.Nil(t, result)
	require.NotNil(t, output.Definition)
	assert.Nil(t, output.Previous)

	p := output.Definition
	assert.Equal(t, "asyncapi", p.Specification)
	assert.Equal(t, "2.3.0", p.Version)
	assert.Contains(t, p.Definition, `"asyncapi":"2.3.0"`)
	require.Len(t, p.References, 2)
	assert.Equal(t, "params/streetlightId.json", p.References[0].Location)
	assert.JSONEq(t, `{"description": "The ID of the streetlight.", "schema": {"type": "string"}}`, p.References[0].Content)
	assert.Equal(t, "messages/lightMeasured.yml", p.References[1].Location)
}

func TestHandleBuildPayload_Previous(t *testing.T) {
	defCache.reset()
	previous := filepath.Join(t.TempDir(), "previous.yml")
	require.NoError(t, os.WriteFile(previous, []byte("asyncapi: 2.2.0\ninfo:\n  title: Streetlights API\n  version: 0.9.0\nchannels: {}\n"), 0o644))

	input := payloadInput{
		Spec:     definitionInput{File: writeStreetlights(t)},
		Previous: &definitionInput{File: previous},
	}
	result, output, err := handleBuildPayload(context.Background(), &mcp.CallToolRequest{}, input)
	require.NoError(t, err)
	assert.Nil(t, result)
	require.NotNil(t, output.Definition)
	require.NotNil(t, output.Previous)
	assert.Equal(t, "2.3.0", output.Definition.Version)
	assert.Equal(t, "2.2.0", output.Previous.Version)
	assert.Empty(t, output.Previous.References)
}

func TestHandleBuildPayload_PreviousFails(t *testing.T) {
	defCache.reset()
	input := payloadInput{
		Spec:     definitionInput{File: writeStreetlights(t)},
		Previous: &definitionInput{},
	}
	result, _, err := handleBuildPayload(context.Background(), &mcp.CallToolRequest{}, input)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.True(t, result.IsError)
}
