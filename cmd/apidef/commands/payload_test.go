package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/apidef/definition"
)

func TestSetupPayloadFlags(t *testing.T) {
	fs, flags := SetupPayloadFlags()

	assert.Empty(t, flags.Output)
	require.NoError(t, fs.Parse([]string{"-o", "body.json", "--no-http", "a.yaml", "b.yaml"}))
	assert.Equal(t, "body.json", flags.Output)
	assert.True(t, flags.NoHTTP)
	assert.Equal(t, []string{"a.yaml", "b.yaml"}, fs.Args())
}

func TestHandlePayload_ArgCount(t *testing.T) {
	assert.Error(t, HandlePayload(context.Background(), []string{}, &bytes.Buffer{}))
	assert.Error(t, HandlePayload(context.Background(), []string{"a.yaml", "b.yaml", "c.yaml"}, &bytes.Buffer{}))
}

func TestHandlePayload_Help(t *testing.T) {
	assert.NoError(t, HandlePayload(context.Background(), []string{"--help"}, &bytes.Buffer{}))
}

func TestHandlePayload_Single(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, HandlePayload(context.Background(), []string{writeDefinition(t)}, &out))

	var p definition.Payload
	require.NoError(t, json.Unmarshal(out.Bytes(), &p))
	assert.Equal(t, "openapi", p.Specification)
	assert.Equal(t, "3.0.3", p.Version)
	assert.Contains(t, p.Definition, `"title":"Petstore"`)

	locations := make([]string, 0, len(p.References))
	for _, ref := range p.References {
		locations = append(locations, ref.Location)
	}
	assert.Equal(t, []string{"paths/pets.yaml", "schemas/pet.yaml", "../schemas/pet.yaml"}, locations)
}

func TestHandlePayload_ComparisonToFile(t *testing.T) {
	current := writeDefinition(t)
	previous := filepath.Join(t.TempDir(), "previous.yaml")
	require.NoError(t, os.WriteFile(previous, []byte("swagger: '2.0'\ninfo:\n  title: Petstore\n  version: 0.1.0\npaths: {}\n"), 0o644))
	output := filepath.Join(t.TempDir(), "body.json")

	var out bytes.Buffer
	require.NoError(t, HandlePayload(context.Background(), []string{"--output", output, current, previous}, &out))
	assert.Empty(t, out.String())

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	var c definition.Comparison
	require.NoError(t, json.Unmarshal(data, &c))
	require.NotNil(t, c.Definition)
	require.NotNil(t, c.Previous)
	assert.Equal(t, "3.0.3", c.Definition.Version)
	assert.Equal(t, "openapi", c.Previous.Specification)
	assert.Equal(t, "2.0", c.Previous.Version)
	assert.Empty(t, c.Previous.References)
}

func TestHandlePayload_RefusesToOverwriteInput(t *testing.T) {
	root := writeDefinition(t)
	err := HandlePayload(context.Background(), []string{"-o", root, root}, &bytes.Buffer{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "would overwrite input file")
}
