package resolver

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLocator(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)

	tests := []struct {
		name     string
		input    string
		expected Locator
	}{
		{"relative path", "api.yaml", Locator(filepath.Join(wd, "api.yaml"))},
		{"dot relative path", "./specs/../api.yaml", Locator(filepath.Join(wd, "api.yaml"))},
		{"url", "https://example.org/specs/api.yaml", "https://example.org/specs/api.yaml"},
		{"url dot segments", "https://example.org/a/./b/../api.yaml", "https://example.org/a/api.yaml"},
		{"url case", "HTTP://Example.ORG/Api.yaml", "http://example.org/Api.yaml"},
		{"url fragment dropped", "http://example.org/api.yaml#/info", "http://example.org/api.yaml"},
		{"url without path", "http://example.org", "http://example.org/"},
		{"url query kept", "http://example.org/api?v=2", "http://example.org/api?v=2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loc, err := ParseLocator(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, loc)
		})
	}
}

func TestParseLocatorErrors(t *testing.T) {
	_, err := ParseLocator("")
	assert.Error(t, err)

	_, err = ParseLocator("ftp://example.org/api.yaml")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnsupportedScheme))

	_, err = ParseLocator("http:///api.yaml")
	assert.Error(t, err)
}

func TestParseLocatorFileURL(t *testing.T) {
	dir := t.TempDir()
	loc, err := ParseLocator("file://" + filepath.ToSlash(filepath.Join(dir, "api.yaml")))
	require.NoError(t, err)
	assert.Equal(t, Locator(filepath.Join(dir, "api.yaml")), loc)
	assert.False(t, loc.IsURL())
}

func TestResolveRef(t *testing.T) {
	dir := t.TempDir()
	base := Locator(filepath.Join(dir, "specs", "root.yaml"))

	tests := []struct {
		name             string
		base             Locator
		ref              string
		expectedTarget   Locator
		expectedFragment string
	}{
		{
			name:           "sibling file",
			base:           base,
			ref:            "params/light.json",
			expectedTarget: Locator(filepath.Join(dir, "specs", "params", "light.json")),
		},
		{
			name:           "dot slash is the same file",
			base:           base,
			ref:            "./params/light.json",
			expectedTarget: Locator(filepath.Join(dir, "specs", "params", "light.json")),
		},
		{
			name:             "parent directory with fragment",
			base:             base,
			ref:              "../common.yaml#/components/schemas/Error",
			expectedTarget:   Locator(filepath.Join(dir, "common.yaml")),
			expectedFragment: "/components/schemas/Error",
		},
		{
			name:             "internal ref targets base",
			base:             base,
			ref:              "#/components/schemas/Pet",
			expectedTarget:   base,
			expectedFragment: "/components/schemas/Pet",
		},
		{
			name:           "percent-encoded file name",
			base:           base,
			ref:            "caf%C3%A9.yaml",
			expectedTarget: Locator(filepath.Join(dir, "specs", "caf\u00e9.yaml")),
		},
		{
			name:           "decomposed file name is normalized",
			base:           base,
			ref:            "cafe\u0301.yaml",
			expectedTarget: Locator(filepath.Join(dir, "specs", "caf\u00e9.yaml")),
		},
		{
			name:           "absolute url from a file",
			base:           base,
			ref:            "http://example.org/param-lights.json",
			expectedTarget: "http://example.org/param-lights.json",
		},
		{
			name:           "relative ref inside a url document",
			base:           "https://example.org/specs/root.yaml",
			ref:            "schemas/all.yml",
			expectedTarget: "https://example.org/specs/schemas/all.yml",
		},
		{
			name:             "parent ref inside a url document",
			base:             "https://example.org/specs/root.yaml",
			ref:              "../shared/./types.yml#/Id",
			expectedTarget:   "https://example.org/shared/types.yml",
			expectedFragment: "/Id",
		},
		{
			name:             "file url from a file",
			base:             base,
			ref:              "file://" + filepath.ToSlash(filepath.Join(dir, "shared", "other.yaml")) + "#/a",
			expectedTarget:   Locator(filepath.Join(dir, "shared", "other.yaml")),
			expectedFragment: "/a",
		},
		{
			name:           "root-relative ref inside a url document",
			base:           "https://example.org/specs/root.yaml",
			ref:            "/other.yml",
			expectedTarget: "https://example.org/other.yml",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			target, fragment, err := ResolveRef(tt.base, tt.ref)
			require.NoError(t, err)
			assert.Equal(t, tt.expectedTarget, target)
			assert.Equal(t, tt.expectedFragment, fragment)
		})
	}
}

func TestResolveRefUnsupportedScheme(t *testing.T) {
	_, _, err := ResolveRef(Locator(filepath.Join(t.TempDir(), "root.yaml")), "urn:example:schema")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnsupportedScheme)
}

func TestResolveRefRemoteToLocal(t *testing.T) {
	for _, ref := range []string{"file:///etc/passwd", "C:/secrets.yaml"} {
		_, _, err := ResolveRef("https://example.org/api.yaml", ref)
		assert.ErrorIs(t, err, ErrRemoteToLocal, ref)
	}

	target, _, err := ResolveRef("https://example.org/specs/api.yaml", "/etc/passwd")
	require.NoError(t, err)
	assert.Equal(t, Locator("https://example.org/etc/passwd"), target)
}

func TestLocatorIsURL(t *testing.T) {
	assert.True(t, Locator("http://example.org/a.json").IsURL())
	assert.True(t, Locator("https://example.org/a.json").IsURL())
	assert.False(t, Locator("/tmp/a.json").IsURL())
	assert.Equal(t, "/tmp/a.json", Locator("/tmp/a.json").String())
}

func TestLocatorHasDataExtension(t *testing.T) {
	tests := []struct {
		loc      Locator
		expected bool
	}{
		{"/tmp/api.yaml", true},
		{"/tmp/api.YML", true},
		{"/tmp/params/light.json", true},
		{"/tmp/api", true},
		{"/tmp/doc/introduction.md", false},
		{"/tmp/notes.txt", false},
		{"https://example.org/specs/api.yaml?ref=main", true},
		{"https://example.org/openapi", true},
		{"https://example.org/doc/intro.md", false},
	}
	for _, tt := range tests {
		t.Run(tt.loc.String(), func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.loc.HasDataExtension())
		})
	}
}
