package resolver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/apidef/content"
)

func TestNewResolvedSet(t *testing.T) {
	first := content.MapValue(content.Member{Key: "info", Value: content.MapValue()})
	second := content.StringValue("ignored")

	set := NewResolvedSet("http://example.org/api.yaml",
		Document{Locator: "http://example.org/api.yaml", Content: first},
		Document{Locator: "http://example.org/child.yaml", Content: content.IntValue(1), Aliases: []string{"child.yaml"}},
		Document{Locator: "http://example.org/api.yaml", Content: second},
	)

	assert.Equal(t, Locator("http://example.org/api.yaml"), set.Root())
	assert.Equal(t, 2, set.Len())
	assert.Equal(t, []Locator{"http://example.org/api.yaml", "http://example.org/child.yaml"}, set.Locators())

	root, ok := set.Get("http://example.org/api.yaml")
	require.True(t, ok)
	assert.True(t, root.Content.Equal(first), "first writer wins")

	child, ok := set.Lookup("HTTP://EXAMPLE.org/./child.yaml#/x")
	require.True(t, ok)
	assert.Equal(t, []string{"child.yaml"}, child.Aliases)

	_, ok = set.Get("http://example.org/missing.yaml")
	assert.False(t, ok)
	_, ok = set.Lookup("ftp://example.org/api.yaml")
	assert.False(t, ok)
}

func TestResolvedSetIsImmutable(t *testing.T) {
	set := NewResolvedSet("http://example.org/a.yaml",
		Document{Locator: "http://example.org/a.yaml", Aliases: []string{"a.yaml"}},
	)

	doc, _ := set.Get("http://example.org/a.yaml")
	doc.Aliases[0] = "changed"
	locators := set.Locators()
	locators[0] = "changed"

	again, _ := set.Get("http://example.org/a.yaml")
	assert.Equal(t, []string{"a.yaml"}, again.Aliases)
	assert.Equal(t, []Locator{"http://example.org/a.yaml"}, set.Locators())
}

func TestResolvedSetDocuments(t *testing.T) {
	set := NewResolvedSet("http://example.org/a.yaml",
		Document{Locator: "http://example.org/a.yaml"},
		Document{Locator: "http://example.org/b.yaml"},
		Document{Locator: "http://example.org/c.yaml"},
	)

	var seen []Locator
	for doc := range set.Documents() {
		seen = append(seen, doc.Locator)
		if len(seen) == 2 {
			break
		}
	}
	assert.Equal(t, []Locator{"http://example.org/a.yaml", "http://example.org/b.yaml"}, seen)
}
