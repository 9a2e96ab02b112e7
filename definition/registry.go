package definition

import (
	"embed"
	"fmt"
	"slices"
	"sync"

	"github.com/erraggy/apidef/apierrors"
	"github.com/erraggy/apidef/content"
)

// Family is an API specification family.
type Family string

// Supported families
const (
	OpenAPI  Family = "OpenAPI"
	AsyncAPI Family = "AsyncAPI"
)

// Schema is one registered (family, version) pair and its schema document.
type Schema struct {
	Family Family
	// Key is the registry key: major.minor.x for OpenAPI, the exact version for AsyncAPI
	Key string
	// Document is the JSON Schema describing definitions of this version
	Document content.Value
}

// Registry is a read-only table of supported specification versions.
// It is never modified after construction and is safe for concurrent use.
type Registry struct {
	families []Family
	keys     map[Family][]string
	schemas  map[Family]map[string]*Schema
}

// NewRegistry builds a registry from schemas. Families and keys keep the
// order of their first appearance; a repeated (family, key) pair keeps the
// first schema.
func NewRegistry(schemas ...Schema) *Registry {
	r := &Registry{
		keys:    make(map[Family][]string),
		schemas: make(map[Family]map[string]*Schema),
	}
	for _, s := range schemas {
		byKey, ok := r.schemas[s.Family]
		if !ok {
			byKey = make(map[string]*Schema)
			r.schemas[s.Family] = byKey
			r.families = append(r.families, s.Family)
		}
		if _, exists := byKey[s.Key]; exists {
			continue
		}
		schema := s
		byKey[s.Key] = &schema
		r.keys[s.Family] = append(r.keys[s.Family], s.Key)
	}
	return r
}

// Lookup returns the schema registered under family and key.
func (r *Registry) Lookup(family Family, key string) (*Schema, bool) {
	s, ok := r.schemas[family][key]
	return s, ok
}

// Families returns the registered families.
func (r *Registry) Families() []Family {
	return slices.Clone(r.families)
}

// Keys returns the registered version keys of family.
func (r *Registry) Keys(family Family) []string {
	return slices.Clone(r.keys[family])
}

// Len returns the number of registered schemas.
func (r *Registry) Len() int {
	n := 0
	for _, keys := range r.keys {
		n += len(keys)
	}
	return n
}

// Supported lists every registered version per family, for error messages.
// OpenAPI and AsyncAPI are always listed, even when they have no versions.
func (r *Registry) Supported() []apierrors.SupportedVersions {
	families := []Family{OpenAPI, AsyncAPI}
	for _, f := range r.families {
		if !slices.Contains(families, f) {
			families = append(families, f)
		}
	}
	out := make([]apierrors.SupportedVersions, 0, len(families))
	for _, f := range families {
		out = append(out, apierrors.SupportedVersions{Family: string(f), Keys: r.Keys(f)})
	}
	return out
}

//go:embed schemas/*.json
var schemaFS embed.FS

// bundled lists the embedded schema assets in registry order.
var bundled = []struct {
	family Family
	key    string
	file   string
}{
	{OpenAPI, "2.0.x", "openapi-2.0.json"},
	{OpenAPI, "3.0.x", "openapi-3.0.json"},
	{OpenAPI, "3.1.x", "openapi-3.1.json"},
	{AsyncAPI, "2.0.0", "asyncapi-2.0.0.json"},
	{AsyncAPI, "2.1.0", "asyncapi-2.1.0.json"},
	{AsyncAPI, "2.2.0", "asyncapi-2.2.0.json"},
	{AsyncAPI, "2.3.0", "asyncapi-2.3.0.json"},
	{AsyncAPI, "2.4.0", "asyncapi-2.4.0.json"},
	{AsyncAPI, "2.5.0", "asyncapi-2.5.0.json"},
	{AsyncAPI, "2.6.0", "asyncapi-2.6.0.json"},
}

// DefaultRegistry returns the registry of bundled schemas. It is built on
// first use and shared afterwards.
var DefaultRegistry = sync.OnceValue(func() *Registry {
	schemas := make([]Schema, 0, len(bundled))
	for _, b := range bundled {
		data, err := schemaFS.ReadFile("schemas/" + b.file)
		if err != nil {
			panic(fmt.Sprintf("definition: missing bundled schema %s: %v", b.file, err))
		}
		doc, err := content.Decode(data)
		if err != nil {
			panic(fmt.Sprintf("definition: invalid bundled schema %s: %v", b.file, err))
		}
		schemas = append(schemas, Schema{Family: b.family, Key: b.key, Document: doc})
	}
	return NewRegistry(schemas...)
})
