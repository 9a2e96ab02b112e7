package definition

import (
	"fmt"
	"strings"

	"github.com/erraggy/apidef/apierrors"
	"github.com/erraggy/apidef/content"
	"github.com/erraggy/apidef/resolver"
)

// Version keys, in the order they are checked.
const (
	keyOpenAPI  = "openapi"
	keySwagger  = "swagger"
	keyAsyncAPI = "asyncapi"
	keyInfo     = "info"
)

// Classifier identifies the specification family and version of a resolved
// root document.
type Classifier struct {
	registry *Registry
}

// NewClassifier creates a Classifier matching against registry.
// A nil registry means DefaultRegistry().
func NewClassifier(registry *Registry) *Classifier {
	if registry == nil {
		registry = DefaultRegistry()
	}
	return &Classifier{registry: registry}
}

// Registry returns the registry the classifier matches against.
func (c *Classifier) Registry() *Registry { return c.registry }

// Classify builds the APIDefinition for the root document of set. Every
// failure is an *apierrors.UnsupportedFormatError whose message lists the
// versions registered in c's registry.
func (c *Classifier) Classify(set *resolver.ResolvedSet, root resolver.Locator) (*APIDefinition, error) {
	if set == nil {
		return nil, c.unsupported("resolver returned no documents", "", "", nil)
	}
	rootDoc, ok := set.Get(root)
	if !ok {
		return nil, c.unsupported(fmt.Sprintf("resolver could not identify the root document %s", root), "", "", nil)
	}

	doc := rootDoc.Content
	if doc.Kind() != content.Map || !doc.Has(keyInfo) {
		return nil, c.unsupported("Definition needs to be an object with at least an 'info' key", "", "", nil)
	}

	family, version, err := detectFamily(doc)
	if err != nil {
		return nil, c.unsupported(err.Error(), "", "", err)
	}
	if family == "" {
		return nil, c.unsupported("no openapi, swagger or asyncapi version key found", "", "", nil)
	}

	key := version
	if family == OpenAPI {
		key = versionWithoutPatch(version)
	}
	schema, ok := c.registry.Lookup(family, key)
	if !ok {
		return nil, c.unsupported(fmt.Sprintf("%s %s", family, version), family, version, nil)
	}

	def := &APIDefinition{
		Locator: root,
		Content: doc,
		Family:  family,
		Version: version,
		Schema:  schema,
	}
	for d := range set.Documents() {
		if d.Locator == root {
			continue
		}
		def.References = append(def.References, newReference(d))
	}
	return def, nil
}

func (c *Classifier) unsupported(reason string, family Family, version string, cause error) error {
	return &apierrors.UnsupportedFormatError{
		Reason:    reason,
		Family:    string(family),
		Version:   version,
		Supported: c.registry.Supported(),
		Cause:     cause,
	}
}

// detectFamily reads the version keys of a root document. An openapi or
// swagger string wins over asyncapi. A version key holding anything but a
// string is skipped; its *content.TypeError is reported only when no later
// key holds a version.
func detectFamily(doc content.Value) (Family, string, error) {
	var typeErr error
	for _, candidate := range []struct {
		key    string
		family Family
	}{
		{keyOpenAPI, OpenAPI},
		{keySwagger, OpenAPI},
		{keyAsyncAPI, AsyncAPI},
	} {
		version, ok, err := doc.StringField(candidate.key)
		if err != nil {
			if typeErr == nil {
				typeErr = err
			}
			continue
		}
		if ok {
			return candidate.family, version, nil
		}
	}
	return "", "", typeErr
}

// versionWithoutPatch turns 3.0.3 into 3.0.x. Versions without a minor part
// produce a key that is never registered.
func versionWithoutPatch(version string) string {
	major, rest, _ := strings.Cut(version, ".")
	minor, _, _ := strings.Cut(rest, ".")
	return major + "." + minor + ".x"
}
