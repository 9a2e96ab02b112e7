// Package definition loads OpenAPI and AsyncAPI definitions and identifies
// their specification family and version.
//
// Load resolves a root document and everything it references, then
// classifies the root against a Registry of supported versions:
//
//	def, err := definition.Load(ctx, "asyncapi.yaml")
//	if err != nil {
//		return err
//	}
//	fmt.Println(def.Family, def.Version, len(def.References))
//
// OpenAPI documents are matched by major and minor version (3.0.3 matches the
// 3.0.x schema), AsyncAPI documents by their exact version.
//
// Load fails with *apierrors.LoadError when a document cannot be fetched or
// parsed, and with *apierrors.UnsupportedFormatError when the root is not a
// registered API definition.
package definition

import (
	"context"

	"github.com/erraggy/apidef/content"
	"github.com/erraggy/apidef/resolver"
)

// APIDefinition is a classified root document and its references.
// It must not be modified.
type APIDefinition struct {
	// Locator is the canonical location of the root document
	Locator resolver.Locator
	// Content is the root document, unmodified
	Content content.Value
	// References lists every other document reached through $ref, in
	// discovery order, one entry per canonical location
	References []Reference
	Family     Family
	// Version is the version string declared by the document
	Version string
	// Schema is the registered schema the version matched
	Schema *Schema
}

// Reference is a document the definition refers to.
type Reference struct {
	// Location is the canonical locator of the document
	Location resolver.Locator
	// Ref is the first $ref path that led to the document
	Ref string
	// Aliases holds every distinct $ref path that led to the document
	Aliases []string
	Content content.Value
}

func newReference(d resolver.Document) Reference {
	ref := d.Locator.String()
	if len(d.Aliases) > 0 {
		ref = d.Aliases[0]
	}
	return Reference{Location: d.Locator, Ref: ref, Aliases: d.Aliases, Content: d.Content}
}

// Load resolves the definition at locator (a path or http(s) URL) and
// classifies it.
func Load(ctx context.Context, locator string, opts ...Option) (*APIDefinition, error) {
	cfg, err := applyOptions(opts...)
	if err != nil {
		return nil, err
	}
	r, err := resolver.New(cfg.resolverOptions...)
	if err != nil {
		return nil, err
	}
	set, err := r.Resolve(ctx, locator)
	if err != nil {
		return nil, err
	}
	return NewClassifier(cfg.registry).Classify(set, set.Root())
}
