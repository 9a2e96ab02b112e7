// Package apidef loads OpenAPI and AsyncAPI definitions together with every
// document they reference.
//
// Given a file path or an HTTP(S) URL, apidef fetches the root document,
// follows each external $ref transitively (tolerating circular references),
// identifies the specification family and version, and reports an ordered
// inventory of the referenced documents keyed by their canonical location.
//
// # Packages
//
//   - content: immutable, order-preserving tree for decoded JSON/YAML
//   - resolver: fetches a root locator and all documents it references
//   - definition: classifies a resolved set into an APIDefinition
//   - apierrors: LoadError, UnsupportedFormatError and ConfigError
//
// The apidef command (cmd/apidef) wraps these packages: load, payload and
// versions subcommands, plus an MCP server over stdio (apidef mcp).
//
// # Supported Versions
//
//   - OpenAPI / Swagger: 2.0.x, 3.0.x, 3.1.x (patch versions are not significant)
//   - AsyncAPI: 2.0.0 through 2.6.0 (exact match)
//
// # Quick Start
//
//	import "github.com/erraggy/apidef/definition"
//
//	def, err := definition.Load(ctx, "asyncapi.yml")
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Printf("%s %s\n", def.Family, def.Version)
//	for _, ref := range def.References {
//		fmt.Println(ref.Location)
//	}
//
// Errors can be told apart with errors.Is:
//
//	if errors.Is(err, apierrors.ErrUnsupportedFormat) {
//		// not an OpenAPI/AsyncAPI document, or an unregistered version
//	}
package apidef
