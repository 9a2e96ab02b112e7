// Package resolver loads a document and every document it references through
// $ref, following references transitively across files and URLs.
//
// Resolution never rewrites content. The result is a ResolvedSet holding each
// distinct document once, keyed by its canonical Locator, in the order the
// documents were discovered:
//
//	r, err := resolver.New(resolver.WithTimeout(10 * time.Second))
//	if err != nil {
//		return err
//	}
//	set, err := r.Resolve(ctx, "asyncapi.yaml")
//
// Documents are discovered breadth-first. Each level of the traversal is
// fetched concurrently, but references are always registered in document
// order, so the discovery order does not depend on network timing. Every
// target is registered before it is fetched; a document reachable through
// several paths, or through a cycle, is fetched exactly once.
//
// All failures are reported as *apierrors.LoadError.
package resolver

import (
	"context"
	"errors"
	"fmt"
	"path"
	"slices"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/erraggy/apidef/apierrors"
	"github.com/erraggy/apidef/content"
)

// RefKey is the key that marks a reference object.
const RefKey = "$ref"

// Resolver fetches documents and their transitive references.
// A Resolver is safe for concurrent use; every Resolve call is independent.
type Resolver struct {
	fetcher      Fetcher
	maxDocuments int
	concurrency  int
	logger       Logger
}

// New creates a Resolver.
func New(opts ...Option) (*Resolver, error) {
	cfg, err := applyOptions(opts...)
	if err != nil {
		return nil, fmt.Errorf("resolver: invalid options: %w", err)
	}
	return &Resolver{
		fetcher:      cfg.fetcherFor(),
		maxDocuments: cfg.maxDocuments,
		concurrency:  cfg.concurrency,
		logger:       cfg.logger,
	}, nil
}

// Resolve loads the document at raw (a path or http(s) URL) and every
// document reachable from it through $ref.
func (r *Resolver) Resolve(ctx context.Context, raw string) (*ResolvedSet, error) {
	root, err := ParseLocator(raw)
	if err != nil {
		return nil, &apierrors.LoadError{Locator: raw, Message: "invalid locator", Cause: err}
	}

	w := &walk{set: NewResolvedSet(root)}
	w.register(root, "")
	log := r.logger.With("root", root.String())

	wave := []Locator{root}
	for depth := 0; len(wave) > 0; depth++ {
		log.Debug("fetching documents", "depth", depth, "count", len(wave))
		contents, err := r.fetchWave(ctx, wave)
		if err != nil {
			return nil, err
		}

		var next []Locator
		for i, loc := range wave {
			w.set.docs[loc].Content = contents[i]
			discovered, err := r.scan(w, loc, contents[i])
			if err != nil {
				return nil, err
			}
			next = append(next, discovered...)
		}
		wave = next
	}

	if err := w.checkFragments(); err != nil {
		return nil, err
	}
	log.Debug("resolved documents", "count", w.set.Len())
	return w.set, nil
}

// walk is the state of one Resolve call. It is only touched by the goroutine
// running Resolve; fetches report back through a result slice.
type walk struct {
	set    *ResolvedSet
	checks []fragmentCheck
}

type fragmentCheck struct {
	target   Locator
	fragment string
	from     Locator
	ref      string
}

// register marks loc as known before it is fetched.
func (w *walk) register(loc Locator, alias string) {
	d := Document{Locator: loc}
	if alias != "" {
		d.Aliases = []string{alias}
	}
	w.set.insert(d)
}

func (w *walk) addAlias(loc Locator, alias string) {
	d := w.set.docs[loc]
	if alias != "" && !slices.Contains(d.Aliases, alias) {
		d.Aliases = append(d.Aliases, alias)
	}
}

func (w *walk) checkFragments() error {
	for _, c := range w.checks {
		d := w.set.docs[c.target]
		if _, err := d.Content.Pointer(c.fragment); err != nil {
			return &apierrors.LoadError{
				Locator: c.target.String() + "#" + c.fragment,
				Message: fmt.Sprintf("$ref %q in %s does not resolve", c.ref, c.from),
				Cause:   err,
			}
		}
	}
	return nil
}

func (r *Resolver) fetchWave(ctx context.Context, wave []Locator) ([]content.Value, error) {
	results := make([]content.Value, len(wave))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.concurrency)
	for i, loc := range wave {
		g.Go(func() error {
			v, err := r.load(gctx, loc)
			if err != nil {
				return err
			}
			results[i] = v
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (r *Resolver) load(ctx context.Context, loc Locator) (content.Value, error) {
	data, err := r.fetcher.Fetch(ctx, loc)
	if err != nil {
		return content.Value{}, &apierrors.LoadError{Locator: loc.String(), Message: "failed to fetch document", Cause: err}
	}
	r.logger.Debug("fetched document", "locator", loc.String(), "bytes", len(data))

	v, err := content.Decode(data)
	if errors.Is(err, content.ErrEmpty) {
		return content.Value{}, &apierrors.LoadError{Locator: loc.String(), Message: "document is empty"}
	}
	// markdown and other text files are referenced for their text
	if !loc.HasDataExtension() && (err != nil || v.Kind() == content.Map || v.Kind() == content.Sequence) {
		r.logger.Debug("keeping document as text", "locator", loc.String())
		return content.StringValue(string(data)), nil
	}
	if err != nil {
		return content.Value{}, &apierrors.LoadError{Locator: loc.String(), Message: "failed to parse document", Cause: err}
	}
	if s, isString := v.AsString(); v.IsNull() || (isString && s == "") {
		return content.Value{}, &apierrors.LoadError{Locator: loc.String(), Message: "document is empty"}
	}
	return v, nil
}

// scan registers the targets of every cross-document reference in v, in
// document order, and returns the ones seen for the first time.
func (r *Resolver) scan(w *walk, from Locator, v content.Value) ([]Locator, error) {
	var discovered []Locator
	for _, ref := range CollectRefs(v) {
		if ref == "" || strings.HasPrefix(ref, "#") {
			continue
		}
		target, fragment, err := ResolveRef(from, ref)
		if err != nil {
			return nil, &apierrors.LoadError{Locator: from.String(), Message: fmt.Sprintf("invalid $ref %q", ref), Cause: err}
		}
		if fragment != "" {
			w.checks = append(w.checks, fragmentCheck{target: target, fragment: fragment, from: from, ref: ref})
		}

		alias := refAlias(ref)
		if _, known := w.set.docs[target]; known {
			r.logger.Debug("reference already registered", "ref", ref, "locator", target.String())
			w.addAlias(target, alias)
			continue
		}
		if w.set.Len() >= r.maxDocuments {
			return nil, &apierrors.LoadError{
				Locator: target.String(),
				Message: fmt.Sprintf("exceeded maximum of %d documents", r.maxDocuments),
			}
		}
		w.register(target, alias)
		discovered = append(discovered, target)
	}
	return discovered, nil
}

// refAlias is the path part of ref as the document wrote it, with dot
// segments removed from relative paths.
func refAlias(ref string) string {
	p, _, _ := strings.Cut(ref, "#")
	if strings.Contains(p, "://") {
		return p
	}
	return path.Clean(p)
}

// CollectRefs returns the string value of every "$ref" member in v, depth
// first in document order. A "$ref" member that is not a string is an
// ordinary property and is searched like any other value.
func CollectRefs(v content.Value) []string {
	var refs []string
	var visit func(content.Value)
	visit = func(v content.Value) {
		switch v.Kind() {
		case content.Map:
			for key, member := range v.Members() {
				if key == RefKey {
					if s, ok := member.AsString(); ok {
						refs = append(refs, s)
						continue
					}
				}
				visit(member)
			}
		case content.Sequence:
			for _, item := range v.Elements() {
				visit(item)
			}
		}
	}
	visit(v)
	return refs
}
