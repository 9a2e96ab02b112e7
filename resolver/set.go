package resolver

import (
	"iter"
	"slices"

	"github.com/erraggy/apidef/content"
)

// Document is one fetched and decoded document of a ResolvedSet.
type Document struct {
	// Locator is the canonical location the document was fetched from
	Locator Locator
	// Content is the decoded document
	Content content.Value
	// Aliases are the distinct $ref paths (fragment removed) that led to this
	// document, in the order they were first seen. Empty for a root that no
	// other document refers back to.
	Aliases []string
}

// ResolvedSet maps canonical locators to their documents, in discovery order.
// It is immutable once returned by Resolve.
type ResolvedSet struct {
	root  Locator
	order []Locator
	docs  map[Locator]*Document
}

// NewResolvedSet builds a set from already decoded documents. The first
// document for a locator wins; later duplicates are ignored. The root need
// not be among docs, which lets callers build sets that fail classification.
func NewResolvedSet(root Locator, docs ...Document) *ResolvedSet {
	s := &ResolvedSet{root: root, docs: make(map[Locator]*Document, len(docs))}
	for _, d := range docs {
		s.insert(d)
	}
	return s
}

func (s *ResolvedSet) insert(d Document) bool {
	if _, exists := s.docs[d.Locator]; exists {
		return false
	}
	d.Aliases = slices.Clone(d.Aliases)
	s.docs[d.Locator] = &d
	s.order = append(s.order, d.Locator)
	return true
}

// Root returns the locator of the document resolution started from.
func (s *ResolvedSet) Root() Locator { return s.root }

// Len returns the number of documents, root included.
func (s *ResolvedSet) Len() int { return len(s.order) }

// Get returns the document stored under a canonical locator.
func (s *ResolvedSet) Get(loc Locator) (Document, bool) {
	d, ok := s.docs[loc]
	if !ok {
		return Document{}, false
	}
	out := *d
	out.Aliases = slices.Clone(d.Aliases)
	return out, true
}

// Lookup canonicalizes raw and returns its document.
func (s *ResolvedSet) Lookup(raw string) (Document, bool) {
	loc, err := ParseLocator(raw)
	if err != nil {
		return Document{}, false
	}
	return s.Get(loc)
}

// Locators returns every locator in discovery order, root first.
func (s *ResolvedSet) Locators() []Locator {
	return slices.Clone(s.order)
}

// Documents iterates over the documents in discovery order.
func (s *ResolvedSet) Documents() iter.Seq[Document] {
	return func(yield func(Document) bool) {
		for _, loc := range s.order {
			d, _ := s.Get(loc)
			if !yield(d) {
				return
			}
		}
	}
}
