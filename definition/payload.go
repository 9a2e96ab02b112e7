package definition

import (
	"fmt"
	"strings"
)

// Payload is the request body a comparison service expects for one
// definition. Documents are carried as JSON text, the way they are uploaded.
type Payload struct {
	// Specification is the lower-case family name, e.g. "openapi"
	Specification string             `json:"specification"`
	Version       string             `json:"version"`
	Definition    string             `json:"definition"`
	References    []PayloadReference `json:"references,omitempty"`
}

// PayloadReference is one referenced document of a Payload. The service
// resolves $ref paths as they were written, so a document reached through
// several paths is listed once per path.
type PayloadReference struct {
	Location string `json:"location"`
	Content  string `json:"content"`
}

// Comparison is the request body for comparing two definitions that were
// loaded independently.
type Comparison struct {
	Definition *Payload `json:"definition"`
	Previous   *Payload `json:"previous"`
}

// NewPayload serializes def into a Payload.
func NewPayload(def *APIDefinition) (*Payload, error) {
	if def == nil {
		return nil, fmt.Errorf("definition: cannot build a payload from a nil definition")
	}
	body, err := def.Content.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("definition: failed to serialize %s: %w", def.Locator, err)
	}
	p := &Payload{
		Specification: strings.ToLower(string(def.Family)),
		Version:       def.Version,
		Definition:    string(body),
	}
	for _, ref := range def.References {
		data, err := ref.Content.MarshalJSON()
		if err != nil {
			return nil, fmt.Errorf("definition: failed to serialize %s: %w", ref.Location, err)
		}
		locations := ref.Aliases
		if len(locations) == 0 {
			locations = []string{ref.Ref}
		}
		for _, loc := range locations {
			p.References = append(p.References, PayloadReference{Location: loc, Content: string(data)})
		}
	}
	return p, nil
}

// NewComparison builds the request body comparing current with previous.
func NewComparison(current, previous *APIDefinition) (*Comparison, error) {
	cur, err := NewPayload(current)
	if err != nil {
		return nil, err
	}
	prev, err := NewPayload(previous)
	if err != nil {
		return nil, err
	}
	return &Comparison{Definition: cur, Previous: prev}, nil
}
