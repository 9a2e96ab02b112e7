package content

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"go.yaml.in/yaml/v4"
)

// MaxDepth is the maximum nesting depth accepted by Decode.
// This prevents stack exhaustion on hostile or degenerate documents.
const MaxDepth = 1000

// ErrEmpty is returned by Decode when the input holds no document.
var ErrEmpty = errors.New("document is empty")

// Decode parses JSON or YAML into a Value, keeping the source key order.
//
// Input that looks like JSON (first non-blank byte is '{' or '[') is decoded
// with encoding/json; if that fails the input is retried as YAML, since flow
// style YAML looks the same at first glance. Everything else is YAML.
func Decode(data []byte) (Value, error) {
	trimmed := bytes.TrimLeft(data, " \t\r\n\ufeff")
	if len(trimmed) == 0 {
		return Value{}, ErrEmpty
	}
	if trimmed[0] == '{' || trimmed[0] == '[' {
		if v, err := decodeJSON(trimmed); err == nil {
			return v, nil
		}
	}
	return decodeYAML(data)
}

func decodeYAML(data []byte) (Value, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return Value{}, fmt.Errorf("invalid YAML: %w", err)
	}
	if node.Kind == 0 || (node.Kind == yaml.DocumentNode && len(node.Content) == 0) {
		return Value{}, ErrEmpty
	}
	return fromNode(&node, 0)
}

func fromNode(node *yaml.Node, depth int) (Value, error) {
	if depth > MaxDepth {
		return Value{}, fmt.Errorf("document nesting exceeds %d levels", MaxDepth)
	}
	switch node.Kind {
	case yaml.DocumentNode:
		if len(node.Content) == 0 {
			return Value{}, nil
		}
		return fromNode(node.Content[0], depth+1)

	case yaml.AliasNode:
		if node.Alias == nil {
			return Value{}, fmt.Errorf("line %d: unresolved alias %q", node.Line, node.Value)
		}
		return fromNode(node.Alias, depth+1)

	case yaml.SequenceNode:
		items := make([]Value, 0, len(node.Content))
		for _, child := range node.Content {
			item, err := fromNode(child, depth+1)
			if err != nil {
				return Value{}, err
			}
			items = append(items, item)
		}
		return Value{kind: Sequence, items: items}, nil

	case yaml.MappingNode:
		return fromMappingNode(node, depth)

	case yaml.ScalarNode:
		return fromScalarNode(node)
	}
	return Value{}, fmt.Errorf("line %d: unsupported YAML node kind %v", node.Line, node.Kind)
}

func fromMappingNode(node *yaml.Node, depth int) (Value, error) {
	v := Value{kind: Map, members: make([]Member, 0, len(node.Content)/2), index: make(map[string]int, len(node.Content)/2)}
	var merged []Value
	for i := 0; i+1 < len(node.Content); i += 2 {
		keyNode, valNode := node.Content[i], node.Content[i+1]
		if keyNode.Kind == yaml.AliasNode && keyNode.Alias != nil {
			keyNode = keyNode.Alias
		}
		if keyNode.Kind != yaml.ScalarNode {
			return Value{}, fmt.Errorf("line %d: mapping keys must be scalars", keyNode.Line)
		}
		val, err := fromNode(valNode, depth+1)
		if err != nil {
			return Value{}, err
		}
		if keyNode.ShortTag() == "!!merge" {
			merged = append(merged, val)
			continue
		}
		v.set(keyNode.Value, val)
	}
	// Explicit keys take precedence over merged ones.
	for _, m := range merged {
		sources := []Value{m}
		if m.kind == Sequence {
			sources = m.items
		}
		for _, src := range sources {
			if src.kind != Map {
				return Value{}, fmt.Errorf("line %d: merge value must be a mapping", node.Line)
			}
			for _, member := range src.members {
				if _, exists := v.index[member.Key]; !exists {
					v.set(member.Key, member.Value)
				}
			}
		}
	}
	return v, nil
}

func fromScalarNode(node *yaml.Node) (Value, error) {
	switch node.ShortTag() {
	case "!!null":
		return Value{}, nil
	case "!!bool":
		switch strings.ToLower(node.Value) {
		case "true", "yes", "on", "y":
			return BoolValue(true), nil
		case "false", "no", "off", "n":
			return BoolValue(false), nil
		}
		return Value{}, fmt.Errorf("line %d: invalid boolean %q", node.Line, node.Value)
	case "!!int", "!!float":
		return numberFromNode(node)
	default:
		// !!str, !!timestamp, !!binary and custom tags keep their source text
		return StringValue(node.Value), nil
	}
}

func numberFromNode(node *yaml.Node) (Value, error) {
	// Keep JSON-compatible literals verbatim so they round-trip exactly.
	if isJSONNumber(node.Value) {
		return Value{kind: Number, text: node.Value}, nil
	}
	lit := strings.ReplaceAll(node.Value, "_", "")
	if n, err := strconv.ParseInt(lit, 0, 64); err == nil {
		return IntValue(n), nil
	}
	if n, err := strconv.ParseUint(lit, 0, 64); err == nil {
		return Value{kind: Number, text: strconv.FormatUint(n, 10)}, nil
	}
	f, err := strconv.ParseFloat(lit, 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		// .inf, .nan and other forms JSON cannot represent keep their text
		return StringValue(node.Value), nil
	}
	return NumberValue(f), nil
}

func isJSONNumber(s string) bool {
	if s == "" || !(s[0] == '-' || (s[0] >= '0' && s[0] <= '9')) {
		return false
	}
	return json.Valid([]byte(s))
}

func decodeJSON(data []byte) (Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	v, err := decodeJSONValue(dec, 0)
	if err != nil {
		return Value{}, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return Value{}, errors.New("invalid JSON: trailing data after top-level value")
	}
	return v, nil
}

func decodeJSONValue(dec *json.Decoder, depth int) (Value, error) {
	if depth > MaxDepth {
		return Value{}, fmt.Errorf("document nesting exceeds %d levels", MaxDepth)
	}
	tok, err := dec.Token()
	if err != nil {
		return Value{}, fmt.Errorf("invalid JSON: %w", err)
	}
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			v := Value{kind: Map, index: make(map[string]int)}
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return Value{}, fmt.Errorf("invalid JSON: %w", err)
				}
				key, ok := keyTok.(string)
				if !ok {
					return Value{}, fmt.Errorf("invalid JSON: object key %v is not a string", keyTok)
				}
				val, err := decodeJSONValue(dec, depth+1)
				if err != nil {
					return Value{}, err
				}
				v.set(key, val)
			}
			if _, err := dec.Token(); err != nil {
				return Value{}, fmt.Errorf("invalid JSON: %w", err)
			}
			return v, nil
		case '[':
			v := Value{kind: Sequence}
			for dec.More() {
				item, err := decodeJSONValue(dec, depth+1)
				if err != nil {
					return Value{}, err
				}
				v.items = append(v.items, item)
			}
			if _, err := dec.Token(); err != nil {
				return Value{}, fmt.Errorf("invalid JSON: %w", err)
			}
			return v, nil
		}
		return Value{}, fmt.Errorf("invalid JSON: unexpected delimiter %v", t)
	case nil:
		return Value{}, nil
	case bool:
		return BoolValue(t), nil
	case json.Number:
		return Value{kind: Number, text: t.String()}, nil
	case string:
		return StringValue(t), nil
	}
	return Value{}, fmt.Errorf("invalid JSON: unexpected token %v", tok)
}
