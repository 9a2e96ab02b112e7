package content

import (
	"bytes"
	"encoding/json"
	"strings"

	"go.yaml.in/yaml/v4"
)

// MarshalJSON writes v as JSON, keeping map keys in source order.
func (v Value) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := writeJSON(&buf, v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeJSON(buf *bytes.Buffer, v Value) error {
	switch v.kind {
	case Null:
		buf.WriteString("null")
	case Bool:
		if v.flag {
			buf.WriteString("true")
		} else {
			buf.WriteString("false")
		}
	case Number:
		buf.WriteString(v.text)
	case String:
		return writeJSONString(buf, v.text)
	case Sequence:
		buf.WriteByte('[')
		for i, item := range v.items {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeJSON(buf, item); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case Map:
		buf.WriteByte('{')
		for i, m := range v.members {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeJSONString(buf, m.Key); err != nil {
				return err
			}
			buf.WriteByte(':')
			if err := writeJSON(buf, m.Value); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	}
	return nil
}

func writeJSONString(buf *bytes.Buffer, s string) error {
	data, err := json.Marshal(s)
	if err != nil {
		return err
	}
	buf.Write(data)
	return nil
}

// MarshalYAML implements yaml.Marshaler, keeping map keys in source order.
func (v Value) MarshalYAML() (any, error) {
	return v.toNode(), nil
}

func (v Value) toNode() *yaml.Node {
	switch v.kind {
	case Bool:
		if v.flag {
			return scalarNode("!!bool", "true")
		}
		return scalarNode("!!bool", "false")
	case Number:
		if strings.ContainsAny(v.text, ".eE") {
			return scalarNode("!!float", v.text)
		}
		return scalarNode("!!int", v.text)
	case String:
		return scalarNode("!!str", v.text)
	case Sequence:
		node := &yaml.Node{Kind: yaml.SequenceNode, Content: make([]*yaml.Node, 0, len(v.items))}
		for _, item := range v.items {
			node.Content = append(node.Content, item.toNode())
		}
		return node
	case Map:
		node := &yaml.Node{Kind: yaml.MappingNode, Content: make([]*yaml.Node, 0, 2*len(v.members))}
		for _, m := range v.members {
			node.Content = append(node.Content, scalarNode("!!str", m.Key), m.Value.toNode())
		}
		return node
	default:
		return scalarNode("!!null", "null")
	}
}

func scalarNode(tag, value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: value}
}
