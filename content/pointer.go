package content

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// PointerError reports a JSON pointer that does not address a value.
type PointerError struct {
	Pointer string
	Reason  string
}

func (e *PointerError) Error() string {
	return fmt.Sprintf("pointer %q: %s", e.Pointer, e.Reason)
}

// Pointer resolves a JSON pointer (RFC 6901) against v. The pointer may be
// given with or without the leading '#', and its tokens may be
// percent-encoded as they are inside URI fragments. Only "" addresses v
// itself; "/" addresses the member named "".
func (v Value) Pointer(ptr string) (Value, error) {
	ptr = strings.TrimPrefix(ptr, "#")
	if ptr == "" {
		return v, nil
	}
	if !strings.HasPrefix(ptr, "/") {
		return Value{}, &PointerError{Pointer: ptr, Reason: "must start with '/'"}
	}

	current := v
	parts := strings.Split(ptr[1:], "/")
	for i, part := range parts {
		if decoded, err := url.PathUnescape(part); err == nil {
			part = decoded
		}
		part = unescapeToken(part)
		at := "/" + strings.Join(parts[:i+1], "/")

		switch current.kind {
		case Map:
			next, ok := current.Get(part)
			if !ok {
				return Value{}, &PointerError{Pointer: ptr, Reason: fmt.Sprintf("missing key %q at %s", part, at)}
			}
			current = next
		case Sequence:
			index, err := strconv.Atoi(part)
			if err != nil || index < 0 {
				return Value{}, &PointerError{Pointer: ptr, Reason: fmt.Sprintf("invalid array index %q at %s", part, at)}
			}
			next, ok := current.Index(index)
			if !ok {
				return Value{}, &PointerError{Pointer: ptr, Reason: fmt.Sprintf("array index %d out of bounds (length %d) at %s", index, current.Len(), at)}
			}
			current = next
		default:
			return Value{}, &PointerError{Pointer: ptr, Reason: fmt.Sprintf("cannot traverse into %s at %s", current.kind, at)}
		}
	}
	return current, nil
}

// unescapeToken unescapes JSON Pointer tokens
// Per RFC 6901, ~1 represents / and ~0 represents ~
func unescapeToken(token string) string {
	token = strings.ReplaceAll(token, "~1", "/")
	return strings.ReplaceAll(token, "~0", "~")
}
