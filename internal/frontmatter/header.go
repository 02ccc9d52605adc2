package frontmatter

import (
	"strings"
)

const delimiter = "---"

// Value is a coerced header value: either a scalar string or a list of strings.
type Value struct {
	Scalar string
	List   []string
	IsList bool
}

// Header maps header keys to their coerced values.
type Header map[string]Value

// Has reports whether key is present in the header.
func (h Header) Has(key string) bool {
	_, ok := h[key]
	return ok
}

// String returns the scalar value for key, or "" when absent or a list.
func (h Header) String(key string) string {
	v, ok := h[key]
	if !ok || v.IsList {
		return ""
	}
	return v.Scalar
}

// List returns the list value for key. A non-empty scalar is returned as a
// one-element list; an absent key yields nil.
func (h Header) List(key string) []string {
	v, ok := h[key]
	if !ok {
		return nil
	}
	if v.IsList {
		out := make([]string, len(v.List))
		copy(out, v.List)
		return out
	}
	if v.Scalar == "" {
		return nil
	}
	return []string{v.Scalar}
}

// Parse splits text into its header and body. Text without a complete
// header block yields an empty Header and the original text as body.
func Parse(text string) (Header, string) {
	block, body, ok := split(text)
	if !ok {
		return Header{}, text
	}
	return parseBlock(block), body
}

// split locates the header block. The opening delimiter must be the first
// line; the block ends at the next line consisting of the delimiter alone.
func split(text string) (block, body string, ok bool) {
	first, rest, found := strings.Cut(text, "\n")
	if !found || strings.TrimRight(first, "\r") != delimiter {
		return "", "", false
	}

	offset := 0
	for _, line := range strings.SplitAfter(rest, "\n") {
		if strings.TrimRight(line, "\r\n") == delimiter {
			return rest[:offset], rest[offset+len(line):], true
		}
		offset += len(line)
	}
	return "", "", false
}

func parseBlock(block string) Header {
	h := Header{}
	for _, line := range strings.Split(block, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		idx := strings.Index(line, ":")
		if idx == -1 {
			continue
		}
		key := strings.TrimSpace(line[:idx])
		if key == "" {
			continue
		}
		h[key] = coerce(strings.TrimSpace(line[idx+1:]))
	}
	return h
}

// coerce applies the value rules in precedence order: bracketed list,
// double-quoted string, single-quoted string, raw string.
func coerce(raw string) Value {
	switch {
	case enclosed(raw, '[', ']'):
		inner := raw[1 : len(raw)-1]
		if strings.TrimSpace(inner) == "" {
			return Value{IsList: true, List: []string{}}
		}
		parts := strings.Split(inner, ",")
		list := make([]string, 0, len(parts))
		for _, p := range parts {
			list = append(list, stripQuotes(strings.TrimSpace(p)))
		}
		return Value{IsList: true, List: list}
	case enclosed(raw, '"', '"'), enclosed(raw, '\'', '\''):
		return Value{Scalar: raw[1 : len(raw)-1]}
	default:
		return Value{Scalar: raw}
	}
}

func enclosed(s string, open, close byte) bool {
	return len(s) >= 2 && s[0] == open && s[len(s)-1] == close
}

// stripQuotes removes one leading and one trailing quote character, each
// independently of the other.
func stripQuotes(s string) string {
	if strings.HasPrefix(s, `"`) || strings.HasPrefix(s, "'") {
		s = s[1:]
	}
	if strings.HasSuffix(s, `"`) || strings.HasSuffix(s, "'") {
		s = s[:len(s)-1]
	}
	return s
}
