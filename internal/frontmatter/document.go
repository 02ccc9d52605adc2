package frontmatter

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	meta "github.com/yuin/goldmark-meta"
	"github.com/yuin/goldmark/parser"
)

// Document is a parsed registry document.
type Document struct {
	Header Header
	Body   string
}

// ParseDocument parses content with the restricted dialect, then runs a YAML
// frontmatter pass and copies in any key the restricted parse left empty,
// such as block sequences:
//
//	commands:
//	  - deploy
//	  - list
//
// A YAML failure leaves the restricted result untouched.
func ParseDocument(content []byte) Document {
	h, body := Parse(string(content))
	if _, _, ok := split(string(content)); ok {
		if rich, err := yamlMeta(content); err == nil {
			supplement(h, rich)
		}
	}
	return Document{Header: h, Body: body}
}

func yamlMeta(content []byte) (map[string]interface{}, error) {
	md := goldmark.New(
		goldmark.WithExtensions(meta.Meta),
	)

	var buf bytes.Buffer
	pctx := parser.NewContext()
	if err := md.Convert(content, &buf, parser.WithContext(pctx)); err != nil {
		return nil, err
	}
	return meta.TryGet(pctx)
}

func supplement(h Header, rich map[string]interface{}) {
	for key, raw := range rich {
		if v, ok := h[key]; ok && (v.IsList || v.Scalar != "") {
			continue
		}
		switch val := raw.(type) {
		case nil, map[interface{}]interface{}, map[string]interface{}:
			// Nested structures are outside the dialect.
		case []interface{}:
			list := make([]string, 0, len(val))
			for _, item := range val {
				list = append(list, fmt.Sprint(item))
			}
			h[key] = Value{IsList: true, List: list}
		case string:
			h[key] = Value{Scalar: val}
		default:
			h[key] = Value{Scalar: fmt.Sprint(val)}
		}
	}
}
