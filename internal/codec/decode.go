package codec

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ItemsKey holds repeated children when an element mixes repeated and
// single tags
const ItemsKey = "items"

// FormatError reports a document that is not XML or lacks the expected root
type FormatError struct {
	Root  string
	Cause error
}

func (e *FormatError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("invalid XML format: %v", e.Cause)
	}
	return fmt.Sprintf("invalid XML format: missing %s root", e.Root)
}

func (e *FormatError) Unwrap() error {
	return e.Cause
}

type node struct {
	name     string
	children []*node
	text     strings.Builder
}

// Decode parses s and returns the generic value of the first element
// named rootTag. Leaves decode to strings, elements with distinct child
// tags to map[string]any, and repeated child tags to []any (bare, or
// under ItemsKey when single tags sit beside them). No type coercion is
// attempted.
func Decode(s, rootTag string) (any, error) {
	doc, err := parse(s)
	if err != nil {
		return nil, &FormatError{Root: rootTag, Cause: err}
	}
	root := find(doc, rootTag)
	if root == nil {
		return nil, &FormatError{Root: rootTag}
	}
	return root.value(), nil
}

func parse(s string) (*node, error) {
	dec := xml.NewDecoder(strings.NewReader(s))
	doc := &node{}
	stack := []*node{doc}
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			n := &node{name: qualifiedName(t.Name)}
			parent := stack[len(stack)-1]
			parent.children = append(parent.children, n)
			stack = append(stack, n)
		case xml.EndElement:
			stack = stack[:len(stack)-1]
		case xml.CharData:
			stack[len(stack)-1].text.Write(t)
		}
	}
	if len(doc.children) == 0 {
		return nil, errors.New("document has no root element")
	}
	return doc, nil
}

func qualifiedName(n xml.Name) string {
	if n.Space == "" {
		return n.Local
	}
	return n.Space + ":" + n.Local
}

// find returns the first element named tag in document order
func find(n *node, tag string) *node {
	for _, c := range n.children {
		if c.name == tag {
			return c
		}
		if found := find(c, tag); found != nil {
			return found
		}
	}
	return nil
}

func (n *node) value() any {
	if len(n.children) == 0 {
		return n.text.String()
	}

	counts := make(map[string]int, len(n.children))
	repeated := false
	for _, c := range n.children {
		counts[c.name]++
		if counts[c.name] > 1 {
			repeated = true
		}
	}

	obj := make(map[string]any)
	if !repeated {
		for _, c := range n.children {
			obj[c.name] = c.value()
		}
		return obj
	}

	var items []any
	seen := make(map[string]bool, len(counts))
	for _, c := range n.children {
		if seen[c.name] {
			continue
		}
		seen[c.name] = true
		if counts[c.name] == 1 {
			obj[c.name] = c.value()
			continue
		}
		for _, same := range n.children {
			if same.name == c.name {
				items = append(items, same.value())
			}
		}
	}
	if len(obj) == 0 {
		return items
	}
	obj[ItemsKey] = items
	return obj
}
