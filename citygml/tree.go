package citygml

import (
	"encoding/xml"
	"io"
	"strings"

	"github.com/pkg/errors"
)

// node is an element of the document with its namespace resolved.
type node struct {
	name     xml.Name
	attrs    []xml.Attr
	children []*node
	text     strings.Builder
}

func parseTree(r io.Reader) (*node, error) {
	dec := xml.NewDecoder(r)
	var (
		root  *node
		stack []*node
	)
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "decode xml")
		}

		switch t := tok.(type) {
		case xml.StartElement:
			n := &node{name: t.Name, attrs: t.Attr}
			if len(stack) > 0 {
				parent := stack[len(stack)-1]
				parent.children = append(parent.children, n)
			} else if root == nil {
				root = n
			}
			stack = append(stack, n)
		case xml.EndElement:
			stack = stack[:len(stack)-1]
		case xml.CharData:
			if len(stack) > 0 {
				stack[len(stack)-1].text.Write(t)
			}
		}
	}
	if root == nil {
		return nil, errors.Wrap(ErrMalformed, "no root element")
	}
	return root, nil
}

func (n *node) is(space, local string) bool {
	return n.name.Space == space && n.name.Local == local
}

// descendants returns the elements below n, in document order, for which
// match is true.
func (n *node) descendants(match func(*node) bool) []*node {
	var out []*node
	var walk func(*node)
	walk = func(cur *node) {
		for _, c := range cur.children {
			if match(c) {
				out = append(out, c)
			}
			walk(c)
		}
	}
	walk(n)
	return out
}

func (n *node) find(space, local string) []*node {
	return n.descendants(func(c *node) bool { return c.is(space, local) })
}

func (n *node) child(space, local string) *node {
	for _, c := range n.children {
		if c.is(space, local) {
			return c
		}
	}
	return nil
}

func (n *node) attr(space, local string) (string, bool) {
	for _, a := range n.attrs {
		if a.Name.Space == space && a.Name.Local == local {
			return a.Value, true
		}
	}
	return "", false
}

func (n *node) content() string {
	return strings.TrimSpace(n.text.String())
}
