// Package etreeshape adapts github.com/beevik/etree's *etree.Element to
// the domtree.Element contract, so the selector matcher can run directly
// against a parsed XML/SVG document tree.
package etreeshape

import (
	"strings"

	"github.com/beevik/etree"

	"cssvg/domtree"
)

// Shape wraps an *etree.Element to satisfy domtree.Element.
type Shape struct {
	el *etree.Element
}

// Wrap adapts an etree element. Wrap(nil) is valid and represents "no
// element" for callers that need a zero value.
func Wrap(el *etree.Element) Shape { return Shape{el: el} }

// Unwrap returns the underlying etree element.
func (s Shape) Unwrap() *etree.Element { return s.el }

func (s Shape) TagName() domtree.QualifiedName {
	return domtree.QualifiedName{Namespace: s.el.Space, Local: s.el.Tag}
}

func (s Shape) ID() string {
	v, _ := s.Attribute(domtree.QualifiedName{Local: "id"})
	return v
}

func (s Shape) ClassList() []string {
	v, _ := s.Attribute(domtree.QualifiedName{Local: "class"})
	return strings.Fields(v)
}

// Attribute matches by local name (Attr.Key); a "*" or empty requested
// namespace matches any attribute namespace, an explicit one requires an
// exact match against the attribute's Space.
func (s Shape) Attribute(name domtree.QualifiedName) (string, bool) {
	for _, a := range s.el.Attr {
		if a.Key != name.Local {
			continue
		}
		if name.Namespace == "" || name.Namespace == "*" || a.Space == name.Namespace {
			return a.Value, true
		}
	}
	return "", false
}

func (s Shape) Parent() (domtree.Element, bool) {
	p := s.el.Parent()
	if p == nil {
		return Shape{}, false
	}
	return Shape{el: p}, true
}

func (s Shape) FirstChild() (domtree.Element, bool) {
	children := s.el.ChildElements()
	if len(children) == 0 {
		return Shape{}, false
	}
	return Shape{el: children[0]}, true
}

func (s Shape) LastChild() (domtree.Element, bool) {
	children := s.el.ChildElements()
	if len(children) == 0 {
		return Shape{}, false
	}
	return Shape{el: children[len(children)-1]}, true
}

func (s Shape) NextSibling() (domtree.Element, bool) {
	parent := s.el.Parent()
	if parent == nil {
		return Shape{}, false
	}
	siblings := parent.ChildElements()
	for i, c := range siblings {
		if c == s.el {
			if i+1 < len(siblings) {
				return Shape{el: siblings[i+1]}, true
			}
			return Shape{}, false
		}
	}
	return Shape{}, false
}

func (s Shape) PreviousSibling() (domtree.Element, bool) {
	parent := s.el.Parent()
	if parent == nil {
		return Shape{}, false
	}
	siblings := parent.ChildElements()
	for i, c := range siblings {
		if c == s.el {
			if i > 0 {
				return Shape{el: siblings[i-1]}, true
			}
			return Shape{}, false
		}
	}
	return Shape{}, false
}

func (s Shape) Equal(other domtree.Element) bool {
	o, ok := other.(Shape)
	return ok && o.el == s.el
}
