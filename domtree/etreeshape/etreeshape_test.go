package etreeshape_test

import (
	"testing"

	"github.com/beevik/etree"

	"cssvg/csstoken"
	"cssvg/cssvalue"
	"cssvg/domtree/etreeshape"
	"cssvg/selector"
)

func parseSelector(t *testing.T, src string) selector.Selector {
	t.Helper()
	tz := csstoken.New(src)
	values := cssvalue.ParseListOfComponentValues(tz, nil, true)
	sel, err := selector.Parse(values)
	if err != nil {
		t.Fatalf("parse %q: %v", src, err)
	}
	return sel
}

// buildTree builds:
//
//	<root>
//	  <a id="first" class="x y">
//	    <b/>
//	  </a>
//	  <c id="second" class="x">
//	    <b data-role="item"/>
//	  </c>
//	</root>
func buildTree() *etree.Element {
	doc := etree.NewDocument()
	root := doc.CreateElement("root")
	a := root.CreateElement("a")
	a.CreateAttr("id", "first")
	a.CreateAttr("class", "x y")
	a.CreateElement("b")

	c := root.CreateElement("c")
	c.CreateAttr("id", "second")
	c.CreateAttr("class", "x")
	cb := c.CreateElement("b")
	cb.CreateAttr("data-role", "item")

	return root
}

func TestMatchesAgainstEtreeTree(t *testing.T) {
	root := buildTree()
	a := root.ChildElements()[0]
	c := root.ChildElements()[1]
	cb := c.ChildElements()[0]

	cases := []struct {
		selector string
		el       *etree.Element
		want     bool
	}{
		{"a", a, true},
		{"a", c, false},
		{"#second", c, true},
		{".x", a, true},
		{".y", c, false},
		{"c > b", cb, true},
		{"a > b", cb, false},
		{"[data-role=item]", cb, true},
		{"root > c", c, true},
		{"a + c", c, true},
	}

	for _, tc := range cases {
		sel := parseSelector(t, tc.selector)
		got := sel.Matches(etreeshape.Wrap(tc.el))
		if got != tc.want {
			t.Errorf("%q against <%s>: got %v, want %v", tc.selector, tc.el.Tag, got, tc.want)
		}
	}
}

func TestShapeTraversalMatchesEtree(t *testing.T) {
	root := buildTree()
	a := root.ChildElements()[0]

	shape := etreeshape.Wrap(a)
	parent, ok := shape.Parent()
	if !ok || parent.(etreeshape.Shape).Unwrap() != root {
		t.Fatalf("Parent() did not return the wrapped etree root")
	}

	sibling, ok := shape.NextSibling()
	if !ok || sibling.(etreeshape.Shape).Unwrap() != root.ChildElements()[1] {
		t.Fatalf("NextSibling() did not return <c>")
	}

	child, ok := shape.FirstChild()
	if !ok || child.(etreeshape.Shape).Unwrap().Tag != "b" {
		t.Fatalf("FirstChild() did not return <b>")
	}
}
