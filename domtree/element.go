// Package domtree defines the element-shape contract the selector matcher
// requires of a host tree, so the matcher can operate against any tree
// implementation without depending on a concrete DOM. See the etreeshape
// subpackage for the adapter wrapping github.com/beevik/etree.
package domtree

// QualifiedName is an XML-style name: a namespace prefix (possibly empty
// or "*") plus a local name.
type QualifiedName struct {
	Namespace string
	Local     string
}

// Element is the duck-typed contract the selector matcher (package
// selector) needs from a host tree. Implementations are expected to be
// cheap value types (or pointers) that compare correctly with Equal —
// the matcher never assumes pointer identity or == directly, since
// adapters are free to wrap a tree however is convenient for them.
type Element interface {
	// TagName returns the element's qualified tag name, used by type
	// selectors and the *-of-type pseudo-classes.
	TagName() QualifiedName

	// ID returns the element's id attribute value, or "" if unset.
	ID() string

	// ClassList returns the whitespace-separated tokens of the
	// element's class attribute.
	ClassList() []string

	// Attribute looks up an attribute by qualified name. When name.
	// Namespace is "*", implementations should return the first
	// matching attribute by local name regardless of namespace.
	Attribute(name QualifiedName) (value string, ok bool)

	// Parent returns the element's parent, or ok=false at the root.
	Parent() (Element, bool)

	// FirstChild and NextSibling (together with LastChild and
	// PreviousSibling) let the matcher walk the tree in every
	// direction the combinators and structural pseudo-classes need,
	// without requiring random-access indexing.
	FirstChild() (Element, bool)
	LastChild() (Element, bool)
	NextSibling() (Element, bool)
	PreviousSibling() (Element, bool)

	// Equal reports whether other refers to the same node in the
	// tree. Used by the nth-child family to locate an element among
	// its parent's children.
	Equal(other Element) bool
}
