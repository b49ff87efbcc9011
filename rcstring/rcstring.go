// Package rcstring provides the immutable string value type used as every
// identifier and value key throughout the parser packages.
//
// Go's native string is already an immutable, GC-managed view over a byte
// buffer, and slicing a string already shares the backing array rather than
// copying — exactly the small-string/ref-counted behavior the donner C++
// original hand-rolls RcString for (it has no GC, so it needs an explicit
// refcount to share storage safely; Go's runtime already gives us that).
// String is therefore a named string type, not a struct with a refcount
// field: that would duplicate bookkeeping the runtime already does for
// free and gain nothing, so the standard library is the right tool here
// rather than a gap to fill with a third-party dependency.
package rcstring

import "strings"

// String is a reference-counted (by the Go runtime), immutable text value.
type String string

// New wraps text as a String. It never copies: the caller's bytes are
// shared, matching the "freely cloned" lifecycle of the spec.
func New(text string) String { return String(text) }

// Len returns the length in bytes.
func (s String) Len() int { return len(s) }

// Substr returns the substring [start, start+length). Sharing storage is
// implicit (Go strings already share their backing array on slice); the
// only "copy" that would ever occur is the one Dedup forces explicitly.
//
// It aborts (panics) on an out-of-range start, matching the spec's
// release-mode assertion for this contract violation.
func (s String) Substr(start, length int) String {
	if start < 0 || start > len(s) {
		panic("rcstring: Substr start out of range")
	}
	end := start + length
	if end > len(s) {
		end = len(s)
	}
	return s[start:end]
}

// Dedup forces a fresh, owned copy of the string's bytes. Useful when a
// small substring is being kept alive and the caller doesn't want it to
// pin a much larger backing array.
func (s String) Dedup() String {
	b := make([]byte, len(s))
	copy(b, s)
	return String(b)
}

// Equals reports exact byte equality.
func (s String) Equals(other String) bool { return s == other }

// EqualsLowercase reports whether s, compared case-insensitively, equals
// a literal that is already lowercase (e.g. a keyword). It performs the
// same strings.EqualFold comparison as EqualsIgnoreCase.
func (s String) EqualsLowercase(lowercaseLiteral string) bool {
	return strings.EqualFold(string(s), lowercaseLiteral)
}

// EqualsIgnoreCase reports whether s and other are equal under Unicode
// case folding.
func (s String) EqualsIgnoreCase(other String) bool {
	return strings.EqualFold(string(s), string(other))
}

// Compare returns -1, 0, or 1 per lexicographic byte ordering, matching
// strings.Compare.
func (s String) Compare(other String) int {
	return strings.Compare(string(s), string(other))
}

// Less reports lexicographic ordering, for use with sort.Slice.
func (s String) Less(other String) bool { return s < other }

func (s String) String() string { return string(s) }
