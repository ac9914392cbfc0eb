// Package resource implements the access core shared by every Power BI
// domain object: polymorphic id-or-object references, canonical resource
// path construction, lazy raw-payload materialization, and uniform list
// query shaping.
package resource

// Reference is a value that names a resource: either a bare identifier
// (the ID type) or an already-materialized entity. Methods that target a
// resource accept a Reference so callers can pass whichever they have.
type Reference interface {
	// ReferenceID returns the canonical identifier of the referenced
	// resource.
	ReferenceID() string
}

// ID is the bare-identifier arm of Reference.
type ID string

// ReferenceID implements Reference.
func (id ID) ReferenceID() string { return string(id) }

// Resolve normalizes a Reference to its identifier string. It is a total
// function: a string reference is returned verbatim (no existence check,
// no network call - a bad identifier surfaces later as a transport
// failure), an entity reference yields the entity's identity, and a nil
// reference yields the empty string, which callers treat as an absent
// scope.
func Resolve(ref Reference) string {
	if ref == nil {
		return ""
	}
	return ref.ReferenceID()
}
