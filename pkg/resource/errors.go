package resource

import "errors"

var (
	// ErrNotLoaded indicates an attribute read on an entity whose raw
	// payload has not been fetched or supplied yet.
	ErrNotLoaded = errors.New("entity not loaded")

	// ErrFieldUnset indicates the entity is loaded but the requested
	// attribute was absent from the server payload. This is distinct from
	// a present-but-empty value.
	ErrFieldUnset = errors.New("attribute not set")

	// ErrShapeMismatch indicates a response body whose shape does not
	// match what the operation expects (e.g. an object where a list was
	// expected, or a list element without an identity field).
	ErrShapeMismatch = errors.New("unexpected response shape")
)
