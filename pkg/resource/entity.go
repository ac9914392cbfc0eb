package resource

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"github.com/araddon/dateparse"
	"github.com/iancoleman/strcase"
)

// Requester is the transport capability the core consumes. A concrete
// implementation lives in pkg/transport; the core depends only on this
// two-method contract and never inspects status codes itself.
type Requester interface {
	Get(ctx context.Context, path string, params url.Values) (json.RawMessage, error)
	Post(ctx context.Context, path string, payload any) (json.RawMessage, error)
}

// Entity is the common base embedded by every domain object. It holds the
// entity's immutable identity, its computed address, the transport handle,
// and the last-known raw payload.
//
// An entity starts Unloaded (no raw payload) unless constructed with
// WithRaw. Materialize and Refresh are the only operations that perform
// I/O. Entities are not safe for concurrent mutation: callers are expected
// to drive a single entity instance from one logical sequence of calls.
type Entity struct {
	id     string
	kind   Kind
	parent *Parent
	path   string
	rt     Requester

	raw   map[string]any
	attrs map[string]any
}

// Option configures an Entity at construction.
type Option func(*entityConfig)

type entityConfig struct {
	parent *Parent
	raw    map[string]any
}

// WithParent scopes the entity under an enclosing resource. The address is
// computed from it at construction and never patched afterwards.
func WithParent(p *Parent) Option {
	return func(c *entityConfig) { c.parent = p }
}

// WithGroup scopes the entity under a workspace. An empty id leaves the
// entity top-level.
func WithGroup(groupID string) Option {
	return func(c *entityConfig) { c.parent = GroupParent(groupID) }
}

// WithRaw pre-hydrates the entity from an already-retrieved payload, e.g.
// one element of a list response. A pre-hydrated entity never fetches on
// Materialize.
func WithRaw(raw map[string]any) Option {
	return func(c *entityConfig) { c.raw = raw }
}

// New constructs an entity base. The identity is set exactly once here;
// the address is a pure function of (kind, identity, parent).
func New(rt Requester, kind Kind, id string, opts ...Option) Entity {
	var cfg entityConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	e := Entity{
		id:     id,
		kind:   kind,
		parent: cfg.parent,
		path:   BuildPath(kind, id, cfg.parent),
		rt:     rt,
	}
	if cfg.raw != nil {
		e.LoadFromRaw(cfg.raw)
	}
	return e
}

// ReferenceID implements Reference, making every entity usable wherever a
// bare identifier is accepted.
func (e *Entity) ReferenceID() string { return e.id }

// ID returns the entity's identity.
func (e *Entity) ID() string { return e.id }

// Kind returns the entity's kind.
func (e *Entity) Kind() Kind { return e.kind }

// Path returns the entity's canonical resource path.
func (e *Entity) Path() string { return e.path }

// GroupID returns the enclosing workspace id, or "" for a top-level
// entity or one nested under a non-workspace parent.
func (e *Entity) GroupID() string {
	if e.parent != nil && e.parent.Kind == KindGroup {
		return e.parent.ID
	}
	return ""
}

// Parent returns a copy of the entity's parent scope, or nil.
func (e *Entity) Parent() *Parent {
	if e.parent == nil {
		return nil
	}
	p := *e.parent
	return &p
}

// Loaded reports whether the entity holds a raw payload.
func (e *Entity) Loaded() bool { return e.raw != nil }

// Requester exposes the transport handle for sub-resource call-sites.
func (e *Entity) Requester() Requester { return e.rt }

// Materialize fetches and projects the entity's payload unless one is
// already cached, in which case it returns immediately with no I/O. This
// is the at-most-one-fetch guarantee for pre-hydrated entities. Two
// goroutines racing on an unloaded instance may both fetch; see the type
// comment on the single-caller expectation.
func (e *Entity) Materialize(ctx context.Context) error {
	if e.raw != nil {
		return nil
	}
	return e.fetch(ctx)
}

// Refresh unconditionally re-fetches the entity. On failure the previous
// raw payload and attributes are left untouched.
func (e *Entity) Refresh(ctx context.Context) error {
	return e.fetch(ctx)
}

func (e *Entity) fetch(ctx context.Context) error {
	body, err := e.rt.Get(ctx, e.path, nil)
	if err != nil {
		return fmt.Errorf("fetching %s %s: %w", e.kind, e.id, err)
	}
	raw, err := DecodeObject(body)
	if err != nil {
		return fmt.Errorf("fetching %s %s: %w", e.kind, e.id, err)
	}
	e.LoadFromRaw(raw)
	return nil
}

// LoadFromRaw stores an already-retrieved payload verbatim and projects
// it into the entity's attributes. It never performs I/O. Projection is
// partial-tolerant: keys absent from raw simply stay unset.
func (e *Entity) LoadFromRaw(raw map[string]any) {
	attrs := make(map[string]any, len(raw))
	for k, v := range raw {
		attrs[strcase.ToSnake(k)] = v
	}
	e.raw = raw
	e.attrs = attrs
}

// Raw returns the cached payload, or ErrNotLoaded when the entity has not
// been materialized yet.
func (e *Entity) Raw() (map[string]any, error) {
	if e.raw == nil {
		return nil, fmt.Errorf("%s %s: %w", e.kind, e.id, ErrNotLoaded)
	}
	return e.raw, nil
}

// Attr returns the named attribute. Attribute names are the snake_case
// form of the payload keys ("createdDateTime" -> "created_date_time").
// Reading before any load fails with ErrNotLoaded; reading a key the
// payload did not carry fails with ErrFieldUnset. Both are distinct from
// a legitimately empty value.
func (e *Entity) Attr(name string) (any, error) {
	if e.raw == nil {
		return nil, fmt.Errorf("%s %s attribute %q: %w", e.kind, e.id, name, ErrNotLoaded)
	}
	v, ok := e.attrs[name]
	if !ok {
		return nil, fmt.Errorf("%s %s attribute %q: %w", e.kind, e.id, name, ErrFieldUnset)
	}
	return v, nil
}

// StringAttr returns the named attribute as a string.
func (e *Entity) StringAttr(name string) (string, error) {
	v, err := e.Attr(name)
	if err != nil {
		return "", err
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("attribute %q: expected string, got %T: %w", name, v, ErrShapeMismatch)
	}
	return s, nil
}

// BoolAttr returns the named attribute as a bool.
func (e *Entity) BoolAttr(name string) (bool, error) {
	v, err := e.Attr(name)
	if err != nil {
		return false, err
	}
	b, ok := v.(bool)
	if !ok {
		return false, fmt.Errorf("attribute %q: expected bool, got %T: %w", name, v, ErrShapeMismatch)
	}
	return b, nil
}

// IntAttr returns the named attribute as an int. JSON numbers decode as
// float64, so both representations are accepted.
func (e *Entity) IntAttr(name string) (int, error) {
	v, err := e.Attr(name)
	if err != nil {
		return 0, err
	}
	switch n := v.(type) {
	case float64:
		return int(n), nil
	case int:
		return n, nil
	default:
		return 0, fmt.Errorf("attribute %q: expected number, got %T: %w", name, v, ErrShapeMismatch)
	}
}

// TimeAttr returns the named attribute parsed as a timestamp. The service
// is not consistent about timestamp formats, so parsing is lenient.
func (e *Entity) TimeAttr(name string) (time.Time, error) {
	s, err := e.StringAttr(name)
	if err != nil {
		return time.Time{}, err
	}
	t, err := dateparse.ParseAny(s)
	if err != nil {
		return time.Time{}, fmt.Errorf("attribute %q: %w", name, err)
	}
	return t, nil
}
