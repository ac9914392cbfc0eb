package resource

import (
	"net/url"
	"strconv"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Query carries the uniform list-endpoint options. Every option is
// independently optional; an omitted option is simply not sent, leaving
// the server default in effect. Filter expressions are passed through
// opaquely with no client-side syntax validation.
type Query struct {
	// Filter is a server-side boolean predicate ($filter).
	Filter string

	// Expand names related entities to expand inline ($expand). Only
	// parent-scoped list endpoints support it; organization-wide
	// operations drop it silently.
	Expand []string

	// Skip skips the first n results ($skip).
	Skip *int

	// Top limits the result to the first n entries ($top).
	Top *int
}

// Int returns a pointer to v, for populating the optional Query fields.
func Int(v int) *int { return &v }

// Validate rejects negative Skip/Top values. Filter and Expand are not
// validated; the service is the authority on their syntax.
func (q Query) Validate() error {
	return validation.ValidateStruct(&q,
		validation.Field(&q.Skip, validation.Min(0)),
		validation.Field(&q.Top, validation.Min(0)),
	)
}

// Values serializes the set options as request parameters. Unset options
// never appear, not even as empty placeholders.
func (q Query) Values() url.Values {
	params := url.Values{}
	if q.Filter != "" {
		params.Set("$filter", q.Filter)
	}
	if len(q.Expand) > 0 {
		params.Set("$expand", strings.Join(q.Expand, ","))
	}
	if q.Skip != nil {
		params.Set("$skip", strconv.Itoa(*q.Skip))
	}
	if q.Top != nil {
		params.Set("$top", strconv.Itoa(*q.Top))
	}
	return params
}
