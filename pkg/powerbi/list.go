package powerbi

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/powerbi-community/powerbi-go/pkg/resource"
)

// ErrNoMatch indicates a lookup that completed successfully but matched
// no resource.
var ErrNoMatch = errors.New("no matching resource")

// listEntities is the single shaping path for every entity-returning list
// operation: validate and serialize the query, issue one GET, decode the
// list, and construct one entity per element.
//
// expandOK gates the $expand option; organization-wide endpoints do not
// support it and it is dropped silently there.
//
// Parent-scope precedence per element: a workspaceId carried by the
// element wins over the caller-supplied scope (federated listings mix
// elements from different workspaces); otherwise the caller's scope
// applies; with neither, the entity is top-level.
func listEntities[T any](
	ctx context.Context,
	rt resource.Requester,
	path string,
	q resource.Query,
	expandOK bool,
	scopeID string,
	build func(id, groupID string, raw map[string]any) T,
) ([]T, error) {
	if err := q.Validate(); err != nil {
		return nil, fmt.Errorf("listing %s: %w", path, err)
	}

	params := q.Values()
	if !expandOK {
		params.Del("$expand")
	}

	body, err := rt.Get(ctx, path, params)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", path, err)
	}

	items, err := resource.DecodeList(body)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", path, err)
	}

	out := make([]T, 0, len(items))
	for i, raw := range items {
		id := elementID(raw)
		if id == "" {
			return nil, fmt.Errorf("listing %s: element %d has no id: %w", path, i, resource.ErrShapeMismatch)
		}
		groupID := scopeID
		if ws, ok := raw["workspaceId"].(string); ok && ws != "" {
			groupID = ws
		}
		out = append(out, build(id, groupID, raw))
	}
	return out, nil
}

// elementID extracts a list element's identity. Most resources carry it
// as "id"; dataflows use "objectId".
func elementID(raw map[string]any) string {
	if id, ok := raw["id"].(string); ok && id != "" {
		return id
	}
	if id, ok := raw["objectId"].(string); ok {
		return id
	}
	return ""
}

// listRaw fetches a sub-resource collection that stays unprojected, such
// as users, subscriptions, and datasources.
func listRaw(ctx context.Context, rt resource.Requester, path string, params url.Values) ([]map[string]any, error) {
	body, err := rt.Get(ctx, path, params)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", path, err)
	}
	items, err := resource.DecodeList(body)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", path, err)
	}
	return items, nil
}
