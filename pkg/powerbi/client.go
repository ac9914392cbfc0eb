// Package powerbi maps the Power BI REST API onto typed, identity-bearing
// entities. Every method that targets a resource accepts a
// resource.Reference, so a bare id (resource.ID("...")) and a previously
// retrieved entity are interchangeable.
package powerbi

import (
	"context"
	"fmt"

	"github.com/powerbi-community/powerbi-go/pkg/resource"
)

// Client is the façade over the non-admin API surface. It holds the
// shared transport handle; all entities constructed through it share that
// handle and nothing else.
type Client struct {
	rt resource.Requester
}

// New creates a client on top of a transport capability, typically a
// *transport.Session.
func New(rt resource.Requester) *Client {
	return &Client{rt: rt}
}

// Admin returns the organization-wide admin operation group.
func (c *Client) Admin() *Admin {
	return &Admin{rt: c.rt}
}

// Imports returns the import operation group.
func (c *Client) Imports() *Imports {
	return &Imports{rt: c.rt}
}

// Group retrieves a single workspace. The service has no by-id endpoint
// for workspaces, so this filters the collection on the resolved id.
func (c *Client) Group(ctx context.Context, group resource.Reference) (*Group, error) {
	id := resource.Resolve(group)
	q := resource.Query{Filter: fmt.Sprintf("id eq '%s'", id)}

	groups, err := c.Groups(ctx, q)
	if err != nil {
		return nil, err
	}
	if len(groups) == 0 {
		return nil, fmt.Errorf("group %s: %w", id, ErrNoMatch)
	}
	return groups[0], nil
}

// Groups lists the workspaces the caller has access to.
func (c *Client) Groups(ctx context.Context, q resource.Query) ([]*Group, error) {
	path := resource.CollectionPath(resource.KindGroup, nil)
	return listEntities(ctx, c.rt, path, q, true, "", func(id, groupID string, raw map[string]any) *Group {
		return NewGroup(c.rt, id, resource.WithRaw(raw))
	})
}

// App retrieves a single installed app.
func (c *Client) App(ctx context.Context, app resource.Reference) (*App, error) {
	a := NewApp(c.rt, resource.Resolve(app))
	if err := a.Materialize(ctx); err != nil {
		return nil, err
	}
	return a, nil
}

// Apps lists the caller's installed apps.
func (c *Client) Apps(ctx context.Context, q resource.Query) ([]*App, error) {
	path := resource.CollectionPath(resource.KindApp, nil)
	return listEntities(ctx, c.rt, path, q, false, "", func(id, groupID string, raw map[string]any) *App {
		return NewApp(c.rt, id, resource.WithRaw(raw))
	})
}

// Dashboards lists dashboards, workspace-scoped when group is non-nil.
func (c *Client) Dashboards(ctx context.Context, group resource.Reference, q resource.Query) ([]*Dashboard, error) {
	groupID := resource.Resolve(group)
	path := resource.CollectionPath(resource.KindDashboard, resource.GroupParent(groupID))
	return listEntities(ctx, c.rt, path, q, group != nil, groupID, func(id, gid string, raw map[string]any) *Dashboard {
		return NewDashboard(c.rt, id, resource.WithGroup(gid), resource.WithRaw(raw))
	})
}

// Dataset retrieves a single dataset, workspace-scoped when group is
// non-nil.
func (c *Client) Dataset(ctx context.Context, dataset, group resource.Reference) (*Dataset, error) {
	d := NewDataset(c.rt, resource.Resolve(dataset), resource.WithGroup(resource.Resolve(group)))
	if err := d.Materialize(ctx); err != nil {
		return nil, err
	}
	return d, nil
}

// Datasets lists datasets, workspace-scoped when group is non-nil.
func (c *Client) Datasets(ctx context.Context, group resource.Reference, q resource.Query) ([]*Dataset, error) {
	groupID := resource.Resolve(group)
	path := resource.CollectionPath(resource.KindDataset, resource.GroupParent(groupID))
	return listEntities(ctx, c.rt, path, q, group != nil, groupID, func(id, gid string, raw map[string]any) *Dataset {
		return NewDataset(c.rt, id, resource.WithGroup(gid), resource.WithRaw(raw))
	})
}

// Dataflows lists a workspace's dataflows. The non-admin endpoint only
// exists workspace-scoped, so group is required.
func (c *Client) Dataflows(ctx context.Context, group resource.Reference, q resource.Query) ([]*Dataflow, error) {
	groupID := resource.Resolve(group)
	if groupID == "" {
		return nil, fmt.Errorf("dataflows: a group is required")
	}
	path := resource.CollectionPath(resource.KindDataflow, resource.GroupParent(groupID))
	return listEntities(ctx, c.rt, path, q, true, groupID, func(id, gid string, raw map[string]any) *Dataflow {
		return NewDataflow(c.rt, id, resource.WithGroup(gid), resource.WithRaw(raw))
	})
}
