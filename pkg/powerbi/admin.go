package powerbi

import (
	"context"
	"fmt"

	"github.com/powerbi-community/powerbi-go/pkg/resource"
)

// adminPrefix roots every admin operation under the tenant-wide surface.
const adminPrefix = "/admin"

// Admin groups the organization-wide admin operations. These require
// tenant administrator rights; entities they return address the regular
// (non-admin) endpoints like any other entity.
type Admin struct {
	rt resource.Requester
}

// adminCollection builds an admin list path, workspace-relative when
// groupID is set.
func adminCollection(kind resource.Kind, groupID string) string {
	return adminPrefix + resource.CollectionPath(kind, resource.GroupParent(groupID))
}

// adminSub builds an admin sub-resource path under a single entity.
func adminSub(kind resource.Kind, id, sub string) string {
	return adminPrefix + resource.BuildPath(kind, id, nil) + "/" + sub
}

// AddEncryptionKey adds an encryption key for workspaces assigned to a
// capacity and returns the created tenant key.
func (a *Admin) AddEncryptionKey(ctx context.Context, name, keyVaultIdentifier string, activate, isDefault bool) (map[string]any, error) {
	payload := map[string]any{
		"name":                  name,
		"keyVaultKeyIdentifier": keyVaultIdentifier,
		"activate":              activate,
		"isDefault":             isDefault,
	}

	body, err := a.rt.Post(ctx, adminPrefix+"/tenantKeys", payload)
	if err != nil {
		return nil, fmt.Errorf("adding encryption key: %w", err)
	}
	return resource.DecodeObject(body)
}

// Apps lists the organization's apps. top limits the number of entries;
// nil returns all available.
func (a *Admin) Apps(ctx context.Context, top *int) ([]*App, error) {
	q := resource.Query{Top: top}
	return listEntities(ctx, a.rt, adminCollection(resource.KindApp, ""), q, false, "",
		func(id, groupID string, raw map[string]any) *App {
			return NewApp(a.rt, id, resource.WithRaw(raw))
		})
}

// AppUsers lists the users with access to the app.
func (a *Admin) AppUsers(ctx context.Context, app resource.Reference) ([]map[string]any, error) {
	return listRaw(ctx, a.rt, adminSub(resource.KindApp, resource.Resolve(app), "users"), nil)
}

// Dashboards lists dashboards for the organization, or for a single
// workspace when group is non-nil.
func (a *Admin) Dashboards(ctx context.Context, group resource.Reference, q resource.Query) ([]*Dashboard, error) {
	groupID := resource.Resolve(group)
	return listEntities(ctx, a.rt, adminCollection(resource.KindDashboard, groupID), q, true, groupID,
		func(id, gid string, raw map[string]any) *Dashboard {
			return NewDashboard(a.rt, id, resource.WithGroup(gid), resource.WithRaw(raw))
		})
}

// DashboardSubscriptions lists a dashboard's subscriptions along with
// subscriber details.
func (a *Admin) DashboardSubscriptions(ctx context.Context, dashboard resource.Reference) ([]map[string]any, error) {
	return listRaw(ctx, a.rt, adminSub(resource.KindDashboard, resource.Resolve(dashboard), "subscriptions"), nil)
}

// DashboardTiles lists the tiles on the dashboard.
func (a *Admin) DashboardTiles(ctx context.Context, dashboard resource.Reference) ([]*Tile, error) {
	dashboardID := resource.Resolve(dashboard)
	return listEntities(ctx, a.rt, adminSub(resource.KindDashboard, dashboardID, "tiles"), resource.Query{}, false, "",
		func(id, groupID string, raw map[string]any) *Tile {
			return NewTile(a.rt, id, dashboardID, resource.WithRaw(raw))
		})
}

// DashboardUsers lists the users with access to the dashboard.
func (a *Admin) DashboardUsers(ctx context.Context, dashboard resource.Reference) ([]map[string]any, error) {
	return listRaw(ctx, a.rt, adminSub(resource.KindDashboard, resource.Resolve(dashboard), "users"), nil)
}

// ExportDataflow exports the dataflow's definition and returns it as a
// pre-hydrated Dataflow; the definition file itself is the entity's raw
// payload.
func (a *Admin) ExportDataflow(ctx context.Context, dataflow resource.Reference) (*Dataflow, error) {
	path := adminSub(resource.KindDataflow, resource.Resolve(dataflow), "export")
	body, err := a.rt.Get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("exporting dataflow: %w", err)
	}
	raw, err := resource.DecodeObject(body)
	if err != nil {
		return nil, fmt.Errorf("exporting dataflow: %w", err)
	}
	id, _ := raw["objectId"].(string)
	if id == "" {
		return nil, fmt.Errorf("exporting dataflow: definition has no objectId: %w", resource.ErrShapeMismatch)
	}
	return NewDataflow(a.rt, id, resource.WithRaw(raw)), nil
}

// Dataflows lists dataflows for the organization, or for a single
// workspace when group is non-nil.
func (a *Admin) Dataflows(ctx context.Context, group resource.Reference, q resource.Query) ([]*Dataflow, error) {
	groupID := resource.Resolve(group)
	return listEntities(ctx, a.rt, adminCollection(resource.KindDataflow, groupID), q, false, groupID,
		func(id, gid string, raw map[string]any) *Dataflow {
			return NewDataflow(a.rt, id, resource.WithGroup(gid), resource.WithRaw(raw))
		})
}

// DataflowDatasources lists the dataflow's datasources.
func (a *Admin) DataflowDatasources(ctx context.Context, dataflow resource.Reference) ([]map[string]any, error) {
	return listRaw(ctx, a.rt, adminSub(resource.KindDataflow, resource.Resolve(dataflow), "datasources"), nil)
}

// DataflowUpstreamDataflows lists the dataflows the given dataflow
// depends on. Both the dataflow and its workspace must be named.
func (a *Admin) DataflowUpstreamDataflows(ctx context.Context, dataflow, group resource.Reference) ([]map[string]any, error) {
	path := adminPrefix + resource.BuildPath(
		resource.KindDataflow,
		resource.Resolve(dataflow),
		resource.GroupParent(resource.Resolve(group)),
	) + "/upstreamDataflows"
	return listRaw(ctx, a.rt, path, nil)
}

// DataflowUsers lists the users with access to the dataflow.
func (a *Admin) DataflowUsers(ctx context.Context, dataflow resource.Reference) ([]map[string]any, error) {
	return listRaw(ctx, a.rt, adminSub(resource.KindDataflow, resource.Resolve(dataflow), "users"), nil)
}

// Datasets lists datasets for the organization, or for a single workspace
// when group is non-nil. The organization-wide endpoint does not support
// $expand, so it is dropped there.
func (a *Admin) Datasets(ctx context.Context, group resource.Reference, q resource.Query) ([]*Dataset, error) {
	groupID := resource.Resolve(group)
	return listEntities(ctx, a.rt, adminCollection(resource.KindDataset, groupID), q, group != nil, groupID,
		func(id, gid string, raw map[string]any) *Dataset {
			return NewDataset(a.rt, id, resource.WithGroup(gid), resource.WithRaw(raw))
		})
}

// DatasetUsers lists the users with access to the dataset.
func (a *Admin) DatasetUsers(ctx context.Context, dataset resource.Reference) ([]map[string]any, error) {
	return listRaw(ctx, a.rt, adminSub(resource.KindDataset, resource.Resolve(dataset), "users"), nil)
}

// DatasetsUpstreamDataflows lists the dataset-to-dataflow links within a
// workspace.
func (a *Admin) DatasetsUpstreamDataflows(ctx context.Context, group resource.Reference) ([]map[string]any, error) {
	path := adminPrefix + resource.CollectionPath(
		resource.KindDataset,
		resource.GroupParent(resource.Resolve(group)),
	) + "/upstreamDataflows"
	return listRaw(ctx, a.rt, path, nil)
}
