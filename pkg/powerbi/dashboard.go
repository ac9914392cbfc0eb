package powerbi

import (
	"context"

	"github.com/powerbi-community/powerbi-go/pkg/resource"
)

// Dashboard is a Power BI dashboard, optionally workspace-scoped.
type Dashboard struct {
	resource.Entity
}

// NewDashboard constructs a dashboard handle.
func NewDashboard(rt resource.Requester, id string, opts ...resource.Option) *Dashboard {
	d := &Dashboard{}
	d.Entity = resource.New(rt, resource.KindDashboard, id, opts...)
	return d
}

// DashboardProperties is the typed projection of a dashboard payload.
type DashboardProperties struct {
	ID          *string `mapstructure:"id"`
	DisplayName *string `mapstructure:"displayName"`
	IsReadOnly  *bool   `mapstructure:"isReadOnly"`
	WebURL      *string `mapstructure:"webUrl"`
	EmbedURL    *string `mapstructure:"embedUrl"`
	AppID       *string `mapstructure:"appId"`
}

// Properties decodes the cached payload into a typed snapshot.
func (d *Dashboard) Properties() (*DashboardProperties, error) {
	var p DashboardProperties
	if err := decodeProperties(&d.Entity, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Tiles lists the dashboard's tiles. Each tile is addressed under this
// dashboard.
func (d *Dashboard) Tiles(ctx context.Context) ([]*Tile, error) {
	return listEntities(ctx, d.Requester(), d.Path()+"/tiles", resource.Query{}, false, "",
		func(id, groupID string, raw map[string]any) *Tile {
			return NewTile(d.Requester(), id, d.ID(), resource.WithRaw(raw))
		})
}

// Tile is a single tile on a dashboard. A tile's address is always
// dashboard-relative.
type Tile struct {
	resource.Entity
}

// NewTile constructs a tile handle under the given dashboard.
func NewTile(rt resource.Requester, id, dashboardID string, opts ...resource.Option) *Tile {
	t := &Tile{}
	opts = append([]resource.Option{
		resource.WithParent(&resource.Parent{Kind: resource.KindDashboard, ID: dashboardID}),
	}, opts...)
	t.Entity = resource.New(rt, resource.KindTile, id, opts...)
	return t
}

// TileProperties is the typed projection of a tile payload.
type TileProperties struct {
	ID        *string `mapstructure:"id"`
	Title     *string `mapstructure:"title"`
	RowSpan   *int    `mapstructure:"rowSpan"`
	ColSpan   *int    `mapstructure:"colSpan"`
	EmbedURL  *string `mapstructure:"embedUrl"`
	EmbedData *string `mapstructure:"embedData"`
	ReportID  *string `mapstructure:"reportId"`
	DatasetID *string `mapstructure:"datasetId"`
}

// Properties decodes the cached payload into a typed snapshot.
func (t *Tile) Properties() (*TileProperties, error) {
	var p TileProperties
	if err := decodeProperties(&t.Entity, &p); err != nil {
		return nil, err
	}
	return &p, nil
}
