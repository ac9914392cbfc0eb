package powerbi

import (
	"context"
	"time"

	"github.com/powerbi-community/powerbi-go/pkg/resource"
)

// Dataset is a Power BI dataset, optionally workspace-scoped.
type Dataset struct {
	resource.Entity
}

// NewDataset constructs a dataset handle.
func NewDataset(rt resource.Requester, id string, opts ...resource.Option) *Dataset {
	d := &Dataset{}
	d.Entity = resource.New(rt, resource.KindDataset, id, opts...)
	return d
}

// DatasetProperties is the typed projection of a dataset payload.
type DatasetProperties struct {
	ID                               *string    `mapstructure:"id"`
	Name                             *string    `mapstructure:"name"`
	WebURL                           *string    `mapstructure:"webUrl"`
	ConfiguredBy                     *string    `mapstructure:"configuredBy"`
	CreatedDate                      *time.Time `mapstructure:"createdDate"`
	AddRowsAPIEnabled                *bool      `mapstructure:"addRowsAPIEnabled"`
	IsRefreshable                    *bool      `mapstructure:"isRefreshable"`
	IsEffectiveIdentityRequired      *bool      `mapstructure:"isEffectiveIdentityRequired"`
	IsEffectiveIdentityRolesRequired *bool      `mapstructure:"isEffectiveIdentityRolesRequired"`
	IsOnPremGatewayRequired          *bool      `mapstructure:"isOnPremGatewayRequired"`
}

// Properties decodes the cached payload into a typed snapshot.
func (d *Dataset) Properties() (*DatasetProperties, error) {
	var p DatasetProperties
	if err := decodeProperties(&d.Entity, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Datasources lists the dataset's datasources.
func (d *Dataset) Datasources(ctx context.Context) ([]map[string]any, error) {
	return listRaw(ctx, d.Requester(), d.Path()+"/datasources", nil)
}

// RefreshHistory lists the dataset's refresh history, newest first as
// returned by the service. top limits the number of entries.
func (d *Dataset) RefreshHistory(ctx context.Context, top *int) ([]map[string]any, error) {
	params := resource.Query{Top: top}.Values()
	return listRaw(ctx, d.Requester(), d.Path()+"/refreshes", params)
}
