package powerbi

import (
	"github.com/powerbi-community/powerbi-go/pkg/resource"
)

// Group is a Power BI workspace, the parent scope most other resources
// nest under.
type Group struct {
	resource.Entity
}

// NewGroup constructs a workspace handle. Without a raw payload the
// attributes stay unset until Materialize runs.
func NewGroup(rt resource.Requester, id string, opts ...resource.Option) *Group {
	g := &Group{}
	g.Entity = resource.New(rt, resource.KindGroup, id, opts...)
	return g
}

// GroupProperties is the typed projection of a workspace payload. Nil
// fields were absent from the payload.
type GroupProperties struct {
	ID                    *string `mapstructure:"id"`
	Name                  *string `mapstructure:"name"`
	Type                  *string `mapstructure:"type"`
	State                 *string `mapstructure:"state"`
	IsReadOnly            *bool   `mapstructure:"isReadOnly"`
	IsOnDedicatedCapacity *bool   `mapstructure:"isOnDedicatedCapacity"`
	CapacityID            *string `mapstructure:"capacityId"`
}

// Properties decodes the cached payload into a typed snapshot. The group
// must be loaded first.
func (g *Group) Properties() (*GroupProperties, error) {
	var p GroupProperties
	if err := decodeProperties(&g.Entity, &p); err != nil {
		return nil, err
	}
	return &p, nil
}
