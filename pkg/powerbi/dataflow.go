package powerbi

import (
	"context"
	"time"

	"github.com/powerbi-community/powerbi-go/pkg/resource"
)

// Dataflow is a Power BI dataflow. The service identifies dataflows by
// their objectId.
type Dataflow struct {
	resource.Entity
}

// NewDataflow constructs a dataflow handle.
func NewDataflow(rt resource.Requester, id string, opts ...resource.Option) *Dataflow {
	d := &Dataflow{}
	d.Entity = resource.New(rt, resource.KindDataflow, id, opts...)
	return d
}

// DataflowProperties is the typed projection of a dataflow payload.
type DataflowProperties struct {
	ObjectID         *string    `mapstructure:"objectId"`
	Name             *string    `mapstructure:"name"`
	Description      *string    `mapstructure:"description"`
	ModelURL         *string    `mapstructure:"modelUrl"`
	ConfiguredBy     *string    `mapstructure:"configuredBy"`
	ModifiedBy       *string    `mapstructure:"modifiedBy"`
	ModifiedDateTime *time.Time `mapstructure:"modifiedDateTime"`
}

// Properties decodes the cached payload into a typed snapshot.
func (d *Dataflow) Properties() (*DataflowProperties, error) {
	var p DataflowProperties
	if err := decodeProperties(&d.Entity, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Datasources lists the dataflow's datasources. Only available on
// workspace-scoped dataflow handles.
func (d *Dataflow) Datasources(ctx context.Context) ([]map[string]any, error) {
	return listRaw(ctx, d.Requester(), d.Path()+"/datasources", nil)
}
