package powerbi

import (
	"time"

	"github.com/powerbi-community/powerbi-go/pkg/resource"
)

// Import is a file that has been uploaded into Power BI, optionally
// workspace-scoped.
type Import struct {
	resource.Entity
}

// NewImport constructs an import handle.
func NewImport(rt resource.Requester, id string, opts ...resource.Option) *Import {
	i := &Import{}
	i.Entity = resource.New(rt, resource.KindImport, id, opts...)
	return i
}

// ImportProperties is the typed projection of an import payload.
type ImportProperties struct {
	ID              *string    `mapstructure:"id"`
	Name            *string    `mapstructure:"name"`
	ImportState     *string    `mapstructure:"importState"`
	ConnectionType  *string    `mapstructure:"connectionType"`
	Source          *string    `mapstructure:"source"`
	CreatedDateTime *time.Time `mapstructure:"createdDateTime"`
	UpdatedDateTime *time.Time `mapstructure:"updatedDateTime"`
}

// Properties decodes the cached payload into a typed snapshot.
func (i *Import) Properties() (*ImportProperties, error) {
	var p ImportProperties
	if err := decodeProperties(&i.Entity, &p); err != nil {
		return nil, err
	}
	return &p, nil
}
