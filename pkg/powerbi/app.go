package powerbi

import (
	"context"
	"time"

	"github.com/powerbi-community/powerbi-go/pkg/resource"
)

// App is an installed Power BI app. Apps are top-level: they never nest
// under a workspace.
type App struct {
	resource.Entity
}

// NewApp constructs an app handle.
func NewApp(rt resource.Requester, id string, opts ...resource.Option) *App {
	a := &App{}
	a.Entity = resource.New(rt, resource.KindApp, id, opts...)
	return a
}

// AppProperties is the typed projection of an app payload.
type AppProperties struct {
	ID          *string    `mapstructure:"id"`
	Name        *string    `mapstructure:"name"`
	Description *string    `mapstructure:"description"`
	PublishedBy *string    `mapstructure:"publishedBy"`
	LastUpdate  *time.Time `mapstructure:"lastUpdate"`
}

// Properties decodes the cached payload into a typed snapshot.
func (a *App) Properties() (*AppProperties, error) {
	var p AppProperties
	if err := decodeProperties(&a.Entity, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Dashboards lists the dashboards published in the app.
func (a *App) Dashboards(ctx context.Context) ([]*Dashboard, error) {
	return listEntities(ctx, a.Requester(), a.Path()+"/dashboards", resource.Query{}, false, "",
		func(id, groupID string, raw map[string]any) *Dashboard {
			return NewDashboard(a.Requester(), id, resource.WithRaw(raw))
		})
}
