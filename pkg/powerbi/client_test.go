package powerbi

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/powerbi-community/powerbi-go/pkg/resource"
)

func TestClient_GroupFiltersOnResolvedID(t *testing.T) {
	rt := &fakeTransport{responses: map[string]json.RawMessage{
		"/groups": json.RawMessage(`{"value": [{"id": "ws-1", "name": "Marketing"}]}`),
	}}
	c := New(rt)

	g, err := c.Group(context.Background(), resource.ID("ws-1"))
	require.NoError(t, err)
	assert.Equal(t, "ws-1", g.ID())

	require.Len(t, rt.gets, 1)
	assert.Equal(t, "id eq 'ws-1'", rt.gets[0].params.Get("$filter"))
}

func TestClient_GroupNoMatch(t *testing.T) {
	rt := &fakeTransport{responses: map[string]json.RawMessage{
		"/groups": json.RawMessage(`{"value": []}`),
	}}
	c := New(rt)

	_, err := c.Group(context.Background(), resource.ID("nope"))
	assert.ErrorIs(t, err, ErrNoMatch)
}

func TestClient_DatasetMaterializes(t *testing.T) {
	rt := &fakeTransport{responses: map[string]json.RawMessage{
		"/groups/ws-1/datasets/ds-1": json.RawMessage(`{"id": "ds-1", "name": "Sales", "createdDate": "2023-11-02T07:15:00Z", "isRefreshable": true}`),
	}}
	c := New(rt)

	ds, err := c.Dataset(context.Background(), resource.ID("ds-1"), resource.ID("ws-1"))
	require.NoError(t, err)

	props, err := ds.Properties()
	require.NoError(t, err)
	require.NotNil(t, props.Name)
	assert.Equal(t, "Sales", *props.Name)
	require.NotNil(t, props.IsRefreshable)
	assert.True(t, *props.IsRefreshable)
	require.NotNil(t, props.CreatedDate)
	assert.Equal(t, time.Date(2023, 11, 2, 7, 15, 0, 0, time.UTC), props.CreatedDate.UTC())
	// Absent payload keys stay nil in the typed snapshot.
	assert.Nil(t, props.ConfiguredBy)
}

func TestClient_PropertiesBeforeLoad(t *testing.T) {
	ds := NewDataset(&fakeTransport{}, "ds-1")
	_, err := ds.Properties()
	assert.ErrorIs(t, err, resource.ErrNotLoaded)
}

func TestClient_DashboardsScoped(t *testing.T) {
	rt := &fakeTransport{responses: map[string]json.RawMessage{
		"/groups/ws-1/dashboards": json.RawMessage(`{"value": [{"id": "db-1", "displayName": "Ops"}]}`),
	}}
	c := New(rt)

	dashboards, err := c.Dashboards(context.Background(), resource.ID("ws-1"), resource.Query{})
	require.NoError(t, err)
	require.Len(t, dashboards, 1)
	assert.Equal(t, "/groups/ws-1/dashboards/db-1", dashboards[0].Path())
}

func TestClient_DashboardsOrgWide(t *testing.T) {
	rt := &fakeTransport{responses: map[string]json.RawMessage{
		"/dashboards": json.RawMessage(`{"value": [{"id": "db-1"}]}`),
	}}
	c := New(rt)

	dashboards, err := c.Dashboards(context.Background(), nil, resource.Query{})
	require.NoError(t, err)
	require.Len(t, dashboards, 1)
	assert.Equal(t, "", dashboards[0].GroupID())
	assert.Equal(t, "/dashboards/db-1", dashboards[0].Path())
}

func TestClient_DataflowsRequireGroup(t *testing.T) {
	c := New(&fakeTransport{})
	_, err := c.Dataflows(context.Background(), nil, resource.Query{})
	assert.Error(t, err)
}

func TestDashboard_TilesInheritDashboardScope(t *testing.T) {
	rt := &fakeTransport{responses: map[string]json.RawMessage{
		"/dashboards/db-1/tiles": json.RawMessage(`{"value": [{"id": "t-1", "rowSpan": 2}]}`),
	}}
	d := NewDashboard(rt, "db-1")

	tiles, err := d.Tiles(context.Background())
	require.NoError(t, err)
	require.Len(t, tiles, 1)
	assert.Equal(t, "/dashboards/db-1/tiles/t-1", tiles[0].Path())

	props, err := tiles[0].Properties()
	require.NoError(t, err)
	require.NotNil(t, props.RowSpan)
	assert.Equal(t, 2, *props.RowSpan)
}

func TestDataset_RefreshHistoryParams(t *testing.T) {
	rt := &fakeTransport{responses: map[string]json.RawMessage{
		"/datasets/ds-1/refreshes": json.RawMessage(`{"value": [{"status": "Completed"}]}`),
	}}
	ds := NewDataset(rt, "ds-1")

	history, err := ds.RefreshHistory(context.Background(), resource.Int(5))
	require.NoError(t, err)
	require.Len(t, history, 1)
	require.Len(t, rt.gets, 1)
	assert.Equal(t, "5", rt.gets[0].params.Get("$top"))
}
