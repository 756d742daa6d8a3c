package azuremock

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResources_InventorySize(t *testing.T) {
	c := NewClient(1)
	resources := c.Resources(ResourceFilter{})
	assert.Len(t, resources, inventorySize)
}

func TestResources_Deterministic(t *testing.T) {
	a := NewClient(42).Resources(ResourceFilter{})
	b := NewClient(42).Resources(ResourceFilter{})
	assert.Equal(t, a, b)
}

func TestResources_Filters(t *testing.T) {
	c := NewClient(7)
	resources := c.Resources(ResourceFilter{ResourceGroup: "rg-production"})
	require.NotEmpty(t, resources)
	for _, r := range resources {
		assert.Equal(t, "rg-production", r.ResourceGroup)
	}

	// "All" is a wildcard, same as empty.
	all := NewClient(7).Resources(ResourceFilter{ResourceGroup: "All", Type: "All", Region: "All"})
	assert.Len(t, all, inventorySize)
}

func TestResources_ShapeBounds(t *testing.T) {
	c := NewClient(3)
	for _, r := range c.Resources(ResourceFilter{}) {
		assert.Contains(t, r.ID, "/subscriptions/")
		assert.Contains(t, resourceGroups, r.ResourceGroup)
		assert.Contains(t, regions, r.Region)
		assert.Contains(t, resourceTypes, r.Type)
		assert.Contains(t, resourceStatuses, r.Status)
		assert.GreaterOrEqual(t, r.MonthlyCost, 50)
		assert.LessOrEqual(t, r.MonthlyCost, 2000)
	}
}

func TestResource_ToModel(t *testing.T) {
	c := NewClient(5)
	r := c.Resources(ResourceFilter{})[0]
	m := r.ToModel()

	assert.Equal(t, r.ID, m.ResourceID)
	assert.Equal(t, r.Name, m.Name)
	assert.NotEmpty(t, m.SubscriptionID)

	var tags map[string]string
	require.NoError(t, json.Unmarshal([]byte(m.Tags), &tags))
	assert.Equal(t, r.Tags, tags)

	var props map[string]any
	require.NoError(t, json.Unmarshal([]byte(m.Properties), &props))
	assert.Contains(t, props, "monthly_cost")
}

func TestCosts(t *testing.T) {
	c := NewClient(9)
	data := c.Costs(30)

	require.Len(t, data.Dates, 31)
	require.Len(t, data.DailyCosts, 31)

	var total float64
	for _, v := range data.DailyCosts {
		assert.GreaterOrEqual(t, v, 100.0)
		total += v
	}
	assert.InDelta(t, total, data.TotalCost, 0.01)
	assert.InDelta(t, total/31, data.AverageDailyCost, 0.01)

	var byService float64
	for _, v := range data.CostByService {
		byService += v
	}
	assert.InDelta(t, data.TotalCost, byService, 0.01)
}

func TestCosts_DefaultWindow(t *testing.T) {
	data := NewClient(1).Costs(0)
	assert.Len(t, data.Dates, 31)
}

func TestMetrics(t *testing.T) {
	c := NewClient(11)
	series := c.Metrics("res-1", "cpu", 24)

	assert.Equal(t, "res-1", series.ResourceID)
	assert.Equal(t, "Percent", series.Unit)
	require.Len(t, series.Values, 24*12+1)
	require.Len(t, series.Timestamps, 24*12+1)
	for _, v := range series.Values {
		assert.GreaterOrEqual(t, v, 0.0)
		assert.LessOrEqual(t, v, 100.0)
	}
}

func TestMetrics_Units(t *testing.T) {
	c := NewClient(2)
	assert.Equal(t, "Milliseconds", c.Metrics("r", "latency", 1).Unit)
	assert.Equal(t, "Count/Minute", c.Metrics("r", "request_count", 1).Unit)
	assert.Equal(t, "Count", c.Metrics("r", "something_else", 1).Unit)
}

func TestHealth(t *testing.T) {
	c := NewClient(13)
	statuses := c.Health()
	require.Len(t, statuses, len(healthServices))

	for _, h := range statuses {
		assert.Contains(t, []string{"Healthy", "Warning", "Critical", "Unknown"}, h.Status)
		require.NotNil(t, h.Issues)
		if h.Status == "Healthy" || h.Status == "Unknown" {
			assert.Empty(t, h.Issues)
		} else {
			assert.NotEmpty(t, h.Issues)
			assert.LessOrEqual(t, len(h.Issues), 2)
		}
	}
}

func TestRecommendations(t *testing.T) {
	recs := NewClient(1).Recommendations()
	require.Len(t, recs, 4)
	assert.Equal(t, "Cost", recs[0].Category)
}
