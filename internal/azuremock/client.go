// Package azuremock simulates the Azure management plane for development
// and demos. It produces plausible resource inventories, cost series and
// metrics without any network access; swap it for a real SDK client in
// production.
package azuremock

import (
	"encoding/json"
	"fmt"
	"math"
	"math/rand/v2"
	"time"

	"github.com/webdevreplits/azure-01/internal/models"
)

var (
	subscriptions = []string{
		"Production Subscription",
		"Development Subscription",
		"Staging Subscription",
	}

	resourceGroups = []string{
		"rg-production",
		"rg-development",
		"rg-staging",
		"rg-shared",
		"rg-backup",
	}

	regions = []string{
		"East US",
		"West US 2",
		"North Europe",
		"Southeast Asia",
		"UK South",
	}

	resourceTypes = []string{
		"Virtual Machines",
		"Storage Accounts",
		"App Services",
		"SQL Databases",
		"Key Vaults",
		"Function Apps",
		"Container Instances",
		"Kubernetes Services",
	}

	resourceStatuses = []string{"Running", "Stopped", "Starting", "Deallocated"}
)

// Client generates simulated Azure data. The generator is seeded so a
// fixed seed yields a reproducible inventory; it is not safe for
// concurrent use, callers serialize access or hold one per goroutine.
type Client struct {
	rng *rand.Rand
	now func() time.Time
}

func NewClient(seed uint64) *Client {
	return &Client{
		rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		now: time.Now,
	}
}

func (c *Client) Subscriptions() []string {
	out := make([]string, len(subscriptions))
	copy(out, subscriptions)
	return out
}

func (c *Client) ResourceGroups() []string {
	out := make([]string, len(resourceGroups))
	copy(out, resourceGroups)
	return out
}

func (c *Client) Regions() []string {
	out := make([]string, len(regions))
	copy(out, regions)
	return out
}

func (c *Client) ResourceTypes() []string {
	out := make([]string, len(resourceTypes))
	copy(out, resourceTypes)
	return out
}

// Resource is one simulated inventory entry.
type Resource struct {
	ID            string            `json:"id"`
	Name          string            `json:"name"`
	Type          string            `json:"type"`
	ResourceGroup string            `json:"resource_group"`
	Region        string            `json:"region"`
	Status        string            `json:"status"`
	Tags          map[string]string `json:"tags"`
	CreatedDate   time.Time         `json:"created_date"`
	MonthlyCost   int               `json:"monthly_cost"`
}

// ResourceFilter narrows Resources output. Empty or "All" fields match
// everything.
type ResourceFilter struct {
	ResourceGroup string
	Type          string
	Region        string
}

func (f ResourceFilter) matches(r Resource) bool {
	if f.ResourceGroup != "" && f.ResourceGroup != "All" && r.ResourceGroup != f.ResourceGroup {
		return false
	}
	if f.Type != "" && f.Type != "All" && r.Type != f.Type {
		return false
	}
	if f.Region != "" && f.Region != "All" && r.Region != f.Region {
		return false
	}
	return true
}

const inventorySize = 50

// Resources generates the simulated inventory and applies the filter.
func (c *Client) Resources(filter ResourceFilter) []Resource {
	now := c.now()
	out := make([]Resource, 0, inventorySize)
	for i := 0; i < inventorySize; i++ {
		group := pick(c.rng, resourceGroups)
		r := Resource{
			ID: fmt.Sprintf("/subscriptions/sub-%03d/resourceGroups/%s/providers/Microsoft.Compute/resource-%03d",
				i, group, i),
			Name:          fmt.Sprintf("resource-%03d", i),
			Type:          pick(c.rng, resourceTypes),
			ResourceGroup: group,
			Region:        pick(c.rng, regions),
			Status:        pick(c.rng, resourceStatuses),
			Tags: map[string]string{
				"environment": pick(c.rng, []string{"prod", "dev", "staging"}),
				"cost-center": fmt.Sprintf("cc-%d", 1000+c.rng.IntN(9000)),
				"owner":       pick(c.rng, []string{"team-a", "team-b", "team-c"}),
			},
			CreatedDate: now.AddDate(0, 0, -(1 + c.rng.IntN(365))),
			MonthlyCost: 50 + c.rng.IntN(1951),
		}
		if filter.matches(r) {
			out = append(out, r)
		}
	}
	return out
}

// ToModel converts a simulated resource into a cacheable row. Tags are
// serialized to JSON text; the subscription is derived from the group.
func (r Resource) ToModel() models.Resource {
	tags, err := json.Marshal(r.Tags)
	if err != nil {
		tags = []byte("{}")
	}
	props, _ := json.Marshal(map[string]any{
		"created_date": r.CreatedDate.Format(time.RFC3339),
		"monthly_cost": r.MonthlyCost,
	})
	return models.Resource{
		ResourceID:     r.ID,
		Name:           r.Name,
		Type:           r.Type,
		ResourceGroup:  r.ResourceGroup,
		SubscriptionID: subscriptionFor(r.ResourceGroup),
		Region:         r.Region,
		Status:         r.Status,
		Tags:           string(tags),
		Properties:     string(props),
	}
}

func subscriptionFor(group string) string {
	switch group {
	case "rg-production", "rg-backup":
		return subscriptions[0]
	case "rg-development":
		return subscriptions[1]
	default:
		return subscriptions[2]
	}
}

// CostData is a daily cost series with per-service and per-group splits.
type CostData struct {
	Dates            []string           `json:"dates"`
	DailyCosts       []float64          `json:"daily_costs"`
	TotalCost        float64            `json:"total_cost"`
	AverageDailyCost float64            `json:"average_daily_cost"`
	CostByService    map[string]float64 `json:"cost_by_service"`
	CostByGroup      map[string]float64 `json:"cost_by_resource_group"`
}

// Costs synthesizes a daily cost series covering the last days days. The
// series carries a weekly seasonality, a slight upward trend and noise,
// floored at 100.
func (c *Client) Costs(days int) CostData {
	if days <= 0 {
		days = 30
	}
	now := c.now()
	start := now.AddDate(0, 0, -days)

	n := days + 1
	data := CostData{
		Dates:      make([]string, 0, n),
		DailyCosts: make([]float64, 0, n),
	}

	const baseCost = 500.0
	var total float64
	for i := 0; i < n; i++ {
		seasonal := 50 * math.Sin(2*math.Pi*float64(i)/7)
		trend := float64(i) * 2
		noise := c.rng.NormFloat64() * 50

		cost := math.Max(100, baseCost+seasonal+trend+noise)
		data.Dates = append(data.Dates, start.AddDate(0, 0, i).Format("2006-01-02"))
		data.DailyCosts = append(data.DailyCosts, cost)
		total += cost
	}

	data.TotalCost = total
	data.AverageDailyCost = total / float64(n)
	data.CostByService = map[string]float64{
		"Virtual Machines": total * 0.40,
		"Storage":          total * 0.18,
		"App Services":     total * 0.22,
		"SQL Database":     total * 0.12,
		"Networking":       total * 0.06,
		"Other":            total * 0.02,
	}
	data.CostByGroup = map[string]float64{
		"rg-production":  total * 0.55,
		"rg-development": total * 0.21,
		"rg-staging":     total * 0.12,
		"rg-shared":      total * 0.08,
		"rg-backup":      total * 0.04,
	}
	return data
}

func pick(rng *rand.Rand, values []string) string {
	return values[rng.IntN(len(values))]
}
