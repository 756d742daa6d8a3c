package azuremock

import (
	"time"
)

// ServiceHealth is the status of one platform service.
type ServiceHealth struct {
	Service     string   `json:"service"`
	Status      string   `json:"status"`
	Region      string   `json:"region"`
	LastUpdated string   `json:"last_updated"`
	Issues      []string `json:"issues"`
}

var healthServices = []string{
	"Virtual Machines",
	"Storage Accounts",
	"App Services",
	"SQL Database",
	"Key Vault",
	"Container Instances",
	"Kubernetes Service",
	"Function Apps",
}

var healthIssues = []string{
	"High latency detected",
	"Intermittent connectivity issues",
	"Elevated error rates",
	"Resource capacity constraints",
	"Performance degradation",
}

// Health reports per-service status. Warning and Critical entries carry
// one or two issue descriptions; healthy entries an empty issue list.
func (c *Client) Health() []ServiceHealth {
	now := c.now()
	out := make([]ServiceHealth, 0, len(healthServices))
	for _, svc := range healthServices {
		h := ServiceHealth{
			Service:     svc,
			Status:      pick(c.rng, []string{"Healthy", "Warning", "Critical", "Unknown"}),
			Region:      pick(c.rng, regions),
			LastUpdated: now.Add(-time.Duration(1+c.rng.IntN(30)) * time.Minute).Format(time.RFC3339),
			Issues:      []string{},
		}
		if h.Status == "Warning" || h.Status == "Critical" {
			h.Issues = c.sampleIssues(1 + c.rng.IntN(2))
		}
		out = append(out, h)
	}
	return out
}

func (c *Client) sampleIssues(n int) []string {
	perm := c.rng.Perm(len(healthIssues))
	out := make([]string, 0, n)
	for _, idx := range perm[:n] {
		out = append(out, healthIssues[idx])
	}
	return out
}

// Recommendation is an advisor-style optimization suggestion.
type Recommendation struct {
	Category          string `json:"category"`
	Title             string `json:"title"`
	Description       string `json:"description"`
	PotentialSavings  string `json:"potential_savings"`
	AffectedResources int    `json:"affected_resources"`
	Priority          string `json:"priority"`
	Effort            string `json:"effort"`
}

// Recommendations returns the static advisor catalogue.
func (c *Client) Recommendations() []Recommendation {
	return []Recommendation{
		{
			Category:          "Cost",
			Title:             "Right-size underutilized virtual machines",
			Description:       "Your virtual machines are underutilized. Consider resizing to a smaller SKU.",
			PotentialSavings:  "$1,200/month",
			AffectedResources: 12,
			Priority:          "High",
			Effort:            "Low",
		},
		{
			Category:          "Performance",
			Title:             "Enable Accelerated Networking",
			Description:       "Improve network performance by enabling accelerated networking.",
			PotentialSavings:  "Performance improvement",
			AffectedResources: 8,
			Priority:          "Medium",
			Effort:            "Low",
		},
		{
			Category:          "Security",
			Title:             "Enable Azure Security Center recommendations",
			Description:       "Apply security recommendations to improve your security posture.",
			PotentialSavings:  "Security improvement",
			AffectedResources: 15,
			Priority:          "High",
			Effort:            "Medium",
		},
		{
			Category:          "Reliability",
			Title:             "Configure backup for virtual machines",
			Description:       "Protect your virtual machines by configuring backup.",
			PotentialSavings:  "Reliability improvement",
			AffectedResources: 6,
			Priority:          "Medium",
			Effort:            "Low",
		},
	}
}
