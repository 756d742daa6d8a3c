package azuremock

import (
	"math"
	"strings"
	"time"
)

// MetricSeries is a timestamped series of metric samples for one resource.
type MetricSeries struct {
	ResourceID  string    `json:"resource_id"`
	MetricName  string    `json:"metric_name"`
	Timestamps  []string  `json:"timestamps"`
	Values      []float64 `json:"values"`
	Unit        string    `json:"unit"`
	Aggregation string    `json:"aggregation"`
}

var metricUnits = map[string]string{
	"cpu":              "Percent",
	"cpu_usage":        "Percent",
	"processor_time":   "Percent",
	"memory":           "Percent",
	"memory_usage":     "Percent",
	"available_memory": "Bytes",
	"response_time":    "Milliseconds",
	"latency":          "Milliseconds",
	"requests":         "Count",
	"request_count":    "Count/Minute",
	"disk_io":          "Bytes/Second",
	"network_in":       "Bytes/Second",
	"network_out":      "Bytes/Second",
}

func metricUnit(name string) string {
	if u, ok := metricUnits[strings.ToLower(name)]; ok {
		return u
	}
	return "Count"
}

// Metrics synthesizes hours of 5-minute samples for the named metric.
// Profiles are metric-specific: CPU and memory stay within 0..100, latency
// floors at 50ms, request counts at zero.
func (c *Client) Metrics(resourceID, metricName string, hours int) MetricSeries {
	if hours <= 0 {
		hours = 24
	}
	now := c.now()
	start := now.Add(-time.Duration(hours) * time.Hour)

	n := hours*12 + 1
	series := MetricSeries{
		ResourceID:  resourceID,
		MetricName:  metricName,
		Timestamps:  make([]string, 0, n),
		Values:      make([]float64, 0, n),
		Unit:        metricUnit(metricName),
		Aggregation: "Average",
	}

	for i := 0; i < n; i++ {
		series.Timestamps = append(series.Timestamps,
			start.Add(time.Duration(i)*5*time.Minute).Format(time.RFC3339))
		series.Values = append(series.Values, c.metricSample(metricName, i))
	}
	return series
}

func (c *Client) metricSample(metricName string, i int) float64 {
	daily := 2 * math.Pi * float64(i) / 288

	switch strings.ToLower(metricName) {
	case "cpu", "cpu_usage", "processor_time":
		return clamp(65+c.rng.NormFloat64()*15+10*math.Sin(daily), 0, 100)
	case "memory", "memory_usage", "available_memory":
		return clamp(70+c.rng.NormFloat64()*10+5*math.Sin(daily), 0, 100)
	case "response_time", "latency":
		return math.Max(50, 250+c.rng.NormFloat64()*50+20*math.Sin(2*daily))
	case "requests", "request_count":
		return math.Max(0, 1200+c.rng.NormFloat64()*200+400*math.Sin(daily))
	default:
		return 50 + c.rng.NormFloat64()*10
	}
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
