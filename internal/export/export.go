// Package export renders incident and resource reports as CSV or JSON
// streams for download endpoints.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/webdevreplits/azure-01/internal/models"
)

// Format selects the report encoding.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
)

func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatCSV, FormatJSON:
		return Format(s), nil
	case "":
		return FormatCSV, nil
	default:
		return "", fmt.Errorf("unsupported export format: %q", s)
	}
}

// ContentType returns the MIME type for download responses.
func (f Format) ContentType() string {
	if f == FormatJSON {
		return "application/json"
	}
	return "text/csv"
}

// Filename builds a timestamped download name, e.g. incidents_20250102_150405.csv.
func Filename(report string, f Format, now time.Time) string {
	return fmt.Sprintf("%s_%s.%s", report, now.Format("20060102_150405"), f)
}

var incidentHeader = []string{
	"incident_id", "title", "status", "priority", "assignee",
	"service", "region", "category", "impact", "created_at", "updated_at",
}

// Incidents writes the incident list in the requested format.
func Incidents(w io.Writer, f Format, incidents []*models.Incident) error {
	if f == FormatJSON {
		return writeJSON(w, incidentRecords(incidents))
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(incidentHeader); err != nil {
		return fmt.Errorf("csv write: %w", err)
	}
	for _, inc := range incidents {
		row := []string{
			inc.IncidentID, inc.Title, inc.Status, inc.Priority, inc.Assignee,
			inc.Service, inc.Region, inc.Category, inc.Impact,
			inc.CreatedAt.Format(time.RFC3339), inc.UpdatedAt.Format(time.RFC3339),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("csv write: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

var resourceHeader = []string{
	"resource_id", "name", "type", "resource_group", "subscription",
	"region", "status", "tags", "last_updated",
}

// Resources writes the cached resource list in the requested format.
func Resources(w io.Writer, f Format, resources []*models.Resource) error {
	if f == FormatJSON {
		return writeJSON(w, resourceRecords(resources))
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(resourceHeader); err != nil {
		return fmt.Errorf("csv write: %w", err)
	}
	for _, r := range resources {
		row := []string{
			r.ResourceID, r.Name, r.Type, r.ResourceGroup, r.SubscriptionID,
			r.Region, r.Status, r.Tags, r.LastUpdated.Format(time.RFC3339),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("csv write: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// Audit writes audit entries as CSV only; the JSON shape is served by the
// audit listing endpoint itself.
func Audit(w io.Writer, entries []*models.AuditEntry) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"id", "timestamp", "user", "action", "resource_type", "resource_id", "details"}); err != nil {
		return fmt.Errorf("csv write: %w", err)
	}
	for _, e := range entries {
		row := []string{
			strconv.FormatInt(e.ID, 10), e.Timestamp.Format(time.RFC3339),
			e.UserID, e.Action, e.ResourceType, e.ResourceID, e.Details,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("csv write: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("json write: %w", err)
	}
	return nil
}

type incidentRecord struct {
	IncidentID  string `json:"incident_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      string `json:"status"`
	Priority    string `json:"priority"`
	Assignee    string `json:"assignee"`
	Service     string `json:"service"`
	Region      string `json:"region"`
	Category    string `json:"category"`
	Impact      string `json:"impact"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

func incidentRecords(incidents []*models.Incident) []incidentRecord {
	out := make([]incidentRecord, 0, len(incidents))
	for _, inc := range incidents {
		out = append(out, incidentRecord{
			IncidentID:  inc.IncidentID,
			Title:       inc.Title,
			Description: inc.Description,
			Status:      inc.Status,
			Priority:    inc.Priority,
			Assignee:    inc.Assignee,
			Service:     inc.Service,
			Region:      inc.Region,
			Category:    inc.Category,
			Impact:      inc.Impact,
			CreatedAt:   inc.CreatedAt.Format(time.RFC3339),
			UpdatedAt:   inc.UpdatedAt.Format(time.RFC3339),
		})
	}
	return out
}

type resourceRecord struct {
	ResourceID     string          `json:"resource_id"`
	Name           string          `json:"name"`
	Type           string          `json:"type"`
	ResourceGroup  string          `json:"resource_group"`
	SubscriptionID string          `json:"subscription"`
	Region         string          `json:"region"`
	Status         string          `json:"status"`
	Tags           json.RawMessage `json:"tags"`
	LastUpdated    string          `json:"last_updated"`
}

func resourceRecords(resources []*models.Resource) []resourceRecord {
	out := make([]resourceRecord, 0, len(resources))
	for _, r := range resources {
		tags := json.RawMessage(r.Tags)
		if !json.Valid(tags) {
			tags = json.RawMessage("{}")
		}
		out = append(out, resourceRecord{
			ResourceID:     r.ResourceID,
			Name:           r.Name,
			Type:           r.Type,
			ResourceGroup:  r.ResourceGroup,
			SubscriptionID: r.SubscriptionID,
			Region:         r.Region,
			Status:         r.Status,
			Tags:           tags,
			LastUpdated:    r.LastUpdated.Format(time.RFC3339),
		})
	}
	return out
}
