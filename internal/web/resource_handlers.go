package web

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/webdevreplits/azure-01/internal/azuremock"
	"github.com/webdevreplits/azure-01/internal/models"
	"github.com/webdevreplits/azure-01/internal/repositories/resources"
)

func (s *Server) handleListResources(c *gin.Context) {
	filter := resources.Filter{
		ResourceGroup: c.Query("resource_group"),
		Type:          c.Query("type"),
		Region:        c.Query("region"),
		Status:        c.Query("status"),
	}

	list, err := s.backend.Resources().List(c.Request.Context(), filter)
	if err != nil {
		s.log.Error(c.Request.Context(), "resource listing failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"resources": resourceViews(list)})
}

// handleRefreshResources pulls the current inventory from the provider
// client and upserts it into the cache.
func (s *Server) handleRefreshResources(c *gin.Context) {
	fetched := s.fetchResources(azuremock.ResourceFilter{})

	ctx := c.Request.Context()
	err := s.backend.ResourcesInTx(ctx, func(repo resources.Repository) error {
		for _, r := range fetched {
			m := r.ToModel()
			if err := repo.Upsert(ctx, &m); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		s.log.Error(ctx, "resource cache refresh failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	s.audit.Record(ctx, currentIdentity(c).Username, "refresh_resources", "resource", "",
		gin.H{"count": len(fetched)})
	c.JSON(http.StatusOK, gin.H{"refreshed": len(fetched)})
}

// fetchResources serializes access to the provider client, whose generator
// is not safe for concurrent use.
func (s *Server) fetchResources(filter azuremock.ResourceFilter) []azuremock.Resource {
	s.azureMu.Lock()
	defer s.azureMu.Unlock()
	return s.azure.Resources(filter)
}

func resourceViews(list []*models.Resource) []gin.H {
	out := make([]gin.H, 0, len(list))
	for _, r := range list {
		tags := json.RawMessage(r.Tags)
		if !json.Valid(tags) {
			tags = json.RawMessage("{}")
		}
		props := json.RawMessage(r.Properties)
		if !json.Valid(props) {
			props = json.RawMessage("{}")
		}
		out = append(out, gin.H{
			"resource_id":    r.ResourceID,
			"name":           r.Name,
			"type":           r.Type,
			"resource_group": r.ResourceGroup,
			"subscription":   r.SubscriptionID,
			"region":         r.Region,
			"status":         r.Status,
			"tags":           tags,
			"properties":     props,
			"last_updated":   r.LastUpdated,
		})
	}
	return out
}
