package web

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/webdevreplits/azure-01/internal/common"
	"github.com/webdevreplits/azure-01/internal/models"
	"github.com/webdevreplits/azure-01/internal/repositories/incidents"
)

type incidentRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Status      string `json:"status"`
	Priority    string `json:"priority"`
	Assignee    string `json:"assignee"`
	Service     string `json:"service"`
	Region      string `json:"region"`
	Category    string `json:"category"`
	Impact      string `json:"impact"`
}

func (s *Server) handleListIncidents(c *gin.Context) {
	filter := incidents.Filter{
		Status:   c.Query("status"),
		Assignee: c.Query("assignee"),
	}
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a non-negative integer"})
			return
		}
		filter.Limit = n
	}

	list, err := s.backend.Incidents().List(c.Request.Context(), filter)
	if err != nil {
		s.log.Error(c.Request.Context(), "incident listing failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"incidents": incidentViews(list)})
}

func (s *Server) handleIncidentSummary(c *gin.Context) {
	counts, err := s.backend.Incidents().CountByStatus(c.Request.Context())
	if err != nil {
		s.log.Error(c.Request.Context(), "incident summary failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"by_status": counts})
}

func (s *Server) handleGetIncident(c *gin.Context) {
	inc, err := s.backend.Incidents().Get(c.Request.Context(), c.Param("id"))
	switch {
	case errors.Is(err, common.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "incident not found"})
		return
	case err != nil:
		s.log.Error(c.Request.Context(), "incident fetch failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, incidentView(inc))
}

func (s *Server) handleCreateIncident(c *gin.Context) {
	var req incidentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title is required"})
		return
	}
	if req.Status == "" {
		req.Status = models.IncidentStatusOpen
	}
	if req.Priority == "" {
		req.Priority = models.IncidentPriorityMedium
	}

	inc := &models.Incident{
		IncidentID:  "INC-" + uuid.NewString()[:8],
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
		Assignee:    req.Assignee,
		Service:     req.Service,
		Region:      req.Region,
		Category:    req.Category,
		Impact:      req.Impact,
	}

	ctx := c.Request.Context()
	if err := s.backend.Incidents().Create(ctx, inc); err != nil {
		s.log.Error(ctx, "incident creation failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	s.audit.Record(ctx, currentIdentity(c).Username, "create_incident", "incident", inc.IncidentID,
		gin.H{"title": inc.Title, "priority": inc.Priority})
	c.JSON(http.StatusCreated, incidentView(inc))
}

func (s *Server) handleUpdateIncident(c *gin.Context) {
	incidentID := c.Param("id")

	var req incidentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title is required"})
		return
	}

	ctx := c.Request.Context()
	inc, err := s.backend.Incidents().Get(ctx, incidentID)
	switch {
	case errors.Is(err, common.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "incident not found"})
		return
	case err != nil:
		s.log.Error(ctx, "incident fetch failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	inc.Title = req.Title
	inc.Description = req.Description
	if req.Status != "" {
		inc.Status = req.Status
	}
	if req.Priority != "" {
		inc.Priority = req.Priority
	}
	inc.Assignee = req.Assignee
	inc.Service = req.Service
	inc.Region = req.Region
	inc.Category = req.Category
	inc.Impact = req.Impact

	if err := s.backend.Incidents().Update(ctx, inc); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "incident not found"})
			return
		}
		s.log.Error(ctx, "incident update failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	s.audit.Record(ctx, currentIdentity(c).Username, "update_incident", "incident", incidentID,
		gin.H{"status": inc.Status})
	c.JSON(http.StatusOK, incidentView(inc))
}

func incidentView(inc *models.Incident) gin.H {
	return gin.H{
		"incident_id": inc.IncidentID,
		"title":       inc.Title,
		"description": inc.Description,
		"status":      inc.Status,
		"priority":    inc.Priority,
		"assignee":    inc.Assignee,
		"service":     inc.Service,
		"region":      inc.Region,
		"category":    inc.Category,
		"impact":      inc.Impact,
		"created_at":  inc.CreatedAt,
		"updated_at":  inc.UpdatedAt,
	}
}

func incidentViews(list []*models.Incident) []gin.H {
	out := make([]gin.H, 0, len(list))
	for _, inc := range list {
		out = append(out, incidentView(inc))
	}
	return out
}
