package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/webdevreplits/azure-01/internal/common"
	"github.com/webdevreplits/azure-01/internal/export"
	"github.com/webdevreplits/azure-01/internal/models"
	"github.com/webdevreplits/azure-01/internal/repositories/incidents"
	"github.com/webdevreplits/azure-01/internal/repositories/resources"
)

func (s *Server) handleListSettings(c *gin.Context) {
	list, err := s.backend.Settings().List(c.Request.Context())
	if err != nil {
		s.log.Error(c.Request.Context(), "settings listing failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"settings": settingViews(list)})
}

func (s *Server) handleGetSetting(c *gin.Context) {
	setting, err := s.backend.Settings().Get(c.Request.Context(), c.Param("key"))
	switch {
	case errors.Is(err, common.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "setting not found"})
		return
	case err != nil:
		s.log.Error(c.Request.Context(), "setting fetch failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, settingView(setting))
}

type setSettingRequest struct {
	Value       json.RawMessage `json:"value" binding:"required"`
	Description string          `json:"description"`
}

func (s *Server) handleSetSetting(c *gin.Context) {
	key := c.Param("key")

	var req setSettingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "value is required"})
		return
	}

	ctx := c.Request.Context()
	if err := s.backend.Settings().Set(ctx, key, string(req.Value), req.Description); err != nil {
		s.log.Error(ctx, "setting write failed", "key", key, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	s.audit.Record(ctx, currentIdentity(c).Username, "set_setting", "setting", key, nil)
	c.JSON(http.StatusOK, gin.H{"key": key})
}

func settingView(setting *models.Setting) gin.H {
	value := json.RawMessage(setting.Value)
	if !json.Valid(value) {
		// Legacy rows may hold bare strings; requote them.
		quoted, _ := json.Marshal(setting.Value)
		value = quoted
	}
	return gin.H{
		"key":         setting.Key,
		"value":       value,
		"description": setting.Description,
		"updated_at":  setting.UpdatedAt,
	}
}

func settingViews(list []*models.Setting) []gin.H {
	out := make([]gin.H, 0, len(list))
	for _, setting := range list {
		out = append(out, settingView(setting))
	}
	return out
}

func (s *Server) handleListAudit(c *gin.Context) {
	limit := 0
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a non-negative integer"})
			return
		}
		limit = n
	}

	entries, err := s.backend.Audit().List(c.Request.Context(), limit)
	if err != nil {
		s.log.Error(c.Request.Context(), "audit listing failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	out := make([]gin.H, 0, len(entries))
	for _, e := range entries {
		details := json.RawMessage(e.Details)
		if !json.Valid(details) {
			details = json.RawMessage("{}")
		}
		out = append(out, gin.H{
			"id":            e.ID,
			"user":          e.UserID,
			"action":        e.Action,
			"resource_type": e.ResourceType,
			"resource_id":   e.ResourceID,
			"details":       details,
			"timestamp":     e.Timestamp,
		})
	}
	c.JSON(http.StatusOK, gin.H{"entries": out})
}

func (s *Server) handleExportIncidents(c *gin.Context) {
	format, err := export.ParseFormat(c.Query("format"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	list, err := s.backend.Incidents().List(c.Request.Context(), incidents.Filter{
		Status: c.Query("status"),
	})
	if err != nil {
		s.log.Error(c.Request.Context(), "incident export failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	s.writeDownload(c, "incidents", format, func() error {
		return export.Incidents(c.Writer, format, list)
	})
}

func (s *Server) handleExportResources(c *gin.Context) {
	format, err := export.ParseFormat(c.Query("format"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	list, err := s.backend.Resources().List(c.Request.Context(), resources.Filter{})
	if err != nil {
		s.log.Error(c.Request.Context(), "resource export failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	s.writeDownload(c, "resources", format, func() error {
		return export.Resources(c.Writer, format, list)
	})
}

// handleExportAudit streams the entire trail, not the default page the
// listing endpoint serves.
func (s *Server) handleExportAudit(c *gin.Context) {
	entries, err := s.backend.Audit().ListAll(c.Request.Context())
	if err != nil {
		s.log.Error(c.Request.Context(), "audit export failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	s.writeDownload(c, "audit", export.FormatCSV, func() error {
		return export.Audit(c.Writer, entries)
	})
}

func (s *Server) writeDownload(c *gin.Context, report string, format export.Format, write func() error) {
	c.Header("Content-Type", format.ContentType())
	c.Header("Content-Disposition",
		"attachment; filename="+export.Filename(report, format, time.Now().UTC()))
	c.Status(http.StatusOK)
	if err := write(); err != nil {
		// Headers are already out; all that is left is logging.
		s.log.Error(c.Request.Context(), "export stream failed", "report", report, "error", err)
	}
}
