package web

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

func (s *Server) handleSubscriptions(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"subscriptions": s.azure.Subscriptions()})
}

func (s *Server) handleResourceGroups(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"resource_groups": s.azure.ResourceGroups()})
}

func (s *Server) handleRegions(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"regions": s.azure.Regions()})
}

func (s *Server) handleResourceTypes(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"resource_types": s.azure.ResourceTypes()})
}

func (s *Server) handleServiceHealth(c *gin.Context) {
	s.azureMu.Lock()
	statuses := s.azure.Health()
	s.azureMu.Unlock()
	c.JSON(http.StatusOK, gin.H{"services": statuses})
}

func (s *Server) handleRecommendations(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"recommendations": s.azure.Recommendations()})
}

func (s *Server) handleCosts(c *gin.Context) {
	days := 30
	if v := c.Query("days"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 || n > 365 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "days must be between 1 and 365"})
			return
		}
		days = n
	}

	s.azureMu.Lock()
	data := s.azure.Costs(days)
	s.azureMu.Unlock()
	c.JSON(http.StatusOK, data)
}

func (s *Server) handleMetrics(c *gin.Context) {
	resourceID := c.Query("resource_id")
	metric := c.Query("metric")
	if resourceID == "" || metric == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "resource_id and metric are required"})
		return
	}

	hours := 24
	if v := c.Query("hours"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 || n > 168 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "hours must be between 1 and 168"})
			return
		}
		hours = n
	}

	s.azureMu.Lock()
	series := s.azure.Metrics(resourceID, metric, hours)
	s.azureMu.Unlock()
	c.JSON(http.StatusOK, series)
}
