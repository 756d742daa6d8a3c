// Package web serves the dashboard HTTP API.
package web

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/webdevreplits/azure-01/internal/auditlog"
	"github.com/webdevreplits/azure-01/internal/auth"
	"github.com/webdevreplits/azure-01/internal/azuremock"
	"github.com/webdevreplits/azure-01/internal/config"
	"github.com/webdevreplits/azure-01/internal/logging"
	"github.com/webdevreplits/azure-01/internal/storage"
)

// Server is the dashboard HTTP API. A nil backend puts the server in demo
// mode: simulated provider data stays available while everything that
// needs persistence answers 503.
type Server struct {
	cfg     *config.Config
	log     logging.Logger
	backend storage.Backend
	authSvc *auth.Service
	audit   *auditlog.Recorder

	azureMu sync.Mutex
	azure   *azuremock.Client

	engine  *gin.Engine
	httpSrv *http.Server
}

func NewServer(cfg *config.Config, log logging.Logger, backend storage.Backend,
	authSvc *auth.Service, azure *azuremock.Client) *Server {
	s := &Server{
		cfg:     cfg,
		log:     log,
		backend: backend,
		authSvc: authSvc,
		azure:   azure,
	}
	if backend != nil {
		s.audit = auditlog.NewRecorder(backend.Audit(), log)
	}
	s.engine = s.buildRouter()
	return s
}

func (s *Server) demoMode() bool { return s.backend == nil }

func (s *Server) buildRouter() *gin.Engine {
	if !s.cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Content-Type", "Authorization"},
		MaxAge:          12 * time.Hour,
	}))

	r.GET("/healthz", s.handleHealth)

	api := r.Group("/api/v1")

	authGroup := api.Group("/auth")
	authGroup.POST("/login", s.requireStorage, s.handleLogin)
	authGroup.POST("/logout", s.requireAuth, s.handleLogout)
	authGroup.GET("/me", s.requireAuth, s.handleMe)
	authGroup.POST("/password", s.requireStorage, s.requireAuth, s.handleChangePassword)

	accounts := api.Group("/accounts", s.requireStorage, s.requireAuth, s.requirePermission("admin"))
	accounts.GET("", s.handleListAccounts)
	accounts.POST("", s.handleCreateAccount)
	accounts.PUT("/:username/role", s.handleUpdateRole)
	accounts.DELETE("/:username", s.handleDeleteAccount)

	incidents := api.Group("/incidents", s.requireStorage, s.requireAuth)
	incidents.GET("", s.requirePermission("read"), s.handleListIncidents)
	incidents.GET("/summary", s.requirePermission("read"), s.handleIncidentSummary)
	incidents.GET("/:id", s.requirePermission("read"), s.handleGetIncident)
	incidents.POST("", s.requirePermission("write"), s.handleCreateIncident)
	incidents.PUT("/:id", s.requirePermission("write"), s.handleUpdateIncident)

	resources := api.Group("/resources", s.requireStorage, s.requireAuth)
	resources.GET("", s.requirePermission("read"), s.handleListResources)
	resources.POST("/refresh", s.requirePermission("write"), s.handleRefreshResources)

	azure := api.Group("/azure", s.requireAuth, s.requirePermission("read"))
	azure.GET("/subscriptions", s.handleSubscriptions)
	azure.GET("/resource-groups", s.handleResourceGroups)
	azure.GET("/regions", s.handleRegions)
	azure.GET("/resource-types", s.handleResourceTypes)
	azure.GET("/health", s.handleServiceHealth)
	azure.GET("/recommendations", s.handleRecommendations)
	if s.cfg.Features.CostManagement {
		azure.GET("/costs", s.handleCosts)
	}
	if s.cfg.Features.PerformanceMonitor {
		azure.GET("/metrics", s.handleMetrics)
	}

	settings := api.Group("/settings", s.requireStorage, s.requireAuth)
	settings.GET("", s.requirePermission("read"), s.handleListSettings)
	settings.GET("/:key", s.requirePermission("read"), s.handleGetSetting)
	settings.PUT("/:key", s.requirePermission("admin"), s.handleSetSetting)

	api.GET("/audit", s.requireStorage, s.requireAuth, s.requirePermission("admin"), s.handleListAudit)

	exports := api.Group("/export", s.requireStorage, s.requireAuth, s.requirePermission("read"))
	exports.GET("/incidents", s.handleExportIncidents)
	exports.GET("/resources", s.handleExportResources)
	exports.GET("/audit", s.requirePermission("admin"), s.handleExportAudit)

	return r
}

// Handler exposes the router for tests.
func (s *Server) Handler() http.Handler { return s.engine }

// Run serves until ctx is cancelled, then shuts down draining in-flight
// requests.
func (s *Server) Run(ctx context.Context) error {
	s.httpSrv = &http.Server{
		Addr:    s.cfg.Addr,
		Handler: s.engine,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info(ctx, "http server listening", "addr", s.cfg.Addr, "demo_mode", s.demoMode())
		if err := s.httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.httpSrv.Shutdown(shutdownCtx)
}

func (s *Server) handleHealth(c *gin.Context) {
	resp := gin.H{
		"status":    "ok",
		"demo_mode": s.demoMode(),
	}
	if s.backend != nil {
		resp["engine"] = string(s.backend.Engine())
		resp["connected"] = s.backend.Conn().PingContext(c.Request.Context()) == nil
	} else {
		resp["connected"] = false
	}
	c.JSON(http.StatusOK, resp)
}
