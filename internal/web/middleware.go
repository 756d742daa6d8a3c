package web

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/webdevreplits/azure-01/internal/auth"
	"github.com/webdevreplits/azure-01/internal/rbac"
)

const identityKey = "identity"

// requireStorage rejects persistence endpoints while running in demo mode.
func (s *Server) requireStorage(c *gin.Context) {
	if s.demoMode() {
		c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{
			"error": "storage unavailable, server is running in demo mode",
		})
		return
	}
	c.Next()
}

// requireAuth resolves the bearer token into a SessionIdentity and stores
// it in the request context. In demo mode no tokens can be issued, so every
// request acts as a read-only demo viewer instead.
func (s *Server) requireAuth(c *gin.Context) {
	if s.demoMode() {
		identity, err := auth.NewSessionIdentity("demo", "", rbac.RoleViewer)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		c.Set(identityKey, identity)
		c.Next()
		return
	}

	header := c.GetHeader("Authorization")
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || token == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
		return
	}

	identity, err := auth.IdentityFromToken(token, []byte(s.cfg.SecretKey))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
		return
	}

	c.Set(identityKey, identity)
	c.Next()
}

// requirePermission gates the route on one rbac permission. The response
// names the missing permission so the dashboard can explain the refusal.
func (s *Server) requirePermission(perm string) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity := currentIdentity(c)
		if identity == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
			return
		}
		if !identity.HasPermission(perm) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": "missing permission: " + perm,
			})
			return
		}
		c.Next()
	}
}

func currentIdentity(c *gin.Context) *auth.SessionIdentity {
	v, ok := c.Get(identityKey)
	if !ok {
		return nil
	}
	identity, ok := v.(*auth.SessionIdentity)
	if !ok {
		return nil
	}
	return identity
}
