package web

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/webdevreplits/azure-01/internal/auth"
	"github.com/webdevreplits/azure-01/internal/common"
	"github.com/webdevreplits/azure-01/internal/rbac"
)

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (s *Server) handleLogin(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username and password are required"})
		return
	}

	ctx := c.Request.Context()
	identity, err := s.authSvc.Authenticate(ctx, req.Username, req.Password)
	if err != nil {
		// One answer for unknown user and wrong password.
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid username or password"})
		return
	}

	token, err := auth.GenerateToken(identity, []byte(s.cfg.SecretKey), s.cfg.SessionTTL)
	if err != nil {
		s.log.Error(ctx, "token generation failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	s.audit.Record(ctx, identity.Username, "login", "session", "", nil)
	c.JSON(http.StatusOK, gin.H{"token": token, "identity": identity})
}

// handleLogout is a bookkeeping endpoint: tokens are stateless, so logout
// only audits the event and lets the client drop its copy.
func (s *Server) handleLogout(c *gin.Context) {
	identity := currentIdentity(c)
	s.audit.Record(c.Request.Context(), identity.Username, "logout", "session", "", nil)
	c.Status(http.StatusNoContent)
}

func (s *Server) handleMe(c *gin.Context) {
	c.JSON(http.StatusOK, currentIdentity(c))
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required"`
}

func (s *Server) handleChangePassword(c *gin.Context) {
	var req changePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "current_password and new_password are required"})
		return
	}

	ctx := c.Request.Context()
	identity := currentIdentity(c)

	// Re-verify before rotating the credential.
	if _, err := s.authSvc.Authenticate(ctx, identity.Username, req.CurrentPassword); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid username or password"})
		return
	}
	if err := s.authSvc.ChangePassword(ctx, identity.Username, req.NewPassword); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	s.audit.Record(ctx, identity.Username, "change_password", "account", identity.Username, nil)
	c.Status(http.StatusNoContent)
}

type accountView struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	CreatedAt string `json:"created_at"`
	LastLogin string `json:"last_login,omitempty"`
}

func (s *Server) handleListAccounts(c *gin.Context) {
	list, err := s.authSvc.ListAccounts(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	out := make([]accountView, 0, len(list))
	for _, a := range list {
		v := accountView{
			Username:  a.Username,
			Email:     a.Email,
			Role:      a.Role,
			CreatedAt: a.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"),
		}
		if a.LastLogin.Valid {
			v.LastLogin = a.LastLogin.Time.UTC().Format("2006-01-02T15:04:05Z")
		}
		out = append(out, v)
	}
	c.JSON(http.StatusOK, gin.H{"accounts": out})
}

type createAccountRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

func (s *Server) handleCreateAccount(c *gin.Context) {
	var req createAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username and password are required"})
		return
	}
	if req.Role == "" {
		req.Role = rbac.RoleViewer
	}

	ctx := c.Request.Context()
	err := s.authSvc.CreateAccount(ctx, req.Username, req.Password, req.Email, req.Role)
	switch {
	case errors.Is(err, common.ErrDuplicateAccount):
		c.JSON(http.StatusConflict, gin.H{"error": "username already exists"})
		return
	case errors.Is(err, common.ErrInvalidRole):
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid role: " + req.Role})
		return
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	s.audit.Record(ctx, currentIdentity(c).Username, "create_account", "account", req.Username,
		gin.H{"role": req.Role})
	c.JSON(http.StatusCreated, gin.H{"username": req.Username, "role": req.Role})
}

type updateRoleRequest struct {
	Role string `json:"role" binding:"required"`
}

func (s *Server) handleUpdateRole(c *gin.Context) {
	username := c.Param("username")

	var req updateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "role is required"})
		return
	}

	ctx := c.Request.Context()
	err := s.authSvc.UpdateRole(ctx, username, req.Role)
	switch {
	case errors.Is(err, common.ErrInvalidRole):
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid role: " + req.Role})
		return
	case errors.Is(err, common.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "account not found"})
		return
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	s.audit.Record(ctx, currentIdentity(c).Username, "update_role", "account", username,
		gin.H{"role": req.Role})
	c.JSON(http.StatusOK, gin.H{"username": username, "role": req.Role})
}

func (s *Server) handleDeleteAccount(c *gin.Context) {
	username := c.Param("username")
	identity := currentIdentity(c)

	if username == identity.Username {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cannot delete your own account"})
		return
	}

	ctx := c.Request.Context()
	err := s.authSvc.DeleteAccount(ctx, username)
	switch {
	case errors.Is(err, common.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "account not found"})
		return
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	s.audit.Record(ctx, identity.Username, "delete_account", "account", username, nil)
	c.Status(http.StatusNoContent)
}
