package auth

import (
	"fmt"
	"time"

	"github.com/webdevreplits/azure-01/internal/common"
	"github.com/webdevreplits/azure-01/internal/rbac"
)

// SessionIdentity is the ephemeral authenticated identity derived from an
// Account at login. It is passed explicitly through call arguments or
// request contexts, never held in global state, and is never persisted.
// Credential material (hash, salt) is not part of it.
type SessionIdentity struct {
	Username    string     `json:"username"`
	Email       string     `json:"email"`
	Role        string     `json:"role"`
	Permissions []string   `json:"permissions"`
	LastLogin   *time.Time `json:"last_login,omitempty"`
}

// NewSessionIdentity builds an identity for a known-good username/role
// pair, resolving the role's permission set. It rejects roles outside the
// fixed mapping.
func NewSessionIdentity(username, email, role string) (*SessionIdentity, error) {
	if !rbac.Valid(role) {
		return nil, fmt.Errorf("%w: %s", common.ErrInvalidRole, role)
	}
	return &SessionIdentity{
		Username:    username,
		Email:       email,
		Role:        role,
		Permissions: rbac.PermissionsFor(role),
	}, nil
}

// HasPermission reports whether the identity's resolved permission set
// contains perm. Pure function, no I/O.
func (s *SessionIdentity) HasPermission(perm string) bool {
	if s == nil {
		return false
	}
	return rbac.HasPermission(s.Permissions, perm)
}

// IsAdmin is a convenience for the most common gate.
func (s *SessionIdentity) IsAdmin() bool {
	return s.HasPermission(rbac.PermAdmin)
}
