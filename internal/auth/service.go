package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/webdevreplits/azure-01/internal/common"
	"github.com/webdevreplits/azure-01/internal/logging"
	"github.com/webdevreplits/azure-01/internal/models"
	"github.com/webdevreplits/azure-01/internal/rbac"
	"github.com/webdevreplits/azure-01/internal/repositories/accounts"
)

// Bootstrap demo account. Published credentials for first-run access; a
// known hazard, gated behind config and expected to be changed or disabled
// outside development.
const (
	BootstrapUsername = "demo@azure.com"
	bootstrapPassword = "demo123"
)

// Service owns account lifecycle and credential verification.
//
// Error contract: Authenticate collapses every failure ("unknown user",
// "wrong password", storage fault) into common.ErrUnauthorized so response
// shape cannot be used for user enumeration. Storage faults are logged
// here and never surfaced with driver internals.
type Service struct {
	accounts accounts.Repository
	log      logging.Logger
}

func NewService(repo accounts.Repository, log logging.Logger) *Service {
	return &Service{accounts: repo, log: log}
}

// CreateAccount registers a new account with a fresh salt and derived
// password hash. The role must be one of the defined roles.
func (s *Service) CreateAccount(ctx context.Context, username, password, email, role string) error {
	if !rbac.Valid(role) {
		return fmt.Errorf("%w: %s", common.ErrInvalidRole, role)
	}

	salt, err := NewSalt()
	if err != nil {
		return common.ErrInternal
	}

	account := &models.Account{
		Username:     username,
		PasswordHash: HashPassword(password, salt),
		PasswordSalt: salt,
		Email:        email,
		Role:         role,
	}

	if err := s.accounts.Create(ctx, account); err != nil {
		if errors.Is(err, common.ErrDuplicateAccount) {
			return common.ErrDuplicateAccount
		}
		s.log.Error(ctx, "account creation failed", "username", username, "error", err)
		return common.ErrInternal
	}

	return nil
}

// Authenticate verifies the submitted credentials and, on success, returns
// a SessionIdentity carrying the role's resolved permission set. The
// last-login update is best-effort: its failure never fails the login.
func (s *Service) Authenticate(ctx context.Context, username, password string) (*SessionIdentity, error) {
	account, err := s.accounts.GetByUsername(ctx, username)
	if err != nil {
		if !errors.Is(err, common.ErrNotFound) {
			// Fail closed on storage faults.
			s.log.Error(ctx, "account lookup failed", "error", err)
		}
		return nil, common.ErrUnauthorized
	}

	if account.PasswordSalt == "" ||
		!hashEqual(HashPassword(password, account.PasswordSalt), account.PasswordHash) {
		return nil, common.ErrUnauthorized
	}

	if err := s.accounts.UpdateLastLogin(ctx, username); err != nil {
		s.log.Warn(ctx, "failed to update last login", "username", username, "error", err)
	}

	return s.identity(account), nil
}

// UpdateRole changes an account's role. The caller is responsible for
// admin-gating; the service only validates the target role.
func (s *Service) UpdateRole(ctx context.Context, username, role string) error {
	if !rbac.Valid(role) {
		return fmt.Errorf("%w: %s", common.ErrInvalidRole, role)
	}
	if err := s.accounts.UpdateRole(ctx, username, role); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return common.ErrNotFound
		}
		s.log.Error(ctx, "role update failed", "username", username, "error", err)
		return common.ErrInternal
	}
	return nil
}

// ChangePassword re-derives the stored hash with a fresh salt.
func (s *Service) ChangePassword(ctx context.Context, username, newPassword string) error {
	salt, err := NewSalt()
	if err != nil {
		return common.ErrInternal
	}
	if err := s.accounts.UpdatePassword(ctx, username, HashPassword(newPassword, salt), salt); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return common.ErrNotFound
		}
		s.log.Error(ctx, "password change failed", "username", username, "error", err)
		return common.ErrInternal
	}
	return nil
}

// DeleteAccount removes an account. Admin-gated by the caller.
func (s *Service) DeleteAccount(ctx context.Context, username string) error {
	if err := s.accounts.Delete(ctx, username); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return common.ErrNotFound
		}
		s.log.Error(ctx, "account deletion failed", "username", username, "error", err)
		return common.ErrInternal
	}
	return nil
}

// ListAccounts returns all accounts newest-first, without credential fields.
func (s *Service) ListAccounts(ctx context.Context) ([]*models.Account, error) {
	list, err := s.accounts.List(ctx)
	if err != nil {
		s.log.Error(ctx, "account listing failed", "error", err)
		return nil, common.ErrInternal
	}
	return list, nil
}

// EnsureBootstrapAccount creates the demo admin account when absent. Safe
// to call on every startup: a concurrent duplicate insert is tolerated
// silently.
func (s *Service) EnsureBootstrapAccount(ctx context.Context) error {
	_, err := s.accounts.GetByUsername(ctx, BootstrapUsername)
	if err == nil {
		return nil
	}
	if !errors.Is(err, common.ErrNotFound) {
		s.log.Error(ctx, "bootstrap account lookup failed", "error", err)
		return common.ErrInternal
	}

	err = s.CreateAccount(ctx, BootstrapUsername, bootstrapPassword, BootstrapUsername, rbac.RoleAdmin)
	if errors.Is(err, common.ErrDuplicateAccount) {
		// Lost a check-then-create race; the account exists, which is all
		// that matters.
		return nil
	}
	if err == nil {
		s.log.Warn(ctx, "created demo admin account with published credentials, change the password",
			"username", BootstrapUsername)
	}
	return err
}

func (s *Service) identity(account *models.Account) *SessionIdentity {
	id := &SessionIdentity{
		Username:    account.Username,
		Email:       account.Email,
		Role:        account.Role,
		Permissions: rbac.PermissionsFor(account.Role),
	}
	if account.LastLogin.Valid {
		t := account.LastLogin.Time
		id.LastLogin = &t
	}
	return id
}
