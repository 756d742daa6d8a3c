package accounts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/webdevreplits/azure-01/internal/common"
	"github.com/webdevreplits/azure-01/internal/dbx"
	"github.com/webdevreplits/azure-01/internal/models"
)

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// isUniqueViolation matches the sqlite unique-constraint error by message;
// the driver does not expose a typed error for it.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

func (r *SQLiteRepository) Create(ctx context.Context, account *models.Account) error {
	if account.CreatedAt.IsZero() {
		account.CreatedAt = time.Now().UTC()
	}

	query :=
		`INSERT INTO accounts (username, password_hash, password_salt, email, role, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)
		 `

	res, err := r.db.ExecContext(ctx, query,
		account.Username, account.PasswordHash, account.PasswordSalt,
		account.Email, account.Role, account.CreatedAt)

	if err != nil {
		if isUniqueViolation(err) {
			return common.ErrDuplicateAccount
		}
		return fmt.Errorf("db error: %w", err)
	}

	account.ID, err = res.LastInsertId()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) GetByUsername(ctx context.Context, username string) (*models.Account, error) {
	query :=
		`SELECT id, username, password_hash, password_salt, email, role, created_at, last_login
		 FROM accounts
		 WHERE username = ?
		 `

	account := &models.Account{}
	var hash, salt, email sql.NullString

	err := r.db.QueryRowContext(ctx, query, username).Scan(
		&account.ID, &account.Username, &hash, &salt, &email,
		&account.Role, &account.CreatedAt, &account.LastLogin)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	account.PasswordHash = hash.String
	account.PasswordSalt = salt.String
	account.Email = email.String
	return account, nil
}

func (r *SQLiteRepository) UpdateRole(ctx context.Context, username, role string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE accounts SET role = ? WHERE username = ?`, role, username)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return requireRow(res)
}

func (r *SQLiteRepository) UpdatePassword(ctx context.Context, username, hash, salt string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE accounts SET password_hash = ?, password_salt = ? WHERE username = ?`,
		hash, salt, username)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return requireRow(res)
}

func (r *SQLiteRepository) UpdateLastLogin(ctx context.Context, username string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE accounts SET last_login = ? WHERE username = ?`, time.Now().UTC(), username)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, username string) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM accounts WHERE username = ?`, username)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return requireRow(res)
}

func (r *SQLiteRepository) List(ctx context.Context) ([]*models.Account, error) {
	query :=
		`SELECT id, username, email, role, created_at, last_login
		 FROM accounts
		 ORDER BY created_at DESC, id DESC
		 `

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Account
	for rows.Next() {
		account := &models.Account{}
		var email sql.NullString
		if err := rows.Scan(&account.ID, &account.Username, &email,
			&account.Role, &account.CreatedAt, &account.LastLogin); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		account.Email = email.String
		result = append(result, account)
	}

	return result, rows.Err()
}
