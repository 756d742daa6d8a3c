package accounts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/webdevreplits/azure-01/internal/common"
	"github.com/webdevreplits/azure-01/internal/dbx"
	"github.com/webdevreplits/azure-01/internal/models"
)

// uniqueViolation is the postgres error code for unique-constraint failures.
const uniqueViolation = "23505"

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, account *models.Account) error {
	query :=
		`INSERT INTO accounts (username, password_hash, password_salt, email, role)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		account.Username, account.PasswordHash, account.PasswordSalt,
		account.Email, account.Role).Scan(&account.ID, &account.CreatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return common.ErrDuplicateAccount
		}
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

func (r *PostgresRepository) GetByUsername(ctx context.Context, username string) (*models.Account, error) {
	query :=
		`SELECT id, username, password_hash, password_salt, email, role, created_at, last_login
		 FROM accounts
		 WHERE username = $1
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

func (r *PostgresRepository) UpdateRole(ctx context.Context, username, role string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE accounts SET role = $1 WHERE username = $2`, role, username)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return requireRow(res)
}

func (r *PostgresRepository) UpdatePassword(ctx context.Context, username, hash, salt string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE accounts SET password_hash = $1, password_salt = $2 WHERE username = $3`,
		hash, salt, username)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return requireRow(res)
}

func (r *PostgresRepository) UpdateLastLogin(ctx context.Context, username string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE accounts SET last_login = CURRENT_TIMESTAMP WHERE username = $1`, username)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Delete(ctx context.Context, username string) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM accounts WHERE username = $1`, username)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return requireRow(res)
}

func (r *PostgresRepository) List(ctx context.Context) ([]*models.Account, error) {
	query :=
		`SELECT id, username, email, role, created_at, last_login
		 FROM accounts
		 ORDER BY created_at DESC
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

// requireRow converts a zero-row update/delete into ErrNotFound.
func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrNotFound
	}
	return nil
}
