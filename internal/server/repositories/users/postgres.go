// Package users provides the PostgreSQL-backed credential store for account
// records.
package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/skycastlabs/accounts/internal/common"
	"github.com/skycastlabs/accounts/internal/dbx"
	"github.com/skycastlabs/accounts/internal/server/models"
)

// uniqueViolation is the PostgreSQL error code for unique-constraint failures.
const uniqueViolation = "23505"

const userColumns = `id, username, email, phone_number, password_hash, role, group_id, reset_otp, reset_otp_until, created_at, updated_at`

// PostgresRepository implements Repository over dbx.DBTX (satisfied by
// *sql.DB or *sql.Tx), so callers choose whether operations run inside a
// transaction.
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func scanUser(row *sql.Row) (*models.User, error) {
	user := &models.User{}
	err := row.Scan(&user.ID, &user.Username, &user.Email, &user.PhoneNumber,
		&user.PasswordHash, &user.Role, &user.GroupID,
		&user.ResetOTP, &user.ResetOTPUntil, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return user, nil
}

// Create inserts a new account row. The ID is assigned here. A duplicate
// email surfaces as common.ErrorAlreadyExists via the unique index.
func (r *PostgresRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {

	query :=
		`INSERT INTO users (id, username, email, phone_number, password_hash, role)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING created_at, updated_at
		 `

	user.ID = uuid.NewString()

	err := r.db.QueryRowContext(ctx, query,
		user.ID, user.Username, user.Email, user.PhoneNumber, user.PasswordHash, user.Role).
		Scan(&user.CreatedAt, &user.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}

// GetByEmail returns the account registered under email.
func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return scanUser(r.db.QueryRowContext(ctx, query, email))
}

// GetByID returns the account with the given id.
func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return scanUser(r.db.QueryRowContext(ctx, query, id))
}

// UpdateProfile overwrites the three mutable profile fields and returns the
// updated row. Password and role are untouched by design.
func (r *PostgresRepository) UpdateProfile(ctx context.Context, id, username, email, phoneNumber string) (*models.User, error) {
	query :=
		`UPDATE users
		 SET username = $2, email = $3, phone_number = $4, updated_at = now()
		 WHERE id = $1
		 RETURNING ` + userColumns

	user, err := scanUser(r.db.QueryRowContext(ctx, query, id, username, email, phoneNumber))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, common.ErrorAlreadyExists
		}
		return nil, err
	}
	return user, nil
}

func (r *PostgresRepository) exec(ctx context.Context, query string, args ...any) error {
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if affected == 0 {
		return common.ErrorNotFound
	}
	return nil
}

// SetGroup stores the admin-group marker for the account.
func (r *PostgresRepository) SetGroup(ctx context.Context, id, groupID string) error {
	query := `UPDATE users SET group_id = $2, updated_at = now() WHERE id = $1`
	return r.exec(ctx, query, id, groupID)
}

// SetResetOTP stores a fresh reset code and its expiry, replacing any
// previous one.
func (r *PostgresRepository) SetResetOTP(ctx context.Context, id, otp string, until time.Time) error {
	query := `UPDATE users SET reset_otp = $2, reset_otp_until = $3, updated_at = now() WHERE id = $1`
	return r.exec(ctx, query, id, otp, until)
}

// ClearResetOTP removes the pending reset code.
func (r *PostgresRepository) ClearResetOTP(ctx context.Context, id string) error {
	query := `UPDATE users SET reset_otp = NULL, reset_otp_until = NULL, updated_at = now() WHERE id = $1`
	return r.exec(ctx, query, id)
}

// UpdatePassword replaces the stored bcrypt hash.
func (r *PostgresRepository) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	query := `UPDATE users SET password_hash = $2, updated_at = now() WHERE id = $1`
	return r.exec(ctx, query, id, passwordHash)
}
