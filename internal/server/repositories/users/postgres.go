package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/akulikov/boardd/internal/common"
	"github.com/akulikov/boardd/internal/dbx"
	"github.com/akulikov/boardd/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const userColumns = `id, username, email, password_hash, role, activated, activation_code, recover_token, created_at`

func (r *PostgresRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	query :=
		`INSERT INTO users (username, email, password_hash, role, activated, activation_code, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id
		 `

	err := r.db.QueryRowContext(ctx, query,
		user.Username, user.Email, user.PasswordHash, user.Role,
		user.Activated, user.ActivationCode, user.CreatedAt).Scan(&user.ID)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return r.scanUser(r.db.QueryRowContext(ctx, query, id))
}

func (r *PostgresRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE username = $1`
	return r.scanUser(r.db.QueryRowContext(ctx, query, username))
}

func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return r.scanUser(r.db.QueryRowContext(ctx, query, email))
}

func (r *PostgresRepository) GetByRecoverToken(ctx context.Context, token string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE recover_token = $1 AND recover_token <> ''`
	return r.scanUser(r.db.QueryRowContext(ctx, query, token))
}

func (r *PostgresRepository) UpdateUsername(ctx context.Context, id int64, username string) error {
	query := `UPDATE users SET username = $1 WHERE id = $2`
	return r.exec(ctx, query, username, id)
}

func (r *PostgresRepository) UpdatePasswordHash(ctx context.Context, id int64, passwordHash string) error {
	query := `UPDATE users SET password_hash = $1, recover_token = '' WHERE id = $2`
	return r.exec(ctx, query, passwordHash, id)
}

func (r *PostgresRepository) SetActivation(ctx context.Context, id int64, activated bool, code string) error {
	query := `UPDATE users SET activated = $1, activation_code = $2 WHERE id = $3`
	return r.exec(ctx, query, activated, code, id)
}

func (r *PostgresRepository) SetRecoverToken(ctx context.Context, id int64, token string) error {
	query := `UPDATE users SET recover_token = $1 WHERE id = $2`
	return r.exec(ctx, query, token, id)
}

func (r *PostgresRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM users WHERE id = $1`
	return r.exec(ctx, query, id)
}

func (r *PostgresRepository) exec(ctx context.Context, query string, args ...any) error {
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

func (r *PostgresRepository) scanUser(row *sql.Row) (*models.User, error) {
	user := &models.User{}
	err := row.Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash,
		&user.Role, &user.Activated, &user.ActivationCode, &user.RecoverToken, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return user, nil
}
