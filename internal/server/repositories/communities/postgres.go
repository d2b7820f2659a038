package communities

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

func (r *PostgresRepository) Create(ctx context.Context, community *models.Community) (*models.Community, error) {
	query :=
		`INSERT INTO communities (title, description, thumbnail, created_at)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id
		 `

	err := r.db.QueryRowContext(ctx, query,
		community.Title, community.Description, community.Thumbnail, community.CreatedAt).Scan(&community.ID)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return community, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*models.Community, error) {
	query := `SELECT id, title, description, thumbnail, created_at FROM communities WHERE id = $1`

	c := &models.Community{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&c.ID, &c.Title, &c.Description, &c.Thumbnail, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return c, nil
}

func (r *PostgresRepository) List(ctx context.Context, offset, limit int64) ([]models.Community, error) {
	query :=
		`SELECT id, title, description, thumbnail, created_at FROM communities
		 ORDER BY id
		 LIMIT $1 OFFSET $2
		 `

	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	list := []models.Community{}
	for rows.Next() {
		var c models.Community
		if err := rows.Scan(&c.ID, &c.Title, &c.Description, &c.Thumbnail, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		list = append(list, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return list, nil
}

func (r *PostgresRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM communities`).Scan(&n); err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}

func (r *PostgresRepository) Update(ctx context.Context, id int64, title, description, thumbnail string) error {
	query := `UPDATE communities SET title = $1, description = $2, thumbnail = $3 WHERE id = $4`

	res, err := r.db.ExecContext(ctx, query, title, description, thumbnail, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM communities WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return common.ErrorNotFound
	}
	return nil
}
