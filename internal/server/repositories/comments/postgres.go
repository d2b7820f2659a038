package comments

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

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

const commentColumns = `id, community_id, post_id, content, creator, secret_hash, display_name, creation_time, modification_time`

func (r *PostgresRepository) Create(ctx context.Context, comment *models.Comment) (*models.Comment, error) {
	query :=
		`INSERT INTO comments (community_id, post_id, content, creator, secret_hash, display_name, creation_time)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id
		 `

	var (
		creator    sql.NullInt64
		secretHash sql.NullString
	)
	if id, ok := comment.Owner.Member(); ok {
		creator = sql.NullInt64{Int64: id, Valid: true}
	} else {
		hash, _ := comment.Owner.SecretHash()
		secretHash = sql.NullString{String: hash, Valid: true}
	}

	err := r.db.QueryRowContext(ctx, query,
		comment.CommunityID, comment.PostID, comment.Content,
		creator, secretHash, comment.DisplayName, comment.CreationTime).Scan(&comment.ID)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return comment, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*models.Comment, error) {
	query := `SELECT ` + commentColumns + ` FROM comments WHERE id = $1`

	comment, err := scanComment(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return comment, nil
}

func (r *PostgresRepository) Update(ctx context.Context, id int64, content string, modifiedAt time.Time) error {
	query := `UPDATE comments SET content = $1, modification_time = $2 WHERE id = $3`
	return r.exec(ctx, query, content, modifiedAt, id)
}

func (r *PostgresRepository) Delete(ctx context.Context, id int64) error {
	return r.exec(ctx, `DELETE FROM comments WHERE id = $1`, id)
}

func (r *PostgresRepository) ListByPost(ctx context.Context, postID, offset, limit int64) ([]models.Comment, error) {
	query :=
		`SELECT ` + commentColumns + ` FROM comments
		 WHERE post_id = $1
		 ORDER BY id
		 LIMIT $2 OFFSET $3
		 `

	rows, err := r.db.QueryContext(ctx, query, postID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	list := []models.Comment{}
	for rows.Next() {
		comment, err := scanComment(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		list = append(list, *comment)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return list, nil
}

func (r *PostgresRepository) CountByPost(ctx context.Context, postID int64) (int64, error) {
	var n int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM comments WHERE post_id = $1`, postID).Scan(&n); err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
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

type rowScanner interface {
	Scan(dest ...any) error
}

func scanComment(row rowScanner) (*models.Comment, error) {
	var (
		comment    models.Comment
		creator    sql.NullInt64
		secretHash sql.NullString
		modified   sql.NullTime
	)
	err := row.Scan(&comment.ID, &comment.CommunityID, &comment.PostID, &comment.Content,
		&creator, &secretHash, &comment.DisplayName, &comment.CreationTime, &modified)
	if err != nil {
		return nil, err
	}
	if creator.Valid {
		comment.Owner = models.MemberOwner(creator.Int64)
	} else {
		comment.Owner = models.AnonymousOwner(secretHash.String)
	}
	if modified.Valid {
		t := modified.Time
		comment.ModificationTime = &t
	}
	return &comment, nil
}
