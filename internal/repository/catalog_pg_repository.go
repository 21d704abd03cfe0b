package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/ack-hub/internal/domain"
)

const uniqueViolation = "23505"

type pgCatalogRepository struct {
	pool *pgxpool.Pool
}

// NewPgCatalogRepository builds a Postgres-backed catalog.
func NewPgCatalogRepository(pool *pgxpool.Pool) CatalogRepository {
	return &pgCatalogRepository{pool: pool}
}

func (r *pgCatalogRepository) SeedBuiltins(ctx context.Context, types []domain.AcknowledgmentType) error {
	const query = `
        INSERT INTO acknowledgment_types (id, title, short_description, content, is_builtin, builtin_rank, created_at, updated_at)
        VALUES ($1,$2,$3,$4,TRUE,$5,$6,$6)
        ON CONFLICT (id) DO NOTHING`

	batch := &pgx.Batch{}
	for i, t := range types {
		content, err := encodeContent(t.Content)
		if err != nil {
			return err
		}
		batch.Queue(query, t.ID, t.Title, t.ShortDescription, content, i, t.CreatedAt)
	}
	if batch.Len() == 0 {
		return nil
	}
	if err := r.pool.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("seed builtin types: %w", err)
	}
	return nil
}

func (r *pgCatalogRepository) List(ctx context.Context) ([]domain.AcknowledgmentType, error) {
	const query = `
        SELECT id, title, short_description, content, is_builtin, created_at, updated_at
        FROM acknowledgment_types
        ORDER BY is_builtin DESC, builtin_rank, seq`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var types []domain.AcknowledgmentType
	for rows.Next() {
		t, err := scanType(rows)
		if err != nil {
			return nil, err
		}
		types = append(types, *t)
	}
	return types, rows.Err()
}

func (r *pgCatalogRepository) GetByID(ctx context.Context, id string) (*domain.AcknowledgmentType, error) {
	const query = `
        SELECT id, title, short_description, content, is_builtin, created_at, updated_at
        FROM acknowledgment_types WHERE id=$1`
	return scanType(r.pool.QueryRow(ctx, query, id))
}

func (r *pgCatalogRepository) Create(ctx context.Context, t *domain.AcknowledgmentType) error {
	const query = `
        INSERT INTO acknowledgment_types (id, title, short_description, content, is_builtin, created_at, updated_at)
        VALUES ($1,$2,$3,$4,FALSE,$5,$6)`
	content, err := encodeContent(t.Content)
	if err != nil {
		return err
	}
	_, err = r.pool.Exec(ctx, query, t.ID, t.Title, t.ShortDescription, content, t.CreatedAt, t.UpdatedAt)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return ErrDuplicateID
	}
	return err
}

func (r *pgCatalogRepository) Update(ctx context.Context, t *domain.AcknowledgmentType) error {
	const query = `
        UPDATE acknowledgment_types SET title=$1, short_description=$2, content=$3, updated_at=$4
        WHERE id=$5 AND is_builtin=FALSE`
	content, err := encodeContent(t.Content)
	if err != nil {
		return err
	}
	cmd, err := r.pool.Exec(ctx, query, t.Title, t.ShortDescription, content, t.UpdatedAt, t.ID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *pgCatalogRepository) Delete(ctx context.Context, id string) (bool, error) {
	const query = `DELETE FROM acknowledgment_types WHERE id=$1 AND is_builtin=FALSE`
	cmd, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return false, err
	}
	return cmd.RowsAffected() > 0, nil
}

func scanType(row pgx.Row) (*domain.AcknowledgmentType, error) {
	var (
		t       domain.AcknowledgmentType
		content []byte
	)
	if err := row.Scan(
		&t.ID,
		&t.Title,
		&t.ShortDescription,
		&content,
		&t.Builtin,
		&t.CreatedAt,
		&t.UpdatedAt,
	); err != nil {
		return nil, err
	}
	t.CreatedAt, t.UpdatedAt = t.CreatedAt.UTC(), t.UpdatedAt.UTC()
	if len(content) > 0 {
		var c domain.TypeContent
		if err := json.Unmarshal(content, &c); err != nil {
			return nil, fmt.Errorf("decode content of %s: %w", t.ID, err)
		}
		t.Content = &c
	}
	return &t, nil
}

func encodeContent(content *domain.TypeContent) ([]byte, error) {
	if content == nil {
		return nil, nil
	}
	raw, err := json.Marshal(content)
	if err != nil {
		return nil, fmt.Errorf("encode content: %w", err)
	}
	return raw, nil
}
