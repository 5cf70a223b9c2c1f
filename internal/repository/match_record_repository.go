package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/match-reveal-service/internal/domain"
)

// MatchRecordRepository encapsulates persistence for the one-directional
// assignment records. At most one record exists per source identifier.
type MatchRecordRepository interface {
	Create(ctx context.Context, rec *domain.MatchRecord) error
	GetBySource(ctx context.Context, sourceIdentifier string) (*domain.MatchRecord, error)
	List(ctx context.Context, search string) ([]domain.MatchRecord, error)
	Delete(ctx context.Context, id string) error
}

type matchRecordRepository struct {
	pool *pgxpool.Pool
}

// NewMatchRecordRepository returns a Postgres-backed implementation.
func NewMatchRecordRepository(pool *pgxpool.Pool) MatchRecordRepository {
	return &matchRecordRepository{pool: pool}
}

const matchRecordColumns = `id, source_identifier, target_identifier, target_display_name, created_at`

func (r *matchRecordRepository) Create(ctx context.Context, rec *domain.MatchRecord) error {
	const query = `
        INSERT INTO match_records (source_identifier, target_identifier, target_display_name)
        VALUES ($1, $2, $3)
        RETURNING id, created_at`

	err := r.pool.QueryRow(ctx, query,
		rec.SourceIdentifier,
		rec.TargetIdentifier,
		rec.TargetDisplayName,
	).Scan(&rec.ID, &rec.CreatedAt)
	if isUniqueViolation(err) {
		return ErrDuplicate
	}
	return err
}

func (r *matchRecordRepository) GetBySource(ctx context.Context, sourceIdentifier string) (*domain.MatchRecord, error) {
	const query = `SELECT ` + matchRecordColumns + ` FROM match_records WHERE source_identifier=$1`

	var rec domain.MatchRecord
	err := r.pool.QueryRow(ctx, query, sourceIdentifier).Scan(
		&rec.ID,
		&rec.SourceIdentifier,
		&rec.TargetIdentifier,
		&rec.TargetDisplayName,
		&rec.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *matchRecordRepository) List(ctx context.Context, search string) ([]domain.MatchRecord, error) {
	const query = `
        SELECT ` + matchRecordColumns + `
        FROM match_records
        WHERE $1 = ''
           OR source_identifier ILIKE '%' || $1 || '%'
           OR target_identifier ILIKE '%' || $1 || '%'
           OR target_display_name ILIKE '%' || $1 || '%'
        ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, search)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := []domain.MatchRecord{}
	for rows.Next() {
		var rec domain.MatchRecord
		if err := rows.Scan(&rec.ID, &rec.SourceIdentifier, &rec.TargetIdentifier, &rec.TargetDisplayName, &rec.CreatedAt); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

func (r *matchRecordRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM match_records WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
