package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shaiso/Flowdoc/internal/domain"
)

// SpecRepo — репозиторий для работы со спецификациями.
type SpecRepo struct {
	pool *pgxpool.Pool
}

// NewSpecRepo создаёт новый SpecRepo.
func NewSpecRepo(pool *pgxpool.Pool) *SpecRepo {
	return &SpecRepo{pool: pool}
}

// Create создаёт спецификацию вместе с первой версией.
//
// Версия №1 создаётся в статусе draft с пустым снапшотом.
// Обе вставки выполняются в одной транзакции: спецификация
// без начальной версии наблюдаться не должна.
func (r *SpecRepo) Create(ctx context.Context, spec *domain.Spec) (*domain.Version, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		INSERT INTO specs (id, name, description, owner_id, created_at)
		VALUES ($1, $2, $3, $4, NOW())
	`, spec.ID, spec.Name, spec.Description, spec.OwnerID)
	if err != nil {
		return nil, fmt.Errorf("insert spec: %w", err)
	}

	version := &domain.Version{
		ID:     uuid.New(),
		SpecID: spec.ID,
		Number: 1,
		Status: domain.StatusDraft,
	}
	err = tx.QueryRow(ctx, `
		INSERT INTO versions (id, spec_id, version_number, status, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING created_at
	`, version.ID, version.SpecID, version.Number, version.Status).Scan(&version.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert initial version: %w", err)
	}

	err = tx.QueryRow(ctx, `
		SELECT created_at FROM specs WHERE id = $1
	`, spec.ID).Scan(&spec.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("read spec created_at: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit tx: %w", err)
	}
	return version, nil
}

// GetByID возвращает спецификацию по ID.
func (r *SpecRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Spec, error) {
	query := `
		SELECT id, name, description, owner_id, current_version_id, created_at
		FROM specs
		WHERE id = $1
	`
	var spec domain.Spec
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&spec.ID,
		&spec.Name,
		&spec.Description,
		&spec.OwnerID,
		&spec.CurrentVersionID,
		&spec.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get spec by id: %w", err)
	}
	return &spec, nil
}

// List возвращает список всех спецификаций.
func (r *SpecRepo) List(ctx context.Context) ([]domain.Spec, error) {
	query := `
		SELECT id, name, description, owner_id, current_version_id, created_at
		FROM specs
		ORDER BY created_at DESC
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list specs: %w", err)
	}
	defer rows.Close()

	var specs []domain.Spec
	for rows.Next() {
		var spec domain.Spec
		if err := rows.Scan(
			&spec.ID,
			&spec.Name,
			&spec.Description,
			&spec.OwnerID,
			&spec.CurrentVersionID,
			&spec.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan spec: %w", err)
		}
		specs = append(specs, spec)
	}
	return specs, rows.Err()
}

// Update обновляет название и описание спецификации.
func (r *SpecRepo) Update(ctx context.Context, spec *domain.Spec) error {
	query := `
		UPDATE specs
		SET name = $2, description = $3
		WHERE id = $1
	`
	result, err := r.pool.Exec(ctx, query, spec.ID, spec.Name, spec.Description)
	if err != nil {
		return fmt.Errorf("update spec: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete удаляет спецификацию (каскадно удалит версии и графы).
func (r *SpecRepo) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM specs WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete spec: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
