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

// VersionRepo — репозиторий для работы с версиями спецификаций.
type VersionRepo struct {
	pool *pgxpool.Pool
}

// NewVersionRepo создаёт новый VersionRepo.
func NewVersionRepo(pool *pgxpool.Pool) *VersionRepo {
	return &VersionRepo{pool: pool}
}

const versionColumns = `id, spec_id, version_number, status, based_on_version_id, created_at`

func scanVersion(row pgx.Row) (*domain.Version, error) {
	var v domain.Version
	err := row.Scan(
		&v.ID,
		&v.SpecID,
		&v.Number,
		&v.Status,
		&v.BasedOnVersionID,
		&v.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// GetByID возвращает версию по ID.
func (r *VersionRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Version, error) {
	v, err := scanVersion(r.pool.QueryRow(ctx,
		`SELECT `+versionColumns+` FROM versions WHERE id = $1`, id))
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("get version by id: %w", err)
	}
	return v, err
}

// ListBySpec возвращает все версии спецификации, новые первыми.
func (r *VersionRepo) ListBySpec(ctx context.Context, specID uuid.UUID) ([]domain.Version, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+versionColumns+` FROM versions WHERE spec_id = $1 ORDER BY version_number DESC`,
		specID)
	if err != nil {
		return nil, fmt.Errorf("list versions: %w", err)
	}
	defer rows.Close()

	var versions []domain.Version
	for rows.Next() {
		var v domain.Version
		if err := rows.Scan(
			&v.ID,
			&v.SpecID,
			&v.Number,
			&v.Status,
			&v.BasedOnVersionID,
			&v.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan version: %w", err)
		}
		versions = append(versions, v)
	}
	return versions, rows.Err()
}

// Fork создаёт новую версию как копию существующей.
//
// Новая версия получает следующий свободный номер в рамках
// спецификации, ссылку based_on_version_id на источник и глубокую
// копию снапшота: шаги и переходы дублируются с новыми суррогатными
// id, смысловые ключи и метки сохраняются. Всё — в одной транзакции.
func (r *VersionRepo) Fork(ctx context.Context, sourceID uuid.UUID) (*domain.Version, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	source, err := scanVersion(tx.QueryRow(ctx,
		`SELECT `+versionColumns+` FROM versions WHERE id = $1`, sourceID))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get source version: %w", err)
	}

	// Следующий номер версии, монотонный в рамках спецификации.
	var nextNumber int
	err = tx.QueryRow(ctx, `
		SELECT COALESCE(MAX(version_number), 0) + 1
		FROM versions
		WHERE spec_id = $1
	`, source.SpecID).Scan(&nextNumber)
	if err != nil {
		return nil, fmt.Errorf("get next version number: %w", err)
	}

	fork := &domain.Version{
		ID:               uuid.New(),
		SpecID:           source.SpecID,
		Number:           nextNumber,
		Status:           domain.StatusDraft,
		BasedOnVersionID: &source.ID,
	}
	err = tx.QueryRow(ctx, `
		INSERT INTO versions (id, spec_id, version_number, status, based_on_version_id, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		RETURNING created_at
	`, fork.ID, fork.SpecID, fork.Number, fork.Status, fork.BasedOnVersionID).Scan(&fork.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert forked version: %w", err)
	}

	// Копируем шаги: новые id, те же ключи.
	_, err = tx.Exec(ctx, `
		INSERT INTO steps (id, version_id, step_key, type, title, description, pos_x, pos_y, meta)
		SELECT gen_random_uuid(), $1, step_key, type, title, description, pos_x, pos_y, meta
		FROM steps
		WHERE version_id = $2
	`, fork.ID, source.ID)
	if err != nil {
		return nil, fmt.Errorf("copy steps: %w", err)
	}

	// Копируем переходы, сопоставляя концы по смысловым ключам шагов.
	_, err = tx.Exec(ctx, `
		INSERT INTO transitions (id, version_id, from_step_id, to_step_id, label, condition, meta)
		SELECT gen_random_uuid(), $1, nf.id, nt.id, t.label, t.condition, t.meta
		FROM transitions t
		JOIN steps sf ON sf.id = t.from_step_id
		JOIN steps st ON st.id = t.to_step_id
		JOIN steps nf ON nf.version_id = $1 AND nf.step_key = sf.step_key
		JOIN steps nt ON nt.version_id = $1 AND nt.step_key = st.step_key
		WHERE t.version_id = $2
	`, fork.ID, source.ID)
	if err != nil {
		return nil, fmt.Errorf("copy transitions: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit tx: %w", err)
	}
	return fork, nil
}

// SetStatus устанавливает статус версии.
//
// Статусы — плоские метки: таблицы допустимых переходов нет, любой
// статус можно установить из любого. Единственный побочный эффект —
// published делает версию текущей для спецификации (в той же
// транзакции).
func (r *VersionRepo) SetStatus(ctx context.Context, id uuid.UUID, status domain.VersionStatus) (*domain.Version, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	version, err := scanVersion(tx.QueryRow(ctx, `
		UPDATE versions
		SET status = $2
		WHERE id = $1
		RETURNING `+versionColumns,
		id, status))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("update version status: %w", err)
	}

	if status == domain.StatusPublished {
		_, err = tx.Exec(ctx, `
			UPDATE specs
			SET current_version_id = $2
			WHERE id = $1
		`, version.SpecID, version.ID)
		if err != nil {
			return nil, fmt.Errorf("set current version: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit tx: %w", err)
	}
	return version, nil
}
