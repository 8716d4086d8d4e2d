package repo

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shaiso/Flowdoc/internal/domain"
	"github.com/shaiso/Flowdoc/internal/graph"
)

// GraphRepo — репозиторий для снапшотов графа (шаги и переходы версии).
type GraphRepo struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

// NewGraphRepo создаёт новый GraphRepo.
func NewGraphRepo(pool *pgxpool.Pool, logger *slog.Logger) *GraphRepo {
	return &GraphRepo{pool: pool, logger: logger}
}

// GetSnapshot загружает полный граф версии.
//
// Существование версии не проверяется: для версии без шагов
// возвращается пустой снапшот. Вызывающий код проверяет версию
// отдельно, если ему важно отличать "нет версии" от "пустой граф".
func (r *GraphRepo) GetSnapshot(ctx context.Context, versionID uuid.UUID) (domain.Snapshot, error) {
	var snapshot domain.Snapshot

	rows, err := r.pool.Query(ctx, `
		SELECT step_key, type, title, description, pos_x, pos_y, meta
		FROM steps
		WHERE version_id = $1
		ORDER BY step_key
	`, versionID)
	if err != nil {
		return snapshot, fmt.Errorf("query steps: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var step domain.Step
		var meta []byte
		if err := rows.Scan(
			&step.Key,
			&step.Type,
			&step.Title,
			&step.Description,
			&step.X,
			&step.Y,
			&meta,
		); err != nil {
			return snapshot, fmt.Errorf("scan step: %w", err)
		}
		if step.Meta, err = unmarshalMeta(meta); err != nil {
			return snapshot, fmt.Errorf("unmarshal step meta: %w", err)
		}
		snapshot.Steps = append(snapshot.Steps, step)
	}
	if err := rows.Err(); err != nil {
		return snapshot, fmt.Errorf("iterate steps: %w", err)
	}

	trRows, err := r.pool.Query(ctx, `
		SELECT sf.step_key, st.step_key, t.label, t.condition, t.meta
		FROM transitions t
		JOIN steps sf ON sf.id = t.from_step_id
		JOIN steps st ON st.id = t.to_step_id
		WHERE t.version_id = $1
		ORDER BY sf.step_key, st.step_key, t.label
	`, versionID)
	if err != nil {
		return snapshot, fmt.Errorf("query transitions: %w", err)
	}
	defer trRows.Close()

	for trRows.Next() {
		var tr domain.Transition
		var meta []byte
		if err := trRows.Scan(
			&tr.FromKey,
			&tr.ToKey,
			&tr.Label,
			&tr.Condition,
			&meta,
		); err != nil {
			return snapshot, fmt.Errorf("scan transition: %w", err)
		}
		if tr.Meta, err = unmarshalMeta(meta); err != nil {
			return snapshot, fmt.Errorf("unmarshal transition meta: %w", err)
		}
		snapshot.Transitions = append(snapshot.Transitions, tr)
	}
	return snapshot, trRows.Err()
}

// ReplaceSnapshot атомарно заменяет весь граф версии.
//
// Семантика — delete-all-then-recreate в одной транзакции: частичных
// обновлений нет, параллельные читатели никогда не видят смесь
// старого и нового графа или пустое промежуточное состояние.
//
// Переходы, ссылающиеся на неизвестные ключи шагов, логируются
// и отбрасываются: рассинхронизация инструмента рисования не должна
// блокировать сохранение.
func (r *GraphRepo) ReplaceSnapshot(ctx context.Context, versionID uuid.UUID, snapshot domain.Snapshot) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM transitions WHERE version_id = $1`, versionID); err != nil {
		return fmt.Errorf("delete transitions: %w", err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM steps WHERE version_id = $1`, versionID); err != nil {
		return fmt.Errorf("delete steps: %w", err)
	}

	// Вставляем шаги, запоминая суррогатные id по смысловым ключам.
	stepIDs := make(map[string]uuid.UUID, len(snapshot.Steps))
	for i := range snapshot.Steps {
		step := &snapshot.Steps[i]

		meta, err := marshalMeta(step.Meta)
		if err != nil {
			return fmt.Errorf("marshal step meta: %w", err)
		}

		id := uuid.New()
		_, err = tx.Exec(ctx, `
			INSERT INTO steps (id, version_id, step_key, type, title, description, pos_x, pos_y, meta)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		`, id, versionID, step.Key, step.Type, step.Title, step.Description, step.X, step.Y, meta)
		if err != nil {
			return fmt.Errorf("insert step %s: %w", step.Key, err)
		}
		stepIDs[step.Key] = id
	}

	// Повисшие рёбра определяет graph.Dangling; здесь только решение —
	// отбросить с предупреждением, не прерывая сохранение.
	dangling := make(map[int]bool)
	for _, idx := range graph.Dangling(&snapshot) {
		dangling[idx] = true
	}

	for i := range snapshot.Transitions {
		tr := &snapshot.Transitions[i]

		if dangling[i] {
			r.logger.Warn("dropping transition with unknown endpoint",
				"version_id", versionID,
				"from_key", tr.FromKey,
				"to_key", tr.ToKey,
			)
			continue
		}
		fromID := stepIDs[tr.FromKey]
		toID := stepIDs[tr.ToKey]

		meta, err := marshalMeta(tr.Meta)
		if err != nil {
			return fmt.Errorf("marshal transition meta: %w", err)
		}

		_, err = tx.Exec(ctx, `
			INSERT INTO transitions (id, version_id, from_step_id, to_step_id, label, condition, meta)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`, uuid.New(), versionID, fromID, toID, tr.Label, tr.Condition, meta)
		if err != nil {
			return fmt.Errorf("insert transition %s->%s: %w", tr.FromKey, tr.ToKey, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

func marshalMeta(m map[string]any) ([]byte, error) {
	if m == nil {
		return nil, nil
	}
	return json.Marshal(m)
}

func unmarshalMeta(data []byte) (map[string]any, error) {
	if len(data) == 0 {
		return nil, nil
	}
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return m, nil
}
