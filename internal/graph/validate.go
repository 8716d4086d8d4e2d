package graph

import (
	"fmt"

	"github.com/shaiso/Flowdoc/internal/domain"
)

// Validate проверяет инварианты снапшота:
//   - ключи шагов непустые и уникальны
//   - типы шагов известны
//   - оба конца каждого перехода ссылаются на существующие шаги
//
// Используется как строгая предварительная проверка (редактор,
// импорт). Путь сохранения применяет мягкую политику: шаги проходят
// через ValidateSteps, а повисшие переходы логируются и
// отбрасываются, а не валят сохранение.
func Validate(s *domain.Snapshot) error {
	if s == nil {
		return fmt.Errorf("snapshot is nil")
	}

	keys, err := checkSteps(s)
	if err != nil {
		return err
	}

	for i := range s.Transitions {
		t := &s.Transitions[i]

		if !keys[t.FromKey] {
			return NewValidationError(t.FromKey, "from_key",
				fmt.Sprintf("transition from unknown step: %s", t.FromKey), ErrDanglingTransition)
		}
		if !keys[t.ToKey] {
			return NewValidationError(t.FromKey, "to_key",
				fmt.Sprintf("transition to unknown step: %s", t.ToKey), ErrDanglingTransition)
		}
	}

	return nil
}

// ValidateSteps проверяет только жёсткие инварианты шагов: ключи
// непустые и уникальны, типы известны. Переходы не трогаются —
// их концы проверяет Dangling, и сохранение само решает, что
// делать с повисшими рёбрами.
func ValidateSteps(s *domain.Snapshot) error {
	if s == nil {
		return fmt.Errorf("snapshot is nil")
	}
	_, err := checkSteps(s)
	return err
}

func checkSteps(s *domain.Snapshot) (map[string]bool, error) {
	keys := make(map[string]bool, len(s.Steps))

	for i := range s.Steps {
		step := &s.Steps[i]

		if step.Key == "" {
			return nil, NewValidationError("", "key", "step has empty key", ErrEmptyStepKey)
		}
		if keys[step.Key] {
			return nil, NewValidationError(step.Key, "key",
				fmt.Sprintf("duplicate step key: %s", step.Key), ErrDuplicateStepKey)
		}
		keys[step.Key] = true

		if !step.Type.IsValid() {
			return nil, NewValidationError(step.Key, "type",
				fmt.Sprintf("unknown step type: %s", step.Type), ErrUnknownStepType)
		}
	}

	return keys, nil
}

// Dangling возвращает индексы переходов, у которых хотя бы один
// конец не ссылается на существующий шаг. Путь сохранения
// отбрасывает такие переходы вместо отказа целиком.
func Dangling(s *domain.Snapshot) []int {
	keys := s.StepKeys()

	var idxs []int
	for i := range s.Transitions {
		t := &s.Transitions[i]
		if !keys[t.FromKey] || !keys[t.ToKey] {
			idxs = append(idxs, i)
		}
	}
	return idxs
}
