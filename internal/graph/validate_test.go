package graph

import (
	"errors"
	"testing"

	"github.com/shaiso/Flowdoc/internal/domain"
)

func validSnapshot() domain.Snapshot {
	return domain.Snapshot{
		Steps: []domain.Step{
			{Key: "1", Type: domain.StepTypeStart, Title: "Начало"},
			{Key: "2", Type: domain.StepTypeAction, Title: "Действие"},
			{Key: "3", Type: domain.StepTypeEnd, Title: "Конец"},
		},
		Transitions: []domain.Transition{
			{FromKey: "1", ToKey: "2"},
			{FromKey: "2", ToKey: "3"},
		},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*domain.Snapshot)
		want   error
	}{
		{
			name:   "валидный снапшот",
			mutate: func(s *domain.Snapshot) {},
			want:   nil,
		},
		{
			name:   "пустой снапшот тоже валиден",
			mutate: func(s *domain.Snapshot) { *s = domain.Snapshot{} },
			want:   nil,
		},
		{
			name:   "пустой ключ шага",
			mutate: func(s *domain.Snapshot) { s.Steps[1].Key = "" },
			want:   ErrEmptyStepKey,
		},
		{
			name:   "дубликат ключа",
			mutate: func(s *domain.Snapshot) { s.Steps[1].Key = "1" },
			want:   ErrDuplicateStepKey,
		},
		{
			name:   "неизвестный тип шага",
			mutate: func(s *domain.Snapshot) { s.Steps[1].Type = "loop" },
			want:   ErrUnknownStepType,
		},
		{
			name:   "переход из несуществующего шага",
			mutate: func(s *domain.Snapshot) { s.Transitions[0].FromKey = "42" },
			want:   ErrDanglingTransition,
		},
		{
			name:   "переход в несуществующий шаг",
			mutate: func(s *domain.Snapshot) { s.Transitions[1].ToKey = "42" },
			want:   ErrDanglingTransition,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := validSnapshot()
			tc.mutate(&s)

			err := Validate(&s)
			if tc.want == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tc.want) {
				t.Errorf("expected %v, got %v", tc.want, err)
			}
			var ve *ValidationError
			if !errors.As(err, &ve) {
				t.Errorf("expected *ValidationError, got %T", err)
			}
		})
	}
}

func TestValidateSteps(t *testing.T) {
	// Жёсткие проверки шагов действуют, повисшие переходы — нет:
	// их отбрасывает путь сохранения, а не предварительная проверка.
	s := validSnapshot()
	s.Transitions = append(s.Transitions, domain.Transition{FromKey: "1", ToKey: "99"})

	if err := ValidateSteps(&s); err != nil {
		t.Fatalf("dangling transition must not fail step validation: %v", err)
	}
	if err := Validate(&s); !errors.Is(err, ErrDanglingTransition) {
		t.Errorf("full validation must still catch the dangling transition, got %v", err)
	}

	s.Steps[2].Key = "1"
	if err := ValidateSteps(&s); !errors.Is(err, ErrDuplicateStepKey) {
		t.Errorf("expected ErrDuplicateStepKey, got %v", err)
	}
}

func TestDangling(t *testing.T) {
	s := validSnapshot()
	s.Transitions = append(s.Transitions,
		domain.Transition{FromKey: "3", ToKey: "99"},
		domain.Transition{FromKey: "0", ToKey: "1"},
	)

	idxs := Dangling(&s)

	if len(idxs) != 2 || idxs[0] != 2 || idxs[1] != 3 {
		t.Errorf("expected indexes [2 3], got %v", idxs)
	}
}

func TestDangling_CleanSnapshot(t *testing.T) {
	s := validSnapshot()
	if idxs := Dangling(&s); len(idxs) != 0 {
		t.Errorf("expected no dangling transitions, got %v", idxs)
	}
}
