package diff

import (
	"reflect"
	"testing"

	"github.com/shaiso/Flowdoc/internal/domain"
)

func snapshotFixture() domain.Snapshot {
	return domain.Snapshot{
		Steps: []domain.Step{
			{Key: "1", Type: domain.StepTypeStart, Title: "Начало", X: 100, Y: 80},
			{Key: "2", Type: domain.StepTypeCondition, Title: "Проверка данных", Description: "Проверить входные данные", X: 100, Y: 240},
			{Key: "3", Type: domain.StepTypeEnd, Title: "Конец", X: 100, Y: 400},
		},
		Transitions: []domain.Transition{
			{FromKey: "1", ToKey: "2"},
			{FromKey: "2", ToKey: "3", Label: "данные корректны"},
			{FromKey: "2", ToKey: "1", Label: "ошибка в данных"},
		},
	}
}

func TestDiff_Reflexivity(t *testing.T) {
	// diff(S, S) пуст для любого S, включая пустой снапшот.
	for _, s := range []domain.Snapshot{snapshotFixture(), {}} {
		d := Diff(s, s)
		if !d.Empty() {
			t.Errorf("diff of snapshot with itself is not empty: %+v", d)
		}
	}
}

func TestDiff_AddedStepAndTransition(t *testing.T) {
	a := domain.Snapshot{
		Steps: []domain.Step{
			{Key: "1", Type: domain.StepTypeStart, Title: "Start"},
		},
	}
	b := domain.Snapshot{
		Steps: []domain.Step{
			{Key: "1", Type: domain.StepTypeStart, Title: "Start"},
			{Key: "2", Type: domain.StepTypeEnd, Title: "End"},
		},
		Transitions: []domain.Transition{
			{FromKey: "1", ToKey: "2"},
		},
	}

	d := Diff(a, b)

	if len(d.Steps.Added) != 1 || d.Steps.Added[0].Key != "2" {
		t.Fatalf("expected step 2 added, got %+v", d.Steps.Added)
	}
	if d.Steps.Added[0].Type != domain.StepTypeEnd || d.Steps.Added[0].Title != "End" {
		t.Errorf("added entry must carry the to-side fields, got %+v", d.Steps.Added[0])
	}
	if len(d.Steps.Removed) != 0 || len(d.Steps.Changed) != 0 {
		t.Errorf("unexpected removed/changed: %+v", d.Steps)
	}

	wantTr := []TransitionEntry{{FromKey: "1", ToKey: "2", Label: ""}}
	if !reflect.DeepEqual(d.Transitions.Added, wantTr) {
		t.Errorf("expected transition 1->2 added, got %+v", d.Transitions.Added)
	}
	if len(d.Transitions.Removed) != 0 {
		t.Errorf("unexpected removed transitions: %+v", d.Transitions.Removed)
	}
}

func TestDiff_RemovedStep(t *testing.T) {
	a := snapshotFixture()
	b := snapshotFixture()
	b.Steps = b.Steps[:2]                 // шаг "3" удалён
	b.Transitions = b.Transitions[:1]     // переходы на "3" тоже

	d := Diff(a, b)

	if len(d.Steps.Removed) != 1 || d.Steps.Removed[0].Key != "3" {
		t.Fatalf("expected step 3 removed, got %+v", d.Steps.Removed)
	}
	// Removed несёт поля from-стороны.
	if d.Steps.Removed[0].Title != "Конец" {
		t.Errorf("removed entry must carry the from-side fields, got %+v", d.Steps.Removed[0])
	}
}

func TestDiff_ChangedStep(t *testing.T) {
	a := snapshotFixture()
	b := snapshotFixture()
	b.Steps[1].Title = "Валидация данных"
	b.Steps[1].Type = domain.StepTypeAction

	d := Diff(a, b)

	if len(d.Steps.Changed) != 1 {
		t.Fatalf("expected 1 changed step, got %+v", d.Steps.Changed)
	}
	ch := d.Steps.Changed[0]
	if ch.Key != "2" {
		t.Errorf("expected key 2, got %s", ch.Key)
	}
	if ch.Before.Title != "Проверка данных" || ch.After.Title != "Валидация данных" {
		t.Errorf("before/after titles wrong: %+v", ch)
	}
	if ch.Before.Type != domain.StepTypeCondition || ch.After.Type != domain.StepTypeAction {
		t.Errorf("before/after types wrong: %+v", ch)
	}
}

func TestDiff_PositionOnlyChangeIgnored(t *testing.T) {
	a := snapshotFixture()
	b := snapshotFixture()
	b.Steps[0].X = 500
	b.Steps[0].Y = 700

	d := Diff(a, b)

	if !d.Empty() {
		t.Errorf("position-only change must not produce a diff, got %+v", d)
	}
}

func TestDiff_Symmetry(t *testing.T) {
	a := snapshotFixture()

	b := snapshotFixture()
	b.Steps = append(b.Steps, domain.Step{Key: "4", Type: domain.StepTypeAction, Title: "Доп. шаг"})
	b.Steps = b.Steps[1:] // шаг "1" удалён, шаг "4" добавлен
	b.Transitions = []domain.Transition{{FromKey: "2", ToKey: "3"}}

	ab := Diff(a, b)
	ba := Diff(b, a)

	if !reflect.DeepEqual(ab.Steps.Added, ba.Steps.Removed) {
		t.Errorf("diff(A,B).added != diff(B,A).removed:\n%+v\n%+v",
			ab.Steps.Added, ba.Steps.Removed)
	}
	if !reflect.DeepEqual(ab.Steps.Removed, ba.Steps.Added) {
		t.Errorf("diff(A,B).removed != diff(B,A).added:\n%+v\n%+v",
			ab.Steps.Removed, ba.Steps.Added)
	}
	if !reflect.DeepEqual(ab.Transitions.Added, ba.Transitions.Removed) {
		t.Errorf("transition symmetry broken:\n%+v\n%+v",
			ab.Transitions.Added, ba.Transitions.Removed)
	}
}

func TestDiff_RelabeledTransitionIsAddPlusRemove(t *testing.T) {
	// Переименование метки ребра — это пара удаление+добавление,
	// категории changed для переходов нет.
	a := domain.Snapshot{
		Steps: []domain.Step{
			{Key: "1", Type: domain.StepTypeStart, Title: "A"},
			{Key: "2", Type: domain.StepTypeEnd, Title: "B"},
		},
		Transitions: []domain.Transition{
			{FromKey: "1", ToKey: "2", Label: "старая метка"},
		},
	}
	b := domain.Snapshot{
		Steps: a.Steps,
		Transitions: []domain.Transition{
			{FromKey: "1", ToKey: "2", Label: "новая метка"},
		},
	}

	d := Diff(a, b)

	if len(d.Transitions.Added) != 1 || d.Transitions.Added[0].Label != "новая метка" {
		t.Errorf("expected one added with new label, got %+v", d.Transitions.Added)
	}
	if len(d.Transitions.Removed) != 1 || d.Transitions.Removed[0].Label != "старая метка" {
		t.Errorf("expected one removed with old label, got %+v", d.Transitions.Removed)
	}
}

func TestDiff_ParallelEdgesWithDifferentLabels(t *testing.T) {
	// Две дуги между одной парой шагов различаются метками.
	a := domain.Snapshot{
		Steps: []domain.Step{
			{Key: "1", Type: domain.StepTypeStart, Title: "A"},
			{Key: "2", Type: domain.StepTypeEnd, Title: "B"},
		},
		Transitions: []domain.Transition{
			{FromKey: "1", ToKey: "2", Label: "да"},
			{FromKey: "1", ToKey: "2", Label: "нет"},
		},
	}
	b := domain.Snapshot{
		Steps: a.Steps,
		Transitions: []domain.Transition{
			{FromKey: "1", ToKey: "2", Label: "да"},
		},
	}

	d := Diff(a, b)

	if len(d.Transitions.Removed) != 1 || d.Transitions.Removed[0].Label != "нет" {
		t.Errorf("expected edge with label 'нет' removed, got %+v", d.Transitions.Removed)
	}
	if len(d.Transitions.Added) != 0 {
		t.Errorf("unexpected added transitions: %+v", d.Transitions.Added)
	}
}

func TestDiff_Deterministic(t *testing.T) {
	// Одинаковые входы дают одинаковый вывод независимо от порядка
	// элементов внутри снапшота.
	a := domain.Snapshot{}
	b := snapshotFixture()

	reversed := domain.Snapshot{}
	for i := len(b.Steps) - 1; i >= 0; i-- {
		reversed.Steps = append(reversed.Steps, b.Steps[i])
	}
	for i := len(b.Transitions) - 1; i >= 0; i-- {
		reversed.Transitions = append(reversed.Transitions, b.Transitions[i])
	}

	d1 := Diff(a, b)
	d2 := Diff(a, reversed)

	if !reflect.DeepEqual(d1, d2) {
		t.Errorf("diff is not deterministic:\n%+v\n%+v", d1, d2)
	}

	// Категории отсортированы по ключу.
	for i := 1; i < len(d1.Steps.Added); i++ {
		if d1.Steps.Added[i-1].Key > d1.Steps.Added[i].Key {
			t.Errorf("added steps are not sorted: %+v", d1.Steps.Added)
		}
	}
}

func TestDiff_CloneThenDiffIsEmpty(t *testing.T) {
	// Свойство форка: копия без правок не отличается от источника.
	s := snapshotFixture()
	clone := s.Clone()

	if d := Diff(s, clone); !d.Empty() {
		t.Errorf("diff of snapshot and its clone is not empty: %+v", d)
	}
}
