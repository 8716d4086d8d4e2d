package importer

import (
	"errors"
	"strings"
	"testing"

	"github.com/shaiso/Flowdoc/internal/domain"
)

// tableFixture — минимальная таблица сценария в формате выгрузки:
// шапка документа, маркер секции, строка заголовков, строки шагов.
func tableFixture() [][]string {
	return [][]string{
		{"Сценарий оформления заявки"},
		{},
		{"ТАБЛИЧНОЕ ОПИСАНИЕ ШАГОВ СЦЕНАРИЯ"},
		{"№", "Шаг сценария", "Описание", "Критерий успеха", "Обработка ошибок"},
		{"1", "Открыть форму", "Пользователь открывает форму заявки", "Форма отображается", ""},
		{"2", "Проверка полей", "Система проверяет обязательные поля", "Все поля заполнены", "Показать сообщение об ошибке"},
		{"3", "Завершение", "Заявка сохраняется", "", ""},
	}
}

func TestImportScenario_Basic(t *testing.T) {
	snap, err := ImportScenario(tableFixture(), DefaultPatterns())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(snap.Steps) != 3 {
		t.Fatalf("expected 3 steps, got %d: %+v", len(snap.Steps), snap.Steps)
	}

	// Типы: первый — start, последний — end, «Проверка…» — condition.
	wantTypes := []domain.StepType{
		domain.StepTypeStart,
		domain.StepTypeCondition,
		domain.StepTypeEnd,
	}
	for i, want := range wantTypes {
		if snap.Steps[i].Type != want {
			t.Errorf("step %s: expected type %s, got %s",
				snap.Steps[i].Key, want, snap.Steps[i].Type)
		}
	}

	// Без переходов в тексте — линейная цепочка.
	if len(snap.Transitions) != 2 {
		t.Fatalf("expected 2 transitions, got %+v", snap.Transitions)
	}
	if snap.Transitions[0].FromKey != "1" || snap.Transitions[0].ToKey != "2" ||
		snap.Transitions[1].FromKey != "2" || snap.Transitions[1].ToKey != "3" {
		t.Errorf("expected linear chain 1->2->3, got %+v", snap.Transitions)
	}
}

func TestImportScenario_CompositeDescription(t *testing.T) {
	snap, err := ImportScenario(tableFixture(), DefaultPatterns())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	desc := snap.Steps[1].Description
	for _, part := range []string{
		"Система проверяет обязательные поля",
		"Критерий: Все поля заполнены",
		"Ошибки: Показать сообщение об ошибке",
	} {
		if !strings.Contains(desc, part) {
			t.Errorf("description is missing %q:\n%s", part, desc)
		}
	}
}

func TestImportScenario_TextTransition(t *testing.T) {
	rows := tableFixture()
	rows[4][2] = "Пользователь открывает форму. При ошибке сервиса переход к шагу 3"

	snap, err := ImportScenario(rows, DefaultPatterns())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var found *domain.Transition
	for i := range snap.Transitions {
		if snap.Transitions[i].FromKey == "1" && snap.Transitions[i].ToKey == "3" {
			found = &snap.Transitions[i]
		}
	}
	if found == nil {
		t.Fatalf("expected transition 1->3 from text, got %+v", snap.Transitions)
	}
	if found.Label == "" {
		t.Errorf("expected a non-empty label derived from the text")
	}

	// У шага 1 есть явный переход — неявного 1->2 быть не должно,
	// а шаг 2 без исходящих получает запасное ребро 2->3.
	for _, tr := range snap.Transitions {
		if tr.FromKey == "1" && tr.ToKey == "2" {
			t.Errorf("implicit edge 1->2 must be suppressed: %+v", snap.Transitions)
		}
	}
	has23 := false
	for _, tr := range snap.Transitions {
		if tr.FromKey == "2" && tr.ToKey == "3" {
			has23 = true
		}
	}
	if !has23 {
		t.Errorf("expected fallback edge 2->3, got %+v", snap.Transitions)
	}
}

func TestImportScenario_PlaceholderStep(t *testing.T) {
	rows := tableFixture()
	rows[5][4] = "При сбое переход к шагу 99"

	snap, err := ImportScenario(rows, DefaultPatterns())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ph, ok := snap.StepByKey("99")
	if !ok {
		t.Fatalf("expected placeholder step 99, got %+v", snap.Steps)
	}
	if ph.Type != domain.StepTypeAction || ph.Title != "Шаг 99" {
		t.Errorf("unexpected placeholder: %+v", ph)
	}

	has := false
	for _, tr := range snap.Transitions {
		if tr.FromKey == "2" && tr.ToKey == "99" {
			has = true
		}
	}
	if !has {
		t.Errorf("expected transition 2->99, got %+v", snap.Transitions)
	}
}

func TestImportScenario_CommaDecimalOrdering(t *testing.T) {
	rows := [][]string{
		{"ТАБЛИЧНОЕ ОПИСАНИЕ ШАГОВ СЦЕНАРИЯ"},
		{"№", "Шаг сценария"},
		{"2", "Второй"},
		{"1,5", "Промежуточный"},
		{"1", "Первый"},
		{"10", "Десятый"},
	}

	snap, err := ImportScenario(rows, DefaultPatterns())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var keys []string
	for _, s := range snap.Steps {
		keys = append(keys, s.Key)
	}
	want := []string{"1", "1,5", "2", "10"}
	for i, k := range want {
		if keys[i] != k {
			t.Fatalf("expected order %v, got %v", want, keys)
		}
	}
}

func TestImportScenario_NonNumericKeysAfterNumeric(t *testing.T) {
	// Номера вроде "1.2.3" не разбираются как число: такие строки идут
	// после числовых в исходном порядке, независимо от того, между
	// какими числовыми строками они стояли.
	rows := [][]string{
		{"ТАБЛИЧНОЕ ОПИСАНИЕ ШАГОВ СЦЕНАРИЯ"},
		{"№", "Шаг сценария"},
		{"2", "Второй"},
		{"1.2.3", "Подпункт"},
		{"1", "Первый"},
	}

	snap, err := ImportScenario(rows, DefaultPatterns())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var keys []string
	for _, s := range snap.Steps {
		keys = append(keys, s.Key)
	}
	want := []string{"1", "2", "1.2.3"}
	for i, k := range want {
		if keys[i] != k {
			t.Fatalf("expected order %v, got %v", want, keys)
		}
	}
}

func TestImportScenario_FallbackHeaderDetection(t *testing.T) {
	// Без маркерной фразы строка заголовков находится по эвристике:
	// первая ячейка — номер, дальше — колонка названия шага.
	rows := [][]string{
		{"Какой-то заголовок документа"},
		{"№", "Шаг сценария", "Описание"},
		{"1", "Начало", ""},
		{"2", "Конец", ""},
	}

	snap, err := ImportScenario(rows, DefaultPatterns())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(snap.Steps) != 2 {
		t.Fatalf("expected 2 steps, got %+v", snap.Steps)
	}
}

func TestImportScenario_SkipsNonNumberedRows(t *testing.T) {
	rows := tableFixture()
	// Разделитель секции и пустая строка между шагами.
	rows = append(rows[:5], append([][]string{
		{"", "Примечание к разделу", ""},
		{},
	}, rows[5:]...)...)

	snap, err := ImportScenario(rows, DefaultPatterns())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(snap.Steps) != 3 {
		t.Errorf("rows without a number must be skipped, got %+v", snap.Steps)
	}
}

func TestImportScenario_EmptyTitleUsesStepFormat(t *testing.T) {
	rows := [][]string{
		{"ТАБЛИЧНОЕ ОПИСАНИЕ ШАГОВ СЦЕНАРИЯ"},
		{"№", "Шаг сценария"},
		{"1", ""},
		{"2", "Конец"},
	}

	snap, err := ImportScenario(rows, DefaultPatterns())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if snap.Steps[0].Title != "Шаг 1" {
		t.Errorf("expected fallback title 'Шаг 1', got %q", snap.Steps[0].Title)
	}
}

func TestMatchesAny_ShortVariantsExact(t *testing.T) {
	pats := DefaultPatterns()

	tests := []struct {
		cell string
		want bool
	}{
		{"№", true},
		{" No ", true},
		{"n", true},
		// Латинская n в длинном заголовке — не колонка номера.
		{"Scenario step", false},
		{"Description", false},
		{"", false},
	}

	for _, tc := range tests {
		if got := matchesAny(tc.cell, pats.NumberColumn); got != tc.want {
			t.Errorf("matchesAny(%q) = %v, want %v", tc.cell, got, tc.want)
		}
	}
}

func TestResolveColumns_TitleBeforeNumber(t *testing.T) {
	// Колонка названия левее колонки номера: "Scenario step" не должна
	// захватываться вариантом "n" как колонка номера.
	header := []string{"Scenario step", "No", "Description"}

	cols, err := resolveColumns(header, 0, DefaultPatterns())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cols.number != 1 {
		t.Errorf("expected number column 1, got %d", cols.number)
	}
	if cols.title != 0 {
		t.Errorf("expected title column 0, got %d", cols.title)
	}
}

func TestImportScenario_Errors(t *testing.T) {
	tests := []struct {
		name string
		rows [][]string
		want error
	}{
		{
			name: "нет заголовков",
			rows: [][]string{{"просто текст"}, {"ещё текст"}},
			want: ErrNoHeaderFound,
		},
		{
			name: "нет обязательных колонок",
			rows: [][]string{
				{"ТАБЛИЧНОЕ ОПИСАНИЕ ШАГОВ СЦЕНАРИЯ"},
				{"Описание", "Критерий успеха"},
			},
			want: ErrMissingRequiredColumns,
		},
		{
			name: "нет ни одного шага",
			rows: [][]string{
				{"ТАБЛИЧНОЕ ОПИСАНИЕ ШАГОВ СЦЕНАРИЯ"},
				{"№", "Шаг сценария"},
				{"", "строка без номера"},
			},
			want: ErrNoStepsFound,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ImportScenario(tc.rows, DefaultPatterns())
			if !errors.Is(err, tc.want) {
				t.Errorf("expected %v, got %v", tc.want, err)
			}
			var ie *ImportError
			if !errors.As(err, &ie) {
				t.Errorf("expected *ImportError, got %T", err)
			}
		})
	}
}

func TestImportScenario_Layout(t *testing.T) {
	snap, err := ImportScenario(tableFixture(), DefaultPatterns())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for i, s := range snap.Steps {
		if s.X != 120 {
			t.Errorf("step %s: expected x=120, got %v", s.Key, s.X)
		}
		if want := float64(80 + i*160); s.Y != want {
			t.Errorf("step %s: expected y=%v, got %v", s.Key, want, s.Y)
		}
	}
}
