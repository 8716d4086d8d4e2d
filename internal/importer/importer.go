package importer

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/shaiso/Flowdoc/internal/domain"
)

// scenarioRow — одна извлечённая строка таблицы до превращения в шаг.
// Сырой текст колонок сохраняется отдельно для поиска переходов.
type scenarioRow struct {
	key       string
	title     string
	desc      string // сырой текст колонки описания
	criterion string // сырой текст критерия успеха
	errText   string // сырой текст обработки ошибок
	note      string // сырой текст примечания разработчика
}

// columns — разрешённые индексы колонок в строке заголовков.
// -1 — колонка отсутствует.
type columns struct {
	number    int
	title     int
	desc      int
	criterion int
	errs      int
	note      int
}

// ImportScenario разбирает табличное описание сценария в граф.
//
// Вход — прямоугольная таблица текстовых ячеек (включая строки
// заголовков), выход — снапшот, готовый к сохранению. Функция
// чистая: никакого I/O, за чтение файла отвечает ReadWorkbook.
//
// Возможные ошибки: ErrNoHeaderFound, ErrMissingRequiredColumns,
// ErrNoStepsFound (все — через *ImportError).
func ImportScenario(rows [][]string, pats Patterns) (domain.Snapshot, error) {
	headerIdx, err := findHeader(rows, pats)
	if err != nil {
		return domain.Snapshot{}, err
	}

	cols, err := resolveColumns(rows[headerIdx], headerIdx, pats)
	if err != nil {
		return domain.Snapshot{}, err
	}

	extracted := extractRows(rows, headerIdx, cols)
	if len(extracted) == 0 {
		return domain.Snapshot{}, newImportError(ErrNoStepsFound, -1,
			"в таблице не найдено ни одного шага сценария")
	}

	sortRows(extracted)

	steps := buildSteps(extracted, pats)

	snapshot := domain.Snapshot{Steps: steps}
	transitions, placeholders := extractTransitions(extracted, snapshot.StepKeys(), pats)
	snapshot.Steps = append(snapshot.Steps, placeholders...)
	snapshot.Transitions = synthesizeEdges(extracted, transitions)

	layoutSteps(snapshot.Steps)

	return snapshot, nil
}

// findHeader ищет строку заголовков колонок.
//
// Основная эвристика: строка с маркерной фразой секции, заголовки —
// строкой ниже. Запасная: строка, первая ячейка которой — маркер
// номера шага, и в которой есть ячейка с названием колонки шага.
func findHeader(rows [][]string, pats Patterns) (int, error) {
	marker := strings.ToLower(pats.HeaderMarker)

	for i, row := range rows {
		for _, cell := range row {
			if strings.Contains(strings.ToLower(cell), marker) {
				if i+1 < len(rows) {
					return i + 1, nil
				}
			}
		}
	}

	// Запасная эвристика: сама строка заголовков.
	for i, row := range rows {
		if len(row) == 0 {
			continue
		}
		if !matchesAny(row[0], pats.NumberColumn) {
			continue
		}
		for _, cell := range row[1:] {
			if matchesAny(cell, pats.TitleColumn) {
				return i, nil
			}
		}
	}

	return 0, newImportError(ErrNoHeaderFound, -1,
		"не найдена строка с заголовками таблицы шагов")
}

// resolveColumns находит индексы колонок по заголовкам.
// Колонки номера и названия шага обязательны.
func resolveColumns(header []string, headerIdx int, pats Patterns) (columns, error) {
	cols := columns{
		number:    findColumn(header, pats.NumberColumn),
		title:     findColumn(header, pats.TitleColumn),
		desc:      findColumn(header, pats.DescriptionColumn),
		criterion: findColumn(header, pats.CriterionColumn),
		errs:      findColumn(header, pats.ErrorsColumn),
		note:      findColumn(header, pats.NoteColumn),
	}

	if cols.number < 0 || cols.title < 0 {
		return cols, newImportError(ErrMissingRequiredColumns, headerIdx,
			"в таблице нет колонки номера или названия шага")
	}

	return cols, nil
}

// findColumn возвращает индекс первой ячейки, совпадающей
// с одним из вариантов заголовка, либо -1.
func findColumn(header []string, variants []string) int {
	for i, cell := range header {
		if matchesAny(cell, variants) {
			return i
		}
	}
	return -1
}

// matchesAny — совпадение заголовка с одним из вариантов без учёта
// регистра. Фразы ищутся по подстроке; короткие варианты ("№", "no",
// "n") сравниваются точно, иначе любая ячейка с буквой n становилась
// бы кандидатом в колонку номера.
func matchesAny(cell string, variants []string) bool {
	c := strings.ToLower(strings.TrimSpace(cell))
	if c == "" {
		return false
	}
	for _, v := range variants {
		lv := strings.ToLower(v)
		if len([]rune(lv)) <= 2 {
			if c == lv {
				return true
			}
			continue
		}
		if strings.Contains(c, lv) {
			return true
		}
	}
	return false
}

// extractRows собирает строки с шагами после заголовка.
// Строки без цифры в ячейке номера пропускаются (пустые строки,
// разделители секций, примечания).
func extractRows(rows [][]string, headerIdx int, cols columns) []scenarioRow {
	var out []scenarioRow

	for i := headerIdx + 1; i < len(rows); i++ {
		row := rows[i]

		num := strings.TrimSpace(cellAt(row, cols.number))
		if !containsDigit(num) {
			continue
		}

		out = append(out, scenarioRow{
			key:       num,
			title:     strings.TrimSpace(cellAt(row, cols.title)),
			desc:      strings.TrimSpace(cellAt(row, cols.desc)),
			criterion: strings.TrimSpace(cellAt(row, cols.criterion)),
			errText:   strings.TrimSpace(cellAt(row, cols.errs)),
			note:      strings.TrimSpace(cellAt(row, cols.note)),
		})
	}

	return out
}

func cellAt(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}

func containsDigit(s string) bool {
	for _, r := range s {
		if r >= '0' && r <= '9' {
			return true
		}
	}
	return false
}

// sortRows упорядочивает шаги по числовому значению номера.
// Запятая как десятичный разделитель нормализуется в точку.
//
// Числовые и нечисловые номера разделяются до сортировки: числовые
// идут первыми по возрастанию значения (при равенстве — в исходном
// порядке), нечисловые — следом в исходном порядке. Смешанный
// компаратор не дал бы строгого порядка.
func sortRows(rows []scenarioRow) {
	numeric := make([]scenarioRow, 0, len(rows))
	var rest []scenarioRow
	for _, row := range rows {
		if _, ok := parseStepNumber(row.key); ok {
			numeric = append(numeric, row)
		} else {
			rest = append(rest, row)
		}
	}

	sort.SliceStable(numeric, func(i, j int) bool {
		ni, _ := parseStepNumber(numeric[i].key)
		nj, _ := parseStepNumber(numeric[j].key)
		return ni < nj
	})

	copy(rows, numeric)
	copy(rows[len(numeric):], rest)
}

func parseStepNumber(s string) (float64, bool) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// buildSteps превращает отсортированные строки в шаги графа.
//
// Тип шага выводится из позиции и названия: первый — start,
// последний — end, промежуточные — condition, если в названии
// есть слово проверки, иначе action.
func buildSteps(rows []scenarioRow, pats Patterns) []domain.Step {
	steps := make([]domain.Step, len(rows))

	for i, row := range rows {
		title := row.title
		if title == "" {
			title = fmt.Sprintf(pats.StepTitleFormat, row.key)
		}

		steps[i] = domain.Step{
			Key:         row.key,
			Type:        inferType(i, len(rows), title, pats),
			Title:       title,
			Description: compositeDescription(row, pats),
		}
	}

	return steps
}

func inferType(idx, total int, title string, pats Patterns) domain.StepType {
	switch {
	case idx == 0:
		return domain.StepTypeStart
	case idx == total-1:
		return domain.StepTypeEnd
	}

	lower := strings.ToLower(title)
	for _, kw := range pats.ConditionKeywords {
		if strings.Contains(lower, strings.ToLower(kw)) {
			return domain.StepTypeCondition
		}
	}
	return domain.StepTypeAction
}

// compositeDescription собирает описание шага из описания,
// критерия успеха и обработки ошибок, разделяя части пустой строкой.
func compositeDescription(row scenarioRow, pats Patterns) string {
	var parts []string
	if row.desc != "" {
		parts = append(parts, row.desc)
	}
	if row.criterion != "" {
		parts = append(parts, pats.CriterionPrefix+row.criterion)
	}
	if row.errText != "" {
		parts = append(parts, pats.ErrorsPrefix+row.errText)
	}
	return strings.Join(parts, "\n\n")
}

// layoutSteps раскладывает шаги в простую вертикальную колонку.
// Координаты нужны только холсту, пользователь их потом двигает.
func layoutSteps(steps []domain.Step) {
	for i := range steps {
		steps[i].X = 120
		steps[i].Y = float64(80 + i*160)
	}
}
