package importer

import "regexp"

// Patterns — таблица текстовых эвристик импортёра.
//
// Все маркерные фразы и ключевые слова локализуемы, поэтому они
// вынесены из алгоритма: альтернативные формулировки добавляются
// сюда, сам разбор не меняется.
type Patterns struct {
	// SheetMarkers — подстроки в названии листа книги,
	// по которым выбирается лист со сценарием.
	SheetMarkers []string

	// HeaderMarker — фраза-маркер секции с табличным описанием шагов.
	// Ищется по подстроке без учёта регистра; следующая строка
	// после найденной считается строкой заголовков колонок.
	HeaderMarker string

	// NumberColumn — варианты заголовка колонки с номером шага.
	NumberColumn []string

	// TitleColumn — варианты заголовка колонки с названием шага.
	TitleColumn []string

	// DescriptionColumn — варианты заголовка колонки с описанием.
	DescriptionColumn []string

	// CriterionColumn — варианты заголовка колонки с критерием успеха.
	CriterionColumn []string

	// ErrorsColumn — варианты заголовка колонки с обработкой ошибок.
	ErrorsColumn []string

	// NoteColumn — варианты заголовка колонки с примечанием разработчика.
	NoteColumn []string

	// ConditionKeywords — слова в названии шага, по которым средний шаг
	// получает тип condition вместо action.
	ConditionKeywords []string

	// Transition — регулярное выражение перехода в свободном тексте.
	// Первая группа захвата — номер целевого шага.
	Transition *regexp.Regexp

	// CriterionPrefix и ErrorsPrefix — префиксы частей
	// составного описания шага.
	CriterionPrefix string
	ErrorsPrefix    string

	// StepTitleFormat — формат синтезированного названия шага
	// ("Шаг %s") для пустых названий и шагов-заглушек.
	StepTitleFormat string
}

// DefaultPatterns возвращает набор эвристик исходного инструмента
// (русскоязычные шаблоны ТЗ).
func DefaultPatterns() Patterns {
	return Patterns{
		SheetMarkers: []string{"сценарий", "scenario"},
		HeaderMarker: "табличное описание шагов сценария",
		NumberColumn: []string{"№", "no", "n"},
		TitleColumn:  []string{"шаг сценария", "scenario step"},
		DescriptionColumn: []string{
			"описание", "description",
		},
		CriterionColumn: []string{
			"критерий успеха", "критерий", "success criterion",
		},
		ErrorsColumn: []string{
			"обработка ошибок", "ошибки", "error handling",
		},
		NoteColumn: []string{
			"примечание разработчик", "примечание", "developer note",
		},
		ConditionKeywords: []string{
			"проверка", "проверить", "проверяет", "контроль",
			"валидация", "verification", "check",
		},
		Transition:      regexp.MustCompile(`(?i)переход(?:а|у)?\s+к\s+шагу\s+(\d+)`),
		CriterionPrefix: "Критерий: ",
		ErrorsPrefix:    "Ошибки: ",
		StepTitleFormat: "Шаг %s",
	}
}
