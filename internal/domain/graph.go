package domain

// StepType — тип шага в графе сценария.
type StepType string

// Типы шагов.
const (
	// StepTypeStart — начальный шаг сценария.
	StepTypeStart StepType = "start"

	// StepTypeAction — обычное действие.
	StepTypeAction StepType = "action"

	// StepTypeCondition — шаг с проверкой/ветвлением.
	StepTypeCondition StepType = "condition"

	// StepTypeEnd — завершающий шаг сценария.
	StepTypeEnd StepType = "end"
)

// IsValid проверяет, что тип шага известен.
func (t StepType) IsValid() bool {
	switch t {
	case StepTypeStart, StepTypeAction, StepTypeCondition, StepTypeEnd:
		return true
	}
	return false
}

// Step — узел графа сценария.
//
// Key — смысловой идентификатор, который задаёт автор ("1", "2.1", "check").
// Он уникален в пределах одного снапшота и переживает форки версий.
// Это НЕ суррогатный ключ базы данных.
type Step struct {
	// Key — уникальный в пределах снапшота идентификатор шага.
	Key string `json:"key"`

	// Type — тип шага.
	Type StepType `json:"type"`

	// Title — название шага.
	Title string `json:"title"`

	// Description — описание шага (опционально).
	Description string `json:"description,omitempty"`

	// X, Y — координаты на холсте. Только для отображения,
	// при сравнении версий не учитываются.
	X float64 `json:"x"`
	Y float64 `json:"y"`

	// Meta — произвольные данные редактора. Ядро их не интерпретирует,
	// только переносит как есть.
	Meta map[string]any `json:"meta,omitempty"`
}

// Transition — направленное ребро между двумя шагами.
//
// Между одной парой шагов может быть несколько переходов,
// если у них разные метки. Идентичность перехода при сравнении —
// тройка (FromKey, ToKey, Label).
type Transition struct {
	// FromKey — ключ исходного шага.
	FromKey string `json:"from_key"`

	// ToKey — ключ целевого шага.
	ToKey string `json:"to_key"`

	// Label — метка перехода (опционально).
	Label string `json:"label,omitempty"`

	// Condition — условие перехода (опционально).
	Condition string `json:"condition,omitempty"`

	// Meta — произвольные данные редактора.
	Meta map[string]any `json:"meta,omitempty"`
}

// Snapshot — полный граф одной версии: шаги и переходы.
//
// Снапшот — значение: после сохранения он не мутируется,
// замена графа версии всегда полная (delete-all-then-recreate).
type Snapshot struct {
	Steps       []Step       `json:"steps"`
	Transitions []Transition `json:"transitions"`
}

// StepByKey возвращает шаг по ключу.
func (s *Snapshot) StepByKey(key string) (*Step, bool) {
	for i := range s.Steps {
		if s.Steps[i].Key == key {
			return &s.Steps[i], true
		}
	}
	return nil, false
}

// StepKeys возвращает множество ключей шагов снапшота.
func (s *Snapshot) StepKeys() map[string]bool {
	keys := make(map[string]bool, len(s.Steps))
	for i := range s.Steps {
		keys[s.Steps[i].Key] = true
	}
	return keys
}

// Clone возвращает глубокую копию снапшота.
// Используется при форке версии: структура и ключи сохраняются,
// суррогатные идентификаторы в БД будут новыми.
func (s *Snapshot) Clone() Snapshot {
	out := Snapshot{
		Steps:       make([]Step, len(s.Steps)),
		Transitions: make([]Transition, len(s.Transitions)),
	}
	for i, st := range s.Steps {
		st.Meta = cloneMeta(st.Meta)
		out.Steps[i] = st
	}
	for i, tr := range s.Transitions {
		tr.Meta = cloneMeta(tr.Meta)
		out.Transitions[i] = tr
	}
	return out
}

func cloneMeta(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
