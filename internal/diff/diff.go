package diff

import (
	"sort"

	"github.com/shaiso/Flowdoc/internal/domain"
)

// StepFields — сравниваемые поля шага.
// Координаты сюда намеренно не входят: перемещение шага
// по холсту не считается изменением.
type StepFields struct {
	Type        domain.StepType `json:"type"`
	Title       string          `json:"title"`
	Description string          `json:"description,omitempty"`
}

// StepEntry — добавленный или удалённый шаг.
type StepEntry struct {
	Key string `json:"key"`
	StepFields
}

// StepChange — изменённый шаг: состояние до и после.
type StepChange struct {
	Key    string     `json:"key"`
	Before StepFields `json:"before"`
	After  StepFields `json:"after"`
}

// TransitionEntry — добавленный или удалённый переход.
// Метка нормализована: отсутствующая метка эквивалентна пустой строке.
type TransitionEntry struct {
	FromKey string `json:"from_key"`
	ToKey   string `json:"to_key"`
	Label   string `json:"label,omitempty"`
}

// StepsDelta — результат сравнения шагов.
type StepsDelta struct {
	Added   []StepEntry  `json:"added"`
	Removed []StepEntry  `json:"removed"`
	Changed []StepChange `json:"changed"`
}

// TransitionsDelta — результат сравнения переходов.
//
// Категории "changed" для переходов нет: переход либо идентичен
// по всей тройке (from, to, label), либо считается парой
// удаление+добавление. Переименованная метка ребра поэтому
// отображается как два события. Это осознанное упрощение,
// UI на него рассчитывает.
type TransitionsDelta struct {
	Added   []TransitionEntry `json:"added"`
	Removed []TransitionEntry `json:"removed"`
}

// Delta — структурная разница между двумя снапшотами.
type Delta struct {
	Steps       StepsDelta       `json:"steps"`
	Transitions TransitionsDelta `json:"transitions"`
}

// Empty сообщает, отличаются ли снапшоты вообще.
func (d *Delta) Empty() bool {
	return len(d.Steps.Added) == 0 &&
		len(d.Steps.Removed) == 0 &&
		len(d.Steps.Changed) == 0 &&
		len(d.Transitions.Added) == 0 &&
		len(d.Transitions.Removed) == 0
}

// Diff сравнивает два снапшота и возвращает структурную разницу.
//
// Функция чистая и тотальная: любые два корректных снапшота
// (включая пустые) дают результат без ошибок. Корректность
// снапшотов (уникальные ключи, существующие концы переходов) —
// инвариант хранилища, здесь она не проверяется.
//
// Результат детерминирован: все категории отсортированы по ключу,
// чтобы одинаковые входы давали одинаковый вывод.
func Diff(from, to domain.Snapshot) Delta {
	var d Delta
	d.Steps = diffSteps(from.Steps, to.Steps)
	d.Transitions = diffTransitions(from.Transitions, to.Transitions)
	return d
}

func diffSteps(from, to []domain.Step) StepsDelta {
	fromByKey := stepsByKey(from)
	toByKey := stepsByKey(to)

	var delta StepsDelta

	// Добавленные и изменённые — обходим to.
	for _, key := range sortedKeys(toByKey) {
		after := toByKey[key]
		before, ok := fromByKey[key]
		if !ok {
			delta.Added = append(delta.Added, StepEntry{Key: key, StepFields: fields(after)})
			continue
		}
		bf, af := fields(before), fields(after)
		if bf != af {
			delta.Changed = append(delta.Changed, StepChange{Key: key, Before: bf, After: af})
		}
	}

	// Удалённые — обходим from.
	for _, key := range sortedKeys(fromByKey) {
		if _, ok := toByKey[key]; !ok {
			delta.Removed = append(delta.Removed, StepEntry{Key: key, StepFields: fields(fromByKey[key])})
		}
	}

	return delta
}

func diffTransitions(from, to []domain.Transition) TransitionsDelta {
	fromSet := transitionSet(from)
	toSet := transitionSet(to)

	var delta TransitionsDelta

	for _, k := range sortedTransitionKeys(toSet) {
		if _, ok := fromSet[k]; !ok {
			delta.Added = append(delta.Added, TransitionEntry(k))
		}
	}
	for _, k := range sortedTransitionKeys(fromSet) {
		if _, ok := toSet[k]; !ok {
			delta.Removed = append(delta.Removed, TransitionEntry(k))
		}
	}

	return delta
}

// fields извлекает сравниваемые поля шага.
// Отсутствующее описание представляется пустой строкой,
// поэтому "" и отсутствие считаются равными автоматически.
func fields(s domain.Step) StepFields {
	return StepFields{
		Type:        s.Type,
		Title:       s.Title,
		Description: s.Description,
	}
}

func stepsByKey(steps []domain.Step) map[string]domain.Step {
	m := make(map[string]domain.Step, len(steps))
	for _, s := range steps {
		m[s.Key] = s
	}
	return m
}

// transitionKey — идентичность перехода для сравнения.
type transitionKey struct {
	FromKey string
	ToKey   string
	Label   string
}

func transitionSet(ts []domain.Transition) map[transitionKey]struct{} {
	m := make(map[transitionKey]struct{}, len(ts))
	for _, t := range ts {
		m[transitionKey{FromKey: t.FromKey, ToKey: t.ToKey, Label: t.Label}] = struct{}{}
	}
	return m
}

func sortedKeys(m map[string]domain.Step) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sortedTransitionKeys(m map[transitionKey]struct{}) []transitionKey {
	keys := make([]transitionKey, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].FromKey != keys[j].FromKey {
			return keys[i].FromKey < keys[j].FromKey
		}
		if keys[i].ToKey != keys[j].ToKey {
			return keys[i].ToKey < keys[j].ToKey
		}
		return keys[i].Label < keys[j].Label
	})
	return keys
}
