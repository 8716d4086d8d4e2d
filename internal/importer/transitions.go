package importer

import (
	"fmt"
	"strings"

	"github.com/shaiso/Flowdoc/internal/domain"
)

// Окно текста перед совпадением, из которого берётся метка перехода,
// и предел длины метки.
const (
	labelWindow = 80
	labelMax    = 60
)

// textMatch — один найденный в тексте переход.
type textMatch struct {
	target string // номер целевого шага
	label  string // метка, выведенная из текста перед совпадением
}

// findTextTransitions сканирует свободный текст на фразы перехода.
//
// Функция работает только с текстом: откуда он взялся (ячейки таблицы,
// будущие источники), её не касается. Возвращает все неперекрывающиеся
// совпадения в порядке появления.
func findTextTransitions(text string, pats Patterns) []textMatch {
	idxs := pats.Transition.FindAllStringSubmatchIndex(text, -1)
	if len(idxs) == 0 {
		return nil
	}

	matches := make([]textMatch, 0, len(idxs))
	for _, m := range idxs {
		// m[0],m[1] — всё совпадение; m[2],m[3] — группа с номером шага.
		target := text[m[2]:m[3]]
		label := deriveLabel(text[:m[0]])
		matches = append(matches, textMatch{target: target, label: label})
	}
	return matches
}

// deriveLabel выводит метку перехода из текста перед совпадением:
// берётся окно до labelWindow символов, хвостовая пунктуация
// обрезается, длинная метка усекается до последних labelMax
// символов с многоточием в начале.
func deriveLabel(prefix string) string {
	runes := []rune(prefix)
	if len(runes) > labelWindow {
		runes = runes[len(runes)-labelWindow:]
	}

	label := strings.TrimRight(string(runes), " \t\n\r.,;:—-–")
	label = strings.TrimLeft(label, " \t\n\r")

	lr := []rune(label)
	if len(lr) > labelMax {
		label = "…" + string(lr[len(lr)-labelMax:])
	}
	return label
}

// extractTransitions извлекает переходы из сырого текста всех строк.
//
// Для каждой строки сканируется склейка описания, критерия успеха,
// обработки ошибок и примечания разработчика. Повторные переходы из
// одного шага в один
// и тот же целевой дедуплицируются — остаётся первая найденная метка.
//
// Для целей, не соответствующих ни одному известному ключу, создаются
// шаги-заглушки, чтобы у ребра были оба конца.
func extractTransitions(rows []scenarioRow, known map[string]bool, pats Patterns) ([]domain.Transition, []domain.Step) {
	var transitions []domain.Transition
	var placeholders []domain.Step

	seen := make(map[[2]string]bool)

	for _, row := range rows {
		text := strings.Join([]string{row.desc, row.criterion, row.errText, row.note}, "\n\n")

		for _, m := range findTextTransitions(text, pats) {
			pair := [2]string{row.key, m.target}
			if seen[pair] {
				continue
			}
			seen[pair] = true

			if !known[m.target] {
				known[m.target] = true
				placeholders = append(placeholders, domain.Step{
					Key:   m.target,
					Type:  domain.StepTypeAction,
					Title: fmt.Sprintf(pats.StepTitleFormat, m.target),
				})
			}

			transitions = append(transitions, domain.Transition{
				FromKey: row.key,
				ToKey:   m.target,
				Label:   m.label,
			})
		}
	}

	return transitions, placeholders
}

// synthesizeEdges применяет политику достройки рёбер.
//
// Если в тексте не нашлось ни одного перехода, шаги соединяются
// простой линейной цепочкой по порядку. Если переходы есть,
// используются именно они, а линейное ребро к следующему шагу
// добавляется только шагам без единого явного исходящего перехода:
// явное ветвление автора не должно дублироваться неявным
// ребром "следующая строка".
func synthesizeEdges(rows []scenarioRow, extracted []domain.Transition) []domain.Transition {
	if len(extracted) == 0 {
		return linearChain(rows)
	}

	outgoing := make(map[string]int)
	for _, t := range extracted {
		outgoing[t.FromKey]++
	}

	edges := extracted
	for i := 0; i < len(rows)-1; i++ {
		if outgoing[rows[i].key] == 0 {
			edges = append(edges, domain.Transition{
				FromKey: rows[i].key,
				ToKey:   rows[i+1].key,
			})
		}
	}
	return edges
}

func linearChain(rows []scenarioRow) []domain.Transition {
	if len(rows) < 2 {
		return nil
	}
	edges := make([]domain.Transition, 0, len(rows)-1)
	for i := 0; i < len(rows)-1; i++ {
		edges = append(edges, domain.Transition{
			FromKey: rows[i].key,
			ToKey:   rows[i+1].key,
		})
	}
	return edges
}
