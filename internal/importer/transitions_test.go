package importer

import (
	"strings"
	"testing"

	"github.com/shaiso/Flowdoc/internal/domain"
)

func TestFindTextTransitions(t *testing.T) {
	pats := DefaultPatterns()

	tests := []struct {
		name    string
		text    string
		targets []string
	}{
		{
			name:    "нет переходов",
			text:    "Обычное описание шага без ссылок",
			targets: nil,
		},
		{
			name:    "один переход",
			text:    "Если данные некорректны, переход к шагу 5",
			targets: []string{"5"},
		},
		{
			name:    "несколько переходов",
			text:    "При успехе переход к шагу 3. При ошибке переход к шагу 7.",
			targets: []string{"3", "7"},
		},
		{
			name:    "регистр не важен",
			text:    "ПЕРЕХОД К ШАГУ 12",
			targets: []string{"12"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			matches := findTextTransitions(tc.text, pats)
			if len(matches) != len(tc.targets) {
				t.Fatalf("expected %d matches, got %+v", len(tc.targets), matches)
			}
			for i, want := range tc.targets {
				if matches[i].target != want {
					t.Errorf("match %d: expected target %s, got %s", i, want, matches[i].target)
				}
			}
		})
	}
}

func TestDeriveLabel(t *testing.T) {
	tests := []struct {
		name   string
		prefix string
		want   string
	}{
		{
			name:   "хвостовая пунктуация обрезается",
			prefix: "данные некорректны, ",
			want:   "данные некорректны",
		},
		{
			name:   "пустой префикс",
			prefix: "   \n",
			want:   "",
		},
		{
			name:   "короткий префикс остаётся как есть",
			prefix: "при ошибке сервиса",
			want:   "при ошибке сервиса",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := deriveLabel(tc.prefix); got != tc.want {
				t.Errorf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestDeriveLabel_Truncation(t *testing.T) {
	// Длинный префикс: берётся окно в labelWindow символов,
	// итоговая метка не длиннее labelMax рун плюс многоточие.
	prefix := strings.Repeat("я", 200)

	label := deriveLabel(prefix)

	runes := []rune(label)
	if len(runes) != labelMax+1 {
		t.Fatalf("expected %d runes, got %d: %q", labelMax+1, len(runes), label)
	}
	if runes[0] != '…' {
		t.Errorf("truncated label must start with ellipsis: %q", label)
	}
}

func TestExtractTransitions_Dedupe(t *testing.T) {
	pats := DefaultPatterns()
	rows := []scenarioRow{
		{key: "1", desc: "первая причина: переход к шагу 2. вторая причина: переход к шагу 2"},
		{key: "2"},
	}
	known := map[string]bool{"1": true, "2": true}

	transitions, placeholders := extractTransitions(rows, known, pats)

	if len(transitions) != 1 {
		t.Fatalf("duplicate pair must collapse to one transition, got %+v", transitions)
	}
	if !strings.Contains(transitions[0].Label, "первая причина") {
		t.Errorf("the first label must win, got %q", transitions[0].Label)
	}
	if len(placeholders) != 0 {
		t.Errorf("unexpected placeholders: %+v", placeholders)
	}
}

func TestExtractTransitions_Placeholder(t *testing.T) {
	pats := DefaultPatterns()
	rows := []scenarioRow{
		{key: "1", note: "переход к шагу 8"},
	}
	known := map[string]bool{"1": true}

	transitions, placeholders := extractTransitions(rows, known, pats)

	if len(transitions) != 1 || transitions[0].ToKey != "8" {
		t.Fatalf("expected transition to 8, got %+v", transitions)
	}
	if len(placeholders) != 1 || placeholders[0].Key != "8" {
		t.Fatalf("expected placeholder for 8, got %+v", placeholders)
	}
	if placeholders[0].Title != "Шаг 8" {
		t.Errorf("unexpected placeholder title: %q", placeholders[0].Title)
	}
}

func TestSynthesizeEdges_NoExtracted(t *testing.T) {
	rows := []scenarioRow{{key: "1"}, {key: "2"}, {key: "3"}}

	edges := synthesizeEdges(rows, nil)

	if len(edges) != 2 {
		t.Fatalf("expected full linear chain, got %+v", edges)
	}
	if edges[0].FromKey != "1" || edges[0].ToKey != "2" ||
		edges[1].FromKey != "2" || edges[1].ToKey != "3" {
		t.Errorf("unexpected chain: %+v", edges)
	}
}

func TestSynthesizeEdges_FallbackOnlyWithoutOutgoing(t *testing.T) {
	rows := []scenarioRow{{key: "1"}, {key: "2"}, {key: "3"}}
	extracted := []domain.Transition{{FromKey: "1", ToKey: "3"}}

	edges := synthesizeEdges(rows, extracted)

	// Шагу 1 с явным переходом неявное ребро не добавляется,
	// шаг 2 без исходящих получает запасное ребро к следующему,
	// последний шаг исходящих не получает никогда.
	if len(edges) != 2 {
		t.Fatalf("expected 2 edges, got %+v", edges)
	}
	has := func(from, to string) bool {
		for _, e := range edges {
			if e.FromKey == from && e.ToKey == to {
				return true
			}
		}
		return false
	}
	if !has("1", "3") || !has("2", "3") {
		t.Errorf("unexpected edges: %+v", edges)
	}
	if has("1", "2") {
		t.Errorf("implicit edge must not duplicate explicit branching: %+v", edges)
	}
}

func TestSynthesizeEdges_SingleRow(t *testing.T) {
	edges := synthesizeEdges([]scenarioRow{{key: "1"}}, nil)
	if len(edges) != 0 {
		t.Errorf("single step has no edges, got %+v", edges)
	}
}
