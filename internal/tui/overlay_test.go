package tui

import (
	"strings"
	"testing"

	"github.com/jask/pokedex/internal/pokemon"
	"github.com/jask/pokedex/internal/query"
)

func contains(s, sub string) bool { return strings.Contains(s, sub) }

func TestRenderPopupOverlaysWithoutDroppingBase(t *testing.T) {
	base := strings.Join([]string{
		"row-0................",
		"row-1................",
		"row-2................",
		"row-3................",
		"row-4................",
		"row-5................",
		"row-6................",
		"row-7................",
		"row-8................",
	}, "\n")
	out := renderPopup(base, "+-----+\n|Popup|\n+-----+", 20, 9)
	lines := strings.Split(out, "\n")
	if len(lines) != 9 {
		t.Fatalf("line count = %d, want 9", len(lines))
	}
	if !strings.Contains(lines[4], "|Popup|") {
		t.Fatalf("expected popup on the middle row, got %q", lines[4])
	}
	if !strings.HasPrefix(lines[4], "row-4") {
		t.Fatalf("expected base to the left of the popup, got %q", lines[4])
	}
	if !strings.Contains(lines[0], "row-0") || !strings.Contains(lines[8], "row-8") {
		t.Fatalf("expected outer base rows preserved")
	}
	for i, l := range lines {
		if w := maxLineWidth([]string{l}); w != 20 {
			t.Fatalf("row %d width = %d, want 20", i, w)
		}
	}
}

func TestRenderDetailClosedWithoutSelection(t *testing.T) {
	ok := query.Result[*pokemon.Detail]{Status: query.Ok, Data: &pokemon.Detail{Name: "Charizard"}}
	if card, open := renderDetail("", ok, "", 80); open || card != "" {
		t.Fatalf("dialog must stay closed without a selected id")
	}
	card, open := renderDetail("6", query.Result[*pokemon.Detail]{Status: query.Pending}, "*", 80)
	if !open || !strings.Contains(card, "Loading...") {
		t.Fatalf("expected loading dialog, got %q", card)
	}
}

func TestRenderListStates(t *testing.T) {
	if got := renderList(listView{Result: query.Result[[]pokemon.Summary]{Status: query.Pending}}); !strings.Contains(got, "Loading...") {
		t.Fatalf("pending list = %q", got)
	}
	empty := renderList(listView{Result: query.Result[[]pokemon.Summary]{Status: query.Ok}})
	if !strings.Contains(empty, "No Pokémon.") {
		t.Fatalf("empty list = %q", empty)
	}
}
