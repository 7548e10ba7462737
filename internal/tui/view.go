package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jask/pokedex/internal/pokemon"
	"github.com/jask/pokedex/internal/query"
)

type listView struct {
	Result  query.Result[[]pokemon.Summary]
	Visible []pokemon.Summary
	Query   string
	Cursor  int
	Offset  int
	Width   int
	Height  int
	Spinner string
}

// renderList draws the list body from the collection result alone.
func renderList(v listView) string {
	switch v.Result.Status {
	case query.Idle, query.Pending:
		return " " + v.Spinner + " Loading..."
	case query.Failed:
		return errorStyle.Render(" Could not load Pokémon.") + "\n " +
			mutedStyle.Render(v.Result.Err.Error()) + "\n\n " +
			mutedStyle.Render("Press r to try again.")
	}

	all, _ := v.Result.Value()
	if len(all) == 0 {
		return mutedStyle.Render(" No Pokémon.")
	}
	if len(v.Visible) == 0 {
		line := mutedStyle.Render(fmt.Sprintf(" No Pokémon match %q.", v.Query))
		if name, ok := pokemon.Suggest(all, v.Query); ok {
			line += mutedStyle.Render(" Did you mean ") + rowStyle.Render(name) + mutedStyle.Render("?")
		}
		return line
	}

	end := min(len(v.Visible), v.Offset+max(1, v.Height))
	lines := make([]string, 0, end-v.Offset)
	for i := v.Offset; i < end; i++ {
		lines = append(lines, renderRow(v.Visible[i], i == v.Cursor, v.Width))
	}
	return strings.Join(lines, "\n")
}

func renderRow(p pokemon.Summary, selected bool, width int) string {
	marker := "  "
	style := rowStyle
	if selected {
		marker = "> "
		style = rowCursorStyle
	}
	badges := make([]string, len(p.Types))
	for i, t := range p.Types {
		badges[i] = typeBadge(t)
	}
	name := style.Render(marker + padRightANSI(p.Name, 16))
	return padRightANSI(
		numberStyle.Render(" #"+p.Number+" ")+name+" "+strings.Join(badges, " "),
		max(1, width),
	)
}

// renderDetail draws the dialog card. It reports false when nothing is
// selected, which is the only way the dialog is closed.
func renderDetail(id string, res query.Result[*pokemon.Detail], spin string, width int) (string, bool) {
	if id == "" {
		return "", false
	}
	inner := max(24, min(width-6, 56))

	var body string
	switch res.Status {
	case query.Idle, query.Pending:
		body = spin + " Loading..."
	case query.Failed:
		body = errorStyle.Render("Could not load Pokémon "+id) + "\n\n" + mutedStyle.Render(res.Err.Error())
	case query.Ok:
		if res.Data == nil {
			body = mutedStyle.Render(fmt.Sprintf("No Pokémon with id %q.", id))
		} else {
			body = detailBody(res.Data)
		}
	}
	hint := mutedStyle.Render("esc close  r refresh")
	return dialogStyle.Width(inner).Render(body + "\n\n" + hint), true
}

func detailBody(d *pokemon.Detail) string {
	lines := []string{dialogTitleStyle.Render(d.Title())}
	if d.Classification != "" {
		lines = append(lines, mutedStyle.Italic(true).Render(d.Classification))
	}
	if len(d.Types) > 0 {
		badges := make([]string, len(d.Types))
		for i, t := range d.Types {
			badges[i] = typeBadge(t)
		}
		lines = append(lines, "", strings.Join(badges, " "))
	}
	lines = append(lines, "")
	field := func(label, value string) {
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, dialogLabelStyle.Render(label), value))
	}
	field("Weight", d.Weight.String())
	field("Height", d.Height.String())
	field("Resistant", joinOrDash(d.Resistant))
	field("Weaknesses", joinOrDash(d.Weaknesses))
	field("Flee rate", d.FleePercent())
	field("Max CP", strconv.Itoa(d.MaxCP))
	field("Max HP", strconv.Itoa(d.MaxHP))
	if d.Image != "" {
		lines = append(lines, "", mutedStyle.Render(d.Image))
	}
	return strings.Join(lines, "\n")
}

func joinOrDash(s []string) string {
	if len(s) == 0 {
		return "-"
	}
	return strings.Join(s, ", ")
}
