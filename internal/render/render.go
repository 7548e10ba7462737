// Package render writes query results for the non-interactive commands.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"gopkg.in/yaml.v3"

	"github.com/jask/pokedex/internal/pokemon"
)

type Format string

const (
	Table    Format = "table"
	JSON     Format = "json"
	YAML     Format = "yaml"
	Markdown Format = "markdown"
)

// ParseFormat accepts a format name, ignoring case.
func ParseFormat(s string, allowed ...Format) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	for _, a := range allowed {
		if f == a {
			return f, nil
		}
	}
	names := make([]string, len(allowed))
	for i, a := range allowed {
		names[i] = string(a)
	}
	return "", fmt.Errorf("unknown output format %q (want %s)", s, strings.Join(names, ", "))
}

var headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
var cellStyle = lipgloss.NewStyle().Padding(0, 1)

// Summaries writes the list rows.
func Summaries(w io.Writer, list []pokemon.Summary, f Format) error {
	switch f {
	case JSON:
		return writeJSON(w, list)
	case YAML:
		return writeYAML(w, list)
	case Table:
		rows := make([][]string, 0, len(list))
		for _, p := range list {
			rows = append(rows, []string{p.Number, p.Name, strings.Join(p.Types, "/"), p.ID})
		}
		t := table.New().
			Border(lipgloss.NormalBorder()).
			Headers("#", "NAME", "TYPES", "ID").
			Rows(rows...).
			StyleFunc(func(row, col int) lipgloss.Style {
				if row == table.HeaderRow {
					return headerStyle
				}
				return cellStyle
			})
		_, err := fmt.Fprintln(w, t.Render())
		return err
	}
	return fmt.Errorf("format %q not supported for lists", f)
}

// Details writes one or more full records.
func Details(w io.Writer, details []*pokemon.Detail, f Format, width int) error {
	switch f {
	case JSON:
		if len(details) == 1 {
			return writeJSON(w, details[0])
		}
		return writeJSON(w, details)
	case YAML:
		if len(details) == 1 {
			return writeYAML(w, details[0])
		}
		return writeYAML(w, details)
	case Markdown:
		return writeMarkdown(w, details, width)
	}
	return fmt.Errorf("format %q not supported for details", f)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

func writeMarkdown(w io.Writer, details []*pokemon.Detail, width int) error {
	if width <= 0 {
		width = 80
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return fmt.Errorf("markdown renderer: %w", err)
	}
	var b strings.Builder
	for i, d := range details {
		if i > 0 {
			b.WriteString("\n---\n\n")
		}
		b.WriteString(DetailMarkdown(d))
	}
	out, err := r.Render(b.String())
	if err != nil {
		return fmt.Errorf("render markdown: %w", err)
	}
	_, err = io.WriteString(w, out)
	return err
}

// DetailMarkdown is the markdown document for one Pokémon.
func DetailMarkdown(d *pokemon.Detail) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", d.Title())
	if d.Classification != "" {
		fmt.Fprintf(&b, "_%s_\n\n", d.Classification)
	}
	b.WriteString("| | |\n|---|---|\n")
	row := func(k, v string) { fmt.Fprintf(&b, "| %s | %s |\n", k, v) }
	row("Types", list(d.Types))
	row("Resistant", list(d.Resistant))
	row("Weaknesses", list(d.Weaknesses))
	row("Weight", d.Weight.String())
	row("Height", d.Height.String())
	row("Flee rate", d.FleePercent())
	row("Max CP", strconv.Itoa(d.MaxCP))
	row("Max HP", strconv.Itoa(d.MaxHP))
	if d.Image != "" {
		fmt.Fprintf(&b, "\n%s\n", d.Image)
	}
	return b.String()
}

func list(s []string) string {
	if len(s) == 0 {
		return "-"
	}
	return strings.Join(s, ", ")
}
