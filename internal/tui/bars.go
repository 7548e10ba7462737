package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

func renderHeader(path string, canBack, canForward bool, width int) string {
	title := headerAppStyle.Background(colorMantle).Render(" Pokédex ")
	loc := historyArrow("‹", canBack) + historyArrow("›", canForward) +
		routeStyle.Background(colorMantle).Render(" "+path+" ")
	gap := width - ansi.StringWidth(title) - ansi.StringWidth(loc)
	line := title
	if gap > 0 {
		line += strings.Repeat(" ", gap) + loc
	}
	return renderBar(headerBarStyle, max(1, width), line, colorMantle)
}

func historyArrow(glyph string, enabled bool) string {
	if enabled {
		return headerAppStyle.Background(colorMantle).Render(glyph)
	}
	return lipgloss.NewStyle().Foreground(colorSurface1).Background(colorMantle).Render(glyph)
}

// helpBindings turns the described bindings into bubbles key bindings; the
// first key is the one shown in the footer.
func helpBindings(bindings []KeyBinding) []key.Binding {
	out := make([]key.Binding, 0, len(bindings))
	for _, b := range bindings {
		if len(b.Keys) == 0 || b.Description == "" {
			continue
		}
		out = append(out, key.NewBinding(key.WithKeys(b.Keys...), key.WithHelp(b.Keys[0], b.Description)))
	}
	return out
}

func renderFooter(bindings []KeyBinding, width int) string {
	bg := colorMantle
	h := help.New()
	h.Width = max(1, width)
	h.ShortSeparator = "  "
	h.Ellipsis = "…"
	h.Styles.ShortKey = lipgloss.NewStyle().Foreground(colorAccent).Bold(true).Background(bg)
	h.Styles.ShortDesc = lipgloss.NewStyle().Foreground(colorMuted).Background(bg)
	h.Styles.ShortSeparator = lipgloss.NewStyle().Background(bg)
	h.Styles.Ellipsis = h.Styles.ShortDesc

	line := h.ShortHelpView(helpBindings(bindings))
	if line == "" {
		line = h.Styles.ShortDesc.Render("No shortcuts")
	}
	return renderBar(footerStyle, max(1, width), line, bg)
}

func renderStatusBar(status string, isErr bool, width int) string {
	msg := strings.TrimSpace(status)
	if msg == "" {
		msg = "Ready"
	}
	if isErr {
		return renderBar(statusErrBarStyle, max(1, width), msg, colorSurface0)
	}
	return renderBar(statusBarStyle, max(1, width), msg, colorSurface0)
}

func renderBar(style lipgloss.Style, width int, text string, bg lipgloss.TerminalColor) string {
	line := strings.ReplaceAll(text, "\n", " ")
	line = ansi.Truncate(line, width, "")
	if w := ansi.StringWidth(line); w < width {
		line += strings.Repeat(" ", width-w)
	}
	return style.
		Background(bg).
		Width(width).
		MaxWidth(width).
		Render(line)
}
