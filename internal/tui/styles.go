package tui

import "github.com/charmbracelet/lipgloss"

var (
	colorText     lipgloss.Color = "#cdd6f4"
	colorMuted    lipgloss.Color = "#a6adc8"
	colorAccent   lipgloss.Color = "#89b4fa"
	colorSuccess  lipgloss.Color = "#a6e3a1"
	colorError    lipgloss.Color = "#f38ba8"
	colorMantle   lipgloss.Color = "#181825"
	colorSurface0 lipgloss.Color = "#313244"
	colorSurface1 lipgloss.Color = "#45475a"
)

var (
	appStyle = lipgloss.NewStyle().Foreground(colorText)

	headerAppStyle = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
	headerBarStyle = lipgloss.NewStyle().
			Background(colorMantle).
			Foreground(colorText)
	routeStyle = lipgloss.NewStyle().Foreground(colorMuted)

	statusBarStyle = lipgloss.NewStyle().
			Foreground(colorSuccess).
			Background(colorSurface0)
	statusErrBarStyle = lipgloss.NewStyle().
				Foreground(colorError).
				Background(colorSurface0)
	footerStyle = lipgloss.NewStyle().
			Background(colorMantle)

	rowStyle       = lipgloss.NewStyle().Foreground(colorText)
	rowCursorStyle = lipgloss.NewStyle().
			Foreground(colorAccent).
			Background(colorSurface1).
			Bold(true)
	numberStyle = lipgloss.NewStyle().Foreground(colorMuted)
	mutedStyle  = lipgloss.NewStyle().Foreground(colorMuted)
	errorStyle  = lipgloss.NewStyle().Foreground(colorError)

	dialogStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorAccent).
			Padding(1, 2)
	dialogTitleStyle = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
	dialogLabelStyle = lipgloss.NewStyle().Foreground(colorMuted).Width(12)
)

// typeColors follows the in-game palette closely enough to tell types apart.
var typeColors = map[string]lipgloss.Color{
	"Normal":   "#a8a77a",
	"Fire":     "#ee8130",
	"Water":    "#6390f0",
	"Electric": "#f7d02c",
	"Grass":    "#7ac74c",
	"Ice":      "#96d9d6",
	"Fighting": "#c22e28",
	"Poison":   "#a33ea1",
	"Ground":   "#e2bf65",
	"Flying":   "#a98ff3",
	"Psychic":  "#f95587",
	"Bug":      "#a6b91a",
	"Rock":     "#b6a136",
	"Ghost":    "#735797",
	"Dragon":   "#6f35fc",
	"Dark":     "#705746",
	"Steel":    "#b7b7ce",
	"Fairy":    "#d685ad",
}

func typeBadge(t string) string {
	c, ok := typeColors[t]
	if !ok {
		c = colorSurface1
	}
	return lipgloss.NewStyle().
		Background(c).
		Foreground(lipgloss.Color("#11111b")).
		Padding(0, 1).
		Render(t)
}
