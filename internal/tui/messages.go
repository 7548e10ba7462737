package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/pokedex/internal/pokemon"
	"github.com/jask/pokedex/internal/query"
)

type (
	listResolution   = query.Resolution[pokemon.ListKey, []pokemon.Summary]
	detailResolution = query.Resolution[string, *pokemon.Detail]
)

type listResolvedMsg struct{ res listResolution }

type detailResolvedMsg struct{ res detailResolution }

func listCmd(task query.Task[pokemon.ListKey, []pokemon.Summary]) tea.Cmd {
	if task == nil {
		return nil
	}
	return func() tea.Msg { return listResolvedMsg{res: task()} }
}

func detailCmd(task query.Task[string, *pokemon.Detail]) tea.Cmd {
	if task == nil {
		return nil
	}
	return func() tea.Msg { return detailResolvedMsg{res: task()} }
}
