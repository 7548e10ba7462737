package tui

import (
	"context"
	"errors"
	"testing"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jask/pokedex/internal/pokemon"
	"github.com/jask/pokedex/internal/query"
	"github.com/jask/pokedex/internal/route"
)

type fakeSource struct {
	list        []pokemon.Summary
	listErr     error
	details     map[string]*pokemon.Detail
	listCalls   int
	detailCalls []string
}

func newFakeSource() *fakeSource {
	return &fakeSource{
		list: []pokemon.Summary{
			{ID: "1", Number: "001", Name: "Bulbasaur", Types: []string{"Grass", "Poison"}},
			{ID: "4", Number: "004", Name: "Charmander", Types: []string{"Fire"}},
			{ID: "6", Number: "006", Name: "Charizard", Types: []string{"Fire", "Flying"}},
			{ID: "7", Number: "007", Name: "Squirtle", Types: []string{"Water"}},
		},
		details: map[string]*pokemon.Detail{
			"1": {ID: "1", Number: "001", Name: "Bulbasaur", MaxCP: 951},
			"4": {ID: "4", Number: "004", Name: "Charmander", Classification: "Lizard Pokémon", MaxCP: 841},
			"6": {ID: "6", Number: "006", Name: "Charizard", Classification: "Flame Pokémon", MaxCP: 2602},
		},
	}
}

func (f *fakeSource) ListPokemons(context.Context) ([]pokemon.Summary, error) {
	f.listCalls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.list, nil
}

func (f *fakeSource) Pokemon(_ context.Context, id string) (*pokemon.Detail, error) {
	f.detailCalls = append(f.detailCalls, id)
	return f.details[id], nil
}

// drive runs cmd and feeds every message it produces back into the app until
// nothing is left. Spinner ticks are dropped so the loop ends.
func drive(t *testing.T, a *App, cmd tea.Cmd) {
	t.Helper()
	queue := []tea.Cmd{cmd}
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		if c == nil {
			continue
		}
		switch msg := c().(type) {
		case nil, spinner.TickMsg:
		case tea.BatchMsg:
			queue = append(queue, msg...)
		default:
			_, next := a.Update(msg)
			queue = append(queue, next)
		}
	}
}

func press(a *App, keys ...tea.KeyMsg) tea.Cmd {
	cmds := make([]tea.Cmd, 0, len(keys))
	for _, k := range keys {
		_, cmd := a.Update(k)
		cmds = append(cmds, cmd)
	}
	return tea.Batch(cmds...)
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var (
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyEsc   = tea.KeyMsg{Type: tea.KeyEsc}
	keyDown  = tea.KeyMsg{Type: tea.KeyDown}
)

func startApp(t *testing.T, src *fakeSource, start string) (*App, *route.History) {
	t.Helper()
	nav := route.NewHistory(start)
	a := New(context.Background(), Options{Source: src, Navigator: nav})
	drive(t, a, a.Init())
	return a, nav
}

func TestInitLoadsListOnly(t *testing.T) {
	src := newFakeSource()
	a, _ := startApp(t, src, route.ListPath)

	require.Equal(t, query.Ok, a.list.Result().Status)
	assert.Equal(t, 1, src.listCalls)
	assert.Empty(t, src.detailCalls, "detail query must be skipped without a selection")
	assert.Equal(t, query.Idle, a.detail.Result().Status)
	assert.Equal(t, "", a.SelectedID())

	view := a.View()
	assert.Contains(t, view, "Bulbasaur")
	assert.Contains(t, view, "Squirtle")
	assert.NotContains(t, view, "Max CP")
}

func TestSelectingRowPushesDetailRoute(t *testing.T) {
	src := newFakeSource()
	a, nav := startApp(t, src, route.ListPath)

	press(a, keyDown)
	_, cmd := a.Update(keyEnter)

	assert.Equal(t, "/pokemon/4", nav.Current())
	assert.Equal(t, "4", a.SelectedID())
	assert.True(t, a.detail.Result().Loading())
	assert.Contains(t, a.View(), "Loading...")

	drive(t, a, cmd)
	assert.Equal(t, []string{"4"}, src.detailCalls)
	view := a.View()
	assert.Contains(t, view, "#004 Charmander")
	assert.Contains(t, view, "Lizard Pokémon")
	assert.Contains(t, view, "841")
	assert.Equal(t, []string{route.ListPath, "/pokemon/4"}, nav.Entries())
}

func TestCloseReplacesDetailEntry(t *testing.T) {
	src := newFakeSource()
	a, nav := startApp(t, src, route.ListPath)

	drive(t, a, press(a, keyDown, keyEnter))
	require.Equal(t, "/pokemon/4", nav.Current())

	drive(t, a, press(a, keyEsc))
	assert.Equal(t, route.ListPath, nav.Current())
	assert.Equal(t, query.Idle, a.detail.Result().Status)
	assert.NotContains(t, nav.Entries(), "/pokemon/4")
	assert.NotContains(t, a.View(), "Max CP")

	drive(t, a, press(a, runes("[")))
	assert.Equal(t, "", a.SelectedID(), "back must not reopen a closed dialog")
	assert.Equal(t, []string{"4"}, src.detailCalls)
}

func TestHistoryBackAndForwardFollowSelection(t *testing.T) {
	src := newFakeSource()
	a, nav := startApp(t, src, route.ListPath)

	drive(t, a, press(a, keyEnter))
	require.Equal(t, "/pokemon/1", nav.Current())

	drive(t, a, press(a, runes("[")))
	assert.Equal(t, route.ListPath, nav.Current())
	assert.Equal(t, query.Idle, a.detail.Result().Status)

	drive(t, a, press(a, runes("]")))
	assert.Equal(t, "1", a.SelectedID())
	assert.Equal(t, query.Ok, a.detail.Result().Status)
	assert.Equal(t, []string{"1", "1"}, src.detailCalls)
}

func TestStartRouteOpensDialog(t *testing.T) {
	src := newFakeSource()
	a, _ := startApp(t, src, "/pokemon/6")

	assert.Equal(t, 1, src.listCalls)
	assert.Equal(t, []string{"6"}, src.detailCalls)
	detail, ok := a.detail.Result().Value()
	require.True(t, ok)
	assert.Equal(t, "Charizard", detail.Name)
	assert.Contains(t, a.View(), "#006 Charizard")
}

func TestStaleDetailResolutionIsIgnored(t *testing.T) {
	src := newFakeSource()
	a, _ := startApp(t, src, route.ListPath)

	_, first := a.Update(keyEnter)
	require.Equal(t, "1", a.SelectedID())
	press(a, keyEsc, keyDown)
	_, second := a.Update(keyEnter)
	require.Equal(t, "4", a.SelectedID())

	drive(t, a, second)
	drive(t, a, first)

	detail, ok := a.detail.Result().Value()
	require.True(t, ok)
	assert.Equal(t, "Charmander", detail.Name)
	assert.Equal(t, "#004 Charmander", a.status)
}

func TestUnknownIDShowsNotFound(t *testing.T) {
	src := newFakeSource()
	a, _ := startApp(t, src, "/pokemon/999")

	res := a.detail.Result()
	assert.Equal(t, query.Ok, res.Status)
	assert.Nil(t, res.Data)
	assert.True(t, a.statusErr)
	assert.Contains(t, a.View(), `No Pokémon with id "999".`)
}

func TestListFailureThenRefresh(t *testing.T) {
	src := newFakeSource()
	src.listErr = errors.New("boom")
	a, _ := startApp(t, src, route.ListPath)

	assert.Equal(t, query.Failed, a.list.Result().Status)
	assert.True(t, a.statusErr)
	assert.Contains(t, a.View(), "Could not load Pokémon.")

	src.listErr = nil
	drive(t, a, press(a, runes("r")))
	assert.Equal(t, 2, src.listCalls)
	assert.Equal(t, query.Ok, a.list.Result().Status)
	assert.Equal(t, "Loaded 4 Pokémon", a.status)
}

func TestFilterNarrowsListAndOpensMatch(t *testing.T) {
	src := newFakeSource()
	a, nav := startApp(t, src, route.ListPath)

	drive(t, a, press(a, runes("/"), runes("c"), runes("h"), runes("a"), runes("r")))
	assert.Equal(t, "filter", a.scope())
	names := make([]string, 0)
	for _, p := range a.visible() {
		names = append(names, p.Name)
	}
	assert.Equal(t, []string{"Charmander", "Charizard"}, names)

	// q is text while filtering
	press(a, runes("q"))
	assert.Equal(t, "charq", a.filter.Value())
	press(a, tea.KeyMsg{Type: tea.KeyBackspace})

	drive(t, a, press(a, keyEnter, keyDown, keyEnter))
	assert.Equal(t, "/pokemon/6", nav.Current())
	assert.Equal(t, "char", a.filter.Value(), "opening a row keeps the filter")
}

func TestFilterWithoutMatchesSuggestsName(t *testing.T) {
	src := newFakeSource()
	a, nav := startApp(t, src, route.ListPath)

	drive(t, a, press(a, runes("/"), runes("chrm")))
	assert.Empty(t, a.visible())
	assert.Contains(t, a.View(), "Did you mean Charmander?")

	drive(t, a, press(a, keyEnter, keyEnter))
	assert.Equal(t, route.ListPath, nav.Current(), "nothing to open")

	press(a, keyEsc)
	assert.Equal(t, "", a.filter.Value())
	assert.Len(t, a.visible(), 4)
}

func TestCustomKeysOverrideDefaults(t *testing.T) {
	src := newFakeSource()
	nav := route.NewHistory(route.ListPath)
	a := New(context.Background(), Options{Source: src, Navigator: nav, Keys: map[string][]string{"open": {"o"}}})
	drive(t, a, a.Init())

	drive(t, a, press(a, keyEnter))
	assert.Equal(t, route.ListPath, nav.Current())
	drive(t, a, press(a, runes("o")))
	assert.Equal(t, "/pokemon/1", nav.Current())
}

func TestKeyOverridesLeaveFilterTyping(t *testing.T) {
	src := newFakeSource()
	nav := route.NewHistory(route.ListPath)
	a := New(context.Background(), Options{Source: src, Navigator: nav, Keys: map[string][]string{
		"quit": {"q"},
		"up":   {"k"},
	}})
	drive(t, a, a.Init())

	drive(t, a, press(a, runes("/"), runes("s")))
	_, cmd := a.Update(runes("q"))
	if cmd != nil {
		assert.NotEqual(t, tea.QuitMsg{}, cmd())
	}
	_, _ = a.Update(runes("k"))
	assert.Equal(t, "sqk", a.filter.Value(), "overridden keys are still text while filtering")

	_, cmd = a.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd(), "ctrl+c keeps quitting")
}

func TestHeaderShowsHistoryAvailability(t *testing.T) {
	src := newFakeSource()
	a, nav := startApp(t, src, route.ListPath)
	a.Update(tea.WindowSizeMsg{Width: 80, Height: 20})

	assert.False(t, nav.CanBack())
	drive(t, a, press(a, keyEnter))
	require.True(t, nav.CanBack())
	view := a.View()
	assert.Contains(t, view, "‹›")
	assert.Contains(t, view, "/pokemon/1")

	drive(t, a, press(a, runes("[")))
	assert.True(t, nav.CanForward())
	assert.Equal(t, route.ListPath, nav.Current())
}

func TestQuitCancelsQueries(t *testing.T) {
	src := newFakeSource()
	nav := route.NewHistory("/pokemon/4")
	a := New(context.Background(), Options{Source: src, Navigator: nav})
	a.Init()
	require.True(t, a.loading())

	_, cmd := a.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.False(t, a.loading())
}

func TestViewFitsWindow(t *testing.T) {
	src := newFakeSource()
	a, _ := startApp(t, src, "/pokemon/6")
	a.Update(tea.WindowSizeMsg{Width: 60, Height: 20})

	lines := splitToLines(a.View(), 0)
	assert.Len(t, lines, 20)
	assert.LessOrEqual(t, maxLineWidth(lines), 60)
}
