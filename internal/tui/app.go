package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/jask/pokedex/internal/graphql"
	"github.com/jask/pokedex/internal/pokemon"
	"github.com/jask/pokedex/internal/route"
)

const (
	defaultWidth  = 80
	defaultHeight = 24
	// header, filter line, status bar, footer
	chromeRows = 4
)

// Options wires the App to its data and location.
type Options struct {
	Source    pokemon.Source
	Navigator route.Navigator
	Logger    *zap.Logger
	// Keys overrides the default keys per action name.
	Keys map[string][]string
}

// App is the Pokédex screen: the list, its filter and the detail dialog.
// The dialog is open exactly when the current path selects a Pokémon.
type App struct {
	ctx    context.Context
	nav    route.Navigator
	logger *zap.Logger
	keys   *KeyRegistry

	list   *pokemon.ListQuery
	detail *pokemon.DetailQuery

	filter    textinput.Model
	filtering bool
	cursor    int
	offset    int
	spinner   spinner.Model

	width     int
	height    int
	status    string
	statusErr bool
}

func New(ctx context.Context, opts Options) *App {
	nav := opts.Navigator
	if nav == nil {
		nav = route.NewHistory(route.ListPath)
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	ti := textinput.New()
	ti.Prompt = "/ "
	ti.Placeholder = "filter by name"
	ti.CharLimit = 64
	ti.PromptStyle = lipgloss.NewStyle().Foreground(colorAccent)
	ti.Cursor.SetMode(cursor.CursorStatic)

	return &App{
		ctx:     ctx,
		nav:     nav,
		logger:  logger,
		keys:    NewKeyRegistry(ApplyActionKeybindings(DefaultKeyBindings(), opts.Keys)),
		list:    pokemon.NewListQuery(opts.Source),
		detail:  pokemon.NewDetailQuery(opts.Source),
		filter:  ti,
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(lipgloss.NewStyle().Foreground(colorAccent))),
	}
}

func (a *App) Init() tea.Cmd {
	return tea.Batch(a.loadList(), a.syncRoute())
}

func (a *App) loadList() tea.Cmd {
	task := a.list.Execute(a.ctx, pokemon.ListKey{})
	if task == nil {
		return nil
	}
	a.logger.Debug("fetch pokemon list", zap.Uint64("gen", a.list.Generation()))
	return tea.Batch(listCmd(task), a.spinner.Tick)
}

// syncRoute points the detail query at whatever the current path selects.
// It runs after every navigation.
func (a *App) syncRoute() tea.Cmd {
	id := route.SelectedID(a.nav.Current())
	task := a.detail.Execute(a.ctx, id)
	if task == nil {
		return nil
	}
	a.logger.Debug("fetch pokemon", zap.String("id", id), zap.Uint64("gen", a.detail.Generation()))
	return tea.Batch(detailCmd(task), a.spinner.Tick)
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = msg.Width, msg.Height
		a.ensureVisible()
		return a, nil
	case listResolvedMsg:
		a.applyList(msg.res)
		return a, nil
	case detailResolvedMsg:
		a.applyDetail(msg.res)
		return a, nil
	case spinner.TickMsg:
		if !a.loading() {
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd
	case tea.KeyMsg:
		return a, a.handleKey(msg)
	}
	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) tea.Cmd {
	scope := a.scope()
	switch a.keys.Action(msg, scope) {
	case actionQuit, actionForceQuit:
		a.list.Cancel()
		a.detail.Cancel()
		return tea.Quit
	case actionUp, actionFilterUp:
		a.moveCursor(-1)
	case actionDown, actionFilterDown:
		a.moveCursor(1)
	case actionTop:
		a.cursor = 0
		a.ensureVisible()
	case actionBottom:
		a.cursor = max(0, len(a.visible())-1)
		a.ensureVisible()
	case actionOpen:
		return a.openSelected()
	case actionFilter:
		a.filtering = true
		return a.filter.Focus()
	case actionAccept:
		a.filtering = false
		a.filter.Blur()
	case actionClear:
		a.filtering = false
		a.filter.Blur()
		if a.filter.Value() != "" {
			a.filter.SetValue("")
			a.resetCursor()
		}
	case actionClose:
		return a.closeDialog()
	case actionBack:
		if a.nav.Back() {
			return a.syncRoute()
		}
	case actionForward:
		if a.nav.Forward() {
			return a.syncRoute()
		}
	case actionRefresh:
		return a.refresh(scope)
	default:
		if scope == scopeFilter {
			return a.updateFilter(msg)
		}
	}
	return nil
}

func (a *App) updateFilter(msg tea.KeyMsg) tea.Cmd {
	before := a.filter.Value()
	var cmd tea.Cmd
	a.filter, cmd = a.filter.Update(msg)
	if a.filter.Value() != before {
		a.resetCursor()
	}
	return cmd
}

// openSelected pushes the detail path for the row under the cursor.
func (a *App) openSelected() tea.Cmd {
	rows := a.visible()
	if len(rows) == 0 {
		return nil
	}
	a.cursor = min(a.cursor, len(rows)-1)
	a.nav.Push(route.Detail(rows[a.cursor].ID))
	return a.syncRoute()
}

// closeDialog replaces the detail entry so back never reopens it.
func (a *App) closeDialog() tea.Cmd {
	a.nav.Replace(route.ListPath)
	return a.syncRoute()
}

func (a *App) refresh(scope string) tea.Cmd {
	ctx := graphql.WithFetchPolicy(a.ctx, graphql.NetworkOnly)
	if scope == scopeDetail {
		task := a.detail.Refetch(ctx)
		if task == nil {
			return nil
		}
		id, _ := a.detail.Key()
		a.logger.Debug("refetch pokemon", zap.String("id", id), zap.Uint64("gen", a.detail.Generation()))
		a.setStatus("Refreshing...", false)
		return tea.Batch(detailCmd(task), a.spinner.Tick)
	}
	task := a.list.Refetch(ctx)
	if task == nil {
		return nil
	}
	a.setStatus("Refreshing...", false)
	return tea.Batch(listCmd(task), a.spinner.Tick)
}

func (a *App) applyList(res listResolution) {
	if !a.list.Resolve(res) {
		a.logger.Debug("stale list resolution ignored", zap.Uint64("gen", res.Gen))
		return
	}
	if res.Err != nil {
		a.logger.Warn("pokemon list failed", zap.Error(res.Err))
		a.setStatus(fmt.Sprintf("Could not load Pokémon: %v", res.Err), true)
		return
	}
	a.logger.Info("pokemon list loaded", zap.Int("count", len(res.Data)))
	a.setStatus(fmt.Sprintf("Loaded %d Pokémon", len(res.Data)), false)
	a.ensureVisible()
}

func (a *App) applyDetail(res detailResolution) {
	if !a.detail.Resolve(res) {
		a.logger.Debug("stale pokemon resolution ignored", zap.String("id", res.Key), zap.Uint64("gen", res.Gen))
		return
	}
	switch {
	case res.Err != nil:
		a.logger.Warn("pokemon detail failed", zap.String("id", res.Key), zap.Error(res.Err))
		a.setStatus(fmt.Sprintf("Could not load Pokémon %s: %v", res.Key, res.Err), true)
	case res.Data == nil:
		a.setStatus(fmt.Sprintf("No Pokémon with id %s", res.Key), true)
	default:
		a.setStatus(res.Data.Title(), false)
	}
}

func (a *App) setStatus(text string, isErr bool) {
	a.status = text
	a.statusErr = isErr
}

func (a *App) scope() string {
	if a.SelectedID() != "" {
		return scopeDetail
	}
	if a.filtering {
		return scopeFilter
	}
	return scopeList
}

// SelectedID is the Pokémon selected by the current path, or "".
func (a *App) SelectedID() string {
	return route.SelectedID(a.nav.Current())
}

func (a *App) loading() bool {
	return a.list.Result().Loading() || a.detail.Result().Loading()
}

func (a *App) visible() []pokemon.Summary {
	all, _ := a.list.Result().Value()
	return pokemon.Filter(all, a.filter.Value())
}

func (a *App) moveCursor(delta int) {
	n := len(a.visible())
	if n == 0 {
		a.cursor = 0
		return
	}
	a.cursor = min(max(a.cursor+delta, 0), n-1)
	a.ensureVisible()
}

func (a *App) resetCursor() {
	a.cursor = 0
	a.offset = 0
}

func (a *App) ensureVisible() {
	n := len(a.visible())
	a.cursor = min(a.cursor, max(0, n-1))
	rows := a.listHeight()
	if a.cursor < a.offset {
		a.offset = a.cursor
	}
	if a.cursor >= a.offset+rows {
		a.offset = a.cursor - rows + 1
	}
	a.offset = max(0, min(a.offset, n-rows))
}

func (a *App) size() (int, int) {
	w, h := a.width, a.height
	if w <= 0 {
		w = defaultWidth
	}
	if h <= 0 {
		h = defaultHeight
	}
	return w, h
}

func (a *App) listHeight() int {
	_, h := a.size()
	return max(1, h-chromeRows)
}

func (a *App) View() string {
	w, h := a.size()
	bodyHeight := max(1, h-chromeRows)

	body := renderList(listView{
		Result:  a.list.Result(),
		Visible: a.visible(),
		Query:   a.filter.Value(),
		Cursor:  a.cursor,
		Offset:  a.offset,
		Width:   w,
		Height:  bodyHeight,
		Spinner: a.spinner.View(),
	})
	if card, open := renderDetail(a.SelectedID(), a.detail.Result(), a.spinner.View(), w); open {
		body = renderPopup(body, card, w, bodyHeight)
	} else {
		body = fitCanvas(body, w, bodyHeight)
	}

	return appStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		renderHeader(a.nav.Current(), a.nav.CanBack(), a.nav.CanForward(), w),
		a.renderFilterLine(w),
		body,
		renderStatusBar(a.status, a.statusErr, w),
		renderFooter(a.keys.BindingsForScope(a.scope()), w),
	))
}

func (a *App) renderFilterLine(width int) string {
	all, _ := a.list.Result().Value()
	count := mutedStyle.Render(fmt.Sprintf("%d/%d ", len(a.visible()), len(all)))
	line := a.filter.View()
	if !a.filtering && a.filter.Value() == "" {
		line = mutedStyle.Render("/ filter by name")
	}
	return padRightANSI(line, max(0, width-lipgloss.Width(count))) + count
}
