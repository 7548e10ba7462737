package tui

import (
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

const (
	scopeList   = "list"
	scopeFilter = "filter"
	scopeDetail = "detail"
)

const (
	actionQuit       = "quit"
	actionForceQuit  = "force_quit"
	actionUp         = "up"
	actionDown       = "down"
	actionFilterUp   = "filter_up"
	actionFilterDown = "filter_down"
	actionTop        = "top"
	actionBottom     = "bottom"
	actionOpen       = "open"
	actionFilter     = "filter"
	actionAccept     = "accept"
	actionClear      = "clear"
	actionClose      = "close"
	actionBack       = "back"
	actionForward    = "forward"
	actionRefresh    = "refresh"
)

type KeyBinding struct {
	Keys        []string
	Action      string
	Description string
	Scopes      []string
}

type KeyRegistry struct {
	bindings []KeyBinding
}

func NewKeyRegistry(bindings []KeyBinding) *KeyRegistry {
	return &KeyRegistry{bindings: slices.Clone(bindings)}
}

// DefaultKeyBindings gives every action its own binding so a [ui] keys
// override never leaks into another scope.
func DefaultKeyBindings() []KeyBinding {
	return []KeyBinding{
		{Keys: []string{"ctrl+c"}, Action: actionForceQuit, Scopes: []string{"*"}},
		{Keys: []string{"q"}, Action: actionQuit, Description: "quit", Scopes: []string{scopeList, scopeDetail}},
		{Keys: []string{"k", "up"}, Action: actionUp, Description: "up", Scopes: []string{scopeList}},
		{Keys: []string{"j", "down"}, Action: actionDown, Description: "down", Scopes: []string{scopeList}},
		{Keys: []string{"up"}, Action: actionFilterUp, Scopes: []string{scopeFilter}},
		{Keys: []string{"down"}, Action: actionFilterDown, Scopes: []string{scopeFilter}},
		{Keys: []string{"g", "home"}, Action: actionTop, Scopes: []string{scopeList}},
		{Keys: []string{"G", "end"}, Action: actionBottom, Scopes: []string{scopeList}},
		{Keys: []string{"enter"}, Action: actionOpen, Description: "open", Scopes: []string{scopeList}},
		{Keys: []string{"/"}, Action: actionFilter, Description: "filter", Scopes: []string{scopeList}},
		{Keys: []string{"enter"}, Action: actionAccept, Description: "apply", Scopes: []string{scopeFilter}},
		{Keys: []string{"esc"}, Action: actionClear, Description: "clear", Scopes: []string{scopeList, scopeFilter}},
		{Keys: []string{"esc", "backspace"}, Action: actionClose, Description: "close", Scopes: []string{scopeDetail}},
		{Keys: []string{"["}, Action: actionBack, Description: "back", Scopes: []string{scopeList, scopeDetail}},
		{Keys: []string{"]"}, Action: actionForward, Description: "forward", Scopes: []string{scopeList, scopeDetail}},
		{Keys: []string{"r"}, Action: actionRefresh, Description: "refresh", Scopes: []string{scopeList, scopeDetail}},
	}
}

// ApplyActionKeybindings replaces the keys of every binding whose action is
// present in actionKeys.
func ApplyActionKeybindings(bindings []KeyBinding, actionKeys map[string][]string) []KeyBinding {
	out := make([]KeyBinding, 0, len(bindings))
	for _, b := range bindings {
		next := KeyBinding{
			Keys:        append([]string(nil), b.Keys...),
			Action:      b.Action,
			Description: b.Description,
			Scopes:      append([]string(nil), b.Scopes...),
		}
		if keys, ok := actionKeys[b.Action]; ok && len(keys) > 0 {
			next.Keys = append([]string(nil), keys...)
		}
		out = append(out, next)
	}
	return out
}

func (r *KeyRegistry) BindingsForScope(scope string) []KeyBinding {
	out := make([]KeyBinding, 0, len(r.bindings))
	for _, b := range r.bindings {
		if scopeMatch(scope, b.Scopes) {
			out = append(out, b)
		}
	}
	return out
}

// Action returns the first action bound to msg in scope, or "".
func (r *KeyRegistry) Action(msg tea.KeyMsg, scope string) string {
	pressed := normalizeKey(msg.String())
	for _, b := range r.bindings {
		if !scopeMatch(scope, b.Scopes) {
			continue
		}
		for _, k := range b.Keys {
			if normalizeKey(k) == pressed {
				return b.Action
			}
		}
	}
	return ""
}

// Single letters stay case sensitive so g and G can differ.
func normalizeKey(k string) string {
	k = strings.TrimSpace(k)
	if len(k) == 1 {
		return k
	}
	return strings.ToLower(k)
}

func scopeMatch(scope string, scopes []string) bool {
	if len(scopes) == 0 {
		return true
	}
	for _, s := range scopes {
		if s == "*" || s == scope {
			return true
		}
	}
	return false
}
