// Package route maps the two Pokédex locations to and from paths.
//
//	/pokemon             list, nothing selected
//	/pokemon/:pokemonId  list with the detail dialog open for pokemonId
//
// The selected identifier is always derived from a path; nothing else stores it.
package route

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

const ListPath = "/pokemon"

var ErrUnknownRoute = errors.New("unknown route")

// Route is a parsed location.
type Route struct {
	Path      string
	PokemonID string
}

// Selected reports the identifier encoded in the route, if any.
func (r Route) Selected() (string, bool) {
	return r.PokemonID, r.PokemonID != ""
}

// Parse resolves a path. Empty and "/" redirect to the list route.
func Parse(path string) (Route, error) {
	p := strings.TrimSpace(path)
	if p == "" || p == "/" {
		return Route{Path: ListPath}, nil
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	p = strings.TrimSuffix(p, "/")
	if p == ListPath {
		return Route{Path: ListPath}, nil
	}
	rest, ok := strings.CutPrefix(p, ListPath+"/")
	if !ok || rest == "" || strings.Contains(rest, "/") {
		return Route{}, fmt.Errorf("%w: %q", ErrUnknownRoute, path)
	}
	id, err := url.PathUnescape(rest)
	if err != nil {
		return Route{}, fmt.Errorf("%w: %q: %v", ErrUnknownRoute, path, err)
	}
	if strings.TrimSpace(id) == "" {
		return Route{}, fmt.Errorf("%w: %q", ErrUnknownRoute, path)
	}
	return Route{Path: Detail(id), PokemonID: id}, nil
}

// Detail builds the path for a selected Pokémon. An empty id is the list path.
func Detail(id string) string {
	if id == "" {
		return ListPath
	}
	return ListPath + "/" + url.PathEscape(id)
}

// SelectedID extracts the identifier from a path; unknown paths select nothing.
func SelectedID(path string) string {
	r, err := Parse(path)
	if err != nil {
		return ""
	}
	return r.PokemonID
}
