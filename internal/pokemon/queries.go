package pokemon

import (
	"context"

	"github.com/jask/pokedex/internal/query"
)

// ListKey is the (empty) key of the collection query.
type ListKey struct{}

type (
	ListQuery   = query.Query[ListKey, []Summary]
	DetailQuery = query.Query[string, *Detail]
)

// NewListQuery builds the collection query. It takes no parameters and is
// never skipped.
func NewListQuery(src Source) *ListQuery {
	return query.New[ListKey, []Summary](func(ctx context.Context, _ ListKey) ([]Summary, error) {
		return src.ListPokemons(ctx)
	}, nil)
}

// NewDetailQuery builds the single-Pokémon query. An empty id skips it.
func NewDetailQuery(src Source) *DetailQuery {
	return query.New[string, *Detail](src.Pokemon, func(id string) bool { return id == "" })
}
