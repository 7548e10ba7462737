package pokemon

import (
	"context"
	"errors"
	"fmt"

	"github.com/jask/pokedex/internal/graphql"
)

const DefaultListSize = 151

var (
	ErrMissingID = errors.New("pokemon: id required")
	ErrNotFound  = errors.New("pokemon: not found")
)

// Source is where the two queries get their data.
type Source interface {
	ListPokemons(ctx context.Context) ([]Summary, error)
	// Pokemon returns nil, nil when the API knows no Pokémon with that id.
	Pokemon(ctx context.Context, id string) (*Detail, error)
}

// Querier is the subset of graphql.Client used here.
type Querier interface {
	Query(ctx context.Context, req graphql.Request, out any) error
}

// Client implements Source on top of a GraphQL endpoint.
type Client struct {
	gql      Querier
	listSize int
}

func NewClient(gql Querier, listSize int) *Client {
	if listSize <= 0 {
		listSize = DefaultListSize
	}
	return &Client{gql: gql, listSize: listSize}
}

func (c *Client) ListPokemons(ctx context.Context) ([]Summary, error) {
	var out struct {
		Pokemons []Summary `json:"pokemons"`
	}
	err := c.gql.Query(ctx, graphql.Request{
		Query:         listDocument,
		OperationName: "pokemons",
		Variables:     map[string]any{"first": c.listSize},
	}, &out)
	if err != nil {
		return nil, fmt.Errorf("list pokemons: %w", err)
	}
	if out.Pokemons == nil {
		return []Summary{}, nil
	}
	return out.Pokemons, nil
}

// Pokemon fetches one Pokémon by id. The name argument of the API is never used.
func (c *Client) Pokemon(ctx context.Context, id string) (*Detail, error) {
	if id == "" {
		return nil, ErrMissingID
	}
	var out struct {
		Pokemon *Detail `json:"pokemon"`
	}
	err := c.gql.Query(ctx, graphql.Request{
		Query:         detailDocument,
		OperationName: "pokemon",
		Variables:     map[string]any{"id": id},
	}, &out)
	if err != nil {
		return nil, fmt.Errorf("get pokemon %q: %w", id, err)
	}
	return out.Pokemon, nil
}
