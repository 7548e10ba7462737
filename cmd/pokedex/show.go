package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/jask/pokedex/internal/pokemon"
	"github.com/jask/pokedex/internal/query"
	"github.com/jask/pokedex/internal/render"
	"github.com/jask/pokedex/internal/route"
)

const showConcurrency = 4

func newShowCmd(e *env) *cobra.Command {
	var output string
	var width int
	cmd := &cobra.Command{
		Use:   "show ID|ROUTE...",
		Short: "Print the details of one or more Pokémon",
		Example: `  pokedex show UG9rZW1vbjowMDQ=
  pokedex show /pokemon/UG9rZW1vbjowMDQ= -o yaml`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := render.ParseFormat(output, render.Markdown, render.JSON, render.YAML)
			if err != nil {
				return err
			}
			ids := make([]string, len(args))
			for i, arg := range args {
				if ids[i], err = argID(arg); err != nil {
					return err
				}
			}

			details := make([]*pokemon.Detail, len(ids))
			g, ctx := errgroup.WithContext(cmd.Context())
			g.SetLimit(showConcurrency)
			for i, id := range ids {
				g.Go(func() error {
					res := pokemon.NewDetailQuery(e.pokedex).Run(ctx, id)
					switch {
					case res.Status == query.Failed:
						return res.Err
					case res.Data == nil:
						return fmt.Errorf("%w: %s", pokemon.ErrNotFound, id)
					}
					details[i] = res.Data
					return nil
				})
			}
			if err := g.Wait(); err != nil {
				return err
			}
			return render.Details(cmd.OutOrStdout(), details, format, width)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", string(render.Markdown), "output format: markdown, json or yaml")
	cmd.Flags().IntVar(&width, "width", 80, "wrap width for markdown output")
	return cmd
}

// argID accepts a bare id or a detail route.
func argID(arg string) (string, error) {
	if !strings.HasPrefix(arg, "/") {
		if strings.TrimSpace(arg) == "" {
			return "", pokemon.ErrMissingID
		}
		return arg, nil
	}
	r, err := route.Parse(arg)
	if err != nil {
		return "", err
	}
	id, ok := r.Selected()
	if !ok {
		return "", fmt.Errorf("%w: route %s selects no Pokémon", pokemon.ErrMissingID, arg)
	}
	return id, nil
}
