package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jask/pokedex/internal/pokemon"
	"github.com/jask/pokedex/internal/query"
	"github.com/jask/pokedex/internal/render"
)

func newListCmd(e *env) *cobra.Command {
	var filter, output string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print the Pokémon list",
		Example: `  pokedex list
  pokedex list -f char -o json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, err := render.ParseFormat(output, render.Table, render.JSON, render.YAML)
			if err != nil {
				return err
			}
			res := pokemon.NewListQuery(e.pokedex).Run(cmd.Context(), pokemon.ListKey{})
			if res.Status == query.Failed {
				return res.Err
			}
			rows := pokemon.Filter(res.Data, filter)
			e.logger.Debug("list", zap.String("filter", filter), zap.Int("total", len(res.Data)), zap.Int("shown", len(rows)))
			if len(rows) == 0 && filter != "" {
				msg := fmt.Sprintf("no Pokémon match %q", filter)
				if name, ok := pokemon.Suggest(res.Data, filter); ok {
					msg += fmt.Sprintf(", did you mean %s?", name)
				}
				fmt.Fprintln(cmd.ErrOrStderr(), msg)
			}
			return render.Summaries(cmd.OutOrStdout(), rows, format)
		},
	}
	cmd.Flags().StringVarP(&filter, "filter", "f", "", "only names containing this text (case-insensitive)")
	cmd.Flags().StringVarP(&output, "output", "o", string(render.Table), "output format: table, json or yaml")
	return cmd
}
