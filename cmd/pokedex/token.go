package main

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jask/pokedex/internal/secrets"
)

func newTokenCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Manage the stored API token for the endpoint",
		Long: `The token is sent as a bearer token. It is taken from the variable named by
graphql.token_env, then graphql.token in the config file, then this store.`,
	}
	offline := map[string]string{offlineAnnotation: "true"}

	setCmd := &cobra.Command{
		Use:         "set [TOKEN]",
		Short:       "Store a token (read from stdin when omitted)",
		Args:        cobra.MaximumNArgs(1),
		Annotations: offline,
		RunE: func(cmd *cobra.Command, args []string) error {
			var tok string
			if len(args) == 1 {
				tok = args[0]
			} else {
				line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				if err != nil && line == "" {
					return fmt.Errorf("read token: %w", err)
				}
				tok = line
			}
			if err := e.tokens().Set(e.cfg.GraphQL.Endpoint, strings.TrimSpace(tok)); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "token stored for %s\n", e.cfg.GraphQL.Endpoint)
			return nil
		},
	}

	clearCmd := &cobra.Command{
		Use:         "clear",
		Short:       "Remove the stored token",
		Args:        cobra.NoArgs,
		Annotations: offline,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return e.tokens().Delete(e.cfg.GraphQL.Endpoint)
		},
	}

	statusCmd := &cobra.Command{
		Use:         "status",
		Short:       "Report where the token comes from",
		Args:        cobra.NoArgs,
		Annotations: offline,
		RunE: func(cmd *cobra.Command, _ []string) error {
			source := "none"
			switch {
			case e.cfg.ResolveToken() != "":
				source = "environment or config file"
			default:
				_, err := e.tokens().Get(e.cfg.GraphQL.Endpoint)
				switch {
				case err == nil:
					source = "token store"
				case !errors.Is(err, secrets.ErrNotFound):
					return err
				}
			}
			fmt.Fprintln(cmd.OutOrStdout(), source)
			return nil
		},
	}

	cmd.AddCommand(setCmd, clearCmd, statusCmd)
	return cmd
}
