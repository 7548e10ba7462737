package main

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jask/pokedex/internal/config"
	"github.com/jask/pokedex/internal/graphql"
	"github.com/jask/pokedex/internal/logging"
	"github.com/jask/pokedex/internal/pokemon"
	"github.com/jask/pokedex/internal/route"
	"github.com/jask/pokedex/internal/secrets"
	"github.com/jask/pokedex/internal/tui"
)

var version = "dev"

// offlineAnnotation marks commands that only need the configuration.
const offlineAnnotation = "offline"

// flags are the persistent command line overrides.
type flags struct {
	configPath string
	endpoint   string
	route      string
	verbose    bool
}

// env is what PersistentPreRunE prepares for the subcommands.
type env struct {
	flags   flags
	cfg     config.Config
	logger  *zap.Logger
	pokedex *pokemon.Client
}

func newRootCmd() *cobra.Command {
	e := &env{logger: zap.NewNop()}
	root := &cobra.Command{
		Use:   "pokedex",
		Short: "Browse Pokémon from a GraphQL API",
		Long: `pokedex lists Pokémon from a GraphQL endpoint and shows the details of one.

Run without arguments to open the interactive list. The detail dialog is
addressed by a route, so --route /pokemon/<id> starts with it open.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := e.load(); err != nil {
				return err
			}
			if cmd.Annotations[offlineAnnotation] == "true" {
				return nil
			}
			return e.connect()
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			_ = e.logger.Sync()
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInteractive(cmd.Context(), e)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&e.flags.configPath, "config", "", "config file (default "+config.Path()+")")
	pf.StringVar(&e.flags.endpoint, "endpoint", "", "GraphQL endpoint, overrides graphql.endpoint")
	pf.StringVar(&e.flags.route, "route", "", "start route, e.g. /pokemon/<id>")
	pf.BoolVarP(&e.flags.verbose, "verbose", "v", false, "debug logging")

	root.AddCommand(newListCmd(e), newShowCmd(e), newConfigCmd(e), newTokenCmd(e))
	return root
}

func (e *env) configFile() string {
	if p := strings.TrimSpace(e.flags.configPath); p != "" {
		return p
	}
	return config.Path()
}

// tokens is the encrypted token store kept next to the config file.
func (e *env) tokens() *secrets.Store {
	return secrets.Open(filepath.Dir(e.configFile()))
}

// token resolves the API token: the token_env variable, the literal in the
// config file, then the token store.
func (e *env) token() string {
	if tok := e.cfg.ResolveToken(); tok != "" {
		return tok
	}
	tok, err := e.tokens().Get(e.cfg.GraphQL.Endpoint)
	if err != nil {
		if !errors.Is(err, secrets.ErrNotFound) {
			e.logger.Warn("token store unreadable", zap.Error(err))
		}
		return ""
	}
	return tok
}

// load reads the configuration and applies the flag overrides.
func (e *env) load() error {
	cfg, err := config.LoadFrom(e.configFile())
	if err != nil {
		return err
	}
	if e.flags.endpoint != "" {
		cfg.GraphQL.Endpoint = e.flags.endpoint
	}
	if e.flags.route != "" {
		cfg.UI.StartRoute = e.flags.route
	}
	e.cfg = cfg
	return nil
}

// connect validates the configuration and builds the logger and clients.
func (e *env) connect() error {
	if err := e.cfg.Validate(); err != nil {
		return err
	}
	logger, err := logging.New(e.cfg.Log, e.flags.verbose)
	if err != nil {
		return err
	}
	e.logger = logger

	opts := []graphql.Option{
		graphql.WithHTTPClient(graphql.NewHTTPClient()),
		graphql.WithLogger(logger),
		graphql.WithTimeout(e.cfg.GraphQL.Timeout),
		graphql.WithCacheSize(e.cfg.GraphQL.CacheSize),
		graphql.WithHeader("User-Agent", "pokedex/"+version),
	}
	if tok := e.token(); tok != "" {
		opts = append(opts, graphql.WithHeader("Authorization", "Bearer "+tok))
	}
	gql, err := graphql.New(e.cfg.GraphQL.Endpoint, opts...)
	if err != nil {
		return err
	}
	e.pokedex = pokemon.NewClient(gql, e.cfg.GraphQL.ListSize)
	logger.Debug("client ready",
		zap.String("endpoint", e.cfg.GraphQL.Endpoint),
		zap.Int("list_size", e.cfg.GraphQL.ListSize),
	)
	return nil
}

func runInteractive(ctx context.Context, e *env) error {
	start, err := route.Parse(e.cfg.UI.StartRoute)
	if err != nil {
		return err
	}
	app := tui.New(ctx, tui.Options{
		Source:    e.pokedex,
		Navigator: route.NewHistory(start.Path),
		Logger:    e.logger,
		Keys:      e.cfg.UI.Keys,
	})
	e.logger.Info("tui start", zap.String("route", start.Path))
	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}
