// Command repolens serves MCP search and fetch tools over a single
// GitHub repository.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/repolens/internal/adapters/driven/config"
	"github.com/custodia-labs/repolens/internal/adapters/driving/mcp"
	"github.com/custodia-labs/repolens/internal/connectors/github"
	"github.com/custodia-labs/repolens/internal/core/domain"
	"github.com/custodia-labs/repolens/internal/core/ports/driven"
	"github.com/custodia-labs/repolens/internal/core/services"
	"github.com/custodia-labs/repolens/internal/logger"
)

func main() {
	root := &cobra.Command{
		Use:   "repolens",
		Short: "MCP search/fetch server for a GitHub repository",
	}

	var verbose bool
	root.PersistentFlags().BoolVar(&verbose, "verbose", false, "log diagnostics to stderr")

	var configPath string
	var httpAddr string
	serve := &cobra.Command{
		Use:   "serve",
		Short: "Serve the search and fetch tools over stdio or HTTP",
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger.SetVerbose(verbose)

			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if httpAddr != "" {
				cfg.Server.HTTPAddr = httpAddr
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return run(ctx, cfg)
		},
	}
	serve.Flags().StringVar(&configPath, "config", "repolens.toml", "path to the TOML config file")
	serve.Flags().StringVar(&httpAddr, "http", "", "serve MCP over streamable HTTP on this address instead of stdio")

	root.AddCommand(serve)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	gateway := github.NewGateway(tokenProvider(cfg))
	scope := domain.RepoScope{Owner: cfg.Repository.Owner, Name: cfg.Repository.Name}
	opts := services.Options{
		Limit:        cfg.Search.Limit,
		CommitWindow: cfg.Search.CommitWindow,
	}

	newServer := func() (*mcp.Server, error) {
		session := services.NewSession(gateway, scope, opts)
		return mcp.NewServer(&mcp.Ports{
			Search: session.Search,
			Fetch:  session.Fetch,
		})
	}

	if cfg.Server.HTTPAddr != "" {
		logger.Info("serving MCP over HTTP on %s for %s", cfg.Server.HTTPAddr, scope)
		return mcp.ServeHTTP(ctx, cfg.Server.HTTPAddr, newServer)
	}

	logger.Info("serving MCP over stdio for %s", scope)
	server, err := newServer()
	if err != nil {
		return err
	}
	return server.Run(ctx)
}

// tokenProvider picks the configured auth source: an explicit token
// wins over environment indirection.
func tokenProvider(cfg *config.Config) driven.TokenProvider {
	if cfg.Auth.Token != "" {
		return github.StaticTokenProvider(cfg.Auth.Token)
	}
	return github.EnvTokenProvider(cfg.Auth.TokenEnv)
}
