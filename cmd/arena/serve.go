package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"okinoko-blade_arena/contract"
	"okinoko-blade_arena/internal/conf"
	"okinoko-blade_arena/internal/httpapi"
	"okinoko-blade_arena/internal/kvstore"
	"okinoko-blade_arena/internal/log"
	"okinoko-blade_arena/internal/metrics"
	"okinoko-blade_arena/sdk"
)

func newServeCommand(opts *rootOptions) *cobra.Command {
	var sweepInterval time.Duration
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the arena API server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()
			return serve(ctx, opts.config, sweepInterval)
		},
	}
	cmd.Flags().DurationVar(&sweepInterval, "sweep-interval", time.Hour, "how often expired state is deleted (0 disables)")
	return cmd
}

func serve(ctx context.Context, config *conf.ArenaConfig, sweepInterval time.Duration) error {
	store, err := kvstore.New(ctx, &config.DB)
	if err != nil {
		return err
	}
	defer store.Close()

	tokens, err := httpapi.NewTokens(ctx, &config.Auth)
	if err != nil {
		return err
	}

	m := metrics.InitMetrics(ctx, nil)
	arena := contract.New(store,
		contract.WithRecorder(m),
		contract.WithContractAddress(sdk.Address(conf.StringNotEmpty(config.Game.ContractAddress, *conf.GameDefaults.ContractAddress))),
		contract.WithBotAddress(sdk.Address(conf.StringNotEmpty(config.Game.BotAddress, *conf.GameDefaults.BotAddress))),
	)

	server, err := httpapi.NewServer(ctx, &config.HTTP, httpapi.NewRouter(arena, tokens, m.Handler()))
	if err != nil {
		return err
	}
	if err := server.Start(); err != nil {
		return err
	}
	defer server.Stop()

	var sweep <-chan time.Time
	if sweepInterval > 0 {
		ticker := time.NewTicker(sweepInterval)
		defer ticker.Stop()
		sweep = ticker.C
	}
	for {
		select {
		case <-ctx.Done():
			log.L(ctx).Infof("Shutting down")
			return nil
		case <-sweep:
			if _, err := store.Sweep(ctx); err != nil {
				log.L(ctx).Errorf("Sweep failed: %s", err)
			}
		}
	}
}
