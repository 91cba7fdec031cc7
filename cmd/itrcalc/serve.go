package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/itrgo/tax-estimator/internal/api"
	"github.com/itrgo/tax-estimator/internal/store"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd(a *app) *cobra.Command {
	var address string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the tax API over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			if address != "" {
				a.settings.Server.Address = address
			}
			return runServe(cmd.Context(), a)
		},
	}
	cmd.Flags().StringVar(&address, "address", "", "listen address, overrides server.address")
	return cmd
}

func runServe(parent context.Context, a *app) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	engine, err := a.engine(false)
	if err != nil {
		return err
	}
	records, closeStore, err := store.Open(ctx, a.settings.Store, a.log.Named("store"))
	if err != nil {
		return err
	}
	defer func() {
		if err := closeStore(); err != nil {
			a.log.Warnf("failed to close store: %v", err)
		}
	}()

	srv := api.NewServer(engine, records, a.log)
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start(a.settings.Server)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	a.log.Infof("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
