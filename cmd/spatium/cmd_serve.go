package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/spatium-net/spatium/pkg/api"
	"github.com/spatium-net/spatium/pkg/device"
	"github.com/spatium-net/spatium/pkg/inventory"
	"github.com/spatium-net/spatium/pkg/util"
)

func newServeCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = cfg.ListenAddr
			}

			svc, err := deployService()
			if err != nil {
				return err
			}
			fetcher := device.NewFetcher(cfg.RestTimeout, cfg.FetchParallel)
			handler := api.NewServer(svc, inventory.NewService(), fetcher, cfg.OutputDir)

			httpSrv := &http.Server{
				Addr:              addr,
				Handler:           handler,
				ReadHeaderTimeout: 10 * time.Second,
			}

			errCh := make(chan error, 1)
			go func() {
				errCh <- httpSrv.ListenAndServe()
			}()
			util.Infof("spatium listening on %s (topologies in %s)", addr, svc.Workdir())

			sig := make(chan os.Signal, 1)
			signal.Notify(sig, os.Interrupt, syscall.SIGTERM)

			select {
			case err := <-errCh:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return err
			case s := <-sig:
				util.Infof("received %s, shutting down", s)
			}

			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return httpSrv.Shutdown(ctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides SPATIUM_LISTEN_ADDR)")
	return cmd
}
