package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/abhisek/simulado/internal/config"
	"github.com/abhisek/simulado/internal/httpapi"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the quiz engine as a JSON API",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.FromEnv()
		addr, _ := cmd.Flags().GetString("addr")
		if addr == "" {
			addr = cfg.HTTPAddr
		}

		d, err := buildDeps(cmd)
		if err != nil {
			return err
		}
		defer d.Close()

		registry := httpapi.NewRegistry(time.Second)
		defer registry.Close()

		srv := &http.Server{
			Addr: addr,
			Handler: httpapi.NewRouter(&httpapi.Server{
				Provider:    d.provider,
				Registry:    registry,
				Recorder:    d.recorder,
				CORSOrigins: cfg.CORSOrigins,
			}),
			ReadHeaderTimeout: 10 * time.Second,
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		go registry.RunJanitor(ctx, time.Minute)

		errCh := make(chan error, 1)
		go func() {
			fmt.Fprintf(os.Stderr, "listening on %s\n", addr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
			close(errCh)
		}()

		select {
		case err := <-errCh:
			return err
		case <-ctx.Done():
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (overrides SIMULADO_HTTP_ADDR)")
}
