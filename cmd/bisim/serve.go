package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/aretw0/bisim/internal/cli"
	httpAdapter "github.com/aretw0/bisim/pkg/adapters/http"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long: `Serves the graphs of --dir over a JSON API.
Prometheus metrics are exposed on /metrics, the OpenAPI document on /openapi.yaml
and Swagger UI on /swagger.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		port, _ := cmd.Flags().GetString("port")

		opts := globalOptions(cmd)
		opts.Metrics = true
		app, err := cli.Setup(opts)
		if err != nil {
			return err
		}
		defer app.Close()

		srv := &http.Server{
			Addr:              ":" + port,
			Handler:           httpAdapter.NewHandler(app.Engine, httpAdapter.WithGatherer(app.Registry)),
			ReadHeaderTimeout: 10 * time.Second,
		}

		// Channel to listen for errors coming from the listener.
		serverErrors := make(chan error, 1)
		go func() {
			app.Logger.Info("starting bisim server", "addr", srv.Addr, "dir", opts.Dir)
			fmt.Printf("Starting bisim server on %s\n", srv.Addr)
			serverErrors <- srv.ListenAndServe()
		}()

		sc := cli.NewSignalContext(cmd.Context())
		defer sc.Cancel()

		select {
		case err := <-serverErrors:
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return fmt.Errorf("server error: %w", err)

		case <-sc.Done():
			fmt.Printf("\nStart shutdown... Signal: %v\n", sc.Signal())

			// Give outstanding requests a deadline for completion.
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := srv.Shutdown(ctx); err != nil {
				app.Logger.Warn("graceful shutdown did not complete", "timeout", 5*time.Second, "err", err)
				if err := srv.Close(); err != nil {
					return fmt.Errorf("error killing server: %w", err)
				}
			}
			fmt.Println("bisim server stopped gracefully")
			return nil
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("port", "p", "8080", "Port to listen on")
}
