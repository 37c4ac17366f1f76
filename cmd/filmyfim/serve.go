package main

import (
	"context"
	"errors"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/filmyfim/filmyfim/internal/constants"
)

func newServeCmd() *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the recommendation HTTP server",
		Example: `  # Start server on the configured port (default 8000)
  filmyfim serve

  # Start server on a custom port
  filmyfim serve --port 3000`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.close()

			if port == "" {
				port = a.cfg.Server.Port
			}

			server := &http.Server{
				Addr:              ":" + port,
				Handler:           a.router(),
				ReadHeaderTimeout: constants.ReadHeaderTimeout,
			}

			serverErr := make(chan error, 1)
			go func() {
				a.logger.Infof("[App] starting HTTP server on port %s", port)
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					serverErr <- err
				}
			}()

			select {
			case <-cmd.Context().Done():
				a.logger.Infof("[App] shutting down server...")
				shutdownCtx, cancel := context.WithTimeout(context.Background(), constants.ShutdownTimeout)
				defer cancel()
				if err := server.Shutdown(shutdownCtx); err != nil {
					a.logger.Errorf("[App] server shutdown failed: %v", err)
					return err
				}
				a.logger.Infof("[App] server stopped")
				return nil
			case err := <-serverErr:
				return err
			}
		},
	}

	cmd.Flags().StringVarP(&port, "port", "p", "", "Port to listen on (overrides PORT)")

	return cmd
}
