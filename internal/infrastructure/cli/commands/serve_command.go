package commands

import (
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/doeshing/ciphervault/internal/app"
	"github.com/doeshing/ciphervault/internal/infrastructure/httpapi"
)

// NewServeCommand starts the JSON HTTP API.
func NewServeCommand(container *app.Container) *cobra.Command {
	addr := container.Config.Server.Addr

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the cipher engine over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if container.Engine == nil {
				return errors.New(ErrEngineUnavailable)
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			server := httpapi.NewServer(container.Engine, container.QR, container.Logger)
			fmt.Fprintf(cmd.ErrOrStderr(), "Listening on http://%s\n", addr)
			return server.ListenAndServe(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", addr, "Listen address")
	return cmd
}
