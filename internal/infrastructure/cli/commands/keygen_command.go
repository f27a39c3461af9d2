package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/doeshing/ciphervault/internal/app"
)

// NewKeygenCommand prints random keys drawn from the key alphabet.
func NewKeygenCommand(container *app.Container) *cobra.Command {
	var count int

	cmd := &cobra.Command{
		Use:   "keygen",
		Short: "Generate random keys",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if container.Engine == nil {
				return errors.New(ErrEngineUnavailable)
			}
			if count < 1 {
				return errors.New(ErrInvalidKeyCount)
			}
			for i := 0; i < count; i++ {
				key, err := container.Engine.GenerateKey()
				if err != nil {
					return fmt.Errorf("generate key: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), key)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&count, "count", "n", 1, "Number of keys to generate")
	return cmd
}
