package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/doeshing/ciphervault/internal/app"
	"github.com/doeshing/ciphervault/internal/domain"
	"github.com/doeshing/ciphervault/internal/infrastructure/cli/helpers"
)

// NewAlgorithmsCommand lists algorithms or shows one in detail.
func NewAlgorithmsCommand(container *app.Container) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:     "algorithms [id]",
		Aliases: []string{"algos", "algo"},
		Short:   "List supported algorithms",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if container.Engine == nil {
				return errors.New(ErrEngineUnavailable)
			}
			out := cmd.OutOrStdout()

			if len(args) == 0 {
				infos := container.Engine.Algorithms()
				if asJSON {
					return printJSON(cmd, infos)
				}
				helpers.RenderAlgorithmList(out, container.Translator, infos)
				return nil
			}

			algo, err := domain.ParseAlgorithm(args[0])
			if err != nil {
				return err
			}
			info, err := container.Engine.AlgorithmInfo(algo)
			if err != nil {
				return err
			}
			if asJSON {
				return printJSON(cmd, info)
			}
			helpers.RenderAlgorithmInfo(out, container.Translator, info)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print as JSON")
	return cmd
}

func printJSON(cmd *cobra.Command, v interface{}) error {
	raw, err := helpers.MarshalJSON(v)
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), raw)
	return nil
}
