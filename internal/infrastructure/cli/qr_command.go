package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/doeshing/ciphervault/internal/app"
	"github.com/doeshing/ciphervault/internal/domain"
	"github.com/doeshing/ciphervault/internal/infrastructure/cli/helpers"
)

func newQRCommand(container *app.Container) *cobra.Command {
	var (
		outPath string
		ascii   bool
	)

	cmd := &cobra.Command{
		Use:   "qr [text...]",
		Short: "Render text as a QR code",
		Long:  "Render text as a QR code PNG, or as block characters with --ascii. Reads stdin when no text is given.",
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := helpers.ReadText(args, cmd.InOrStdin())
			if err != nil {
				return err
			}
			if text == "" {
				return fmt.Errorf("%s", container.Translator.T("qr.empty"))
			}
			if ascii {
				art, err := container.QR.Terminal(text)
				if err != nil {
					return err
				}
				fmt.Fprint(cmd.OutOrStdout(), art)
				return nil
			}
			path := outPath
			if path == "" {
				path = domain.QRFileName(time.Now())
			}
			return writeQRFile(cmd.Context(), cmd.ErrOrStderr(), container, path, text)
		},
	}

	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Output file (default cipher-qr-<unix-ms>.png)")
	cmd.Flags().BoolVar(&ascii, "ascii", false, "Print the code to the terminal instead of writing a PNG")
	return cmd
}
