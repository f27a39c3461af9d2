package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/doeshing/ciphervault/internal/app"
	"github.com/doeshing/ciphervault/internal/domain"
	"github.com/doeshing/ciphervault/internal/infrastructure/cli/helpers"
)

// keyReader supplies a key interactively.
type keyReader interface {
	ReadKey(prompt string) (string, error)
}

type transformOptions struct {
	algorithm string
	key       string
	promptKey bool
	genKey    bool
	copy      bool
	qrPath    string
	asJSON    bool
	quiet     bool
}

func newTransformCommand(container *app.Container, direction domain.Direction, keys keyReader) *cobra.Command {
	prefs := container.Config.Preferences
	opts := transformOptions{
		algorithm: prefs.DefaultAlgorithm,
		genKey:    prefs.AutoGenerateKey,
		copy:      prefs.CopyResult,
	}

	use, short := "encrypt [text...]", "Encrypt text"
	if direction == domain.DirectionDecrypt {
		use, short = "decrypt [text...]", "Decrypt text"
	}

	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Long:  short + ". Reads stdin when no text is given or the text is \"-\".",
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := helpers.ReadText(args, cmd.InOrStdin())
			if err != nil {
				return err
			}
			return runTransform(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), container, keys, direction, text, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.algorithm, "algorithm", "a", opts.algorithm, "Algorithm (caesar|vigenere|xor|aes|base64|rot13)")
	cmd.Flags().StringVarP(&opts.key, "key", "k", "", "Cipher key")
	cmd.Flags().BoolVar(&opts.promptKey, "prompt-key", false, "Read the key from the terminal without echo")
	if direction == domain.DirectionEncrypt {
		cmd.Flags().BoolVar(&opts.genKey, "gen-key", opts.genKey, "Generate a random key when none is given")
	}
	cmd.Flags().BoolVarP(&opts.copy, "copy", "c", opts.copy, "Copy the result to the clipboard")
	cmd.Flags().StringVar(&opts.qrPath, "qr", "", "Also write the result as a QR code PNG to this path")
	cmd.Flags().BoolVar(&opts.asJSON, "json", false, "Print the operation record as JSON")
	cmd.Flags().BoolVarP(&opts.quiet, "quiet", "q", false, "Print only the result")
	return cmd
}

func runTransform(ctx context.Context, out, errOut io.Writer, container *app.Container, keys keyReader,
	direction domain.Direction, text string, opts transformOptions) error {
	algo, err := domain.ParseAlgorithm(opts.algorithm)
	if err != nil {
		return err
	}

	key := opts.key
	if algo.NeedsKey() && key == "" {
		switch {
		case opts.promptKey && keys != nil:
			if key, err = keys.ReadKey("Key: "); err != nil {
				return err
			}
		case opts.genKey && direction == domain.DirectionEncrypt:
			if key, err = container.Engine.GenerateKey(); err != nil {
				return err
			}
			fmt.Fprintf(errOut, "%s: %s\n", container.Translator.T("key.generated"), key)
		}
	}

	res, err := container.Engine.Process(ctx, domain.ProcessRequest{
		Text:      text,
		Key:       key,
		Algorithm: algo,
		Direction: direction,
	})
	if err != nil {
		return err
	}

	switch {
	case opts.asJSON:
		raw, err := helpers.MarshalJSON(res.Record)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, raw)
	case opts.quiet:
		fmt.Fprintln(out, res.Result)
	default:
		helpers.RenderResult(out, container.Translator, res)
	}

	if opts.copy {
		copyResult(errOut, container, res.Result)
	}
	if opts.qrPath != "" {
		return writeQRFile(ctx, errOut, container, opts.qrPath, res.Result)
	}
	return nil
}

// copyResult reports clipboard failures without failing the command.
func copyResult(errOut io.Writer, container *app.Container, text string) {
	if container.Clipboard == nil {
		fmt.Fprintln(errOut, container.Translator.T("clipboard.failed"))
		return
	}
	if err := container.Clipboard.Copy(text); err != nil {
		container.Logger.Warn("clipboard copy failed", map[string]interface{}{"error": err.Error()})
		fmt.Fprintf(errOut, "%s: %v\n", container.Translator.T("clipboard.failed"), err)
		return
	}
	fmt.Fprintln(errOut, container.Translator.T("clipboard.copied"))
}

// writeQRFile renders text in the background while a spinner runs, then writes the PNG.
func writeQRFile(ctx context.Context, errOut io.Writer, container *app.Container, path, text string) error {
	if container.QR == nil {
		return fmt.Errorf("qr renderer unavailable")
	}
	spinner := NewSpinner(errOut, "Rendering QR code")
	spinner.Start()
	res := <-container.QR.RenderAsync(ctx, text)
	spinner.Stop()
	if res.Err != nil {
		return res.Err
	}
	if err := os.WriteFile(path, res.PNG, domain.PublicFilePermissions); err != nil {
		return fmt.Errorf("write qr code: %w", err)
	}
	fmt.Fprintf(errOut, "%s %s\n", container.Translator.T("qr.written"), path)
	return nil
}
