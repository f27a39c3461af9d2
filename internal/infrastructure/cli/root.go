package cli

import (
	"context"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/doeshing/ciphervault/internal/app"
	"github.com/doeshing/ciphervault/internal/domain"
	"github.com/doeshing/ciphervault/internal/infrastructure/cli/commands"
)

// Options holds CLI-level configuration.
type Options struct {
	Verbose    bool
	ConfigPath string
	Language   string
}

// ParseGlobalOptions picks the global flags out of args before the command
// tree exists, since building the tree needs the loaded configuration.
// Unknown flags are left for cobra.
func ParseGlobalOptions(args []string, base Options) Options {
	fs := pflag.NewFlagSet("global", pflag.ContinueOnError)
	fs.ParseErrorsWhitelist.UnknownFlags = true
	fs.SetOutput(io.Discard)
	fs.Usage = func() {}

	opts := base
	bindGlobalFlags(fs, &opts)
	_ = fs.Parse(args)
	return opts
}

func bindGlobalFlags(fs *pflag.FlagSet, opts *Options) {
	fs.BoolVarP(&opts.Verbose, "verbose", "v", opts.Verbose, "Enable debug logging")
	fs.StringVar(&opts.ConfigPath, "config", opts.ConfigPath, "Config file (default ~/.ciphervault/config.yaml)")
	fs.StringVar(&opts.Language, "lang", opts.Language, "Output language (en|fr)")
}

// NewRootCmd wires the cobra root command.
func NewRootCmd(ctx context.Context, opts Options) (*cobra.Command, error) {
	container, err := app.BuildContainer(ctx, app.Options{
		Verbose:    opts.Verbose,
		ConfigPath: opts.ConfigPath,
		Language:   opts.Language,
	})
	if err != nil {
		return nil, err
	}
	clipboard := NewClipboard()
	container.Clipboard = clipboard
	container.DoctorService.Clipboard = clipboard

	return newRootCommand(container, opts, NewKeyPrompter(nil, nil)), nil
}

func newRootCommand(container *app.Container, opts Options, keys keyReader) *cobra.Command {
	root := &cobra.Command{
		Use:   "ciphervault",
		Short: "CipherVault - multi-algorithm text cipher",
		Long: "CipherVault encrypts, decrypts and encodes text with Caesar, Vigenère, XOR, AES, " +
			"Base64 and ROT13, and keeps a short history of recent operations.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	// registered so cobra accepts the flags ParseGlobalOptions already consumed
	bindGlobalFlags(root.PersistentFlags(), &opts)

	root.AddCommand(
		newTransformCommand(container, domain.DirectionEncrypt, keys),
		newTransformCommand(container, domain.DirectionDecrypt, keys),
		newQRCommand(container),
		newSessionCommand(container),
		commands.NewKeygenCommand(container),
		commands.NewAlgorithmsCommand(container),
		commands.NewServeCommand(container),
		commands.NewConfigCommand(container),
		commands.NewDoctorCommand(container),
		commands.NewVersionCommand(),
	)
	return root
}
