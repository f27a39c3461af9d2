package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/doeshing/ciphervault/internal/app"
	"github.com/doeshing/ciphervault/internal/domain"
	"github.com/doeshing/ciphervault/internal/infrastructure/cli/helpers"
)

const sessionHelp = `Commands:
  enc <algo> [key] -- <text>   encrypt text
  dec <algo> [key] -- <text>   decrypt text
  algo <id>                    show algorithm details
  algos                        list algorithms
  keygen                       generate a random key
  history                      show recent operations
  copy                         copy the last result to the clipboard
  qr [file]                    write the last result as a QR code PNG
  reset                        clear the history
  help                         show this help
  quit                         leave the session`

var errSessionQuit = errors.New("quit")

// sessionCommand is one parsed REPL line.
type sessionCommand struct {
	name      string
	algorithm domain.Algorithm
	direction domain.Direction
	key       string
	text      string
	arg       string
}

// parseSessionLine splits a REPL line. Text after " -- " is taken verbatim;
// without it the words following the key are joined by single spaces.
func parseSessionLine(line string) (sessionCommand, error) {
	head, text, verbatim := strings.Cut(strings.TrimSpace(line), " -- ")
	fields := strings.Fields(head)
	if len(fields) == 0 {
		return sessionCommand{}, nil
	}

	cmd := sessionCommand{name: strings.ToLower(fields[0])}
	switch cmd.name {
	case "enc", "encrypt", "dec", "decrypt":
		direction, err := domain.ParseDirection(cmd.name)
		if err != nil {
			return sessionCommand{}, err
		}
		cmd.name, cmd.direction = "process", direction
		if len(fields) < 2 {
			return sessionCommand{}, fmt.Errorf("usage: %s <algo> [key] -- <text>", fields[0])
		}
		algo, err := domain.ParseAlgorithm(fields[1])
		if err != nil {
			return sessionCommand{}, err
		}
		cmd.algorithm = algo

		rest := fields[2:]
		if algo.NeedsKey() && len(rest) > 0 {
			cmd.key, rest = rest[0], rest[1:]
		}
		if verbatim {
			if len(rest) > 0 {
				return sessionCommand{}, fmt.Errorf("unexpected %q before --", strings.Join(rest, " "))
			}
			cmd.text = text
		} else {
			cmd.text = strings.Join(rest, " ")
		}
	case "q", "exit":
		cmd.name = "quit"
	default:
		if len(fields) > 1 {
			cmd.arg = fields[1]
		}
	}
	return cmd, nil
}

type session struct {
	container *app.Container
	out       io.Writer
	errOut    io.Writer
	last      string
	now       func() time.Time
}

func newSessionCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "session",
		Short: "Start an interactive cipher session",
		Long:  "Start a line-oriented session that keeps its operation history until you quit.\n\n" + sessionHelp,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s := &session{
				container: container,
				out:       cmd.OutOrStdout(),
				errOut:    cmd.ErrOrStderr(),
				now:       time.Now,
			}
			return s.run(cmd.Context(), cmd.InOrStdin())
		},
	}
}

func (s *session) run(ctx context.Context, in io.Reader) error {
	if err := s.container.Engine.ResetLog(); err != nil {
		return err
	}
	fmt.Fprintln(s.out, s.container.Translator.T("session.welcome"))

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(s.out, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(s.out)
			return scanner.Err()
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		cmd, err := parseSessionLine(scanner.Text())
		if err == nil {
			err = s.exec(ctx, cmd)
		}
		if errors.Is(err, errSessionQuit) {
			return nil
		}
		if err != nil {
			fmt.Fprintf(s.errOut, "error: %v\n", err)
		}
	}
}

func (s *session) exec(ctx context.Context, cmd sessionCommand) error {
	engine := s.container.Engine
	tr := s.container.Translator

	switch cmd.name {
	case "":
		return nil
	case "quit":
		return errSessionQuit
	case "help":
		fmt.Fprintln(s.out, sessionHelp)
	case "process":
		res, err := engine.Process(ctx, domain.ProcessRequest{
			Text:      cmd.text,
			Key:       cmd.key,
			Algorithm: cmd.algorithm,
			Direction: cmd.direction,
		})
		if err != nil {
			return err
		}
		s.last = res.Result
		helpers.RenderResult(s.out, tr, res)
	case "algo", "info":
		if cmd.arg == "" {
			return fmt.Errorf("usage: algo <id>")
		}
		algo, err := domain.ParseAlgorithm(cmd.arg)
		if err != nil {
			return err
		}
		info, err := engine.AlgorithmInfo(algo)
		if err != nil {
			return err
		}
		helpers.RenderAlgorithmInfo(s.out, tr, info)
	case "algos":
		helpers.RenderAlgorithmList(s.out, tr, engine.Algorithms())
	case "keygen":
		key, err := engine.GenerateKey()
		if err != nil {
			return err
		}
		fmt.Fprintf(s.out, "%s: %s\n", tr.T("key.generated"), key)
	case "history":
		records, err := engine.OperationLog()
		if err != nil {
			return err
		}
		helpers.RenderHistory(s.out, tr, records, s.now())
	case "reset":
		if err := engine.ResetLog(); err != nil {
			return err
		}
		s.last = ""
		fmt.Fprintln(s.out, tr.T("session.reset"))
	case "copy":
		if s.last == "" {
			return errors.New(tr.T("session.no_result"))
		}
		copyResult(s.out, s.container, s.last)
	case "qr":
		if s.last == "" {
			return errors.New(tr.T("qr.empty"))
		}
		path := cmd.arg
		if path == "" {
			path = domain.QRFileName(s.now())
		}
		return writeQRFile(ctx, s.out, s.container, path, s.last)
	default:
		return fmt.Errorf("unknown command %q, type 'help'", cmd.name)
	}
	return nil
}
