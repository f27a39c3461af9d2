package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// KeyPrompter reads a key from the terminal without echoing it.
// When stdin is not a terminal it falls back to reading one line.
type KeyPrompter struct {
	in  io.Reader
	out io.Writer
	fd  int
	tty bool
}

// NewKeyPrompter constructs a prompter referencing stdio.
func NewKeyPrompter(in io.Reader, out io.Writer) *KeyPrompter {
	if in == nil {
		in = os.Stdin
	}
	if out == nil {
		out = os.Stderr
	}
	p := &KeyPrompter{in: in, out: out, fd: -1}
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		p.fd = int(f.Fd())
		p.tty = true
	}
	return p
}

// ReadKey prints prompt and returns the entered key with surrounding whitespace removed.
func (p *KeyPrompter) ReadKey(prompt string) (string, error) {
	fmt.Fprint(p.out, prompt)
	if p.tty {
		raw, err := term.ReadPassword(p.fd)
		fmt.Fprintln(p.out)
		if err != nil {
			return "", fmt.Errorf("read key: %w", err)
		}
		return strings.TrimSpace(string(raw)), nil
	}

	line, err := bufio.NewReader(p.in).ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", fmt.Errorf("read key: %w", err)
	}
	return strings.TrimSpace(line), nil
}
