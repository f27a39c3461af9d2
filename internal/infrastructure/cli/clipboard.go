package cli

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/atotto/clipboard"

	"github.com/doeshing/ciphervault/internal/ports"
)

// Clipboard implements ports.Clipboard on top of the system clipboard.
type Clipboard struct {
	write func(string) error
}

// NewClipboard builds the clipboard helper.
func NewClipboard() *Clipboard {
	return &Clipboard{write: clipboard.WriteAll}
}

// Enabled reports whether a clipboard utility was found at startup.
func (c *Clipboard) Enabled() bool {
	return !clipboard.Unsupported
}

// Copy copies text to the system clipboard.
func (c *Clipboard) Copy(text string) error {
	if !c.Enabled() {
		return fmt.Errorf("clipboard not supported on %s", runtime.GOOS)
	}
	if text == "" {
		return errors.New("nothing to copy")
	}
	return c.write(text)
}

var _ ports.Clipboard = (*Clipboard)(nil)
