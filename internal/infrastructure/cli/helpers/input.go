package helpers

import (
	"fmt"
	"io"
	"strings"
)

// ReadText joins args into the input text, or reads in when args is empty or "-".
// A single trailing newline from piped input is dropped.
func ReadText(args []string, in io.Reader) (string, error) {
	if len(args) > 0 && !(len(args) == 1 && args[0] == "-") {
		return strings.Join(args, " "), nil
	}
	if in == nil {
		return "", nil
	}
	raw, err := io.ReadAll(in)
	if err != nil {
		return "", fmt.Errorf("read input: %w", err)
	}
	text := strings.TrimSuffix(string(raw), "\n")
	return strings.TrimSuffix(text, "\r"), nil
}
