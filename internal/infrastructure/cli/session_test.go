package cli

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doeshing/ciphervault/internal/domain"
)

func TestParseSessionLine(t *testing.T) {
	tests := []struct {
		line string
		want sessionCommand
	}{
		{"", sessionCommand{}},
		{"   ", sessionCommand{}},
		{"enc caesar 3 -- HELLO  WORLD", sessionCommand{name: "process", algorithm: domain.AlgorithmCaesar, direction: domain.DirectionEncrypt, key: "3", text: "HELLO  WORLD"}},
		{"dec VIGENERE lemon LXFOPVEFRNHR", sessionCommand{name: "process", algorithm: domain.AlgorithmVigenere, direction: domain.DirectionDecrypt, key: "lemon", text: "LXFOPVEFRNHR"}},
		{"encrypt rot13 Hello   there", sessionCommand{name: "process", algorithm: domain.AlgorithmROT13, direction: domain.DirectionEncrypt, text: "Hello there"}},
		{"enc base64 -- a -- b", sessionCommand{name: "process", algorithm: domain.AlgorithmBase64, direction: domain.DirectionEncrypt, text: "a -- b"}},
		{"enc xor", sessionCommand{name: "process", algorithm: domain.AlgorithmXOR, direction: domain.DirectionEncrypt}},
		{"algo aes", sessionCommand{name: "algo", arg: "aes"}},
		{"QR out.png", sessionCommand{name: "qr", arg: "out.png"}},
		{"exit", sessionCommand{name: "quit"}},
		{"history", sessionCommand{name: "history"}},
	}
	for _, tt := range tests {
		got, err := parseSessionLine(tt.line)
		require.NoErrorf(t, err, "line %q", tt.line)
		assert.Equalf(t, tt.want, got, "line %q", tt.line)
	}
}

func TestParseSessionLineErrors(t *testing.T) {
	for _, line := range []string{"enc", "enc enigma k -- x", "enc caesar 3 extra -- text"} {
		_, err := parseSessionLine(line)
		assert.Errorf(t, err, "line %q", line)
	}
}

func runSession(t *testing.T, script string) (string, string, *fakeClipboard) {
	t.Helper()
	container := newTestContainer(t)
	clip := &fakeClipboard{}
	container.Clipboard = clip

	var out, errOut bytes.Buffer
	s := &session{
		container: container,
		out:       &out,
		errOut:    &errOut,
		now:       func() time.Time { return time.Now().Add(2 * time.Minute) },
	}
	require.NoError(t, s.run(context.Background(), strings.NewReader(script)))
	return out.String(), errOut.String(), clip
}

func TestSessionProcessesAndShowsHistory(t *testing.T) {
	out, errOut, _ := runSession(t, strings.Join([]string{
		"enc caesar 3 -- HELLO",
		"enc base64 -- Hi",
		"history",
		"quit",
		"enc rot13 never reached",
	}, "\n"))

	assert.Empty(t, errOut)
	assert.Contains(t, out, "KHOOR")
	assert.Contains(t, out, "SGk=")
	assert.Contains(t, out, " 1. ENCRYPT BASE64 key=none")
	assert.Contains(t, out, " 2. ENCRYPT CAESAR key=3")
	assert.Contains(t, out, "minutes ago")
	assert.NotContains(t, out, "arire")
}

func TestSessionReportsErrorsAndContinues(t *testing.T) {
	out, errOut, _ := runSession(t, "enc vigenere -- hello\nbogus\nenc rot13 -- ok\nhistory\n")

	assert.Contains(t, errOut, "error: a key is required")
	assert.Contains(t, errOut, `unknown command "bogus"`)
	assert.Contains(t, out, "bx")
	assert.NotContains(t, out, "VIGENERE")
}

func TestSessionResetClearsHistory(t *testing.T) {
	out, _, _ := runSession(t, "enc rot13 -- abc\nreset\nhistory\n")
	assert.Contains(t, out, "History cleared")
	assert.Contains(t, out, "No operations in history")
}

func TestSessionCopyAndQR(t *testing.T) {
	path := filepath.Join(t.TempDir(), "last.png")
	out, errOut, clip := runSession(t, "copy\nenc rot13 -- Hello\ncopy\nqr "+path+"\n")

	assert.Contains(t, errOut, "No result yet")
	assert.Equal(t, []string{"Uryyb"}, clip.copied)
	assert.Contains(t, out, "QR code written to "+path)
	assert.FileExists(t, path)
}

func TestSessionAlgorithmCommands(t *testing.T) {
	out, errOut, _ := runSession(t, "algos\nalgo xor\nkeygen\nhelp\n")
	assert.Empty(t, errOut)
	assert.Contains(t, out, "vigenere")
	assert.Contains(t, out, "Bitwise operation")
	assert.Contains(t, out, "Generated key: ")
	assert.Contains(t, out, "enc <algo> [key] -- <text>")
}
