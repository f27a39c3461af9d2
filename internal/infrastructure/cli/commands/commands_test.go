package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doeshing/ciphervault/internal/app"
	"github.com/doeshing/ciphervault/internal/domain"
)

func newContainer(t *testing.T) *app.Container {
	t.Helper()
	container, err := app.BuildContainer(context.Background(), app.Options{
		ConfigPath: filepath.Join(t.TempDir(), "config.yaml"),
	})
	require.NoError(t, err)
	return container
}

func execute(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestKeygenCommand(t *testing.T) {
	out, err := execute(t, NewKeygenCommand(newContainer(t)), "-n", "3")
	require.NoError(t, err)

	keys := strings.Fields(out)
	require.Len(t, keys, 3)
	for _, key := range keys {
		assert.Len(t, key, 16)
	}

	_, err = execute(t, NewKeygenCommand(newContainer(t)), "--count", "0")
	assert.EqualError(t, err, ErrInvalidKeyCount)

	_, err = execute(t, NewKeygenCommand(&app.Container{}))
	assert.EqualError(t, err, ErrEngineUnavailable)
}

func TestAlgorithmsCommand(t *testing.T) {
	container := newContainer(t)

	out, err := execute(t, NewAlgorithmsCommand(container))
	require.NoError(t, err)
	assert.Equal(t, 6, strings.Count(out, "\n"))
	for _, algo := range domain.Algorithms() {
		assert.Contains(t, out, string(algo))
	}

	out, err = execute(t, NewAlgorithmsCommand(container), "--json")
	require.NoError(t, err)
	var infos []domain.AlgorithmInfo
	require.NoError(t, json.Unmarshal([]byte(out), &infos))
	require.Len(t, infos, 6)
	assert.Equal(t, domain.AlgorithmCaesar, infos[0].Algorithm)

	out, err = execute(t, NewAlgorithmsCommand(container), "AES", "--json")
	require.NoError(t, err)
	var info domain.AlgorithmInfo
	require.NoError(t, json.Unmarshal([]byte(out), &info))
	assert.Equal(t, domain.SecurityVeryStrong, info.SecurityLevel)

	_, err = execute(t, NewAlgorithmsCommand(container), "enigma")
	assert.ErrorIs(t, err, domain.ErrUnsupportedAlgorithm)
}

func TestConfigGetSetDiff(t *testing.T) {
	container := newContainer(t)

	out, err := execute(t, NewConfigCommand(container), "diff")
	require.NoError(t, err)
	assert.Equal(t, MsgNoDifferencesFromDefault+"\n", out)

	out, err = execute(t, NewConfigCommand(container), "get", "preferences.default_algorithm")
	require.NoError(t, err)
	assert.Equal(t, "caesar\n", out)

	_, err = execute(t, NewConfigCommand(container), "set", "preferences.default_algorithm", "aes")
	require.NoError(t, err)

	out, err = execute(t, NewConfigCommand(container), "get", "preferences.default_algorithm")
	require.NoError(t, err)
	assert.Equal(t, "aes\n", out)

	out, err = execute(t, NewConfigCommand(container), "diff")
	require.NoError(t, err)
	assert.Contains(t, out, "aes")

	out, err = execute(t, NewConfigCommand(container), "validate")
	require.NoError(t, err)
	assert.Equal(t, MsgConfigurationValid+"\n", out)

	out, err = execute(t, NewConfigCommand(container), "reset")
	require.NoError(t, err)
	assert.Contains(t, out, "Configuration reset at")

	out, err = execute(t, NewConfigCommand(container), "diff")
	require.NoError(t, err)
	assert.Equal(t, MsgNoDifferencesFromDefault+"\n", out)
}

func TestConfigSetRejectsBadValues(t *testing.T) {
	container := newContainer(t)

	_, err := execute(t, NewConfigCommand(container), "set", "preferences.colour", "blue")
	assert.ErrorContains(t, err, "unknown configuration key")

	_, err = execute(t, NewConfigCommand(container), "set", "qr.size", "0")
	assert.ErrorContains(t, err, "qr.size")

	// the log size and key length are fixed, not settings
	_, err = execute(t, NewConfigCommand(container), "set", "history.capacity", "5")
	assert.ErrorContains(t, err, "unknown configuration key")
	_, err = execute(t, NewConfigCommand(container), "set", "keygen.length", "4")
	assert.ErrorContains(t, err, "unknown configuration key")

	_, err = execute(t, NewConfigCommand(container), "get", "nope.nothing")
	assert.ErrorContains(t, err, "not found")
}

func TestConfigPathAndShow(t *testing.T) {
	container := newContainer(t)

	out, err := execute(t, NewConfigCommand(container), "path")
	require.NoError(t, err)
	assert.Equal(t, container.ConfigLoader.Path()+"\n", out)

	out, err = execute(t, NewConfigCommand(container), "show")
	require.NoError(t, err)
	assert.Contains(t, out, "default_algorithm: caesar")
	assert.Contains(t, out, "backend: memory")
	assert.NotContains(t, out, "capacity")

	_, err = execute(t, NewConfigCommand(&app.Container{}), "path")
	assert.Error(t, err)
}

func TestDisplayDoctorReport(t *testing.T) {
	var buf bytes.Buffer
	report := domain.HealthReport{Checks: []domain.HealthCheck{
		{Name: "config", Status: domain.HealthOK, Details: "loaded"},
		{Name: "clipboard", Status: domain.HealthWarn, Details: "unsupported"},
	}}
	displayDoctorReport(&buf, report)
	assert.Equal(t, "[OK] config - loaded\n[WARN] clipboard - unsupported\n", buf.String())
}

func TestDoctorCommandWithoutService(t *testing.T) {
	_, err := execute(t, NewDoctorCommand(&app.Container{}))
	assert.EqualError(t, err, ErrDoctorServiceUnavailable)
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, NewVersionCommand())
	require.NoError(t, err)
	assert.Contains(t, out, "CipherVault version dev")
	assert.Contains(t, out, "Go version: go")
}
