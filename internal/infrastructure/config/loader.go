package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/doeshing/ciphervault/assets"
	"github.com/doeshing/ciphervault/internal/domain"
	"github.com/doeshing/ciphervault/internal/pkg/filesystem"
	"github.com/doeshing/ciphervault/internal/ports"
)

// EnvPrefix prefixes every environment override, e.g. CIPHERVAULT_HISTORY_BACKEND.
const EnvPrefix = "CIPHERVAULT"

// FileLoader loads YAML configuration from ~/.ciphervault/config.yaml (overridable via CIPHERVAULT_CONFIG).
// Values are layered defaults -> file -> environment.
type FileLoader struct {
	overridePath string
}

// NewFileLoader builds a new loader.
func NewFileLoader(path string) *FileLoader {
	return &FileLoader{overridePath: path}
}

// Load implements ports.ConfigProvider.
func (l *FileLoader) Load(context.Context) (domain.Config, error) {
	path := l.Path()
	if err := ensureConfigDir(path); err != nil {
		return domain.Config{}, err
	}

	if _, err := os.Stat(path); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return domain.Config{}, err
		}
		if err := os.WriteFile(path, assets.DefaultConfigYAML, domain.SecureFilePermissions); err != nil {
			return domain.Config{}, err
		}
	}

	v := viper.New()
	setDefaults(v, DefaultConfig())
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		return domain.Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg domain.Config
	if err := v.Unmarshal(&cfg); err != nil {
		return domain.Config{}, fmt.Errorf("decode config %s: %w", path, err)
	}
	return hydrateDefaults(cfg), nil
}

// Save writes cfg to the config path.
func (l *FileLoader) Save(cfg domain.Config) error {
	path := l.Path()
	if err := ensureConfigDir(path); err != nil {
		return err
	}
	return writeConfig(path, cfg)
}

// Reset overwrites the config file with the commented defaults.
func (l *FileLoader) Reset() error {
	path := l.Path()
	if err := ensureConfigDir(path); err != nil {
		return err
	}
	return os.WriteFile(path, assets.DefaultConfigYAML, domain.SecureFilePermissions)
}

// Path returns the resolved config file path.
func (l *FileLoader) Path() string {
	if l.overridePath != "" {
		return filesystem.ExpandPath(l.overridePath)
	}
	if custom := os.Getenv(EnvPrefix + "_CONFIG"); custom != "" {
		return filesystem.ExpandPath(custom)
	}
	return filepath.Join(filesystem.UserHomeDir(), ".ciphervault", "config.yaml")
}

func ensureConfigDir(path string) error {
	return filesystem.EnsureParentDir(path, domain.DirectoryPermissions)
}

func writeConfig(path string, cfg domain.Config) error {
	raw, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, raw, domain.SecureFilePermissions)
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() domain.Config {
	return domain.Config{
		ConfigFormatVersion: "1",
		Preferences: domain.Preferences{
			DefaultAlgorithm: string(domain.AlgorithmCaesar),
			Language:         "en",
		},
		History: domain.HistorySettings{
			Backend: domain.HistoryBackendMemory,
		},
		AES: domain.AESSettings{
			KDF:              domain.KDFEVPMD5,
			PBKDF2Iterations: domain.DefaultPBKDF2Iterations,
		},
		QR: domain.QRSettings{
			Size:       domain.DefaultQRSize,
			Margin:     domain.DefaultQRMargin,
			Foreground: domain.DefaultQRForeground,
			Background: domain.DefaultQRBackground,
		},
		Server: domain.ServerSettings{
			Addr: domain.DefaultServerAddr,
		},
	}
}

// setDefaults registers every key so AutomaticEnv can override it.
func setDefaults(v *viper.Viper, cfg domain.Config) {
	v.SetDefault("config_format_version", cfg.ConfigFormatVersion)
	v.SetDefault("preferences.default_algorithm", cfg.Preferences.DefaultAlgorithm)
	v.SetDefault("preferences.language", cfg.Preferences.Language)
	v.SetDefault("preferences.auto_generate_key", cfg.Preferences.AutoGenerateKey)
	v.SetDefault("preferences.copy_result", cfg.Preferences.CopyResult)
	v.SetDefault("history.backend", cfg.History.Backend)
	v.SetDefault("aes.kdf", cfg.AES.KDF)
	v.SetDefault("aes.pbkdf2_iterations", cfg.AES.PBKDF2Iterations)
	v.SetDefault("qr.size", cfg.QR.Size)
	v.SetDefault("qr.margin", cfg.QR.Margin)
	v.SetDefault("qr.foreground", cfg.QR.Foreground)
	v.SetDefault("qr.background", cfg.QR.Background)
	v.SetDefault("server.addr", cfg.Server.Addr)
}

func hydrateDefaults(cfg domain.Config) domain.Config {
	if cfg.ConfigFormatVersion == "" {
		cfg.ConfigFormatVersion = "1"
	}
	if cfg.Preferences.DefaultAlgorithm == "" {
		cfg.Preferences.DefaultAlgorithm = string(domain.AlgorithmCaesar)
	}
	if cfg.History.Backend == "" {
		cfg.History.Backend = domain.HistoryBackendMemory
	}
	if cfg.AES.KDF == "" {
		cfg.AES.KDF = domain.KDFEVPMD5
	}
	return cfg
}

var _ ports.ConfigProvider = (*FileLoader)(nil)
