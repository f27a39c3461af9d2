package domain

// Config mirrors ~/.ciphervault/config.yaml.
type Config struct {
	ConfigFormatVersion string          `yaml:"config_format_version" mapstructure:"config_format_version"`
	Preferences         Preferences     `yaml:"preferences" mapstructure:"preferences"`
	History             HistorySettings `yaml:"history" mapstructure:"history"`
	AES                 AESSettings     `yaml:"aes" mapstructure:"aes"`
	QR                  QRSettings      `yaml:"qr" mapstructure:"qr"`
	Server              ServerSettings  `yaml:"server" mapstructure:"server"`
}

// Preferences captures user level toggles.
type Preferences struct {
	DefaultAlgorithm string `yaml:"default_algorithm" mapstructure:"default_algorithm"`
	Language         string `yaml:"language" mapstructure:"language"`
	AutoGenerateKey  bool   `yaml:"auto_generate_key" mapstructure:"auto_generate_key"`
	CopyResult       bool   `yaml:"copy_result" mapstructure:"copy_result"`
}

// HistorySettings selects the operation log backend. The log always keeps
// DefaultLogCapacity records.
type HistorySettings struct {
	Backend string `yaml:"backend" mapstructure:"backend"`
}

// AESSettings controls the passphrase envelope key derivation.
type AESSettings struct {
	KDF              string `yaml:"kdf" mapstructure:"kdf"`
	PBKDF2Iterations int    `yaml:"pbkdf2_iterations" mapstructure:"pbkdf2_iterations"`
}

// QRSettings configures QR code rendering.
type QRSettings struct {
	Size       int    `yaml:"size" mapstructure:"size"`
	Margin     int    `yaml:"margin" mapstructure:"margin"`
	Foreground string `yaml:"foreground" mapstructure:"foreground"`
	Background string `yaml:"background" mapstructure:"background"`
}

// ServerSettings configures the HTTP API.
type ServerSettings struct {
	Addr string `yaml:"addr" mapstructure:"addr"`
}
