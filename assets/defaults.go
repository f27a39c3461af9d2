package assets

import (
	_ "embed"
)

// DefaultConfigYAML is written to the config path on first run and by `config reset`.
//
//go:embed defaults/config.yaml
var DefaultConfigYAML []byte
