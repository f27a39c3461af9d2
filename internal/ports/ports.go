// Package ports defines the interfaces (ports) for the hexagonal architecture.
//
// This package establishes the contract between the cipher engine and external
// adapters (infrastructure). Following the Ports and Adapters (Hexagonal) pattern,
// these interfaces keep the engine independent of concrete implementations such as
// the operation log backend, the clipboard, or the QR renderer.
//
// Key architectural concepts:
//   - Ports: Interfaces defined here (e.g., Cipher, OperationLog)
//   - Adapters: Concrete implementations in the infrastructure layer
//   - Dependency inversion: the engine depends on abstractions, not implementations
package ports

import (
	"context"

	"github.com/doeshing/ciphervault/internal/domain"
)

// ConfigProvider loads the latest configuration from persistent storage.
// Implementations typically read from ~/.ciphervault/config.yaml.
type ConfigProvider interface {
	Load(context.Context) (domain.Config, error)
}

// Cipher is a single text transformation strategy.
// Failures are *domain.EngineError values of kind InvalidKey or CorruptInput.
type Cipher interface {
	Algorithm() domain.Algorithm
	Apply(text, key string, direction domain.Direction) (string, error)
}

// CipherFactory resolves the strategy for an algorithm id.
type CipherFactory interface {
	ForAlgorithm(domain.Algorithm) (Cipher, error)
}

// KeyGenerator produces random printable keys.
type KeyGenerator interface {
	Generate() (string, error)
}

// OperationLog is the bounded, newest-first record of successful transformations.
type OperationLog interface {
	Record(domain.OperationRecord) error
	Records() ([]domain.OperationRecord, error)
	Len() int
	Clear() error
}

// Translator localises presentation strings.
type Translator interface {
	T(messageID string) string
	Language() string
}

// Clipboard provides cross-platform clipboard integration for copying results.
type Clipboard interface {
	Copy(text string) error
	Enabled() bool
}

// QRRenderer encodes arbitrary text as a PNG QR code.
type QRRenderer interface {
	PNG(ctx context.Context, text string) ([]byte, error)
}

// Logger provides structured logging abstraction for the application layer.
// Implementations can route to different backends (stdout, files, external services).
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, err error, fields map[string]interface{})
}
