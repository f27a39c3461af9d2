package domain

import (
	"fmt"
	"time"
)

// File permissions constants
const (
	// DirectoryPermissions is the default permission for directories (rwxr-xr-x)
	DirectoryPermissions = 0o755
	// SecureFilePermissions is the permission for sensitive files (rw-------)
	SecureFilePermissions = 0o600
	// PublicFilePermissions is used for exported artifacts such as QR images (rw-r--r--)
	PublicFilePermissions = 0o644
)

// Operation log constants
const (
	// DefaultLogCapacity is the number of recent operations kept
	DefaultLogCapacity = 10
	// HistoryBackendMemory keeps records in a Go slice
	HistoryBackendMemory = "memory"
	// HistoryBackendSQLite keeps records in an in-memory SQLite database
	HistoryBackendSQLite = "sqlite"
)

// Cipher constants
const (
	// DefaultCaesarShift is used when the caesar key is not a usable integer
	DefaultCaesarShift = 3
	// ROT13Shift is the fixed rotation of ROT13
	ROT13Shift = 13
	// KDFEVPMD5 is OpenSSL's legacy EVP_BytesToKey derivation (CryptoJS compatible)
	KDFEVPMD5 = "evp-md5"
	// KDFPBKDF2SHA256 matches `openssl enc -pbkdf2`
	KDFPBKDF2SHA256 = "pbkdf2-sha256"
	// DefaultPBKDF2Iterations matches the openssl default
	DefaultPBKDF2Iterations = 10000
)

// Key generation constants
const (
	// KeyAlphabet is the 70-character alphabet generated keys are drawn from
	KeyAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789!@#$%^&*"
	// DefaultKeyLength is the length of generated keys
	DefaultKeyLength = 16
)

// QR code defaults
const (
	DefaultQRSize       = 256
	DefaultQRMargin     = 2
	DefaultQRForeground = "#00ff88"
	DefaultQRBackground = "#0a0a0a"
)

// Server defaults
const (
	DefaultServerAddr        = "127.0.0.1:8080"
	DefaultReadHeaderTimeout = 5 * time.Second
	DefaultShutdownTimeout   = 10 * time.Second
)

// Time formats
const (
	// TimestampFormat is how record timestamps are displayed
	TimestampFormat = "2006-01-02 15:04:05"
)

// QRFileName is the default download name for a QR code rendered at t.
func QRFileName(t time.Time) string {
	return fmt.Sprintf("cipher-qr-%d.png", t.UnixMilli())
}
