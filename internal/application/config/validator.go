package config

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/doeshing/ciphervault/internal/domain"
)

var hexColor = regexp.MustCompile(`^#([0-9a-fA-F]{6})$`)

// Validate ensures config structure is consistent.
func Validate(cfg domain.Config) error {
	if err := validatePreferences(cfg.Preferences); err != nil {
		return err
	}
	if err := validateHistory(cfg.History); err != nil {
		return err
	}
	if err := validateAES(cfg.AES); err != nil {
		return err
	}
	if err := validateQR(cfg.QR); err != nil {
		return err
	}
	if strings.TrimSpace(cfg.Server.Addr) == "" {
		return errors.New("server.addr must be set")
	}
	return nil
}

func validatePreferences(prefs domain.Preferences) error {
	if prefs.DefaultAlgorithm != "" {
		if _, err := domain.ParseAlgorithm(prefs.DefaultAlgorithm); err != nil {
			return fmt.Errorf("preferences.default_algorithm: %w", err)
		}
	}
	switch strings.ToLower(prefs.Language) {
	case "", "en", "fr":
	default:
		return fmt.Errorf("preferences.language must be en|fr, got %s", prefs.Language)
	}
	return nil
}

func validateHistory(history domain.HistorySettings) error {
	switch history.Backend {
	case "", domain.HistoryBackendMemory, domain.HistoryBackendSQLite:
	default:
		return fmt.Errorf("history.backend must be memory|sqlite, got %s", history.Backend)
	}
	return nil
}

func validateAES(aes domain.AESSettings) error {
	switch strings.ToLower(aes.KDF) {
	case "", domain.KDFEVPMD5:
	case domain.KDFPBKDF2SHA256:
		if aes.PBKDF2Iterations < 1 {
			return fmt.Errorf("aes.pbkdf2_iterations must be >= 1")
		}
	default:
		return fmt.Errorf("aes.kdf must be %s|%s, got %s", domain.KDFEVPMD5, domain.KDFPBKDF2SHA256, aes.KDF)
	}
	return nil
}

func validateQR(qr domain.QRSettings) error {
	if qr.Size < 21 {
		return fmt.Errorf("qr.size must be >= 21 pixels")
	}
	if qr.Margin < 0 {
		return fmt.Errorf("qr.margin must be >= 0")
	}
	if !hexColor.MatchString(qr.Foreground) {
		return fmt.Errorf("qr.foreground must be #rrggbb, got %s", qr.Foreground)
	}
	if !hexColor.MatchString(qr.Background) {
		return fmt.Errorf("qr.background must be #rrggbb, got %s", qr.Background)
	}
	return nil
}
