package doctor

import (
	"context"
	"fmt"
	"strings"

	"github.com/doeshing/ciphervault/internal/domain"
	"github.com/doeshing/ciphervault/internal/ports"
)

const probeText = "CipherVault probe: Hello, World! 123"

// Service runs environment diagnostics.
type Service struct {
	ConfigProvider ports.ConfigProvider
	Ciphers        ports.CipherFactory
	KeyGen         ports.KeyGenerator
	Log            ports.OperationLog
	Clipboard      ports.Clipboard
	QR             ports.QRRenderer
}

// Run executes checks and returns a report.
func (s *Service) Run(ctx context.Context) (domain.HealthReport, error) {
	var checks []domain.HealthCheck

	cfg, err := s.ConfigProvider.Load(ctx)
	if err != nil {
		checks = append(checks, fail("Config file", fmt.Sprintf("load failed: %v", err)))
		return domain.HealthReport{Checks: checks}, err
	}
	checks = append(checks, ok("Config file", fmt.Sprintf("format version %s", cfg.ConfigFormatVersion)))

	key := "doctor-key"
	if s.KeyGen != nil {
		if generated, err := s.KeyGen.Generate(); err != nil {
			checks = append(checks, fail("Key generator", err.Error()))
		} else {
			key = generated
			checks = append(checks, ok("Key generator", fmt.Sprintf("%d-character keys", len(generated))))
		}
	}

	if s.Ciphers != nil {
		checks = append(checks, s.cipherCheck(key))
	} else {
		checks = append(checks, fail("Ciphers", "cipher registry not initialized"))
	}

	if s.Log != nil {
		checks = append(checks, ok("Operation log", fmt.Sprintf("%s backend, capacity %d, %d entries",
			cfg.History.Backend, domain.DefaultLogCapacity, s.Log.Len())))
	} else {
		checks = append(checks, warn("Operation log", "not initialized"))
	}

	if s.Clipboard != nil && s.Clipboard.Enabled() {
		checks = append(checks, ok("Clipboard", "available"))
	} else {
		checks = append(checks, warn("Clipboard", "no clipboard utility found"))
	}

	if s.QR != nil {
		if png, err := s.QR.PNG(ctx, probeText); err != nil {
			checks = append(checks, fail("QR renderer", err.Error()))
		} else {
			checks = append(checks, ok("QR renderer", fmt.Sprintf("%d byte PNG", len(png))))
		}
	}

	return domain.HealthReport{Checks: checks}, nil
}

// cipherCheck round-trips a probe string through every algorithm.
func (s *Service) cipherCheck(key string) domain.HealthCheck {
	var broken []string
	for _, algo := range domain.Algorithms() {
		c, err := s.Ciphers.ForAlgorithm(algo)
		if err != nil {
			broken = append(broken, fmt.Sprintf("%s: %v", algo, err))
			continue
		}
		sealed, err := c.Apply(probeText, key, domain.DirectionEncrypt)
		if err != nil {
			broken = append(broken, fmt.Sprintf("%s: %v", algo, err))
			continue
		}
		opened, err := c.Apply(sealed, key, domain.DirectionDecrypt)
		if err != nil || opened != probeText {
			broken = append(broken, fmt.Sprintf("%s: round trip mismatch", algo))
		}
	}
	if len(broken) > 0 {
		return fail("Ciphers", strings.Join(broken, "; "))
	}
	return ok("Ciphers", fmt.Sprintf("%d algorithms round-trip", len(domain.Algorithms())))
}

func ok(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthOK, Details: details}
}

func warn(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthWarn, Details: details}
}

func fail(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthError, Details: details}
}
