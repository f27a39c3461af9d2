package app

import (
	"context"
	"fmt"

	configapp "github.com/doeshing/ciphervault/internal/application/config"
	"github.com/doeshing/ciphervault/internal/application/doctor"
	"github.com/doeshing/ciphervault/internal/application/engine"
	"github.com/doeshing/ciphervault/internal/domain"
	"github.com/doeshing/ciphervault/internal/i18n"
	"github.com/doeshing/ciphervault/internal/infrastructure/cipher"
	"github.com/doeshing/ciphervault/internal/infrastructure/config"
	"github.com/doeshing/ciphervault/internal/infrastructure/keygen"
	"github.com/doeshing/ciphervault/internal/infrastructure/oplog"
	"github.com/doeshing/ciphervault/internal/infrastructure/qr"
	"github.com/doeshing/ciphervault/internal/pkg/logger"
	"github.com/doeshing/ciphervault/internal/ports"
)

// Options controls how the dependency graph is built.
type Options struct {
	Verbose bool
	// ConfigPath overrides the default config location when non-empty.
	ConfigPath string
	// Language overrides preferences.language when non-empty.
	Language string
}

// Container wires up application services with infrastructure adapters.
type Container struct {
	Config         domain.Config
	ConfigProvider ports.ConfigProvider
	ConfigLoader   *config.FileLoader
	Engine         *engine.Service
	OperationLog   ports.OperationLog
	Translator     *i18n.Translator
	QR             *qr.Renderer
	Clipboard      ports.Clipboard
	DoctorService  *doctor.Service
	Logger         ports.Logger
}

// BuildContainer constructs the dependency graph.
func BuildContainer(ctx context.Context, opts Options) (*Container, error) {
	cfgLoader := config.NewFileLoader(opts.ConfigPath)
	cfg, err := cfgLoader.Load(ctx)
	if err != nil {
		return nil, err
	}
	if opts.Language != "" {
		cfg.Preferences.Language = opts.Language
	}
	if err := configapp.Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration %s: %w", cfgLoader.Path(), err)
	}

	log := logger.New(opts.Verbose)

	translator, err := i18n.New(cfg.Preferences.Language)
	if err != nil {
		return nil, err
	}

	ciphers, err := cipher.NewRegistry(cfg.AES)
	if err != nil {
		return nil, err
	}

	opLog, err := oplog.New(cfg.History)
	if err != nil {
		return nil, err
	}
	if sqliteLog, ok := opLog.(*oplog.SQLiteLog); ok && sqliteLog.Degraded() {
		log.Warn("sqlite operation log unavailable, using memory log", nil)
	}

	keyGen := keygen.NewGenerator(domain.DefaultKeyLength)

	renderer, err := qr.NewRenderer(cfg.QR)
	if err != nil {
		return nil, err
	}

	engineService := &engine.Service{
		Ciphers:    ciphers,
		KeyGen:     keyGen,
		Log:        opLog,
		Translator: translator,
		Logger:     log,
	}

	doctorService := &doctor.Service{
		ConfigProvider: cfgLoader,
		Ciphers:        ciphers,
		KeyGen:         keyGen,
		Log:            opLog,
		QR:             renderer,
	}

	log.Debug("container ready", map[string]interface{}{
		"config":  cfgLoader.Path(),
		"backend": cfg.History.Backend,
		"lang":    translator.Language(),
	})

	return &Container{
		Config:         cfg,
		ConfigProvider: cfgLoader,
		ConfigLoader:   cfgLoader,
		Engine:         engineService,
		OperationLog:   opLog,
		Translator:     translator,
		QR:             renderer,
		DoctorService:  doctorService,
		Logger:         log,
	}, nil
}
