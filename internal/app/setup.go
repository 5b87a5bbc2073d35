package app

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/lexbrit/traduko/internal/cli"
	"github.com/lexbrit/traduko/internal/config"
	"github.com/lexbrit/traduko/internal/history"
	"github.com/lexbrit/traduko/internal/logging"
	"github.com/lexbrit/traduko/internal/observability"
	"github.com/lexbrit/traduko/internal/service"
	"github.com/lexbrit/traduko/internal/translation"
)

// runtime bundles the collaborators every subcommand needs.
type runtime struct {
	cfg        *config.Config
	logger     zerolog.Logger
	store      history.Store
	translator *service.Translator
}

func (r *runtime) Close() {
	if r == nil || r.store == nil {
		return
	}
	_ = r.store.Close()
}

func newRuntime(envLoader *cli.EnvLoader, metrics *observability.Metrics) (*runtime, error) {
	if envLoader != nil {
		if _, err := envLoader.Load(); err != nil {
			// Missing .env files are not fatal; the environment may be set.
			fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		}
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger, err := logging.New(cfg.Environment, cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("initialize logger: %w", err)
	}

	storeCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	store, err := history.NewStore(storeCtx, cfg)
	if err != nil {
		return nil, fmt.Errorf("open history store: %w", err)
	}

	registry := translation.NewRegistryFromConfig(translation.RegistryOptions{
		DefaultProvider:  cfg.TranslationProvider,
		MyMemoryEndpoint: cfg.TranslationEndpoint,
		LocalEndpoint:    cfg.LocalEndpoint,
		LocalModel:       cfg.LocalModel,
	})

	return &runtime{
		cfg:        cfg,
		logger:     logger,
		store:      store,
		translator: service.NewTranslator(registry, store, logger, metrics),
	}, nil
}
