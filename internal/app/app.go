// Package app wires configuration, memory store, backend, and
// orchestrator together for the front-ends.
package app

import (
	"fmt"

	"memchat/internal/audit"
	"memchat/internal/config"
	"memchat/internal/memstore"
	"memchat/internal/orchestrator"
	"memchat/internal/provider"
)

// App bundles the orchestrator with the pieces the front-ends render.
type App struct {
	Config       *config.Config
	Store        *memstore.Store
	Orchestrator *orchestrator.Orchestrator
}

// ResolveKind picks the backend for a configuration: a model from the
// static lists selects its provider, otherwise the configured provider
// name decides (covering e.g. custom Ollama model tags).
func ResolveKind(cfg *config.Config) provider.Kind {
	if kind, ok := provider.KindForModel(cfg.Model); ok {
		return kind
	}
	switch cfg.Provider {
	case "anthropic":
		return provider.KindAnthropic
	case "ollama":
		return provider.KindOllama
	default:
		return provider.KindOpenAI
	}
}

// New constructs the application from configuration.
func New(cfg *config.Config) (*App, error) {
	kind := ResolveKind(cfg)
	settings := cfg.SettingsFor(string(kind))

	backend, err := provider.New(provider.Config{
		Kind:    kind,
		BaseURL: settings.BaseURL,
		APIKey:  settings.APIKey,
	})
	if err != nil {
		return nil, fmt.Errorf("create %s backend: %w", kind, err)
	}

	store, err := memstore.New(cfg.MemoryDir)
	if err != nil {
		return nil, fmt.Errorf("open memory directory: %w", err)
	}

	var opts []orchestrator.Option
	if sink := audit.NewFromEnv(); sink != nil {
		opts = append(opts, orchestrator.WithEventSink(sink))
	}

	return &App{
		Config:       cfg,
		Store:        store,
		Orchestrator: orchestrator.New(backend, store, cfg.Model, opts...),
	}, nil
}
