package app

import (
	"fmt"

	"physioblog/pkg/ai"
	"physioblog/pkg/storage"
	"physioblog/pkg/store"
)

// Config wires the application's collaborators.
type Config struct {
	Store    store.Store
	Blobs    storage.BlobStore
	Registry *ai.Registry
	// Gateway may be nil when no API key is configured; chat endpoints then
	// fail while content endpoints keep working.
	Gateway        *ai.Client
	MaxUploadBytes int64
}

// App holds all business logic behind the HTTP layer.
type App struct {
	store          store.Store
	blobs          storage.BlobStore
	registry       *ai.Registry
	gateway        *ai.Client
	maxUploadBytes int64
}

// New validates the wiring and builds the application.
func New(cfg Config) (*App, error) {
	if cfg.Store == nil {
		return nil, fmt.Errorf("store is required")
	}
	if cfg.Blobs == nil {
		return nil, fmt.Errorf("blob store is required")
	}
	if cfg.Registry == nil {
		return nil, fmt.Errorf("model registry is required")
	}
	max := cfg.MaxUploadBytes
	if max <= 0 {
		max = maxNoteSizeBytes
	}
	return &App{
		store:          cfg.Store,
		blobs:          cfg.Blobs,
		registry:       cfg.Registry,
		gateway:        cfg.Gateway,
		maxUploadBytes: max,
	}, nil
}

// LLMConfigured reports whether the completion gateway is available.
func (a *App) LLMConfigured() bool { return a.gateway != nil }

// Tiers exposes the model catalogue for the health endpoint.
func (a *App) Tiers() []ai.ModelTier { return a.registry.Tiers() }
