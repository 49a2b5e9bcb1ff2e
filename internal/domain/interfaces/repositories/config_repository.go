// Package repositories defines interfaces for data access layers.
package repositories

import (
	"context"

	"github.com/ochairo/variants/internal/domain/entities"
)

// ConfigRepository defines the interface for accessing module build configs
type ConfigRepository interface {
	// GetConfig retrieves a module build config by name
	GetConfig(ctx context.Context, name string) (*entities.BuildConfig, error)

	// ListConfigs returns the names of all available module configs
	ListConfigs(ctx context.Context) ([]string, error)
}

// SigningConfigRepository is the pre-existing registry of signing configs.
// It always contains the "debug" config.
type SigningConfigRepository interface {
	// GetSigningConfig returns the named config, or entities.ErrSigningConfigNotFound
	GetSigningConfig(ctx context.Context, name string) (*entities.SigningConfig, error)

	// SigningConfigNames lists the registered config names in sorted order
	SigningConfigNames(ctx context.Context) ([]string, error)
}
