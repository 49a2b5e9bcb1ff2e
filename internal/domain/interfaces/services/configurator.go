// Package services defines interfaces for domain service contracts.
package services

import (
	"context"

	"github.com/ochairo/variants/internal/domain/entities"
)

// Configurator turns a declared build config into a resolved descriptor
type Configurator interface {
	Resolve(ctx context.Context, cfg *entities.BuildConfig, buildType string) (*entities.Descriptor, error)
}
