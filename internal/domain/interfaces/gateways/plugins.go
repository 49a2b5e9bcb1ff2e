// Package gateways defines contracts for components outside the domain.
package gateways

import (
	"context"

	"github.com/ochairo/variants/internal/domain/entities"
)

// PropertySource supplies plugin-provided properties such as flutter.minSdkVersion.
// Keys are the full reference names as written in the config.
type PropertySource interface {
	Properties(ctx context.Context, cfg *entities.BuildConfig) (map[string]string, error)
}
